package main

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"sprintsync/pkg/api"
	"sprintsync/pkg/config"
	"sprintsync/pkg/controller"
	"sprintsync/pkg/session"
	"sprintsync/pkg/state"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	dirPerms := 0o700
	if err := os.MkdirAll(cfg.State.Dir, fs.FileMode(dirPerms)); err != nil {
		panic(err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Log.Filename), fs.FileMode(dirPerms)); err != nil {
		panic(err)
	}

	// the TUI owns the terminal, so logs go to a file instead
	filePerms := 0o666

	logFile, err := os.OpenFile(cfg.Log.Filename, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(filePerms))
	if err != nil {
		panic(err)
	}

	defer logFile.Close()

	log.Logger = log.With().Caller().Logger().Output(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05",
	})

	log.Info().Str("api", cfg.API.BaseURL).Msg("starting application...")

	store, err := session.NewStore(cfg.CredentialPath())
	if err != nil {
		panic(err)
	}

	defer store.Close()

	client := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	sess := session.NewSession(client, store)
	tasks := state.NewStore(client)
	planner := state.NewPlanner(client)

	if sess.Restore(ctx) {
		log.Info().Str("username", sess.User().Username).Msg("restored session")
	}

	controller, err := controller.NewController(ctx, sess, tasks, planner)
	if err != nil {
		panic(err)
	}

	controller.Go()
}
