package session_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sprintsync/pkg/api"
	"sprintsync/pkg/session"

	"github.com/stretchr/testify/assert"
)

// testToken builds an unsigned JWT-shaped token whose payload carries the
// given user id, matching what the backend's token endpoint issues.
func testToken(userID int) string {
	payload, _ := json.Marshal(map[string]int{"user_id": userID})

	return "header." + base64.RawURLEncoding.EncodeToString(payload) + ".sig"
}

// newBackend serves the token and profile endpoints for user 7 ("alice").
// loginStatus and profileStatus control the failure modes.
func newBackend(loginStatus, profileStatus int) *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/users/auth/token/", func(w http.ResponseWriter, r *http.Request) {
		if loginStatus != http.StatusOK {
			w.WriteHeader(loginStatus)

			return
		}

		fmt.Fprintf(w, `{"access": %q, "refresh": "r1"}`, testToken(7))
	})

	mux.HandleFunc("/users/users/7/", func(w http.ResponseWriter, r *http.Request) {
		if profileStatus != http.StatusOK {
			w.WriteHeader(profileStatus)

			return
		}

		io.WriteString(w, `{"id": 7, "username": "alice"}`)
	})

	return httptest.NewServer(mux)
}

func getSession(t *testing.T, server *httptest.Server) (*session.Session, *session.Store) {
	t.Helper()

	store, _ := getStore(t)
	t.Cleanup(func() { store.Close() })

	client := api.NewClient(server.URL, 5*time.Second)

	return session.NewSession(client, store), store
}

func TestLoginStoresTokensAndProfile(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	server := newBackend(http.StatusOK, http.StatusOK)
	defer server.Close()

	sess, store := getSession(t, server)

	assert.False(sess.Active())

	err := sess.Login(context.Background(), "alice", "hunter2")
	assert.Nil(err)
	assert.True(sess.Active())
	assert.Equal("alice", sess.User().Username)

	access, err := store.Get(session.AccessTokenKey)
	assert.Nil(err)
	assert.Equal(testToken(7), access)

	refresh, err := store.Get(session.RefreshTokenKey)
	assert.Nil(err)
	assert.Equal("r1", refresh)
}

func TestLoginBadCredentials(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	server := newBackend(http.StatusUnauthorized, http.StatusOK)
	defer server.Close()

	sess, store := getSession(t, server)

	err := sess.Login(context.Background(), "alice", "wrong")
	assert.NotNil(err)
	assert.False(sess.Active())
	assert.Nil(sess.User())

	access, err := store.Get(session.AccessTokenKey)
	assert.Nil(err)
	assert.Equal("", access)
}

func TestLoginProfileFailureClearsSession(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	server := newBackend(http.StatusOK, http.StatusInternalServerError)
	defer server.Close()

	sess, store := getSession(t, server)

	err := sess.Login(context.Background(), "alice", "hunter2")
	assert.NotNil(err)
	assert.False(sess.Active())

	// tokens persisted before the profile fetch are cleaned up again
	access, err := store.Get(session.AccessTokenKey)
	assert.Nil(err)
	assert.Equal("", access)
}

func TestLogoutClearsEverything(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	server := newBackend(http.StatusOK, http.StatusOK)
	defer server.Close()

	sess, store := getSession(t, server)

	assert.Nil(sess.Login(context.Background(), "alice", "hunter2"))
	assert.True(sess.Active())

	sess.Logout()

	assert.False(sess.Active())
	assert.Nil(sess.User())

	access, err := store.Get(session.AccessTokenKey)
	assert.Nil(err)
	assert.Equal("", access)

	refresh, err := store.Get(session.RefreshTokenKey)
	assert.Nil(err)
	assert.Equal("", refresh)
}

func TestRestore(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	server := newBackend(http.StatusOK, http.StatusOK)
	defer server.Close()

	sess, store := getSession(t, server)

	assert.Nil(store.Set(session.AccessTokenKey, testToken(7)))

	assert.True(sess.Restore(context.Background()))
	assert.True(sess.Active())
	assert.Equal("alice", sess.User().Username)
}

func TestRestoreNoToken(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	server := newBackend(http.StatusOK, http.StatusOK)
	defer server.Close()

	sess, _ := getSession(t, server)

	assert.False(sess.Restore(context.Background()))
	assert.False(sess.Active())
}

func TestRestoreRejectedToken(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	server := newBackend(http.StatusOK, http.StatusUnauthorized)
	defer server.Close()

	sess, store := getSession(t, server)

	assert.Nil(store.Set(session.AccessTokenKey, testToken(7)))

	assert.False(sess.Restore(context.Background()))
	assert.False(sess.Active())

	// the rejected token is cleared so the next start goes straight to login
	access, err := store.Get(session.AccessTokenKey)
	assert.Nil(err)
	assert.Equal("", access)
}

func TestRestoreMalformedToken(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	server := newBackend(http.StatusOK, http.StatusOK)
	defer server.Close()

	sess, store := getSession(t, server)

	assert.Nil(store.Set(session.AccessTokenKey, "not-a-jwt"))

	assert.False(sess.Restore(context.Background()))
	assert.False(sess.Active())
}
