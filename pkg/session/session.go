package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"sprintsync/pkg/api"

	"github.com/rs/zerolog/log"
)

// Session tracks the authenticated user. While no user is held, the login
// view is the only reachable view.
type Session struct {
	client *api.Client
	store  *Store
	user   *api.User
}

// NewSession creates a session holder backed by the given client and
// credential store.
func NewSession(client *api.Client, store *Store) *Session {
	return &Session{
		client: client,
		store:  store,
	}
}

// Login exchanges credentials for a token pair, persists the tokens, and
// fetches the user profile. On any failure the session stays absent.
func (s *Session) Login(ctx context.Context, username, password string) error {
	pair, err := s.client.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login failed for %s: %w", username, err)
	}

	if err := s.store.Set(AccessTokenKey, pair.Access); err != nil {
		log.Warn().Err(err).Msg("could not persist access token")
	}

	if err := s.store.Set(RefreshTokenKey, pair.Refresh); err != nil {
		log.Warn().Err(err).Msg("could not persist refresh token")
	}

	s.client.SetToken(pair.Access)

	user, err := s.fetchProfile(ctx, pair.Access)
	if err != nil {
		s.clear()

		return err
	}

	s.user = &user

	log.Info().Str("username", user.Username).Msg("logged in")

	return nil
}

// Restore tries to resume a session from a previously stored access token.
// A rejected token is cleared so the next start goes straight to login.
// There is no refresh-token exchange; an expired token means logging in again.
func (s *Session) Restore(ctx context.Context) bool {
	token, err := s.store.Get(AccessTokenKey)
	if err != nil {
		log.Warn().Err(err).Msg("could not read stored access token")

		return false
	}

	if token == "" {
		return false
	}

	s.client.SetToken(token)

	user, err := s.fetchProfile(ctx, token)
	if err != nil {
		log.Info().Err(err).Msg("stored token rejected; starting logged out")
		s.clear()

		return false
	}

	s.user = &user

	return true
}

// Logout clears the session and the stored tokens unconditionally.
func (s *Session) Logout() {
	s.clear()

	log.Info().Msg("logged out")
}

// Active reports whether a user is authenticated.
func (s *Session) Active() bool {
	return s.user != nil
}

// User returns the authenticated user's profile, or nil.
func (s *Session) User() *api.User {
	return s.user
}

func (s *Session) clear() {
	if err := s.store.Delete(AccessTokenKey); err != nil {
		log.Warn().Err(err).Msg("could not delete access token")
	}

	if err := s.store.Delete(RefreshTokenKey); err != nil {
		log.Warn().Err(err).Msg("could not delete refresh token")
	}

	s.client.ClearToken()
	s.user = nil
}

func (s *Session) fetchProfile(ctx context.Context, token string) (api.User, error) {
	id, err := userID(token)
	if err != nil {
		return api.User{}, err
	}

	return s.client.Profile(ctx, id)
}

// userID pulls the user_id claim out of the access token. The token
// endpoint returns no profile, so the id has to come from the JWT payload.
// The signature is not checked; only the backend needs to trust the token.
func userID(token string) (int, error) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return 0, fmt.Errorf("malformed access token")
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return 0, fmt.Errorf("error decoding access token payload: %w", err)
	}

	var claims struct {
		UserID int `json:"user_id"`
	}

	if err := json.Unmarshal(payload, &claims); err != nil {
		return 0, fmt.Errorf("error parsing access token claims: %w", err)
	}

	return claims.UserID, nil
}
