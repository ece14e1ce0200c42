package session

import (
	"database/sql"
	_ "embed"
	"fmt"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

//go:embed base.sql
var baseSQL string

// Fixed names the token pair is stored under.
const (
	AccessTokenKey  = "access_token"
	RefreshTokenKey = "refresh_token"
)

// Store persists credentials in a small sqlite database so a session
// survives restarts. Task data is never stored here; the backend owns it.
type Store struct {
	conn *sql.DB
}

// NewStore opens the credential database at the given filename, creating
// the structure if not present.
func NewStore(filename string) (*Store, error) {
	conn, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	// run idempotent setup sql to create the table if it doesn't exist
	if _, err := conn.Exec(baseSQL); err != nil {
		return nil, fmt.Errorf("error running base sql: %w", err)
	}

	return &Store{conn: conn}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Get returns the stored value for name, or the empty string when absent.
func (s *Store) Get(name string) (string, error) {
	var value string

	err := s.conn.QueryRow(`SELECT value FROM credential WHERE name = $1`, name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}

	if err != nil {
		return "", fmt.Errorf("error reading credential %s: %w", name, err)
	}

	return value, nil
}

// Set stores value under name, replacing any previous value.
func (s *Store) Set(name, value string) error {
	_, err := s.conn.Exec(`INSERT OR REPLACE INTO credential (name, value) VALUES ($1, $2)`, name, value)
	if err != nil {
		return fmt.Errorf("error storing credential %s: %w", name, err)
	}

	return nil
}

// Delete removes the value stored under name, if any.
func (s *Store) Delete(name string) error {
	_, err := s.conn.Exec(`DELETE FROM credential WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("error deleting credential %s: %w", name, err)
	}

	return nil
}
