package session

import (
	"database/sql"
	"errors"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Store is the durable token slot: one bearer token per browser session id.
// Writes are replace-on-write under a mutex; readers see either the old or
// the new token, never a torn state.
type Store struct {
	mu sync.Mutex
	db *sqlx.DB
}

// OpenStore opens (or creates) the local session database. Use ":memory:"
// in tests.
func OpenStore(dsn string) (*Store, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS sessions(
  sid TEXT PRIMARY KEY,
  token TEXT NOT NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
`
	_, err := db.Exec(schema)
	return err
}

// Token returns the stored bearer token for sid, or "" when the session is
// anonymous.
func (s *Store) Token(sid string) (string, error) {
	var tok string
	err := s.db.Get(&tok, `SELECT token FROM sessions WHERE sid=?`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return tok, nil
}

// SetToken stores the token for sid, replacing any previous one.
func (s *Store) SetToken(sid, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO sessions(sid,token,updated_at)
	  VALUES(?,?,CURRENT_TIMESTAMP)
	  ON CONFLICT(sid) DO UPDATE SET token=excluded.token,updated_at=CURRENT_TIMESTAMP`, sid, token)
	return err
}

// ClearToken removes the token for sid. Clearing an absent session is a
// no-op.
func (s *Store) ClearToken(sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM sessions WHERE sid=?`, sid)
	return err
}

func (s *Store) Close() error { return s.db.Close() }
