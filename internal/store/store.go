package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const dbFileName = "extras.sqlite"

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

// defaultCurrency matches the currency the expense tracker has always used.
const defaultCurrency = "IDR"

type Store struct {
	Dir string

	// DefaultCurrency applies to expenses created without a currency.
	DefaultCurrency string
	// Now is the clock used for timestamps. Defaults to time.Now.
	Now func() time.Time

	db  *sql.DB
	hub *Hub
}

// DefaultDir resolves the data directory: EXTRAS_DIR, then config.dataDir,
// then <config dir>/data.
func DefaultDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("EXTRAS_DIR")); v != "" {
		return v, nil
	}
	cfg, err := LoadConfig()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(cfg.DataDir) != "" {
		return filepath.Clean(cfg.DataDir), nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// Open creates dir if needed and opens (migrating) the SQLite database in it.
func Open(ctx context.Context, dir string) (*Store, error) {
	s := &Store{
		Dir:             filepath.Clean(dir),
		DefaultCurrency: defaultCurrency,
		Now:             time.Now,
		hub:             NewHub(),
	}
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	db, err := openSQLite(ctx, s.dbPath())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.dbPath(), err)
	}
	s.db = db
	return s, nil
}

func (s *Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s *Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Hub returns the change feed for this store.
func (s *Store) Hub() *Hub { return s.hub }

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Store) currency() string {
	if strings.TrimSpace(s.DefaultCurrency) != "" {
		return s.DefaultCurrency
	}
	return defaultCurrency
}

func unixMS(t time.Time) int64 { return t.UnixMilli() }

func fromUnixMS(ms int64) time.Time { return time.UnixMilli(ms).UTC() }

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
