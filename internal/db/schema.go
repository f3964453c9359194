package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// note: as per SQLites's manual suggestions, we do not use 'AUTOINCREMENT' on
// the 'INTEGER PRIMARY KEY' columns. The default behaviour of such columns is
// nearly identical anyway, with less overhead.
var schema_stmts = []string{
	`PRAGMA journal_mode=WAL;`,
	`PRAGMA foreign_keys=ON;`,
	`CREATE TABLE IF NOT EXISTS matches (
		number INTEGER PRIMARY KEY,
		court INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'draft',
		cost INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
		started_at TEXT NOT NULL DEFAULT '',
		updated_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
		CHECK (status IN ('draft', 'committed'))
		CHECK (court >= 1)
	);`,
	`CREATE TABLE IF NOT EXISTS match_players (
		match_number INTEGER NOT NULL REFERENCES matches(number) ON UPDATE CASCADE ON DELETE CASCADE,
		slot INTEGER NOT NULL,
		player TEXT NOT NULL,
		PRIMARY KEY (match_number, slot),
		UNIQUE (match_number, player),
		CHECK (slot BETWEEN 1 AND 4),
		CHECK (trim(player) = player AND player != '')
	);`,
	`CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY,
		at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
		session_id TEXT NOT NULL DEFAULT '',
		kind TEXT NOT NULL,
		match_number INTEGER NOT NULL DEFAULT 0,
		roster TEXT NOT NULL DEFAULT ''
	);`,
	`CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value
	);`,
	`CREATE INDEX IF NOT EXISTS idx_match_players_player ON match_players(player);`,
	`CREATE INDEX IF NOT EXISTS idx_events_match_number ON events(match_number);`,
	`CREATE INDEX IF NOT EXISTS idx_events_session_id ON events(session_id);`,
}

type Store struct {
	db *sqlx.DB
}

// Open opens (or creates) the sqlite journal at path. Use ":memory:" in tests.
func Open(path string) (*Store, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// keep it predictable; this is a single-instance service.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	for _, stmt := range schema_stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	if err := insertDefaultSettings(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
