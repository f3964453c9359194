package db

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

func insertDefaultSettings(ctx context.Context, db *sqlx.DB) error {
	defaults := []struct {
		key   string
		value any
	}{
		{"session_id", uuid.NewString()},
		{"ledger_policy", "staged"},
		{"pool_limit", 0},
	}
	for _, d := range defaults {
		if _, err := db.ExecContext(ctx, `INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, d.key, d.value); err != nil {
			return fmt.Errorf("insert default setting %s: %w", d.key, err)
		}
	}
	return nil
}

func (s *Store) GetSettings(ctx context.Context) (Settings, error) {
	defaults := Settings{
		LedgerPolicy: "staged",
	}
	rows := []struct {
		Key   string `db:"key"`
		Value string `db:"value"`
	}{}
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT key, CAST(value AS TEXT) AS value
		FROM settings
	`); err != nil {
		return Settings{}, err
	}
	settings := defaults
	for _, row := range rows {
		switch row.Key {
		case "session_id":
			settings.SessionID = row.Value
		case "ledger_policy":
			if row.Value != "" {
				settings.LedgerPolicy = row.Value
			}
		case "pool_limit":
			if v, err := strconv.Atoi(row.Value); err == nil {
				settings.PoolLimit = v
			}
		}
	}
	return settings, nil
}

// UpdateSettings stores the scheduler tuning. The session id is managed by
// ResetMatches and is left alone here.
func (s *Store) UpdateSettings(ctx context.Context, settings Settings) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	upsert := `INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err = tx.ExecContext(ctx, upsert, "ledger_policy", settings.LedgerPolicy); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, upsert, "pool_limit", settings.PoolLimit); err != nil {
		return err
	}

	return tx.Commit()
}
