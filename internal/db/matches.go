package db

import (
	"context"
	"fmt"
	"strings"
)

// SaveMatch inserts or updates a match with its roster and appends ev to the
// event log, all in one transaction.
func (s *Store) SaveMatch(ctx context.Context, m MatchRow, ev Event) (err error) {
	if len(m.Players) != 4 {
		return fmt.Errorf("save match %d: roster has %d players", m.Number, len(m.Players))
	}
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `
		INSERT INTO matches (number, court, status, cost, started_at)
		VALUES (?, ?, ?, ?, CASE WHEN ? = 'committed' THEN strftime('%Y-%m-%dT%H:%M:%fZ','now') ELSE '' END)
		ON CONFLICT(number) DO UPDATE SET
			court = excluded.court,
			status = excluded.status,
			cost = excluded.cost,
			started_at = CASE WHEN matches.started_at = '' THEN excluded.started_at ELSE matches.started_at END,
			updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
	`, m.Number, m.Court, m.Status, m.Cost, m.Status); err != nil {
		return fmt.Errorf("upsert match %d: %w", m.Number, err)
	}

	if _, err = tx.ExecContext(ctx, `DELETE FROM match_players WHERE match_number = ?`, m.Number); err != nil {
		return fmt.Errorf("clear roster %d: %w", m.Number, err)
	}
	for i, p := range m.Players {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO match_players (match_number, slot, player)
			VALUES (?, ?, ?)
		`, m.Number, i+1, p); err != nil {
			return fmt.Errorf("insert roster %d: %w", m.Number, err)
		}
	}

	if ev.Roster == "" {
		ev.Roster = strings.Join(m.Players, ", ")
	}
	ev.MatchNumber = m.Number
	if _, err = tx.NamedExecContext(ctx, `
		INSERT INTO events (session_id, kind, match_number, roster)
		VALUES (:session_id, :kind, :match_number, :roster)
	`, ev); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}

	return tx.Commit()
}

// list every match in the journal, oldest first
func (s *Store) ListMatches(ctx context.Context) ([]MatchRow, error) {
	var out []MatchRow
	if err := s.db.SelectContext(ctx, &out, `
		SELECT number, court, status, cost, created_at, started_at, updated_at
		FROM matches
		ORDER BY number ASC
	`); err != nil {
		return nil, err
	}

	var players []struct {
		MatchNumber int    `db:"match_number"`
		Player      string `db:"player"`
	}
	if err := s.db.SelectContext(ctx, &players, `
		SELECT match_number, player
		FROM match_players
		ORDER BY match_number ASC, slot ASC
	`); err != nil {
		return nil, err
	}

	byNumber := make(map[int]int, len(out))
	for i, m := range out {
		byNumber[m.Number] = i
	}
	for _, p := range players {
		i, ok := byNumber[p.MatchNumber]
		if !ok {
			continue
		}
		out[i].Players = append(out[i].Players, p.Player)
	}
	return out, nil
}

func (s *Store) CountMatches(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM matches`)
	return count, err
}

// ResetMatches clears the journal and starts a new session id. Events are kept.
func (s *Store) ResetMatches(ctx context.Context, sessionID string) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM match_players`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES ('session_id', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, sessionID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, `
		INSERT INTO events (session_id, kind) VALUES (?, ?)
	`, sessionID, EventReset); err != nil {
		return err
	}

	return tx.Commit()
}
