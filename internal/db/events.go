package db

import "context"

// list the most recent events, newest first
func (s *Store) ListEvents(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []Event
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, at, session_id, kind, match_number, roster
		FROM events
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	return out, err
}

func (s *Store) EventsForMatch(ctx context.Context, sessionID string, number int) ([]Event, error) {
	var out []Event
	err := s.db.SelectContext(ctx, &out, `
		SELECT id, at, session_id, kind, match_number, roster
		FROM events
		WHERE session_id = ? AND match_number = ?
		ORDER BY id ASC
	`, sessionID, number)
	return out, err
}
