package db

import "context"

// PlayerGameCounts counts committed matches per player straight from the
// journal. It is the SQL side of the ledger cross-check.
func (s *Store) PlayerGameCounts(ctx context.Context) (map[string]int, error) {
	type countRow struct {
		Player string `db:"player"`
		Count  int    `db:"count"`
	}
	var rows []countRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT mp.player, COUNT(*) AS count
		FROM match_players mp
		JOIN matches m ON m.number = mp.match_number
		WHERE m.status = 'committed'
		GROUP BY mp.player
	`); err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.Player] = row.Count
	}
	return counts, nil
}

// PairCounts counts how often two players shared a committed match, with
// player_a < player_b.
func (s *Store) PairCounts(ctx context.Context) ([]PairCount, error) {
	var out []PairCount
	err := s.db.SelectContext(ctx, &out, `
		SELECT a.player AS player_a, b.player AS player_b, COUNT(*) AS count
		FROM match_players a
		JOIN match_players b ON a.match_number = b.match_number AND a.player < b.player
		JOIN matches m ON m.number = a.match_number
		WHERE m.status = 'committed'
		GROUP BY a.player, b.player
		ORDER BY a.player, b.player
	`)
	return out, err
}

func (s *Store) ListPlayers(ctx context.Context) ([]string, error) {
	var out []string
	err := s.db.SelectContext(ctx, &out, `
		SELECT DISTINCT player
		FROM match_players
		ORDER BY player ASC
	`)
	return out, err
}
