package session

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"badminqueue/internal/queue"
)

// Mismatch is one counter where the in-memory ledger and the journal disagree.
type Mismatch struct {
	Key     string `json:"key"`
	Ledger  int    `json:"ledger"`
	Journal int    `json:"journal"`
}

// Check recomputes the committed ledgers in SQL and compares them with the
// scheduler's. An empty result means they agree.
func (s *Session) Check(ctx context.Context) ([]Mismatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	games, err := s.journal.PlayerGameCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("player counts: %w", err)
	}
	pairs, err := s.journal.PairCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("pair counts: %w", err)
	}
	snap := s.sched.Committed()

	var out []Mismatch
	seen := make(map[string]bool)
	for player, st := range snap.Players {
		seen[player] = true
		if st.GamesPlayed != games[player] {
			out = append(out, Mismatch{Key: player, Ledger: st.GamesPlayed, Journal: games[player]})
		}
	}
	for player, n := range games {
		if !seen[player] && n != 0 {
			out = append(out, Mismatch{Key: player, Journal: n})
		}
	}

	journalPairs := make(map[queue.Pair]int, len(pairs))
	for _, p := range pairs {
		journalPairs[queue.NewPair(p.A, p.B)] = p.Count
	}
	for pair, n := range snap.Matchups {
		if journalPairs[pair] != n {
			out = append(out, Mismatch{Key: pair.String(), Ledger: n, Journal: journalPairs[pair]})
		}
		delete(journalPairs, pair)
	}
	for pair, n := range journalPairs {
		out = append(out, Mismatch{Key: pair.String(), Journal: n})
	}

	slices.SortFunc(out, func(a, b Mismatch) int { return strings.Compare(a.Key, b.Key) })
	if len(out) > 0 {
		s.log.Warn("ledger check found mismatches", zap.Int("count", len(out)))
	}
	return out, nil
}
