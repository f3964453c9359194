package queue

import (
	"fmt"
	"iter"
)

// Candidates yields every 4-player subset of players in lexicographic order of
// their positions, so groups made of earlier players come first.
func Candidates(players []string) (iter.Seq[Roster], error) {
	n := len(players)
	if n < RosterSize {
		return nil, fmt.Errorf("%w (have %d)", ErrInsufficientPlayers, n)
	}
	return func(yield func(Roster) bool) {
		for a := 0; a < n-3; a++ {
			for b := a + 1; b < n-2; b++ {
				for c := b + 1; c < n-1; c++ {
					for d := c + 1; d < n; d++ {
						if !yield(Roster{players[a], players[b], players[c], players[d]}) {
							return
						}
					}
				}
			}
		}
	}, nil
}

// CandidateCount is C(n, 4).
func CandidateCount(n int) int {
	if n < RosterSize {
		return 0
	}
	return n * (n - 1) * (n - 2) * (n - 3) / 24
}
