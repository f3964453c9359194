package queue

import (
	"fmt"
	"strings"
)

// RosterSize is the number of players in every match.
const RosterSize = 4

// Roster is the set of players in one match.
type Roster [RosterSize]string

// NewRoster validates players as exactly four distinct, non-blank names.
func NewRoster(players []string) (Roster, error) {
	var r Roster
	if len(players) != RosterSize {
		return r, fmt.Errorf("%w (got %d)", ErrInvalidRosterSize, len(players))
	}
	seen := make(map[string]struct{}, RosterSize)
	for i, p := range players {
		p = strings.TrimSpace(p)
		if p == "" {
			return Roster{}, fmt.Errorf("%w (blank name at position %d)", ErrInvalidRosterSize, i+1)
		}
		if _, dup := seen[p]; dup {
			return Roster{}, fmt.Errorf("%w (%q listed twice)", ErrInvalidRosterSize, p)
		}
		seen[p] = struct{}{}
		r[i] = p
	}
	return r, nil
}

func (r Roster) Players() []string {
	return r[:]
}

func (r Roster) Contains(player string) bool {
	for _, p := range r {
		if p == player {
			return true
		}
	}
	return false
}

// Pairs returns the six unordered pairs in the roster.
func (r Roster) Pairs() []Pair {
	out := make([]Pair, 0, 6)
	for i := 0; i < len(r); i++ {
		for j := i + 1; j < len(r); j++ {
			out = append(out, NewPair(r[i], r[j]))
		}
	}
	return out
}

func (r Roster) String() string {
	return strings.Join(r[:], ", ")
}
