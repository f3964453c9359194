package queue

import (
	"slices"

	"github.com/samber/lo"
)

// Slot is one player's involvement in one match.
type Slot int

const (
	SlotIdle Slot = iota
	SlotDrafted
	SlotPlayed
)

func (s Slot) String() string {
	switch s {
	case SlotDrafted:
		return "drafted"
	case SlotPlayed:
		return "played"
	default:
		return "idle"
	}
}

func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type PlayerSummary struct {
	Player              string `json:"player"`
	TotalCommittedGames int    `json:"total_committed_games"`
	// Slots is indexed by match number - 1.
	Slots []Slot `json:"slots"`
}

type Summary struct {
	Matches int             `json:"matches"`
	Players []PlayerSummary `json:"players"`
}

// Summary reports, for every registered player and anyone who appears in a
// match, their committed game count and their slot in each match so far.
func (s *Scheduler) Summary() Summary {
	names := slices.Clone(s.reg.Players)
	for _, m := range s.matches {
		names = append(names, m.Roster.Players()...)
	}
	names = lo.Uniq(names)
	slices.Sort(names)

	out := Summary{Matches: len(s.matches), Players: make([]PlayerSummary, 0, len(names))}
	for _, name := range names {
		ps := PlayerSummary{
			Player:              name,
			TotalCommittedGames: s.committed.participation.Stats(name).GamesPlayed,
			Slots:               make([]Slot, len(s.matches)),
		}
		for i, m := range s.matches {
			if !m.Roster.Contains(name) {
				continue
			}
			if m.Status == Committed {
				ps.Slots[i] = SlotPlayed
			} else {
				ps.Slots[i] = SlotDrafted
			}
		}
		out.Players = append(out.Players, ps)
	}
	return out
}
