package queue

import (
	"slices"
	"sort"
)

// PlayerStats are the participation counters the selector sorts on.
type PlayerStats struct {
	GamesPlayed     int `json:"games_played"`
	LastPlayedIndex int `json:"last_played_index"`
}

// Participation tracks, per player, the match numbers they are credited with.
// GamesPlayed and LastPlayedIndex are derived from that set, so debiting a
// match a player was never credited with leaves them untouched.
type Participation struct {
	played map[string][]int
}

func newParticipation() *Participation {
	return &Participation{played: make(map[string][]int)}
}

func (p *Participation) Stats(player string) PlayerStats {
	nums := p.played[player]
	if len(nums) == 0 {
		return PlayerStats{LastPlayedIndex: -1}
	}
	return PlayerStats{GamesPlayed: len(nums), LastPlayedIndex: nums[len(nums)-1]}
}

// Played reports whether player is credited with match number.
func (p *Participation) Played(player string, number int) bool {
	_, ok := slices.BinarySearch(p.played[player], number)
	return ok
}

func (p *Participation) Total() int {
	total := 0
	for _, nums := range p.played {
		total += len(nums)
	}
	return total
}

func (p *Participation) credit(r Roster, number int) {
	for _, player := range r {
		nums := p.played[player]
		i, ok := slices.BinarySearch(nums, number)
		if ok {
			continue
		}
		p.played[player] = slices.Insert(nums, i, number)
	}
}

func (p *Participation) debit(r Roster, number int) {
	for _, player := range r {
		nums := p.played[player]
		i, ok := slices.BinarySearch(nums, number)
		if !ok {
			continue
		}
		nums = slices.Delete(nums, i, i+1)
		if len(nums) == 0 {
			delete(p.played, player)
			continue
		}
		p.played[player] = nums
	}
}

func (p *Participation) clone() *Participation {
	out := newParticipation()
	for player, nums := range p.played {
		out.played[player] = slices.Clone(nums)
	}
	return out
}

// Pair is an unordered pair of players, stored with A <= B.
type Pair struct {
	A, B string
}

func NewPair(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}

func (p Pair) String() string {
	return p.A + " & " + p.B
}

// MarshalText lets snapshots key JSON objects by pair.
func (p Pair) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Matchups counts how often two players shared a match.
type Matchups struct {
	counts map[Pair]int
}

func newMatchups() *Matchups {
	return &Matchups{counts: make(map[Pair]int)}
}

func (m *Matchups) Count(a, b string) int {
	return m.counts[NewPair(a, b)]
}

func (m *Matchups) credit(r Roster) {
	for _, pair := range r.Pairs() {
		m.counts[pair]++
	}
}

func (m *Matchups) debit(r Roster) {
	for _, pair := range r.Pairs() {
		if m.counts[pair] <= 1 {
			delete(m.counts, pair)
			continue
		}
		m.counts[pair]--
	}
}

func (m *Matchups) clone() *Matchups {
	out := newMatchups()
	for k, v := range m.counts {
		out.counts[k] = v
	}
	return out
}

// ledger is one consistent view of participation and matchups.
type ledger struct {
	participation *Participation
	matchups      *Matchups
}

func newLedger() ledger {
	return ledger{participation: newParticipation(), matchups: newMatchups()}
}

func (l ledger) credit(r Roster, number int) {
	l.participation.credit(r, number)
	l.matchups.credit(r)
}

func (l ledger) debit(r Roster, number int) {
	l.participation.debit(r, number)
	l.matchups.debit(r)
}

func (l ledger) clone() ledger {
	return ledger{participation: l.participation.clone(), matchups: l.matchups.clone()}
}

// Snapshot is a copy of a ledger, keyed for easy comparison in callers.
type Snapshot struct {
	Players  map[string]PlayerStats `json:"players"`
	Matchups map[Pair]int           `json:"matchups"`
}

func (l ledger) snapshot() Snapshot {
	s := Snapshot{
		Players:  make(map[string]PlayerStats, len(l.participation.played)),
		Matchups: make(map[Pair]int, len(l.matchups.counts)),
	}
	for player := range l.participation.played {
		s.Players[player] = l.participation.Stats(player)
	}
	for k, v := range l.matchups.counts {
		s.Matchups[k] = v
	}
	return s
}

// fairnessOrder returns players sorted by games played, then by how long ago
// they last played. Never-played players (-1) come first among equals and the
// input order breaks any remaining tie.
func fairnessOrder(players []string, p *Participation) []string {
	sorted := slices.Clone(players)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := p.Stats(sorted[i]), p.Stats(sorted[j])
		if a.GamesPlayed != b.GamesPlayed {
			return a.GamesPlayed < b.GamesPlayed
		}
		return a.LastPlayedIndex < b.LastPlayedIndex
	})
	return sorted
}
