package queue

// Repeat matchups weigh 1.5x as much as raw participation.
const (
	FairnessWeight = 2
	MatchupWeight  = 3
)

// Score breaks a candidate's cost into its two terms.
type Score struct {
	Fairness int `json:"fairness"`
	Matchup  int `json:"matchup"`
	Cost     int `json:"cost"`
}

// Cost scores a roster against a ledger view. Lower is better.
func Cost(r Roster, p *Participation, m *Matchups) Score {
	var s Score
	for _, player := range r {
		s.Fairness += p.Stats(player).GamesPlayed
	}
	for _, pair := range r.Pairs() {
		s.Matchup += m.counts[pair]
	}
	s.Cost = s.Fairness*FairnessWeight + s.Matchup*MatchupWeight
	return s
}
