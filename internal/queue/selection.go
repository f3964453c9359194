package queue

// Selection is the roster the selector settled on and what it looked at.
type Selection struct {
	Roster     Roster
	Score      Score
	Order      []string
	Candidates int
}

// selectRoster orders players by fairness, then scans every candidate group
// and keeps the cheapest one. On equal cost the first group seen wins, which
// favours players earlier in the fairness order.
func selectRoster(players []string, view ledger, poolLimit int) (Selection, error) {
	order := fairnessOrder(players, view.participation)
	pool := order
	if poolLimit >= RosterSize && poolLimit < len(pool) {
		pool = pool[:poolLimit]
	}

	candidates, err := Candidates(pool)
	if err != nil {
		return Selection{}, err
	}

	sel := Selection{Order: order}
	best := -1
	for c := range candidates {
		sel.Candidates++
		score := Cost(c, view.participation, view.matchups)
		if best == -1 || score.Cost < best {
			best = score.Cost
			sel.Roster = c
			sel.Score = score
		}
	}
	return sel, nil
}
