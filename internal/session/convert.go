package session

import (
	"fmt"

	"badminqueue/internal/db"
	"badminqueue/internal/queue"
)

func toRow(m queue.Match) db.MatchRow {
	return db.MatchRow{
		Number:  m.Number,
		Court:   m.Court,
		Status:  m.Status.String(),
		Cost:    m.Cost,
		Players: m.Roster.Players(),
	}
}

func fromRows(rows []db.MatchRow) ([]queue.Match, error) {
	out := make([]queue.Match, 0, len(rows))
	for _, row := range rows {
		status, err := queue.ParseStatus(row.Status)
		if err != nil {
			return nil, fmt.Errorf("match %d: %w", row.Number, err)
		}
		roster, err := queue.NewRoster(row.Players)
		if err != nil {
			return nil, fmt.Errorf("match %d: %w", row.Number, err)
		}
		out = append(out, queue.Match{
			Number: row.Number,
			Court:  row.Court,
			Roster: roster,
			Status: status,
			Cost:   row.Cost,
		})
	}
	return out, nil
}

func schedulerOptions(settings db.Settings) ([]queue.Option, error) {
	policy, err := queue.ParseLedgerPolicy(settings.LedgerPolicy)
	if err != nil {
		return nil, err
	}
	return []queue.Option{
		queue.WithLedgerPolicy(policy),
		queue.WithPoolLimit(settings.PoolLimit),
	}, nil
}
