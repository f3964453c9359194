package db

const (
	StatusDraft     = "draft"
	StatusCommitted = "committed"
)

const (
	EventGenerated = "generated"
	EventStarted   = "started"
	EventEdited    = "edited"
	EventReset     = "reset"
)

type Settings struct {
	SessionID    string `db:"session_id"`
	LedgerPolicy string `db:"ledger_policy"`
	PoolLimit    int    `db:"pool_limit"`
}

type MatchRow struct {
	Number    int    `db:"number"`
	Court     int    `db:"court"`
	Status    string `db:"status"`
	Cost      int    `db:"cost"`
	CreatedAt string `db:"created_at"`
	StartedAt string `db:"started_at"`
	UpdatedAt string `db:"updated_at"`

	// Players in roster order, filled from match_players.
	Players []string `db:"-"`
}

type Event struct {
	ID          int64  `db:"id" json:"id"`
	At          string `db:"at" json:"at"`
	SessionID   string `db:"session_id" json:"session_id"`
	Kind        string `db:"kind" json:"kind"`
	MatchNumber int    `db:"match_number" json:"match_number,omitempty"`
	Roster      string `db:"roster" json:"roster,omitempty"`
}

type PairCount struct {
	A     string `db:"player_a"`
	B     string `db:"player_b"`
	Count int    `db:"count"`
}
