package queue

import (
	"fmt"
	"slices"
	"strings"
)

type Status int

const (
	Draft Status = iota
	Committed
)

func (s Status) String() string {
	switch s {
	case Draft:
		return "draft"
	case Committed:
		return "committed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(b []byte) error {
	v, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "draft":
		return Draft, nil
	case "committed", "started":
		return Committed, nil
	default:
		return 0, fmt.Errorf("unknown match status %q", s)
	}
}

// Match is one generated group of four on a court.
type Match struct {
	Number int    `json:"number"`
	Court  int    `json:"court"`
	Roster Roster `json:"roster"`
	Status Status `json:"status"`
	Cost   int    `json:"cost"`
}

// LedgerPolicy decides which counters the selector reads when generating.
type LedgerPolicy int

const (
	// StagedLedgers counts draft matches as if they had been played.
	StagedLedgers LedgerPolicy = iota
	// CommittedLedgers only counts matches that have been started.
	CommittedLedgers
)

func (p LedgerPolicy) String() string {
	if p == CommittedLedgers {
		return "committed"
	}
	return "staged"
}

func ParseLedgerPolicy(s string) (LedgerPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "staged":
		return StagedLedgers, nil
	case "committed":
		return CommittedLedgers, nil
	default:
		return 0, fmt.Errorf("unknown ledger policy %q", s)
	}
}

type Option func(*Scheduler)

func WithLedgerPolicy(p LedgerPolicy) Option {
	return func(s *Scheduler) { s.policy = p }
}

// WithPoolLimit caps candidate enumeration to the n fairest players. Values
// below 4 disable the cap.
func WithPoolLimit(n int) Option {
	return func(s *Scheduler) { s.poolLimit = n }
}

// Scheduler picks successive matches and keeps the ledgers that drive the
// choice. It is not safe for concurrent use.
type Scheduler struct {
	reg       Registry
	policy    LedgerPolicy
	poolLimit int

	matches []Match

	// committed holds started matches only; staged also holds drafts.
	committed ledger
	staged    ledger
}

func New(reg Registry, opts ...Option) *Scheduler {
	s := &Scheduler{
		reg:       reg.clone(),
		committed: newLedger(),
		staged:    newLedger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replay rebuilds a scheduler from a match history. Numbers must run 1..n in
// order and every roster must be valid.
func Replay(reg Registry, history []Match, opts ...Option) (*Scheduler, error) {
	s := New(reg, opts...)
	for i, m := range history {
		if m.Number != i+1 {
			return nil, fmt.Errorf("replay: %w: expected match %d, got %d", ErrUnknownMatch, i+1, m.Number)
		}
		roster, err := NewRoster(m.Roster.Players())
		if err != nil {
			return nil, fmt.Errorf("replay match %d: %w", m.Number, err)
		}
		m.Roster = roster
		s.matches = append(s.matches, m)
		s.staged.credit(roster, m.Number)
		if m.Status == Committed {
			s.committed.credit(roster, m.Number)
		}
	}
	return s, nil
}

func (s *Scheduler) Clone() *Scheduler {
	return &Scheduler{
		reg:       s.reg.clone(),
		policy:    s.policy,
		poolLimit: s.poolLimit,
		matches:   slices.Clone(s.matches),
		committed: s.committed.clone(),
		staged:    s.staged.clone(),
	}
}

func (s *Scheduler) Registry() Registry {
	return s.reg.clone()
}

// SetRegistry replaces the eligible players and court count for later calls.
// Existing matches keep their courts.
func (s *Scheduler) SetRegistry(reg Registry) {
	s.reg = reg.clone()
}

func (s *Scheduler) Policy() LedgerPolicy {
	return s.policy
}

func (s *Scheduler) view() ledger {
	if s.policy == CommittedLedgers {
		return s.committed
	}
	return s.staged
}

// Propose works out the next match without recording it.
func (s *Scheduler) Propose() (Match, Selection, error) {
	if err := s.reg.Validate(); err != nil {
		return Match{}, Selection{}, err
	}
	if len(s.reg.Players) < RosterSize {
		return Match{}, Selection{}, fmt.Errorf("%w (have %d)", ErrInsufficientPlayers, len(s.reg.Players))
	}
	number := len(s.matches) + 1
	court, err := Court(number, s.reg.Courts)
	if err != nil {
		return Match{}, Selection{}, err
	}
	sel, err := selectRoster(s.reg.Players, s.view(), s.poolLimit)
	if err != nil {
		return Match{}, Selection{}, err
	}
	return Match{
		Number: number,
		Court:  court,
		Roster: sel.Roster,
		Status: Draft,
		Cost:   sel.Score.Cost,
	}, sel, nil
}

// GenerateNext records the next match as a draft. Its players only count in
// the staged ledger until the match is started.
func (s *Scheduler) GenerateNext() (Match, error) {
	m, _, err := s.Propose()
	if err != nil {
		return Match{}, err
	}
	s.matches = append(s.matches, m)
	s.staged.credit(m.Roster, m.Number)
	return m, nil
}

// Start commits a draft match into the permanent ledgers. Starting a match
// twice has no further effect.
func (s *Scheduler) Start(number int) (Match, error) {
	m, err := s.lookup(number)
	if err != nil {
		return Match{}, err
	}
	if m.Status == Committed {
		return *m, nil
	}
	m.Status = Committed
	s.committed.credit(m.Roster, m.Number)
	return *m, nil
}

// Edit replaces a match roster. Committed matches have the old roster backed
// out of the ledgers and the new one credited; drafts only touch the staged
// ledger.
func (s *Scheduler) Edit(number int, players []string) (Match, error) {
	roster, err := NewRoster(players)
	if err != nil {
		return Match{}, err
	}
	m, err := s.lookup(number)
	if err != nil {
		return Match{}, err
	}

	old := m.Roster
	s.staged.debit(old, number)
	s.staged.credit(roster, number)
	if m.Status == Committed {
		s.committed.debit(old, number)
		s.committed.credit(roster, number)
	}
	m.Roster = roster
	return *m, nil
}

func (s *Scheduler) lookup(number int) (*Match, error) {
	if number < 1 || number > len(s.matches) {
		return nil, fmt.Errorf("%w: match %d", ErrUnknownMatch, number)
	}
	return &s.matches[number-1], nil
}

func (s *Scheduler) Match(number int) (Match, error) {
	m, err := s.lookup(number)
	if err != nil {
		return Match{}, err
	}
	return *m, nil
}

func (s *Scheduler) Matches() []Match {
	return slices.Clone(s.matches)
}

func (s *Scheduler) Len() int {
	return len(s.matches)
}

// Stats returns a player's counters from started matches.
func (s *Scheduler) Stats(player string) PlayerStats {
	return s.committed.participation.Stats(player)
}

// StagedStats also counts draft matches.
func (s *Scheduler) StagedStats(player string) PlayerStats {
	return s.staged.participation.Stats(player)
}

func (s *Scheduler) MatchupCount(a, b string) int {
	return s.committed.matchups.Count(a, b)
}

func (s *Scheduler) Committed() Snapshot {
	return s.committed.snapshot()
}

func (s *Scheduler) Staged() Snapshot {
	return s.staged.snapshot()
}
