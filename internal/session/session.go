package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"badminqueue/internal/db"
	"badminqueue/internal/queue"
)

// Journal is the persistent side of a session. *db.Store implements it.
type Journal interface {
	GetSettings(ctx context.Context) (db.Settings, error)
	UpdateSettings(ctx context.Context, settings db.Settings) error
	SaveMatch(ctx context.Context, m db.MatchRow, ev db.Event) error
	ListMatches(ctx context.Context) ([]db.MatchRow, error)
	ResetMatches(ctx context.Context, sessionID string) error
	PlayerGameCounts(ctx context.Context) (map[string]int, error)
	PairCounts(ctx context.Context) ([]db.PairCount, error)
	ListEvents(ctx context.Context, limit int) ([]db.Event, error)
}

// RegistrySource supplies the roster registry. *configstore.Store implements it.
type RegistrySource interface {
	Registry(ctx context.Context) (queue.Registry, error)
}

// Session owns one scheduler. Every operation runs under mu, works on a
// clone and only swaps it in once the journal write succeeded.
type Session struct {
	journal  Journal
	registry RegistrySource
	b        *Broadcaster
	metrics  *Metrics
	log      *zap.Logger

	mu       sync.Mutex
	sched    *queue.Scheduler
	settings db.Settings
}

// Open rebuilds the session from the journal.
func Open(ctx context.Context, journal Journal, registry RegistrySource, b *Broadcaster, metrics *Metrics, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	s := &Session{
		journal:  journal,
		registry: registry,
		b:        b,
		metrics:  metrics,
		log:      logger.With(zap.String("component", "session")),
	}
	if err := s.reload(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) reload(ctx context.Context) error {
	settings, err := s.journal.GetSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	reg, err := s.registry.Registry(ctx)
	if err != nil {
		return fmt.Errorf("load registry: %w", err)
	}
	rows, err := s.journal.ListMatches(ctx)
	if err != nil {
		return fmt.Errorf("load matches: %w", err)
	}
	history, err := fromRows(rows)
	if err != nil {
		return fmt.Errorf("load matches: %w", err)
	}
	opts, err := schedulerOptions(settings)
	if err != nil {
		return err
	}
	sched, err := queue.Replay(reg, history, opts...)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sched = sched
	s.settings = settings
	s.mu.Unlock()
	s.metrics.matches.Set(float64(sched.Len()))
	s.log.Info("session loaded",
		zap.String("session_id", settings.SessionID),
		zap.Int("matches", sched.Len()),
		zap.Int("players", len(reg.Players)),
		zap.Stringer("policy", sched.Policy()))
	return nil
}

// working returns a clone of the scheduler with the current registry.
// Callers hold mu.
func (s *Session) working(ctx context.Context) (*queue.Scheduler, error) {
	reg, err := s.registry.Registry(ctx)
	if err != nil {
		return nil, fmt.Errorf("load registry: %w", err)
	}
	next := s.sched.Clone()
	next.SetRegistry(reg)
	return next, nil
}

func (s *Session) fail(op string, err error) error {
	kind := queue.Kind(err)
	if kind == "" {
		kind = "internal"
	}
	s.metrics.failures.WithLabelValues(op, kind).Inc()
	s.log.Warn("operation failed", zap.String("op", op), zap.String("kind", kind), zap.Error(err))
	return err
}

func (s *Session) commit(ctx context.Context, next *queue.Scheduler, m queue.Match, kind string) error {
	ev := db.Event{SessionID: s.settings.SessionID, Kind: kind}
	if err := s.journal.SaveMatch(ctx, toRow(m), ev); err != nil {
		return fmt.Errorf("persist match %d: %w", m.Number, err)
	}
	s.sched = next
	s.metrics.matches.Set(float64(next.Len()))
	s.b.Publish()
	return nil
}

// Next generates the next draft match.
func (s *Session) Next(ctx context.Context) (queue.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.working(ctx)
	if err != nil {
		return queue.Match{}, s.fail("generate", err)
	}
	_, sel, err := next.Propose()
	if err != nil {
		return queue.Match{}, s.fail("generate", err)
	}
	m, err := next.GenerateNext()
	if err != nil {
		return queue.Match{}, s.fail("generate", err)
	}
	if err := s.commit(ctx, next, m, db.EventGenerated); err != nil {
		return queue.Match{}, s.fail("generate", err)
	}

	s.metrics.generated.Inc()
	s.metrics.cost.Observe(float64(sel.Score.Cost))
	s.metrics.candidates.Observe(float64(sel.Candidates))
	s.log.Info("match generated",
		zap.Int("match", m.Number),
		zap.Int("court", m.Court),
		zap.Stringer("roster", m.Roster),
		zap.Int("fairness", sel.Score.Fairness),
		zap.Int("matchup", sel.Score.Matchup),
		zap.Int("cost", sel.Score.Cost),
		zap.Int("candidates", sel.Candidates))
	return m, nil
}

// Preview works out the next match without recording it.
func (s *Session) Preview(ctx context.Context) (queue.Match, queue.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.working(ctx)
	if err != nil {
		return queue.Match{}, queue.Selection{}, err
	}
	return next.Propose()
}

// Start commits a draft. Starting a committed match returns it unchanged and
// writes nothing.
func (s *Session) Start(ctx context.Context, number int) (queue.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.sched.Match(number)
	if err != nil {
		return queue.Match{}, s.fail("start", err)
	}
	if cur.Status == queue.Committed {
		return cur, nil
	}

	next := s.sched.Clone()
	m, err := next.Start(number)
	if err != nil {
		return queue.Match{}, s.fail("start", err)
	}
	if err := s.commit(ctx, next, m, db.EventStarted); err != nil {
		return queue.Match{}, s.fail("start", err)
	}

	s.metrics.started.Inc()
	s.log.Info("match started", zap.Int("match", m.Number), zap.Int("court", m.Court), zap.Stringer("roster", m.Roster))
	return m, nil
}

// Edit replaces the roster of match number.
func (s *Session) Edit(ctx context.Context, number int, players []string) (queue.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.sched.Clone()
	before, _ := next.Match(number)
	m, err := next.Edit(number, players)
	if err != nil {
		return queue.Match{}, s.fail("edit", err)
	}
	if err := s.commit(ctx, next, m, db.EventEdited); err != nil {
		return queue.Match{}, s.fail("edit", err)
	}

	s.metrics.edits.WithLabelValues(m.Status.String()).Inc()
	s.log.Info("roster edited",
		zap.Int("match", m.Number),
		zap.Stringer("status", m.Status),
		zap.Stringer("from", before.Roster),
		zap.Stringer("to", m.Roster))
	return m, nil
}

// Reset drops every match and starts a fresh session id.
func (s *Session) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.working(ctx)
	if err != nil {
		return s.fail("reset", err)
	}
	opts, err := schedulerOptions(s.settings)
	if err != nil {
		return s.fail("reset", err)
	}
	id := uuid.NewString()
	if err := s.journal.ResetMatches(ctx, id); err != nil {
		return s.fail("reset", fmt.Errorf("reset journal: %w", err))
	}

	s.sched = queue.New(next.Registry(), opts...)
	s.settings.SessionID = id
	s.metrics.resets.Inc()
	s.metrics.matches.Set(0)
	s.b.Publish()
	s.log.Info("session reset", zap.String("session_id", id))
	return nil
}

// Settings are the scheduler tuning knobs kept in the journal.
type Settings struct {
	SessionID    string `json:"session_id"`
	LedgerPolicy string `json:"ledger_policy"`
	PoolLimit    int    `json:"pool_limit"`
}

func (s *Session) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Settings{
		SessionID:    s.settings.SessionID,
		LedgerPolicy: s.settings.LedgerPolicy,
		PoolLimit:    s.settings.PoolLimit,
	}
}

// UpdateTuning changes the ledger policy and pool limit. The scheduler is
// rebuilt from its own history so the ledgers are unaffected.
func (s *Session) UpdateTuning(ctx context.Context, policy string, poolLimit int) (Settings, error) {
	p, err := queue.ParseLedgerPolicy(policy)
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %v", queue.ErrInvalidConfiguration, err)
	}
	if poolLimit < 0 {
		return Settings{}, fmt.Errorf("%w: pool limit %d", queue.ErrInvalidConfiguration, poolLimit)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	settings := s.settings
	settings.LedgerPolicy = p.String()
	settings.PoolLimit = poolLimit
	opts, err := schedulerOptions(settings)
	if err != nil {
		return Settings{}, err
	}
	next, err := queue.Replay(s.sched.Registry(), s.sched.Matches(), opts...)
	if err != nil {
		return Settings{}, err
	}
	if err := s.journal.UpdateSettings(ctx, settings); err != nil {
		return Settings{}, fmt.Errorf("persist settings: %w", err)
	}
	s.sched = next
	s.settings = settings
	s.log.Info("tuning updated", zap.String("policy", settings.LedgerPolicy), zap.Int("pool_limit", settings.PoolLimit))
	return Settings{SessionID: settings.SessionID, LedgerPolicy: settings.LedgerPolicy, PoolLimit: settings.PoolLimit}, nil
}

// RegistryChanged tells subscribers the roster registry was replaced.
func (s *Session) RegistryChanged() {
	s.b.Publish()
}

func (s *Session) Matches() []queue.Match {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.Matches()
}

func (s *Session) Match(number int) (queue.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.Match(number)
}

// Summary reports per-player participation against the current registry.
func (s *Session) Summary(ctx context.Context) (queue.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	view, err := s.working(ctx)
	if err != nil {
		return queue.Summary{}, err
	}
	return view.Summary(), nil
}

func (s *Session) Stats(player string) queue.PlayerStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.Stats(player)
}

// Committed returns the committed ledgers.
func (s *Session) Committed() queue.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched.Committed()
}

// History returns the most recent journal events, newest first.
func (s *Session) History(ctx context.Context, limit int) ([]db.Event, error) {
	return s.journal.ListEvents(ctx, limit)
}
