package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"badminqueue/internal/configstore"
	"badminqueue/internal/db"
	"badminqueue/internal/queue"
)

type flakyJournal struct {
	*db.Store
	failSave  bool
	failReset bool
}

var errDiskFull = errors.New("disk full")

func (j *flakyJournal) SaveMatch(ctx context.Context, m db.MatchRow, ev db.Event) error {
	if j.failSave {
		return errDiskFull
	}
	return j.Store.SaveMatch(ctx, m, ev)
}

func (j *flakyJournal) ResetMatches(ctx context.Context, sessionID string) error {
	if j.failReset {
		return errDiskFull
	}
	return j.Store.ResetMatches(ctx, sessionID)
}

type fixture struct {
	store   *db.Store
	journal *flakyJournal
	conf    *configstore.Store
	b       *Broadcaster
}

func newFixture(t *testing.T, players []string, courts int) *fixture {
	t.Helper()
	store, err := db.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	conf, err := configstore.New(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	_, err = conf.UpdateConfig(context.Background(), configstore.Config{Players: players, Courts: courts})
	require.NoError(t, err)

	return &fixture{store: store, journal: &flakyJournal{Store: store}, conf: conf, b: NewBroadcaster()}
}

func (f *fixture) open(t *testing.T) *Session {
	t.Helper()
	s, err := Open(context.Background(), f.journal, f.conf, f.b, NewMetrics(nil), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestNextStartEditPersist(t *testing.T) {
	f := newFixture(t, []string{"A", "B", "C", "D", "E"}, 2)
	s := f.open(t)
	ctx := context.Background()

	m1, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, m1.Number)
	assert.Equal(t, 1, m1.Court)
	assert.Equal(t, "A, B, C, D", m1.Roster.String())

	_, err = s.Start(ctx, 1)
	require.NoError(t, err)

	m2, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, m2.Court)
	assert.True(t, m2.Roster.Contains("E"))

	_, err = s.Edit(ctx, 1, []string{"A", "B", "C", "E"})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Stats("D").GamesPlayed)

	reopened := f.open(t)
	if diff := cmp.Diff(s.Matches(), reopened.Matches()); diff != "" {
		t.Fatalf("matches after reopen (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(s.Committed(), reopened.Committed()); diff != "" {
		t.Fatalf("committed ledger after reopen (-want +got):\n%s", diff)
	}

	mismatches, err := reopened.Check(ctx)
	require.NoError(t, err)
	assert.Empty(t, mismatches)
}

func TestStartIsIdempotent(t *testing.T) {
	f := newFixture(t, []string{"A", "B", "C", "D"}, 1)
	s := f.open(t)
	ctx := context.Background()

	_, err := s.Next(ctx)
	require.NoError(t, err)
	_, err = s.Start(ctx, 1)
	require.NoError(t, err)

	f.journal.failSave = true
	m, err := s.Start(ctx, 1)
	require.NoError(t, err, "second start should not touch the journal")
	assert.Equal(t, queue.Committed, m.Status)
	assert.Equal(t, 1, s.Stats("A").GamesPlayed)
}

func TestFailedWriteRollsBack(t *testing.T) {
	f := newFixture(t, []string{"A", "B", "C", "D", "E"}, 1)
	s := f.open(t)
	ctx := context.Background()

	_, err := s.Next(ctx)
	require.NoError(t, err)
	before := s.Matches()
	committed := s.Committed()

	f.journal.failSave = true
	_, err = s.Next(ctx)
	require.ErrorIs(t, err, errDiskFull)
	_, err = s.Start(ctx, 1)
	require.ErrorIs(t, err, errDiskFull)
	_, err = s.Edit(ctx, 1, []string{"A", "B", "C", "E"})
	require.ErrorIs(t, err, errDiskFull)

	assert.Equal(t, before, s.Matches())
	if diff := cmp.Diff(committed, s.Committed()); diff != "" {
		t.Fatalf("committed ledger changed (-want +got):\n%s", diff)
	}

	f.journal.failSave = false
	m, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Number)
}

func TestDomainErrorsPassThrough(t *testing.T) {
	f := newFixture(t, []string{"A", "B", "C"}, 1)
	s := f.open(t)
	ctx := context.Background()

	_, err := s.Next(ctx)
	require.ErrorIs(t, err, queue.ErrInsufficientPlayers)
	_, err = s.Start(ctx, 1)
	require.ErrorIs(t, err, queue.ErrUnknownMatch)
	_, err = s.Edit(ctx, 1, []string{"A", "B"})
	require.ErrorIs(t, err, queue.ErrInvalidRosterSize)

	n, err := f.store.CountMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRegistryReadPerCall(t *testing.T) {
	f := newFixture(t, []string{"A", "B", "C"}, 1)
	s := f.open(t)
	ctx := context.Background()

	_, err := s.Next(ctx)
	require.ErrorIs(t, err, queue.ErrInsufficientPlayers)

	_, err = f.conf.UpdateConfig(ctx, configstore.Config{Players: []string{"A", "B", "C", "D"}, Courts: 1})
	require.NoError(t, err)
	m, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, m.Number)
}

func TestPreviewDoesNotRecord(t *testing.T) {
	f := newFixture(t, []string{"A", "B", "C", "D", "E"}, 1)
	s := f.open(t)
	ctx := context.Background()

	p, sel, err := s.Preview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, sel.Candidates)
	assert.Empty(t, s.Matches())

	m, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, p, m)
}

func TestReset(t *testing.T) {
	f := newFixture(t, []string{"A", "B", "C", "D"}, 1)
	s := f.open(t)
	ctx := context.Background()
	oldID := s.Settings().SessionID

	_, err := s.Next(ctx)
	require.NoError(t, err)
	_, err = s.Start(ctx, 1)
	require.NoError(t, err)

	f.journal.failReset = true
	require.ErrorIs(t, s.Reset(ctx), errDiskFull)
	assert.Len(t, s.Matches(), 1)

	f.journal.failReset = false
	require.NoError(t, s.Reset(ctx))
	assert.Empty(t, s.Matches())
	assert.Equal(t, 0, s.Stats("A").GamesPlayed)
	assert.NotEqual(t, oldID, s.Settings().SessionID)

	reopened := f.open(t)
	assert.Empty(t, reopened.Matches())
	assert.Equal(t, s.Settings().SessionID, reopened.Settings().SessionID)
}

func TestUpdateTuning(t *testing.T) {
	f := newFixture(t, []string{"A", "B", "C", "D", "E", "F"}, 1)
	s := f.open(t)
	ctx := context.Background()

	_, err := s.UpdateTuning(ctx, "greedy", 0)
	require.ErrorIs(t, err, queue.ErrInvalidConfiguration)
	_, err = s.UpdateTuning(ctx, "staged", -1)
	require.ErrorIs(t, err, queue.ErrInvalidConfiguration)

	_, err = s.Next(ctx)
	require.NoError(t, err)

	got, err := s.UpdateTuning(ctx, "committed", 5)
	require.NoError(t, err)
	assert.Equal(t, "committed", got.LedgerPolicy)
	assert.Equal(t, 5, got.PoolLimit)
	assert.Len(t, s.Matches(), 1)

	stored, err := f.store.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "committed", stored.LedgerPolicy)
	assert.Equal(t, 5, stored.PoolLimit)

	_, sel, err := s.Preview(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, sel.Candidates, "pool of 5 gives C(5,4) candidates")
}

func TestPublishOnChange(t *testing.T) {
	f := newFixture(t, []string{"A", "B", "C", "D"}, 1)
	s := f.open(t)
	_, ch, unsubscribe := f.b.Subscribe()
	defer unsubscribe()

	_, err := s.Next(context.Background())
	require.NoError(t, err)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("no notification after generate")
	}
}

func TestSummaryUsesCurrentRegistry(t *testing.T) {
	f := newFixture(t, []string{"A", "B", "C", "D"}, 1)
	s := f.open(t)
	ctx := context.Background()

	_, err := s.Next(ctx)
	require.NoError(t, err)
	_, err = f.conf.UpdateConfig(ctx, configstore.Config{Players: []string{"A", "B", "C", "D", "Zed"}, Courts: 1})
	require.NoError(t, err)

	sum, err := s.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, sum.Players, 5)
	assert.Equal(t, "Zed", sum.Players[4].Player)
	assert.Equal(t, []queue.Slot{queue.SlotIdle}, sum.Players[4].Slots)
	assert.Equal(t, []queue.Slot{queue.SlotDrafted}, sum.Players[0].Slots)
}
