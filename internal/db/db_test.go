package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestDefaultSettings(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, settings.SessionID)
	assert.Equal(t, "staged", settings.LedgerPolicy)
	assert.Equal(t, 0, settings.PoolLimit)

	settings.LedgerPolicy = "committed"
	settings.PoolLimit = 6
	require.NoError(t, s.UpdateSettings(ctx, settings))

	got, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, got)
}

func TestSaveMatchRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)

	m := MatchRow{Number: 1, Court: 1, Status: StatusDraft, Cost: 0, Players: []string{"A", "B", "C", "D"}}
	require.NoError(t, s.SaveMatch(ctx, m, Event{SessionID: settings.SessionID, Kind: EventGenerated}))

	m.Status = StatusCommitted
	require.NoError(t, s.SaveMatch(ctx, m, Event{SessionID: settings.SessionID, Kind: EventStarted}))

	m.Players = []string{"A", "B", "C", "E"}
	require.NoError(t, s.SaveMatch(ctx, m, Event{SessionID: settings.SessionID, Kind: EventEdited}))

	rows, err := s.ListMatches(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"A", "B", "C", "E"}, rows[0].Players)
	assert.Equal(t, StatusCommitted, rows[0].Status)
	assert.NotEmpty(t, rows[0].StartedAt)

	n, err := s.CountMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	events, err := s.EventsForMatch(ctx, settings.SessionID, 1)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, EventGenerated, events[0].Kind)
	assert.Equal(t, "A, B, C, E", events[2].Roster)
}

func TestSaveMatchRejectsDuplicatePlayer(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.SaveMatch(ctx, MatchRow{Number: 1, Court: 1, Status: StatusDraft, Players: []string{"A", "A", "C", "D"}}, Event{Kind: EventGenerated})
	require.Error(t, err)

	n, err := s.CountMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "failed save must roll back")

	err = s.SaveMatch(ctx, MatchRow{Number: 1, Court: 1, Status: StatusDraft, Players: []string{"A", "B"}}, Event{Kind: EventGenerated})
	require.Error(t, err)
}

func TestCountsOnlyCommitted(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveMatch(ctx, MatchRow{Number: 1, Court: 1, Status: StatusCommitted, Players: []string{"A", "B", "C", "D"}}, Event{Kind: EventStarted}))
	require.NoError(t, s.SaveMatch(ctx, MatchRow{Number: 2, Court: 2, Status: StatusCommitted, Players: []string{"A", "B", "E", "F"}}, Event{Kind: EventStarted}))
	require.NoError(t, s.SaveMatch(ctx, MatchRow{Number: 3, Court: 1, Status: StatusDraft, Players: []string{"A", "B", "C", "G"}}, Event{Kind: EventGenerated}))

	games, err := s.PlayerGameCounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"A": 2, "B": 2, "C": 1, "D": 1, "E": 1, "F": 1}, games)

	pairs, err := s.PairCounts(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, pairs)
	assert.Equal(t, PairCount{A: "A", B: "B", Count: 2}, pairs[0])
	total := 0
	for _, p := range pairs {
		total += p.Count
	}
	assert.Equal(t, 12, total)

	players, err := s.ListPlayers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D", "E", "F", "G"}, players)
}

func TestResetMatches(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	before, err := s.GetSettings(ctx)
	require.NoError(t, err)

	require.NoError(t, s.SaveMatch(ctx, MatchRow{Number: 1, Court: 1, Status: StatusDraft, Players: []string{"A", "B", "C", "D"}}, Event{SessionID: before.SessionID, Kind: EventGenerated}))
	require.NoError(t, s.ResetMatches(ctx, "next-session"))

	n, err := s.CountMatches(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	after, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "next-session", after.SessionID)

	events, err := s.ListEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, EventReset, events[0].Kind)
}
