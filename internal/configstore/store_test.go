package configstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"badminqueue/internal/queue"
)

func TestNewWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	store, err := New(path)
	require.NoError(t, err)

	cfg, err := store.GetConfig(context.Background())
	require.NoError(t, err)
	assert.Empty(t, cfg.Players)
	assert.Equal(t, 1, cfg.Courts)

	_, err = os.Stat(path)
	require.NoError(t, err, "defaults should be written to disk")
}

func TestUpdateConfigPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store, err := New(path)
	require.NoError(t, err)
	ctx := context.Background()

	saved, err := store.UpdateConfig(ctx, Config{Players: []string{" Ann", "Bo", "", "Ann", "Cy "}, Courts: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bo", "Cy"}, saved.Players)
	assert.False(t, saved.UpdatedAt.IsZero())

	reopened, err := New(path)
	require.NoError(t, err)
	reg, err := reopened.Registry(ctx)
	require.NoError(t, err)
	assert.Equal(t, queue.Registry{Players: []string{"Ann", "Bo", "Cy"}, Courts: 2}, reg)
}

func TestUpdateConfigRejectsZeroCourts(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	ctx := context.Background()

	_, err = store.UpdateConfig(ctx, Config{Players: []string{"A"}, Courts: 0})
	require.True(t, errors.Is(err, queue.ErrInvalidConfiguration), "err = %v", err)

	cfg, err := store.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, cfg.Courts, "rejected update must not apply")
}

func TestGetConfigReturnsCopy(t *testing.T) {
	store, err := New(filepath.Join(t.TempDir(), "config.json"))
	require.NoError(t, err)
	ctx := context.Background()
	_, err = store.UpdateConfig(ctx, Config{Players: []string{"A", "B"}, Courts: 1})
	require.NoError(t, err)

	cfg, err := store.GetConfig(ctx)
	require.NoError(t, err)
	cfg.Players[0] = "Z"

	again, err := store.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Players[0])
}

func TestParseRoster(t *testing.T) {
	cfg, err := ParseRoster([]byte("courts: 3\nplayers:\n  - Ann\n  - \" Bo \"\n  - Ann\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Courts)
	assert.Equal(t, []string{"Ann", "Bo"}, cfg.Players)

	cfg, err = ParseRoster([]byte("players: [A, B, C, D]\n"))
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Courts)
	assert.Len(t, cfg.Players, 4)

	_, err = ParseRoster([]byte("courts: 2\nteams: [x]\n"))
	require.Error(t, err)

	_, err = ParseRoster([]byte("courts: -1\n"))
	require.Error(t, err)

	cfg, err = ParseRoster(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Players)
}

func TestLoadRosterFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte("courts: 2\nplayers:\n  - A\n  - B\n"), 0o644))

	cfg, err := LoadRosterFile(path)
	require.NoError(t, err)
	assert.Equal(t, Config{Players: []string{"A", "B"}, Courts: 2}, cfg)

	_, err = LoadRosterFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
