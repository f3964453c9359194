package configstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"badminqueue/internal/queue"
)

// Config is the roster registry as stored on disk.
type Config struct {
	Players   []string  `json:"players"`
	Courts    int       `json:"courts"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Registry converts the stored config into a scheduler registry.
func (c Config) Registry() queue.Registry {
	return queue.NewRegistry(c.Players, c.Courts)
}

type Store struct {
	path string
	mu   sync.Mutex
	cfg  Config
}

func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create config dir: %w", err)
	}

	store := &Store{path: path}
	if err := store.loadOrInit(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) GetConfig(ctx context.Context) (Config, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.cfg
	cfg.Players = append([]string(nil), s.cfg.Players...)
	return cfg, nil
}

// UpdateConfig replaces the registry. Player names are normalised and a
// court count below 1 is rejected with queue.ErrInvalidConfiguration.
func (s *Store) UpdateConfig(ctx context.Context, cfg Config) (Config, error) {
	_ = ctx
	reg := cfg.Registry()
	if err := reg.Validate(); err != nil {
		return Config{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.cfg
	s.cfg = Config{
		Players:   reg.Players,
		Courts:    reg.Courts,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.saveLocked(); err != nil {
		s.cfg = prev
		return Config{}, err
	}
	return s.cfg, nil
}

// Registry returns the current registry.
func (s *Store) Registry(ctx context.Context) (queue.Registry, error) {
	cfg, err := s.GetConfig(ctx)
	if err != nil {
		return queue.Registry{}, err
	}
	return cfg.Registry(), nil
}

func (s *Store) loadOrInit() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.cfg = defaultConfig()
			return s.saveLocked()
		}
		return fmt.Errorf("read config: %w", err)
	}

	if err := json.Unmarshal(data, &s.cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	s.cfg.Players = queue.NormalizePlayers(s.cfg.Players)
	if s.cfg.Courts <= 0 {
		s.cfg.Courts = 1
	}
	return nil
}

func (s *Store) saveLocked() error {
	data, err := json.MarshalIndent(s.cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Players:   []string{},
		Courts:    1,
		UpdatedAt: time.Now().UTC(),
	}
}
