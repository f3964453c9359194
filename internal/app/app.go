package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"badminqueue/internal/config"
	"badminqueue/internal/configstore"
	"badminqueue/internal/db"
	"badminqueue/internal/session"
	"badminqueue/internal/web"
)

type App struct {
	store *db.Store
	conf  *configstore.Store
	sess  *session.Session
	mux   http.Handler

	adminToken   string
	adminCreated bool

	closeOnce sync.Once
}

func New(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	conf, err := configstore.New(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	adminToken, created, err := loadOrInitAdminToken(cfg.DataDir, cfg.AdminToken)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	b := session.NewBroadcaster()
	sess, err := session.Open(ctx, sqlDB, conf, b, session.NewMetrics(reg), logger)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	h := web.NewHandler(sess, conf, b, reg, adminToken, logger)

	return &App{
		store:        sqlDB,
		conf:         conf,
		sess:         sess,
		mux:          h.Routes(),
		adminToken:   adminToken,
		adminCreated: created,
	}, nil
}

func (a *App) Router() http.Handler {
	return a.mux
}

func (a *App) Session() *session.Session {
	return a.sess
}

func (a *App) Config() *configstore.Store {
	return a.conf
}

func (a *App) Store() *db.Store {
	return a.store
}

func (a *App) AdminToken() string {
	return a.adminToken
}

// AdminTokenCreated reports whether this run generated a new admin token.
func (a *App) AdminTokenCreated() bool {
	return a.adminCreated
}

func (a *App) Close() {
	a.closeOnce.Do(func() {
		_ = a.store.Close()
	})
}
