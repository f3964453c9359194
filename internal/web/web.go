package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"badminqueue/internal/configstore"
	"badminqueue/internal/session"
)

type Handler struct {
	sess     *session.Session
	conf     *configstore.Store
	b        *session.Broadcaster
	gatherer prometheus.Gatherer
	log      *zap.Logger
	validate *validator.Validate

	adminToken string
}

func NewHandler(sess *session.Session, conf *configstore.Store, b *session.Broadcaster, gatherer prometheus.Gatherer, adminToken string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sess:       sess,
		conf:       conf,
		b:          b,
		gatherer:   gatherer,
		log:        logger.With(zap.String("component", "web")),
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		adminToken: adminToken,
	}
}

func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(h.log))

	if h.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.handleHealth)

		r.Get("/settings", h.handleGetSettings)
		r.Put("/settings", h.requireAdmin(h.handlePutSettings))

		r.Route("/matches", func(r chi.Router) {
			r.Get("/", h.handleListMatches)
			r.Post("/", h.handleGenerate)
			r.Get("/next", h.handlePreview)
			r.Delete("/", h.requireAdmin(h.handleReset))
			r.Route("/{number}", func(r chi.Router) {
				r.Get("/", h.handleGetMatch)
				r.Post("/start", h.handleStart)
				r.Put("/roster", h.handleEditRoster)
			})
		})

		r.Get("/summary", h.handleSummary)
		r.Get("/check", h.handleCheck)
		r.Get("/log", h.handleLog)
		r.Get("/events", SSEHandler(h.b))
	})
	return r
}
