package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	generated  prometheus.Counter
	started    prometheus.Counter
	edits      *prometheus.CounterVec
	resets     prometheus.Counter
	failures   *prometheus.CounterVec
	cost       prometheus.Histogram
	candidates prometheus.Histogram
	matches    prometheus.Gauge
}

// NewMetrics registers the session collectors on reg. A nil reg gives
// unregistered collectors, which is what tests want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		generated: f.NewCounter(prometheus.CounterOpts{
			Namespace: "badminqueue",
			Name:      "matches_generated_total",
			Help:      "Draft matches generated.",
		}),
		started: f.NewCounter(prometheus.CounterOpts{
			Namespace: "badminqueue",
			Name:      "matches_started_total",
			Help:      "Matches moved from draft to committed.",
		}),
		edits: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "badminqueue",
			Name:      "roster_edits_total",
			Help:      "Roster edits by status of the edited match.",
		}, []string{"status"}),
		resets: f.NewCounter(prometheus.CounterOpts{
			Namespace: "badminqueue",
			Name:      "session_resets_total",
			Help:      "Session resets.",
		}),
		failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "badminqueue",
			Name:      "operation_failures_total",
			Help:      "Failed operations by operation and error kind.",
		}, []string{"op", "kind"}),
		cost: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "badminqueue",
			Name:      "selection_cost",
			Help:      "Cost of the selected roster.",
			Buckets:   []float64{0, 2, 4, 8, 16, 32, 64, 128},
		}),
		candidates: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: "badminqueue",
			Name:      "selection_candidates",
			Help:      "Candidate rosters scored per generation.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		matches: f.NewGauge(prometheus.GaugeOpts{
			Namespace: "badminqueue",
			Name:      "matches",
			Help:      "Matches in the current session.",
		}),
	}
}
