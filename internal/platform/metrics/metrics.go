package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	ReviewsSubmitted prometheus.Counter
	ImportsTotal     prometheus.Counter
	ImportFailures   prometheus.Counter
	FlagsDetected    *prometheus.CounterVec
	AuditsRun        prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		ReviewsSubmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fairlens_reviews_submitted_total",
			Help: "Total number of review records accepted via single submission",
		}),
		ImportsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fairlens_imports_total",
			Help: "Total number of successful bulk CSV imports",
		}),
		ImportFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fairlens_import_failures_total",
			Help: "Total number of rejected bulk CSV imports",
		}),
		FlagsDetected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "fairlens_flags_detected_total",
			Help: "Total number of phrase flags detected, by category",
		}, []string{"category"}),
		AuditsRun: promauto.NewCounter(prometheus.CounterOpts{
			Name: "fairlens_audits_run_total",
			Help: "Total number of audit report computations",
		}),
	}
}

func (m *Metrics) IncrementReviewsSubmitted() {
	m.ReviewsSubmitted.Inc()
}

func (m *Metrics) IncrementImports() {
	m.ImportsTotal.Inc()
}

func (m *Metrics) IncrementImportFailures() {
	m.ImportFailures.Inc()
}

func (m *Metrics) AddFlagsDetected(category string, n int) {
	m.FlagsDetected.WithLabelValues(category).Add(float64(n))
}

func (m *Metrics) IncrementAuditsRun() {
	m.AuditsRun.Inc()
}
