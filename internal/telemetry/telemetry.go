// Package telemetry provides Prometheus metrics and tracing for the ticket
// triage service.
package telemetry

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "ticket-triage"

// Metrics holds all triage Prometheus metrics.
type Metrics struct {
	TicketsProcessed prometheus.Counter
	TicketsFailed    *prometheus.CounterVec

	// Per-candidate chain outcomes, labelled by classifier name.
	ClassificationsTotal   *prometheus.CounterVec
	FallbackAdvances       prometheus.Counter
	ClassificationDuration prometheus.Histogram
}

// Provider wraps telemetry providers.
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// Metrics register against the default registry, so the provider is built
// once per process and shared.
var (
	providerOnce sync.Once
	provider     *Provider
)

// NewProvider initializes telemetry with Prometheus metrics.
func NewProvider() *Provider {
	providerOnce.Do(func() {
		provider = &Provider{
			Tracer:  otel.Tracer(serviceName),
			Metrics: initMetrics(),
		}
	})
	return provider
}

// Handler returns the Prometheus HTTP handler for the /metrics endpoint.
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	return &Metrics{
		TicketsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "triage_tickets_processed_total",
			Help: "Total tickets successfully classified and persisted",
		}),
		TicketsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "triage_tickets_failed_total",
			Help: "Total ticket processing failures by stage",
		}, []string{"stage"}),
		ClassificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "triage_classifications_total",
			Help: "Chain candidate outcomes by classifier name",
		}, []string{"classifier", "outcome"}),
		FallbackAdvances: promauto.NewCounter(prometheus.CounterOpts{
			Name: "triage_fallback_advances_total",
			Help: "Times the chain advanced past a failed candidate",
		}),
		ClassificationDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "triage_classification_duration_seconds",
			Help:    "Time to classify a single ticket through the chain",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		}),
	}
}
