package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/doeshing/toolgate/internal/domain"
	"github.com/doeshing/toolgate/internal/ports"
)

// Recorder implements ports.MetricsRecorder with Prometheus collectors on a
// private registry.
type Recorder struct {
	registry      *prometheus.Registry
	dispatches    *prometheus.CounterVec
	durations     *prometheus.HistogramVec
	confirmations *prometheus.CounterVec
}

// NewRecorder registers the toolgate collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		dispatches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "toolgate_dispatch_total",
			Help: "Tool calls dispatched, by tool and outcome status.",
		}, []string{"tool", "status"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "toolgate_dispatch_duration_seconds",
			Help:    "Wall time of a dispatch, including time spent waiting for the operator.",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 60, 300},
		}, []string{"tool"}),
		confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "toolgate_confirmations_total",
			Help: "Operator answers, by gate level and outcome.",
		}, []string{"level", "outcome"}),
	}
	r.registry.MustRegister(r.dispatches, r.durations, r.confirmations)
	return r
}

// UnknownTool is the tool label recorded for names outside the catalogue.
const UnknownTool = "unknown"

// ObserveDispatch records one dispatch. Tool names come from the planner, so
// anything not in the catalogue shares the UnknownTool label.
func (r *Recorder) ObserveDispatch(tool string, status domain.OutcomeStatus, elapsed time.Duration) {
	if _, ok := domain.LookupTool(tool); !ok {
		tool = UnknownTool
	}
	r.dispatches.WithLabelValues(tool, string(status)).Inc()
	r.durations.WithLabelValues(tool).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveConfirmation(level domain.ConfirmationLevel, outcome domain.ConfirmationOutcome) {
	r.confirmations.WithLabelValues(string(level), string(outcome)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and embedding.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Nop discards all observations.
type Nop struct{}

func (Nop) ObserveDispatch(string, domain.OutcomeStatus, time.Duration) {}

func (Nop) ObserveConfirmation(domain.ConfirmationLevel, domain.ConfirmationOutcome) {}

var (
	_ ports.MetricsRecorder = (*Recorder)(nil)
	_ ports.MetricsRecorder = Nop{}
)
