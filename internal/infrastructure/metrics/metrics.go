package metrics

import (
	"time"

	"descarga_masiva/internal/domain/failures"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Downloads   *prometheus.CounterVec
	RemoteCalls *prometheus.HistogramVec
}

// New creates and registers all collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "descarga_masiva_lifecycle_transitions_total",
			Help: "Lifecycle transitions, by resulting state",
		}, []string{"state"}),
		Downloads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "descarga_masiva_package_downloads_total",
			Help: "Package retrieval attempts, by outcome",
		}, []string{"outcome"}),
		RemoteCalls: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "descarga_masiva_remote_call_duration_seconds",
			Help:    "Duration of calls to the SAT web service, by operation and result",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}, []string{"operation", "result"}),
	}
}

func (m *Metrics) ObserveTransition(state string) {
	m.Transitions.WithLabelValues(state).Inc()
}

// ObserveDownload counts one package outcome: "stored", "skipped" or "failed".
func (m *Metrics) ObserveDownload(outcome string) {
	m.Downloads.WithLabelValues(outcome).Inc()
}

// ObserveRemoteCall records a remote call; the result label is "ok" or the failure kind.
func (m *Metrics) ObserveRemoteCall(operation string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = string(failures.KindOf(err))
		if result == "" {
			result = "error"
		}
	}
	m.RemoteCalls.WithLabelValues(operation, result).Observe(elapsed.Seconds())
}
