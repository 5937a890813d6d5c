package metrics

import (
	"time"

	"VaderBoot/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	signalsTotal       *prometheus.CounterVec
	probability        prometheus.Histogram
	metricUnavailable  *prometheus.CounterVec
	providerLatency    *prometheus.HistogramVec
	providerErrors     *prometheus.CounterVec
	notificationsTotal *prometheus.CounterVec
	latency            *prometheus.HistogramVec
}

// New creates a recorder registered on reg. Pass prometheus.DefaultRegisterer
// to expose it on /metrics, or a fresh registry in tests.
func New(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		signalsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaderboot_signals_total",
				Help: "Signals evaluated, by outcome",
			},
			[]string{"outcome"},
		),
		probability: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vaderboot_signal_probability",
				Help:    "Combined trade probability of evaluated signals",
				Buckets: prometheus.LinearBuckets(0.5, 0.025, 13),
			},
		),
		metricUnavailable: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaderboot_fundamental_metric_unavailable_total",
				Help: "Fundamental sub-metrics that degraded to unavailable",
			},
			[]string{"metric"},
		),
		providerLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vaderboot_provider_query_seconds",
				Help:    "Market-data provider query latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"query"},
		),
		providerErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaderboot_provider_errors_total",
				Help: "Market-data provider query failures",
			},
			[]string{"query"},
		),
		notificationsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vaderboot_notifications_total",
				Help: "Notification deliveries by channel and result",
			},
			[]string{"channel", "result"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vaderboot_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordSignal counts an evaluated signal and observes its probability.
func (r *Recorder) RecordSignal(outcome models.Outcome, probability float64) {
	r.signalsTotal.WithLabelValues(string(outcome)).Inc()
	r.probability.Observe(probability)
}

// RecordMetricUnavailable counts a degraded fundamental sub-metric.
func (r *Recorder) RecordMetricUnavailable(metric string) {
	r.metricUnavailable.WithLabelValues(metric).Inc()
}

// RecordProviderQuery observes a provider query and counts failures.
func (r *Recorder) RecordProviderQuery(query string, d time.Duration, err error) {
	r.providerLatency.WithLabelValues(query).Observe(d.Seconds())
	if err != nil {
		r.providerErrors.WithLabelValues(query).Inc()
	}
}

// RecordNotification counts a delivery attempt.
func (r *Recorder) RecordNotification(channel string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.notificationsTotal.WithLabelValues(channel, result).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
