package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type LookupMetricsCollector struct {
	Lookups         *prometheus.CounterVec
	ProviderLatency *prometheus.HistogramVec
	Notices         prometheus.Counter
}

var globalCollector *LookupMetricsCollector

func getCollector() *LookupMetricsCollector {
	if globalCollector == nil {
		globalCollector = &LookupMetricsCollector{
			Lookups: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "weatherdesk_lookups_total",
					Help: "The total number of weather lookups by method and outcome",
				},
				[]string{"method", "status"},
			),
			ProviderLatency: promauto.NewHistogramVec(
				prometheus.HistogramOpts{
					Name:    "weatherdesk_provider_request_duration_seconds",
					Help:    "Provider round-trip duration in seconds",
					Buckets: prometheus.DefBuckets,
				},
				[]string{"call"},
			),
			Notices: promauto.NewCounter(
				prometheus.CounterOpts{
					Name: "weatherdesk_notices_total",
					Help: "The total number of transient notices shown",
				},
			),
		}
	}
	return globalCollector
}

// LookupMetrics records lookup outcomes and provider latency
type LookupMetrics struct {
	collector *LookupMetricsCollector
}

func NewLookupMetrics() *LookupMetrics {
	return &LookupMetrics{collector: getCollector()}
}

// RecordLookup counts one orchestrated lookup by method ("city", "coords",
// "locate", "refresh") and outcome.
func (m *LookupMetrics) RecordLookup(method string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.collector.Lookups.WithLabelValues(method, status).Inc()
}

// ObserveProviderCall records the duration of one provider round trip
func (m *LookupMetrics) ObserveProviderCall(call string, duration time.Duration) {
	m.collector.ProviderLatency.WithLabelValues(call).Observe(duration.Seconds())
}

// RecordNotice counts one transient notice
func (m *LookupMetrics) RecordNotice() {
	m.collector.Notices.Inc()
}
