package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exported by the service.
type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	billSplits      *prometheus.CounterVec
	overallocations prometheus.Counter
	voiceCommands   *prometheus.CounterVec
	assistantReply  *prometheus.CounterVec
	lowStockItems   *prometheus.GaugeVec
}

// NewMetrics creates collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restaupilot_http_requests_total",
				Help: "HTTP requests by route and status",
			},
			[]string{"method", "route", "status"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "restaupilot_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		billSplits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restaupilot_bill_splits_total",
				Help: "Bill splits computed by policy",
			},
			[]string{"policy"},
		),
		overallocations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "restaupilot_bill_overallocations_total",
				Help: "Bill splits whose shares exceeded the total",
			},
		),
		voiceCommands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restaupilot_voice_commands_total",
				Help: "Assistant messages matched to a navigation command",
			},
			[]string{"command"},
		),
		assistantReply: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restaupilot_assistant_replies_total",
				Help: "Assistant replies by source",
			},
			[]string{"source"},
		),
		lowStockItems: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "restaupilot_low_stock_items",
				Help: "Items at or below their reorder point",
			},
			[]string{"restaurant"},
		),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.billSplits,
		m.overallocations,
		m.voiceCommands,
		m.assistantReply,
		m.lowStockItems,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveRequest records one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveBillSplit records a computed split.
func (m *Metrics) ObserveBillSplit(policy string, overallocated bool) {
	m.billSplits.WithLabelValues(policy).Inc()
	if overallocated {
		m.overallocations.Inc()
	}
}

// ObserveVoiceCommand records a matched command.
func (m *Metrics) ObserveVoiceCommand(command string) {
	m.voiceCommands.WithLabelValues(command).Inc()
}

// ObserveAssistantReply records where a reply came from.
func (m *Metrics) ObserveAssistantReply(source string) {
	m.assistantReply.WithLabelValues(source).Inc()
}

// SetLowStock records the low-stock count for a restaurant.
func (m *Metrics) SetLowStock(restaurant string, n int) {
	m.lowStockItems.WithLabelValues(restaurant).Set(float64(n))
}
