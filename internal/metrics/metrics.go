package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/polkiloo/eatsprint/internal/domain/model"
)

const namespace = "eatsprint"

// Metrics holds service collectors.
type Metrics struct {
	registry *prometheus.Registry

	Requests        *prometheus.CounterVec
	LatencyMS       *prometheus.HistogramVec
	OrderEvents     *prometheus.CounterVec
	DroppedEvents   *prometheus.CounterVec
	HandlerFailures *prometheus.CounterVec
}

// New registers collectors on a dedicated registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"route", "method", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"route"}),
		OrderEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_transitions_total",
			Help:      "Committed order transitions by event type.",
		}, []string{"type"}),
		DroppedEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_events_dropped_total",
			Help:      "Order events dropped before reaching handlers.",
		}, []string{"type"}),
		HandlerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_event_handler_failures_total",
			Help:      "Failed deliveries by event handler.",
		}, []string{"handler"}),
	}

	reg.MustRegister(m.Requests, m.LatencyMS, m.OrderEvents, m.DroppedEvents, m.HandlerFailures)
	return m
}

// Handler serves registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	m.Requests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(route).Observe(float64(elapsed.Milliseconds()))
}

// EventPublished counts a committed transition.
func (m *Metrics) EventPublished(t model.OrderEventType) {
	m.OrderEvents.WithLabelValues(string(t)).Inc()
}

// EventDropped counts an event lost to a full or stopped queue.
func (m *Metrics) EventDropped(t model.OrderEventType) {
	m.DroppedEvents.WithLabelValues(string(t)).Inc()
}

// HandlerFailed counts a failed handler invocation.
func (m *Metrics) HandlerFailed(handler string) {
	m.HandlerFailures.WithLabelValues(handler).Inc()
}
