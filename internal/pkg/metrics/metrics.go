// Package metrics holds the prometheus collectors of the ordering service.
//
// Every method is safe on a nil *Metrics, so components built without
// metrics (tests, tools) need no special casing.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ordering"

// Catalog lookup outcomes used as the "result" label.
const (
	LookupFound       = "found"
	LookupNotFound    = "not_found"
	LookupUnavailable = "unavailable"
	LookupError       = "error"
)

type Metrics struct {
	Requests          *prometheus.CounterVec
	LatencyMS         *prometheus.HistogramVec
	StatusTransitions *prometheus.CounterVec
	PublishFailures   prometheus.Counter
	CatalogLookups    *prometheus.CounterVec
	OrdersByStatus    *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		LatencyMS: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"method", "route"}),
		StatusTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "status_transitions_total",
			Help:      "Accepted order status transitions by target status.",
		}, []string{"status"}),
		PublishFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "publish_failures_total",
			Help:      "Order events that could not be handed to the broker.",
		}),
		CatalogLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "lookups_total",
			Help:      "Catalog lookups by outcome.",
		}, []string{"result"}),
		OrdersByStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "orders",
			Name:      "by_status",
			Help:      "Stored orders per status, refreshed by the statistics job.",
		}, []string{"status"}),
		gatherer: gatherer,
	}

	reg.MustRegister(
		m.Requests,
		m.LatencyMS,
		m.StatusTransitions,
		m.PublishFailures,
		m.CatalogLookups,
		m.OrdersByStatus,
	)
	return m
}

// NewDefault registers with the process-wide prometheus registry.
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

func (m *Metrics) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.LatencyMS.WithLabelValues(method, route).Observe(float64(elapsed.Microseconds()) / 1000)
}

func (m *Metrics) ObserveTransition(status string) {
	if m == nil {
		return
	}
	m.StatusTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) ObservePublishFailure() {
	if m == nil {
		return
	}
	m.PublishFailures.Inc()
}

func (m *Metrics) ObserveCatalogLookup(result string) {
	if m == nil {
		return
	}
	m.CatalogLookups.WithLabelValues(result).Inc()
}

// SetOrdersByStatus replaces the gauge values. Statuses missing from counts
// are reported as zero.
func (m *Metrics) SetOrdersByStatus(statuses []string, counts map[string]int64) {
	if m == nil {
		return
	}
	for _, status := range statuses {
		m.OrdersByStatus.WithLabelValues(status).Set(float64(counts[status]))
	}
}

// Handler serves the registered collectors in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.gatherer == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
