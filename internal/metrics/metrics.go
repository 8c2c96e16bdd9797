// Package metrics exposes Prometheus collectors for the HTTP surface and the
// triage queue.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "triage"

type Metrics struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	operations      *prometheus.CounterVec
	treatedPriority prometheus.Histogram
	treatedWait     prometheus.Histogram
}

// Depth reports how many patients are waiting without copying the queue.
type Depth interface {
	Len() int
}

// New builds a private registry. The queue depth gauge is read from q at
// scrape time.
func New(q Depth) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "operations_total",
			Help:      "Queue operations by name and result (ok or not_found).",
		}, []string{"operation", "result"}),
		treatedPriority: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "treated_priority",
			Help:      "Score of each patient at the moment it was treated.",
			Buckets:   prometheus.LinearBuckets(0, 20, 10),
		}),
		treatedWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "treated_wait_seconds",
			Help:      "Time each treated patient spent waiting.",
			Buckets:   prometheus.ExponentialBuckets(30, 2, 10),
		}),
	}

	m.registry.MustRegister(
		m.requests,
		m.requestDuration,
		m.operations,
		m.treatedPriority,
		m.treatedWait,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "queue",
			Name:      "waiting_patients",
			Help:      "Patients currently waiting.",
		}, func() float64 {
			return float64(q.Len())
		}),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveRequest(method, route string, status int, d time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func (m *Metrics) observeOperation(op string, ok bool) {
	result := "ok"
	if !ok {
		result = "not_found"
	}
	m.operations.WithLabelValues(op, result).Inc()
}
