package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder encapsulates Prometheus instrumentation for outbound backend
// traffic and mutation outcomes.
type Recorder struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	mutationTotal   *prometheus.CounterVec
	lookupFallbacks prometheus.Counter
}

// NewRecorder registers the collectors on a private registry.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "backend_request_duration_seconds",
		Help:    "Duration of outbound backend requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "operation", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "backend_requests_total",
		Help: "Total number of outbound backend requests",
	}, []string{"method", "operation", "status"})

	mutationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mutations_total",
		Help: "Total number of confirmed mutation dispatches by outcome",
	}, []string{"kind", "outcome"})

	lookupFallbacks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lookup_fallbacks_total",
		Help: "Geo lookup calls that degraded to an empty result",
	})

	registry.MustRegister(requestDuration, requestTotal, mutationTotal, lookupFallbacks)

	return &Recorder{
		registry:        registry,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		mutationTotal:   mutationTotal,
		lookupFallbacks: lookupFallbacks,
	}
}

// Registry exposes the private registry for scraping or test assertions.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveRequest records one outbound call.
func (r *Recorder) ObserveRequest(method, operation string, status int, elapsed time.Duration) {
	if r == nil {
		return
	}
	labels := []string{method, operation, strconv.Itoa(status)}
	r.requestTotal.WithLabelValues(labels...).Inc()
	r.requestDuration.WithLabelValues(labels...).Observe(elapsed.Seconds())
}

// ObserveMutation records a dispatched mutation outcome ("success"/"failure").
func (r *Recorder) ObserveMutation(kind, outcome string) {
	if r == nil {
		return
	}
	r.mutationTotal.WithLabelValues(kind, outcome).Inc()
}

// ObserveLookupFallback counts a lookup that fell back to empty data.
func (r *Recorder) ObserveLookupFallback() {
	if r == nil {
		return
	}
	r.lookupFallbacks.Inc()
}
