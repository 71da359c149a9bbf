package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/biguint/internal/biguint"
)

// Namespace prefixes every metric exported by Recorder.
const Namespace = "biguint"

// Recorder exports engine events as Prometheus metrics. It satisfies
// biguint.Observer, so it can be attached to a scope with WithObserver.
//
// Each Recorder owns a private registry, so several recorders (one per test,
// for instance) never collide on metric names.
type Recorder struct {
	registry *prometheus.Registry
	handler  http.Handler

	operations     *prometheus.CounterVec
	operationErrs  *prometheus.CounterVec
	bytesInUse     prometheus.Gauge
	allocations    prometheus.Counter
	activeRequests prometheus.Gauge
}

var _ biguint.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder with Go runtime and process collectors
// registered next to the engine metrics.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operations_total",
			Help:      "Number of engine operations performed, by operation.",
		}, []string{"op"}),
		operationErrs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "operation_errors_total",
			Help:      "Number of engine operations that returned an error, by operation.",
		}, []string{"op"}),
		bytesInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "bytes_in_use",
			Help:      "Bytes currently accounted to live scopes.",
		}),
		allocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "allocations_total",
			Help:      "Number of blocks reserved by scopes.",
		}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "http_active_requests",
			Help:      "Number of HTTP requests currently being served.",
		}),
	}
	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.operations,
		r.operationErrs,
		r.bytesInUse,
		r.allocations,
		r.activeRequests,
	)
	r.handler = promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
	return r
}

// OperationDone counts one completed operation and, when err is non-nil,
// one failure.
func (r *Recorder) OperationDone(op string, err error) {
	r.operations.WithLabelValues(op).Inc()
	if err != nil {
		r.operationErrs.WithLabelValues(op).Inc()
	}
}

// BytesAllocated records a reservation of n bytes.
func (r *Recorder) BytesAllocated(n int) {
	r.allocations.Inc()
	r.bytesInUse.Add(float64(n))
}

// BytesReleased records n bytes given back by a scope.
func (r *Recorder) BytesReleased(n int) {
	r.bytesInUse.Sub(float64(n))
}

// IncrementActiveRequests increments the active HTTP requests gauge.
func (r *Recorder) IncrementActiveRequests() { r.activeRequests.Inc() }

// DecrementActiveRequests decrements the active HTTP requests gauge.
func (r *Recorder) DecrementActiveRequests() { r.activeRequests.Dec() }

// Registry returns the recorder's private registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler returns the Prometheus exposition handler for the registry.
func (r *Recorder) Handler() http.Handler { return r.handler }

// WritePrometheus writes the current metrics in the Prometheus text format.
func (r *Recorder) WritePrometheus(w http.ResponseWriter, req *http.Request) {
	r.handler.ServeHTTP(w, req)
}
