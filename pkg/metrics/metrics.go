// Package metrics provides Prometheus instrumentation for Gebeya.
//
// It pre-defines the metrics the client layer needs — remote request
// counters/latency, key-value store activity, analyzer upload sizes — and
// exposes them on an optional /metrics listener started by the CLI when
// METRICS_ADDR is set.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RemoteRequestTotal counts outgoing requests to the backend and
	// analyzer services. status is the numeric HTTP status, or "error"
	// for transport-level failures.
	RemoteRequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gebeya",
			Subsystem: "remote",
			Name:      "requests_total",
			Help:      "Total outgoing requests to remote services.",
		},
		[]string{"service", "operation", "status"},
	)

	// RemoteRequestDuration tracks the round-trip latency per operation.
	RemoteRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "gebeya",
			Subsystem: "remote",
			Name:      "request_duration_seconds",
			Help:      "Duration of outgoing remote requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "operation"},
	)

	// KVOpsTotal counts successful key-value store operations by driver.
	KVOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gebeya",
			Subsystem: "kv",
			Name:      "ops_total",
			Help:      "Total successful key-value store operations.",
		},
		[]string{"driver", "op"},
	)

	// KVMissTotal counts reads that degraded to the default value
	// (missing key, corrupt record, or unreachable medium).
	KVMissTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gebeya",
			Subsystem: "kv",
			Name:      "misses_total",
			Help:      "Total key-value reads that fell back to defaults.",
		},
		[]string{"driver"},
	)

	// UploadBytes tracks the size of images sent to the analyzer.
	UploadBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "gebeya",
			Subsystem: "analyzer",
			Name:      "upload_bytes",
			Help:      "Image payload sizes sent for crop analysis.",
			Buckets:   []float64{10_000, 100_000, 500_000, 1_000_000, 5_000_000, 10_000_000},
		},
	)
)

// DefaultRegistry is the Prometheus registry used by Gebeya.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RemoteRequestTotal,
		RemoteRequestDuration,
		KVOpsTotal,
		KVMissTotal,
		UploadBytes,
	)
}

// ObserveRemote records one outgoing request:
//
//	defer metrics.ObserveRemote("backend", "signup", &status, time.Now())
func ObserveRemote(service, operation, status string, start time.Time) {
	RemoteRequestTotal.WithLabelValues(service, operation, status).Inc()
	RemoteRequestDuration.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())
}

// RecordKVOp records a successful store operation.
func RecordKVOp(driver, op string) {
	KVOpsTotal.WithLabelValues(driver, op).Inc()
}

// RecordKVMiss records a read that degraded to the default value.
func RecordKVMiss(driver string) {
	KVMissTotal.WithLabelValues(driver).Inc()
}

// ObserveUpload records an analyzer image payload size.
func ObserveUpload(bytes int) {
	UploadBytes.Observe(float64(bytes))
}

// Handler exposes the Prometheus metrics page. The CLI mounts it on the
// METRICS_ADDR listener.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
	return h.ServeHTTP
}
