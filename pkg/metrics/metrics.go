// Package metrics provides Prometheus instrumentation for recordflow components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for recordflow components.
type Registry struct {
	// Query Metrics
	QueryOperations *prometheus.CounterVec
	QueryItems      *prometheus.CounterVec
	QueryErrors     *prometheus.CounterVec

	// Parallel Evaluation Metrics
	ParallelEvaluations *prometheus.CounterVec
	ParallelChunks      *prometheus.CounterVec
	ParallelFailures    *prometheus.CounterVec
	ParallelDuration    *prometheus.HistogramVec

	// Report Metrics
	ReportsAssembled *prometheus.CounterVec
	ReportRecords    *prometheus.GaugeVec
	ReportDuration   *prometheus.HistogramVec
}

// NewRegistry creates a new metrics registry with the given Prometheus
// registerer under the default namespace.
func NewRegistry(reg prometheus.Registerer) *Registry {
	return newRegistry(reg, DefaultNamespace)
}

// New creates a registry from config. It returns nil when metrics are
// disabled; every component treats a nil *Registry as "not instrumented".
//
// When config.Registry is nil the metrics are registered with
// prometheus.DefaultRegisterer, which only accepts them once per process.
func New(config Config) *Registry {
	if !config.Enabled {
		return nil
	}
	reg := config.Registry
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	namespace := config.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if len(config.Labels) > 0 {
		reg = prometheus.WrapRegistererWith(config.Labels, reg)
	}
	return newRegistry(reg, namespace)
}

func newRegistry(reg prometheus.Registerer, namespace string) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		// Query Metrics
		QueryOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "query",
				Name:      "operations_total",
				Help:      "Total number of terminal query operations",
			},
			[]string{"operation", "stream_name"},
		),

		QueryItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "query",
				Name:      "items_processed_total",
				Help:      "Total number of elements pulled by terminal operations",
			},
			[]string{"operation", "stream_name"},
		),

		QueryErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "query",
				Name:      "errors_total",
				Help:      "Total number of terminal operations that returned an error",
			},
			[]string{"operation", "stream_name"},
		),

		// Parallel Evaluation Metrics
		ParallelEvaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "parallel",
				Name:      "evaluations_total",
				Help:      "Total number of parallel evaluations",
			},
			[]string{"operation", "evaluator_name"},
		),

		ParallelChunks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "parallel",
				Name:      "chunks_total",
				Help:      "Total number of input chunks evaluated by workers",
			},
			[]string{"operation", "evaluator_name"},
		),

		ParallelFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "parallel",
				Name:      "failures_total",
				Help:      "Total number of parallel evaluations that failed",
			},
			[]string{"operation", "evaluator_name"},
		),

		ParallelDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "parallel",
				Name:      "duration_seconds",
				Help:      "Wall time from fan-out to combined result",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation", "evaluator_name"},
		),

		// Report Metrics
		ReportsAssembled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "report",
				Name:      "assembled_total",
				Help:      "Total number of reports assembled",
			},
			[]string{"mode"},
		),

		ReportRecords: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "report",
				Name:      "records",
				Help:      "Number of records in the most recently assembled report",
			},
			[]string{"mode"},
		),

		ReportDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "report",
				Name:      "duration_seconds",
				Help:      "Time spent assembling a report",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"mode"},
		),
	}
}
