// Package metrics provides Prometheus instrumentation for recordflow components.
//
// # Overview
//
// The metrics package provides instrumentation for:
//   - Query terminal operations (operations run, elements pulled, errors)
//   - Parallel evaluation (evaluations, chunks, failures, wall time)
//   - Report assembly (reports built, record counts, duration)
//
// # Quick Start
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(metrics.Config{Enabled: true, Registry: reg})
//
//	s := stream.Instrument(stream.FromSlice(records), "employees", m)
//	ev, _ := parallel.New(parallel.Config{Workers: 4, Name: "reports", Metrics: m})
//
// A nil *Registry is accepted everywhere and disables instrumentation.
//
// # Available Metrics
//
//   - recordflow_query_operations_total{operation,stream_name}
//   - recordflow_query_items_processed_total{operation,stream_name}
//   - recordflow_query_errors_total{operation,stream_name}
//   - recordflow_parallel_evaluations_total{operation,evaluator_name}
//   - recordflow_parallel_chunks_total{operation,evaluator_name}
//   - recordflow_parallel_failures_total{operation,evaluator_name}
//   - recordflow_parallel_duration_seconds{operation,evaluator_name}
//   - recordflow_report_assembled_total{mode}
//   - recordflow_report_records{mode}
//   - recordflow_report_duration_seconds{mode}
package metrics
