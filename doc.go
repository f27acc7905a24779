/*
Package recordflow provides a Go library for querying and aggregating small
in-memory record collections, sequentially or in parallel with identical
results.

Records (pkg/record):
  - record: Immutable employee record, classifiers and the sample dataset

Querying (pkg/streaming):
  - stream: Lazy filter/map/sort/distinct/limit pipelines with Optional results
  - compare: Composite comparators with per-key direction

Aggregation (pkg/aggregation):
  - collect: Collectors for counting, averaging, grouping and partitioning
  - stats: Mergeable summary statistics and the accumulator contract

Evaluation (pkg/scheduling, pkg/view):
  - parallel: Chunked fork-join evaluation combined in input order
  - view: Bitmap-backed selections over a shared dataset

Reporting (pkg/report):
  - report: Typed business report assembled from the above

Example usage:

	import (
		"github.com/vnykmshr/recordflow/pkg/aggregation/collect"
		"github.com/vnykmshr/recordflow/pkg/record"
		"github.com/vnykmshr/recordflow/pkg/streaming/stream"
	)

	people := stream.FromSlice(record.Sample())
	avg, _ := stream.Collect(ctx, people,
		collect.GroupingByWith(record.Record.Department, collect.Averaging(record.Record.Salary)))
	it, err := avg.Get("IT") // errors.ErrKeyNotFound for unknown departments
*/
package recordflow
