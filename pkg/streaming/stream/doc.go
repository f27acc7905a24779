/*
Package stream provides lazy, composable query operations over in-memory sequences.

The API follows the Java 8 Streams model: intermediate operations describe a
pipeline and terminal operations pull elements through it. Each pipeline stage
is a Source that wraps the stage before it, so nothing is computed until a
terminal operation runs and only as many elements are pulled as it needs.

Core Concepts:

A Stream is:
  - Lazy: computation is only performed when a terminal operation is initiated
  - Non-mutating: operations return new streams and never write to the backing slice
  - Context-aware: terminal operations respect context cancellation
  - Single-use: a terminal operation closes the stream it was called on

Streams derived from one another share nothing but the original data, so the
same base stream can feed several independent queries:

	base := stream.FromSlice(record.Sample())
	it, _ := base.Filter(record.InDepartment("IT")).Count(ctx)
	hr, _ := base.Filter(record.InDepartment("HR")).Count(ctx)

Type-changing operations are package functions because Go methods cannot
declare type parameters:

	names, err := stream.Map(
		stream.FromSlice(people).Filter(record.AgeAtLeast(30)),
		record.Record.Name,
	).ToSlice(ctx)

Absent Results:

FindFirst, FindAny, Min and Max return an Optional. An empty input is not an
error; callers choose a default:

	oldest, err := stream.FromSlice(people).Max(ctx, byAge)
	name := oldest.OrElse(record.Record{}).Name()

Collectors:

Collect runs a Collector (Supply, Accumulate, Combine, Finish). The collect
package provides grouping, partitioning, counting, averaging and joining
collectors; the parallel package evaluates the same collectors over disjoint
chunks and merges them with Combine.

Error Handling:

	result, err := s.ToSlice(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Println("query timed out")
		} else if errors.Is(err, stream.ErrStreamClosed) {
			log.Println("stream was already consumed")
		}
		return
	}

Thread Safety:

Individual stream instances are not safe for concurrent terminal operations.
Build one stream per goroutine; they may share the same read-only slice.
*/
package stream
