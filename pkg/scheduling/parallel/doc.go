// Package parallel evaluates reductions over an in-memory slice by splitting
// it into contiguous, disjoint chunks, folding each chunk on its own
// goroutine and combining the partial results in input order.
//
// The only contract is result equivalence: for a collector, reducer or
// accumulator whose combine step is associative and consistent with its
// accumulate step, every function here returns exactly what a single
// sequential pass would. No speedup is promised for small inputs.
//
// Chunks run under golang.org/x/sync/errgroup with a concurrency limit of
// Config.Workers. The first failing chunk cancels the rest; a panic in a
// user function is recovered and returned as an error wrapping
// ErrWorkerPanic.
//
// A nil *Evaluator is valid and evaluates sequentially on the calling
// goroutine.
//
//	ev, err := parallel.New(parallel.DefaultConfig())
//	byDept, err := parallel.Collect(ctx, ev, people,
//		collect.GroupingByWith(record.Record.Department, collect.Counting[record.Record]()))
package parallel
