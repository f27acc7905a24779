// Package collect provides reusable mutable reductions for streams.
//
// Every collector implements stream.Collector: Supply creates an empty
// container, Accumulate folds one element into it, Combine merges two
// containers built over adjacent ranges of the input, and Finish produces the
// result. Because Combine agrees with Accumulate, a collector gives the same
// answer whether it runs in one sequential pass (stream.Collect, Evaluate) or
// over contiguous chunks merged in input order (the parallel package).
//
// Grouping collectors return Groups, a typed map that remembers the order in
// which keys were first seen:
//
//	byDept, err := stream.Collect(ctx, people,
//		collect.GroupingByWith(record.Record.Department,
//			collect.Averaging(record.Record.Salary)))
//	avg, err := byDept.Get("IT")
//
// Averages over an empty input are 0 and Min/Max results are a
// stream.Optional, so no collector fails on empty buckets.
package collect
