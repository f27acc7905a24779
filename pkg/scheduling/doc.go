/*
Package scheduling provides execution strategies for aggregations.

  - parallel: Fork-join evaluation over contiguous chunks of a slice

Parallel Evaluation:

The evaluator splits an input into at most Workers chunks, folds each on its
own goroutine and combines the partial results in input order:

	ev, err := parallel.New(parallel.Config{Workers: 4, MinChunk: 64})
	if err != nil {
		return err
	}

	total, err := parallel.Reduce(ctx, ev, people, 0.0,
		func(sum float64, r record.Record) float64 { return sum + r.Salary() },
		func(a, b float64) float64 { return a + b })

Results equal those of a sequential pass for any combiner that is associative
and consistent with its accumulator.
*/
package scheduling
