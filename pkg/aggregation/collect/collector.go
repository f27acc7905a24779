package collect

import "github.com/vnykmshr/recordflow/pkg/streaming/stream"

// collector assembles a stream.Collector from four functions.
type collector[T, A, R any] struct {
	supply     func() A
	accumulate func(A, T) A
	combine    func(A, A) A
	finish     func(A) R
}

func (c collector[T, A, R]) Supply() A { return c.supply() }
func (c collector[T, A, R]) Accumulate(acc A, v T) A { return c.accumulate(acc, v) }
func (c collector[T, A, R]) Combine(left, right A) A { return c.combine(left, right) }
func (c collector[T, A, R]) Finish(acc A) R { return c.finish(acc) }

// New builds a collector from its four steps. Collectors whose container is
// also the result pass Identity as finish.
func New[T, A, R any](supply func() A, accumulate func(A, T) A, combine func(A, A) A, finish func(A) R) stream.Collector[T, A, R] {
	return collector[T, A, R]{
		supply:     supply,
		accumulate: accumulate,
		combine:    combine,
		finish:     finish,
	}
}

// Identity is a finisher that returns the container unchanged.
func Identity[A any](acc A) A { return acc }

// Evaluate runs c over items in a single sequential pass.
func Evaluate[T, A, R any](items []T, c stream.Collector[T, A, R]) R {
	acc := c.Supply()
	for _, item := range items {
		acc = c.Accumulate(acc, item)
	}
	return c.Finish(acc)
}
