package stream

import "context"

// Map returns a stream of a different element type by applying mapper to each element.
func Map[T, U any](s Stream[T], mapper func(T) U) Stream[U] {
	return inherit(s, derive(func() Source[U] {
		return &mappingSource[T, U]{originalSource: s.open(), mapper: mapper}
	}))
}

// FlatMap replaces each element with the elements of the stream mapper returns.
// A nil stream from mapper contributes nothing.
func FlatMap[T, U any](s Stream[T], mapper func(T) Stream[U]) Stream[U] {
	return inherit(s, derive(func() Source[U] {
		return &flatMapSource[T, U]{upstream: s.open(), mapper: mapper}
	}))
}

// Distinct keeps the first occurrence of each value.
func Distinct[T comparable](s Stream[T]) Stream[T] {
	return DistinctBy(s, func(v T) T { return v })
}

// DistinctBy keeps the first element for each distinct key.
func DistinctBy[T any, K comparable](s Stream[T], key func(T) K) Stream[T] {
	return inherit(s, derive(func() Source[T] {
		return &distinctSource[T, K]{upstream: s.open(), key: key, seen: make(map[K]struct{})}
	}))
}

// inherit copies instrumentation from parent onto child when the parent has any.
func inherit[T, U any](parent Stream[T], child *stream[U]) Stream[U] {
	if p, ok := parent.(*stream[T]); ok {
		child.name = p.name
		child.registry = p.registry
	}
	return child
}

// Collector describes a mutable reduction in four steps: Supply creates an
// empty container, Accumulate folds one element into it, Combine merges two
// containers built over adjacent ranges (left before right), and Finish
// converts the container into the result.
//
// Combine must be associative and agree with Accumulate so that any split of
// the input produces the same result as a single sequential pass.
type Collector[T, A, R any] interface {
	Supply() A
	Accumulate(acc A, value T) A
	Combine(left, right A) A
	Finish(acc A) R
}

// Collect runs collector sequentially over s.
func Collect[T, A, R any](ctx context.Context, s Stream[T], collector Collector[T, A, R]) (R, error) {
	acc := collector.Supply()
	err := s.ForEach(ctx, func(v T) {
		acc = collector.Accumulate(acc, v)
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return collector.Finish(acc), nil
}

// ReduceWith folds s into a value of a different type. The combiner is not
// used by a sequential pass; it is accepted so the same call shape can be
// evaluated in parallel, where partial results are merged with it.
func ReduceWith[T, U any](ctx context.Context, s Stream[T], identity U, accumulator func(U, T) U, _ func(U, U) U) (U, error) {
	result := identity
	err := s.ForEach(ctx, func(v T) {
		result = accumulator(result, v)
	})
	if err != nil {
		return identity, err
	}
	return result, nil
}
