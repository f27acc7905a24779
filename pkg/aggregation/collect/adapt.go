package collect

import "github.com/vnykmshr/recordflow/pkg/streaming/stream"

// Mapping applies mapper to each element before handing it to downstream.
func Mapping[T, U, A, R any](mapper func(T) U, downstream stream.Collector[U, A, R]) stream.Collector[T, A, R] {
	return New(
		downstream.Supply,
		func(acc A, v T) A { return downstream.Accumulate(acc, mapper(v)) },
		downstream.Combine,
		downstream.Finish,
	)
}

// Filtering passes only elements matching predicate to downstream. Unlike a
// stream filter ahead of a grouping, keys whose elements are all rejected
// still appear with an empty result.
func Filtering[T, A, R any](predicate func(T) bool, downstream stream.Collector[T, A, R]) stream.Collector[T, A, R] {
	return New(
		downstream.Supply,
		func(acc A, v T) A {
			if predicate(v) {
				return downstream.Accumulate(acc, v)
			}
			return acc
		},
		downstream.Combine,
		downstream.Finish,
	)
}

// CollectingAndThen applies finisher to the result of downstream.
func CollectingAndThen[T, A, R, RR any](downstream stream.Collector[T, A, R], finisher func(R) RR) stream.Collector[T, A, RR] {
	return New(
		downstream.Supply,
		downstream.Accumulate,
		downstream.Combine,
		func(acc A) RR { return finisher(downstream.Finish(acc)) },
	)
}
