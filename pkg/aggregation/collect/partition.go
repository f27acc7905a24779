package collect

import (
	"fmt"

	"github.com/vnykmshr/recordflow/pkg/streaming/stream"
)

// Partition holds the two buckets produced by a predicate. Both are always
// present, even when empty.
type Partition[V any] struct {
	True  V
	False V
}

// Get returns the bucket for matched.
func (p Partition[V]) Get(matched bool) V {
	if matched {
		return p.True
	}
	return p.False
}

func (p Partition[V]) String() string {
	return fmt.Sprintf("{false=%v, true=%v}", p.False, p.True)
}

// PartitioningBy splits elements into those matching predicate and the rest,
// preserving encounter order in each bucket.
func PartitioningBy[T any](predicate func(T) bool) stream.Collector[T, Partition[[]T], Partition[[]T]] {
	return PartitioningByWith(predicate, ToSlice[T]())
}

// PartitioningByWith splits elements by predicate and reduces each side with
// downstream.
func PartitioningByWith[T, A, R any](predicate func(T) bool, downstream stream.Collector[T, A, R]) stream.Collector[T, Partition[A], Partition[R]] {
	return New(
		func() Partition[A] {
			return Partition[A]{True: downstream.Supply(), False: downstream.Supply()}
		},
		func(p Partition[A], v T) Partition[A] {
			if predicate(v) {
				p.True = downstream.Accumulate(p.True, v)
			} else {
				p.False = downstream.Accumulate(p.False, v)
			}
			return p
		},
		func(left, right Partition[A]) Partition[A] {
			return Partition[A]{
				True:  downstream.Combine(left.True, right.True),
				False: downstream.Combine(left.False, right.False),
			}
		},
		func(p Partition[A]) Partition[R] {
			return Partition[R]{True: downstream.Finish(p.True), False: downstream.Finish(p.False)}
		},
	)
}
