// Package compare builds comparators for sorting and min/max queries.
//
// A Comparator returns a negative number when a sorts before b, zero when
// they are equivalent and a positive number otherwise, matching cmp.Compare
// and slices.SortFunc.
package compare

import "cmp"

// Comparator orders two values.
type Comparator[T any] func(a, b T) int

// Natural orders values by their natural ordering.
func Natural[T cmp.Ordered]() Comparator[T] {
	return cmp.Compare[T]
}

// Comparing orders values by an extracted ordered key.
func Comparing[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// ComparingDesc orders values by an extracted key, largest first.
func ComparingDesc[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return Comparing(key).Reversed()
}

// ComparingFunc orders values by an extracted key using a key comparator.
func ComparingFunc[T, K any](key func(T) K, keyOrder Comparator[K]) Comparator[T] {
	return func(a, b T) int {
		return keyOrder(key(a), key(b))
	}
}

// Reversed returns the inverse ordering.
func (c Comparator[T]) Reversed() Comparator[T] {
	return func(a, b T) int {
		return c(b, a)
	}
}

// Then breaks ties of c with next.
func (c Comparator[T]) Then(next Comparator[T]) Comparator[T] {
	return Chain(c, next)
}

// Chain evaluates comparators left to right and returns the first non-zero result.
func Chain[T any](comparators ...Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		for _, c := range comparators {
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

// ThenComparing breaks ties of c by an ascending key.
func ThenComparing[T any, K cmp.Ordered](c Comparator[T], key func(T) K) Comparator[T] {
	return c.Then(Comparing(key))
}

// ThenComparingDesc breaks ties of c by a descending key.
func ThenComparingDesc[T any, K cmp.Ordered](c Comparator[T], key func(T) K) Comparator[T] {
	return c.Then(ComparingDesc(key))
}

// Len orders strings by length, a common key in name-based queries.
func Len[T any](key func(T) string) Comparator[T] {
	return Comparing(func(v T) int { return len(key(v)) })
}
