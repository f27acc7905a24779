package collect

import (
	"strings"

	"github.com/vnykmshr/recordflow/pkg/aggregation/stats"
	"github.com/vnykmshr/recordflow/pkg/streaming/stream"
)

// ToSlice collects elements in encounter order.
func ToSlice[T any]() stream.Collector[T, []T, []T] {
	return New(
		func() []T { return make([]T, 0) },
		func(acc []T, v T) []T { return append(acc, v) },
		func(left, right []T) []T { return append(left, right...) },
		Identity[[]T],
	)
}

// Counting counts elements.
func Counting[T any]() stream.Collector[T, int64, int64] {
	return New(
		func() int64 { return 0 },
		func(n int64, _ T) int64 { return n + 1 },
		func(left, right int64) int64 { return left + right },
		Identity[int64],
	)
}

// Summing adds key(v) over all elements. Floating-point sums are exact until
// finished, so every split of the input gives the same result.
func Summing[T any, N stats.Number](key func(T) N) stream.Collector[T, stats.Total[N], N] {
	return New(
		func() stats.Total[N] { return stats.Total[N]{} },
		func(total stats.Total[N], v T) stats.Total[N] {
			total.Add(key(v))
			return total
		},
		func(left, right stats.Total[N]) stats.Total[N] {
			left.Merge(right)
			return left
		},
		stats.Total[N].Value,
	)
}

// Averaging computes the mean of key(v); an empty input averages to 0.
func Averaging[T any, N stats.Number](key func(T) N) stream.Collector[T, stats.Summary, float64] {
	return CollectingAndThen(Summarizing(key), stats.Summary.Average)
}

// Summarizing computes count, sum, min, max and average of key(v) in one pass.
func Summarizing[T any, N stats.Number](key func(T) N) stream.Collector[T, stats.Summary, stats.Summary] {
	return New(
		func() stats.Summary { return stats.Summary{} },
		func(s stats.Summary, v T) stats.Summary {
			s.Absorb(float64(key(v)))
			return s
		},
		func(left, right stats.Summary) stats.Summary {
			left.Merge(right)
			return left
		},
		Identity[stats.Summary],
	)
}

// MinBy keeps the smallest element by compare. On ties the element seen first
// wins, including across combined ranges.
func MinBy[T any](compare func(a, b T) int) stream.Collector[T, stream.Optional[T], stream.Optional[T]] {
	return extremeBy(func(candidate, current T) bool { return compare(candidate, current) < 0 })
}

// MaxBy keeps the largest element by compare. On ties the element seen first
// wins, including across combined ranges.
func MaxBy[T any](compare func(a, b T) int) stream.Collector[T, stream.Optional[T], stream.Optional[T]] {
	return extremeBy(func(candidate, current T) bool { return compare(candidate, current) > 0 })
}

func extremeBy[T any](better func(candidate, current T) bool) stream.Collector[T, stream.Optional[T], stream.Optional[T]] {
	pick := func(current, candidate stream.Optional[T]) stream.Optional[T] {
		c, ok := candidate.Get()
		if !ok {
			return current
		}
		if cur, ok := current.Get(); ok && !better(c, cur) {
			return current
		}
		return candidate
	}
	return New(
		stream.None[T],
		func(acc stream.Optional[T], v T) stream.Optional[T] { return pick(acc, stream.Some(v)) },
		pick,
		Identity[stream.Optional[T]],
	)
}

// Joining concatenates strings with sep between them.
func Joining(sep string) stream.Collector[string, []string, string] {
	return JoiningWith(sep, "", "")
}

// JoiningWith concatenates strings with sep between them, wrapped in prefix
// and suffix. An empty input yields prefix+suffix.
func JoiningWith(sep, prefix, suffix string) stream.Collector[string, []string, string] {
	return CollectingAndThen(ToSlice[string](), func(parts []string) string {
		return prefix + strings.Join(parts, sep) + suffix
	})
}

// Reducing folds elements with op starting from identity. op must be
// associative and identity must be neutral for it.
func Reducing[T any](identity T, op func(T, T) T) stream.Collector[T, T, T] {
	return New(
		func() T { return identity },
		op,
		op,
		Identity[T],
	)
}

// ToSet collects the distinct elements.
func ToSet[T comparable]() stream.Collector[T, map[T]struct{}, map[T]struct{}] {
	return New(
		func() map[T]struct{} { return make(map[T]struct{}) },
		func(set map[T]struct{}, v T) map[T]struct{} {
			set[v] = struct{}{}
			return set
		},
		func(left, right map[T]struct{}) map[T]struct{} {
			for v := range right {
				left[v] = struct{}{}
			}
			return left
		},
		Identity[map[T]struct{}],
	)
}

// ToMap builds a map from key(v) to value(v). When two elements share a key,
// merge receives the earlier value first; a nil merge keeps the earlier value.
func ToMap[T any, K comparable, V any](key func(T) K, value func(T) V, merge func(V, V) V) stream.Collector[T, map[K]V, map[K]V] {
	if merge == nil {
		merge = func(existing, _ V) V { return existing }
	}
	put := func(m map[K]V, k K, v V) {
		if existing, ok := m[k]; ok {
			v = merge(existing, v)
		}
		m[k] = v
	}
	return New(
		func() map[K]V { return make(map[K]V) },
		func(m map[K]V, v T) map[K]V {
			put(m, key(v), value(v))
			return m
		},
		func(left, right map[K]V) map[K]V {
			for k, v := range right {
				put(left, k, v)
			}
			return left
		},
		Identity[map[K]V],
	)
}
