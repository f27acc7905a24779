package collect

import (
	"fmt"
	"iter"
	"strings"

	rferrors "github.com/vnykmshr/recordflow/pkg/common/errors"
	"github.com/vnykmshr/recordflow/pkg/streaming/stream"
)

// Groups is a typed map from key to bucket result that iterates keys in
// first-occurrence order. A Groups returned by a collector is owned by the
// caller and must be treated as read-only once shared.
type Groups[K comparable, V any] struct {
	keys   []K
	values map[K]V
}

func newGroups[K comparable, V any]() *Groups[K, V] {
	return &Groups[K, V]{values: make(map[K]V)}
}

// Len returns the number of keys.
func (g *Groups[K, V]) Len() int {
	if g == nil {
		return 0
	}
	return len(g.keys)
}

// Keys returns the keys in first-occurrence order.
func (g *Groups[K, V]) Keys() []K {
	if g == nil {
		return nil
	}
	keys := make([]K, len(g.keys))
	copy(keys, g.keys)
	return keys
}

// Get returns the value for key, or an error wrapping errors.ErrKeyNotFound.
func (g *Groups[K, V]) Get(key K) (V, error) {
	v, ok := g.Lookup(key)
	if !ok {
		return v, rferrors.KeyNotFound(key)
	}
	return v, nil
}

// Lookup returns the value for key and whether it exists.
func (g *Groups[K, V]) Lookup(key K) (V, bool) {
	if g == nil {
		var zero V
		return zero, false
	}
	v, ok := g.values[key]
	return v, ok
}

// Each calls fn for every key in first-occurrence order.
func (g *Groups[K, V]) Each(fn func(K, V)) {
	for k, v := range g.All() {
		fn(k, v)
	}
}

// All iterates keys and values in first-occurrence order.
func (g *Groups[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if g == nil {
			return
		}
		for _, k := range g.keys {
			if !yield(k, g.values[k]) {
				return
			}
		}
	}
}

// ToMap copies the groups into a plain map.
func (g *Groups[K, V]) ToMap() map[K]V {
	m := make(map[K]V, g.Len())
	g.Each(func(k K, v V) { m[k] = v })
	return m
}

func (g *Groups[K, V]) String() string {
	var b strings.Builder
	b.WriteByte('{')
	i := 0
	g.Each(func(k K, v V) {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v=%v", k, v)
		i++
	})
	b.WriteByte('}')
	return b.String()
}

// update applies fn to the value stored under key, creating it with
// supply on first use.
func (g *Groups[K, V]) update(key K, supply func() V, fn func(V) V) {
	v, ok := g.values[key]
	if !ok {
		g.keys = append(g.keys, key)
		v = supply()
	}
	g.values[key] = fn(v)
}

// GroupingBy buckets elements by key, keeping encounter order inside each bucket.
func GroupingBy[T any, K comparable](key func(T) K) stream.Collector[T, *Groups[K, []T], *Groups[K, []T]] {
	return GroupingByWith(key, ToSlice[T]())
}

// GroupingByWith buckets elements by key and reduces each bucket with
// downstream. Nested grouping is a GroupingByWith downstream.
func GroupingByWith[T any, K comparable, A, R any](key func(T) K, downstream stream.Collector[T, A, R]) stream.Collector[T, *Groups[K, A], *Groups[K, R]] {
	return New(
		newGroups[K, A],
		func(g *Groups[K, A], v T) *Groups[K, A] {
			g.update(key(v), downstream.Supply, func(acc A) A {
				return downstream.Accumulate(acc, v)
			})
			return g
		},
		func(left, right *Groups[K, A]) *Groups[K, A] {
			right.Each(func(k K, acc A) {
				left.update(k, downstream.Supply, func(existing A) A {
					return downstream.Combine(existing, acc)
				})
			})
			return left
		},
		func(g *Groups[K, A]) *Groups[K, R] {
			out := &Groups[K, R]{
				keys:   g.keys,
				values: make(map[K]R, len(g.values)),
			}
			for k, acc := range g.values {
				out.values[k] = downstream.Finish(acc)
			}
			return out
		},
	)
}
