package view

import (
	"github.com/RoaringBitmap/roaring/v2"

	rferrors "github.com/vnykmshr/recordflow/pkg/common/errors"
)

// GroupIndex maps each key to the view of items sharing it. Keys keep
// first-occurrence order.
type GroupIndex[T any, K comparable] struct {
	keys  []K
	views map[K]*View[T]
}

// GroupBy buckets the items selected by v by key. Every selected item lands
// in exactly one bucket.
func GroupBy[T any, K comparable](v *View[T], key func(T) K) *GroupIndex[T, K] {
	bitmaps := make(map[K]*roaring.Bitmap)
	var keys []K

	it := v.rb.Iterator()
	for it.HasNext() {
		i := it.Next()
		k := key(v.data.items[i])
		rb, ok := bitmaps[k]
		if !ok {
			rb = roaring.New()
			bitmaps[k] = rb
			keys = append(keys, k)
		}
		rb.Add(i)
	}

	views := make(map[K]*View[T], len(bitmaps))
	for k, rb := range bitmaps {
		views[k] = &View[T]{data: v.data, rb: rb}
	}
	return &GroupIndex[T, K]{keys: keys, views: views}
}

// Keys returns the keys in first-occurrence order.
func (g *GroupIndex[T, K]) Keys() []K {
	keys := make([]K, len(g.keys))
	copy(keys, g.keys)
	return keys
}

// Len returns the number of keys.
func (g *GroupIndex[T, K]) Len() int { return len(g.keys) }

// Get returns the view for key, or an error wrapping errors.ErrKeyNotFound.
func (g *GroupIndex[T, K]) Get(key K) (*View[T], error) {
	v, ok := g.views[key]
	if !ok {
		return nil, rferrors.KeyNotFound(key)
	}
	return v, nil
}

// Each calls fn for every key and its view in first-occurrence order.
func (g *GroupIndex[T, K]) Each(fn func(K, *View[T])) {
	for _, k := range g.keys {
		fn(k, g.views[k])
	}
}

// Counts returns the number of items per key.
func (g *GroupIndex[T, K]) Counts() map[K]int {
	out := make(map[K]int, len(g.views))
	for k, v := range g.views {
		out[k] = v.Len()
	}
	return out
}
