// Package view selects records from an immutable dataset without copying
// them. A View is a set of dataset positions held in a Roaring bitmap, so
// grouping and partitioning produce cheap, composable selections that all
// refer back to the same shared records.
package view

import (
	"fmt"
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/vnykmshr/recordflow/pkg/streaming/stream"
)

// Dataset is an ordered, read-only sequence of items shared by all of its views.
type Dataset[T any] struct {
	items []T
}

// NewDataset copies items into a new Dataset.
func NewDataset[T any](items []T) *Dataset[T] {
	owned := make([]T, len(items))
	copy(owned, items)
	return &Dataset[T]{items: owned}
}

// Len returns the number of items.
func (d *Dataset[T]) Len() int { return len(d.items) }

// At returns the item at position i.
func (d *Dataset[T]) At(i int) T { return d.items[i] }

// All returns a view selecting every item.
func (d *Dataset[T]) All() *View[T] {
	rb := roaring.New()
	rb.AddRange(0, uint64(len(d.items)))
	return &View[T]{data: d, rb: rb}
}

// None returns an empty view.
func (d *Dataset[T]) None() *View[T] {
	return &View[T]{data: d, rb: roaring.New()}
}

// Where returns a view of the items matching predicate.
func (d *Dataset[T]) Where(predicate func(T) bool) *View[T] {
	return d.All().Filter(predicate)
}

// Stream returns a stream over every item in order.
func (d *Dataset[T]) Stream() stream.Stream[T] {
	return stream.FromSlice(d.items)
}

// View is a selection of positions in a Dataset. Views are immutable; set
// operations return new views.
type View[T any] struct {
	data *Dataset[T]
	rb   *roaring.Bitmap
}

// Len returns the number of selected items.
func (v *View[T]) Len() int { return int(v.rb.GetCardinality()) }

// IsEmpty reports whether nothing is selected.
func (v *View[T]) IsEmpty() bool { return v.rb.IsEmpty() }

// Contains reports whether position i is selected.
func (v *View[T]) Contains(i int) bool {
	return i >= 0 && v.rb.Contains(uint32(i))
}

// Filter returns the selected items that also match predicate.
func (v *View[T]) Filter(predicate func(T) bool) *View[T] {
	rb := roaring.New()
	it := v.rb.Iterator()
	for it.HasNext() {
		i := it.Next()
		if predicate(v.data.items[i]) {
			rb.Add(i)
		}
	}
	return &View[T]{data: v.data, rb: rb}
}

// And returns the items selected by both views.
func (v *View[T]) And(other *View[T]) *View[T] {
	v.sameDataset(other)
	return &View[T]{data: v.data, rb: roaring.And(v.rb, other.rb)}
}

// Or returns the items selected by either view.
func (v *View[T]) Or(other *View[T]) *View[T] {
	v.sameDataset(other)
	return &View[T]{data: v.data, rb: roaring.Or(v.rb, other.rb)}
}

// AndNot returns the items selected by v but not by other.
func (v *View[T]) AndNot(other *View[T]) *View[T] {
	v.sameDataset(other)
	return &View[T]{data: v.data, rb: roaring.AndNot(v.rb, other.rb)}
}

// Partition splits the view by predicate. The two views are disjoint and
// together select exactly what v selects.
func (v *View[T]) Partition(predicate func(T) bool) (matched, rest *View[T]) {
	matched = v.Filter(predicate)
	return matched, v.AndNot(matched)
}

// Positions returns the selected positions in ascending order.
func (v *View[T]) Positions() []int {
	out := make([]int, 0, v.Len())
	it := v.rb.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// Records returns the selected items in dataset order.
func (v *View[T]) Records() []T {
	out := make([]T, 0, v.Len())
	for _, item := range v.All() {
		out = append(out, item)
	}
	return out
}

// All iterates positions and items in dataset order.
func (v *View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		it := v.rb.Iterator()
		for it.HasNext() {
			i := it.Next()
			if !yield(int(i), v.data.items[i]) {
				return
			}
		}
	}
}

// Each calls fn for every selected item in dataset order.
func (v *View[T]) Each(fn func(int, T)) {
	for i, item := range v.All() {
		fn(i, item)
	}
}

// Stream returns a stream over the selected items.
func (v *View[T]) Stream() stream.Stream[T] {
	return stream.FromSlice(v.Records())
}

func (v *View[T]) String() string {
	return fmt.Sprintf("View(%d of %d)", v.Len(), v.data.Len())
}

func (v *View[T]) sameDataset(other *View[T]) {
	if v.data != other.data {
		panic("view: views belong to different datasets")
	}
}
