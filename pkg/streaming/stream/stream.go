package stream

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	rferrors "github.com/vnykmshr/recordflow/pkg/common/errors"
	"github.com/vnykmshr/recordflow/pkg/metrics"
)

// ErrStreamClosed is returned when attempting to operate on a closed stream
// or on a second pipeline over a single-use source. It wraps
// errors.ErrClosed.
var ErrStreamClosed = fmt.Errorf("stream: %w", rferrors.ErrClosed)

// Stream represents a sequence of elements supporting sequential operations.
// Streams are lazy; computation on the source data is only performed when a terminal
// operation is initiated, and source elements are consumed only as needed.
//
// Intermediate operations never modify the stream they are called on or the
// data backing it; each returns a new Stream describing the extended pipeline.
type Stream[T any] interface {
	// Intermediate operations (lazy, return new Stream)

	// Filter returns a stream consisting of elements that match the given predicate.
	Filter(predicate func(T) bool) Stream[T]

	// Map returns a stream consisting of the results of applying the given function to elements.
	// Use the package-level Map to change the element type.
	Map(mapper func(T) T) Stream[T]

	// FlatMap replaces each element with the contents of the stream produced by mapper.
	FlatMap(mapper func(T) Stream[T]) Stream[T]

	// Sorted returns a stream ordered by compare. The sort is stable.
	Sorted(compare func(a, b T) int) Stream[T]

	// Skip discards the first n elements. Skipping past the end yields an empty stream.
	Skip(n int64) Stream[T]

	// Limit truncates the stream to at most maxSize elements.
	Limit(maxSize int64) Stream[T]

	// Peek performs action on each element as it is consumed.
	Peek(action func(T)) Stream[T]

	// Terminal operations (eager, consume and close the stream)

	// ForEach performs an action for each element of the stream.
	ForEach(ctx context.Context, action func(T)) error

	// ForEachIndexed performs an action for each element with its zero-based position.
	ForEachIndexed(ctx context.Context, action func(int, T)) error

	// Reduce folds elements left to right starting from identity.
	Reduce(ctx context.Context, identity T, accumulator func(T, T) T) (T, error)

	// ToSlice returns a slice containing all elements.
	ToSlice(ctx context.Context) ([]T, error)

	// Count returns the count of elements.
	Count(ctx context.Context) (int64, error)

	// AnyMatch returns whether any elements match the given predicate.
	AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// AllMatch returns whether all elements match the given predicate.
	AllMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// NoneMatch returns whether no elements match the given predicate.
	NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error)

	// FindFirst returns the first element, if present.
	FindFirst(ctx context.Context) (Optional[T], error)

	// FindAny returns any element, if present.
	FindAny(ctx context.Context) (Optional[T], error)

	// Min returns the smallest element; the first one wins on ties.
	Min(ctx context.Context, compare func(a, b T) int) (Optional[T], error)

	// Max returns the largest element; the first one wins on ties.
	Max(ctx context.Context, compare func(a, b T) int) (Optional[T], error)

	// Stream control

	// Close closes the stream and releases resources.
	Close() error

	// IsClosed returns true if the stream is closed.
	IsClosed() bool

	// open builds a fresh source chain for this pipeline.
	open() Source[T]
}

// Source represents a data source for streams.
type Source[T any] interface {
	// Next returns the next element and true, or zero value and false if no more elements.
	Next(ctx context.Context) (T, bool, error)
	// Close closes the source and releases resources.
	Close() error
}

// stream is the default implementation of Stream.
type stream[T any] struct {
	factory func() Source[T]
	closed  int32 // atomic
	mu      sync.Mutex
	active  Source[T]

	name     string
	registry *metrics.Registry
}

// New creates a single-use Stream from a Source. Only the first pipeline
// built on it reads the source; any other pipeline fails with
// ErrStreamClosed. Use FromFunc for a stream that can be branched.
func New[T any](source Source[T]) Stream[T] {
	var opened atomic.Bool
	return derive(func() Source[T] {
		if opened.Swap(true) {
			return &closedSource[T]{}
		}
		return source
	})
}

// FromFunc creates a Stream that calls factory for a fresh Source each time a
// pipeline built on it runs.
func FromFunc[T any](factory func() Source[T]) Stream[T] {
	return derive(factory)
}

func derive[T any](factory func() Source[T]) *stream[T] {
	return &stream[T]{factory: factory}
}

// extend returns a stream whose source wraps this stream's source.
// Instrumentation is inherited so derived pipelines keep reporting.
func (s *stream[T]) extend(wrap func(Source[T]) Source[T]) Stream[T] {
	next := derive(func() Source[T] { return wrap(s.open()) })
	next.name = s.name
	next.registry = s.registry
	return next
}

func (s *stream[T]) open() Source[T] {
	return s.factory()
}

// Filter implementation
func (s *stream[T]) Filter(predicate func(T) bool) Stream[T] {
	return s.extend(func(src Source[T]) Source[T] {
		return &filterSource[T]{upstream: src, predicate: predicate}
	})
}

// Map implementation
func (s *stream[T]) Map(mapper func(T) T) Stream[T] {
	return s.extend(func(src Source[T]) Source[T] {
		return &mappingSource[T, T]{originalSource: src, mapper: mapper}
	})
}

// FlatMap implementation
func (s *stream[T]) FlatMap(mapper func(T) Stream[T]) Stream[T] {
	return s.extend(func(src Source[T]) Source[T] {
		return &flatMapSource[T, T]{upstream: src, mapper: mapper}
	})
}

// Sorted implementation
func (s *stream[T]) Sorted(compare func(a, b T) int) Stream[T] {
	return s.extend(func(src Source[T]) Source[T] {
		return &sortedSource[T]{upstream: src, compare: compare}
	})
}

// Skip implementation
func (s *stream[T]) Skip(n int64) Stream[T] {
	return s.extend(func(src Source[T]) Source[T] {
		return &skipSource[T]{upstream: src, remaining: n}
	})
}

// Limit implementation
func (s *stream[T]) Limit(maxSize int64) Stream[T] {
	return s.extend(func(src Source[T]) Source[T] {
		return &limitSource[T]{upstream: src, remaining: maxSize}
	})
}

// Peek implementation
func (s *stream[T]) Peek(action func(T)) Stream[T] {
	return s.extend(func(src Source[T]) Source[T] {
		return &peekSource[T]{upstream: src, action: action}
	})
}

// drain pulls elements until the source is exhausted, visit returns false,
// or an error occurs. The stream is closed afterwards.
func (s *stream[T]) drain(ctx context.Context, operation string, visit func(T) bool) error {
	if s.IsClosed() {
		return ErrStreamClosed
	}
	defer func() { _ = s.Close() }()

	if ctx == nil {
		ctx = context.Background()
	}

	src := s.open()
	s.mu.Lock()
	s.active = src
	s.mu.Unlock()

	var items int64
	for {
		value, ok, err := src.Next(ctx)
		if err != nil {
			s.observe(operation, items, err)
			return err
		}
		if !ok {
			break
		}
		items++
		if !visit(value) {
			break
		}
	}

	s.observe(operation, items, nil)
	return nil
}

// ForEach implementation
func (s *stream[T]) ForEach(ctx context.Context, action func(T)) error {
	return s.drain(ctx, "for_each", func(v T) bool {
		action(v)
		return true
	})
}

// ForEachIndexed implementation
func (s *stream[T]) ForEachIndexed(ctx context.Context, action func(int, T)) error {
	index := 0
	return s.drain(ctx, "for_each_indexed", func(v T) bool {
		action(index, v)
		index++
		return true
	})
}

// ToSlice implementation
func (s *stream[T]) ToSlice(ctx context.Context) ([]T, error) {
	result := make([]T, 0)
	err := s.drain(ctx, "to_slice", func(v T) bool {
		result = append(result, v)
		return true
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Count implementation
func (s *stream[T]) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.drain(ctx, "count", func(T) bool {
		count++
		return true
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Reduce implementation
func (s *stream[T]) Reduce(ctx context.Context, identity T, accumulator func(T, T) T) (T, error) {
	result := identity
	err := s.drain(ctx, "reduce", func(v T) bool {
		result = accumulator(result, v)
		return true
	})
	if err != nil {
		return identity, err
	}
	return result, nil
}

// FindFirst implementation
func (s *stream[T]) FindFirst(ctx context.Context) (Optional[T], error) {
	found := None[T]()
	err := s.drain(ctx, "find_first", func(v T) bool {
		found = Some(v)
		return false
	})
	if err != nil {
		return None[T](), err
	}
	return found, nil
}

// FindAny implementation (same as FindFirst for sequential streams)
func (s *stream[T]) FindAny(ctx context.Context) (Optional[T], error) {
	return s.FindFirst(ctx)
}

// AnyMatch implementation
func (s *stream[T]) AnyMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	matched := false
	err := s.drain(ctx, "any_match", func(v T) bool {
		matched = predicate(v)
		return !matched
	})
	if err != nil {
		return false, err
	}
	return matched, nil
}

// AllMatch implementation
func (s *stream[T]) AllMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	all := true
	err := s.drain(ctx, "all_match", func(v T) bool {
		all = predicate(v)
		return all
	})
	if err != nil {
		return false, err
	}
	return all, nil
}

// NoneMatch implementation
func (s *stream[T]) NoneMatch(ctx context.Context, predicate func(T) bool) (bool, error) {
	result, err := s.AnyMatch(ctx, predicate)
	if err != nil {
		return false, err
	}
	return !result, nil
}

// Min implementation
func (s *stream[T]) Min(ctx context.Context, compare func(a, b T) int) (Optional[T], error) {
	return s.extreme(ctx, "min", func(candidate, current T) bool {
		return compare(candidate, current) < 0
	})
}

// Max implementation
func (s *stream[T]) Max(ctx context.Context, compare func(a, b T) int) (Optional[T], error) {
	return s.extreme(ctx, "max", func(candidate, current T) bool {
		return compare(candidate, current) > 0
	})
}

// extreme keeps the first element and replaces it only when better reports
// a strict improvement, so ties resolve to the earliest element.
func (s *stream[T]) extreme(ctx context.Context, operation string, better func(candidate, current T) bool) (Optional[T], error) {
	result := None[T]()
	err := s.drain(ctx, operation, func(v T) bool {
		if current, ok := result.Get(); !ok || better(v, current) {
			result = Some(v)
		}
		return true
	})
	if err != nil {
		return None[T](), err
	}
	return result, nil
}

// Close implementation
func (s *stream[T]) Close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil // Already closed
	}

	s.mu.Lock()
	src := s.active
	s.active = nil
	s.mu.Unlock()

	if src != nil {
		return src.Close()
	}
	return nil
}

// IsClosed implementation
func (s *stream[T]) IsClosed() bool {
	return atomic.LoadInt32(&s.closed) != 0
}

func (s *stream[T]) observe(operation string, items int64, err error) {
	if s.registry == nil {
		return
	}
	s.registry.QueryOperations.WithLabelValues(operation, s.name).Inc()
	s.registry.QueryItems.WithLabelValues(operation, s.name).Add(float64(items))
	if err != nil {
		s.registry.QueryErrors.WithLabelValues(operation, s.name).Inc()
	}
}

// Instrument returns a copy of s whose terminal operations, and those of every
// stream derived from it, are recorded in registry under name.
func Instrument[T any](s Stream[T], name string, registry *metrics.Registry) Stream[T] {
	next := derive(s.open)
	next.name = name
	next.registry = registry
	return next
}
