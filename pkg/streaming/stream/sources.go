package stream

import (
	"context"
)

// FromSlice creates a Stream from a slice. The slice is read, never written;
// callers must not modify it while the stream is in use.
func FromSlice[T any](slice []T) Stream[T] {
	return derive(func() Source[T] {
		return &sliceSource[T]{slice: slice}
	})
}

// Of creates a Stream of the given values.
func Of[T any](values ...T) Stream[T] {
	return FromSlice(values)
}

// FromChannel creates a Stream from a channel.
func FromChannel[T any](ch <-chan T) Stream[T] {
	return derive(func() Source[T] {
		return &channelSource[T]{ch: ch}
	})
}

// Generate creates an infinite Stream from a generator function.
func Generate[T any](generator func() T) Stream[T] {
	return derive(func() Source[T] {
		return &generatorSource[T]{generator: generator}
	})
}

// Iterate creates an infinite Stream of seed, next(seed), next(next(seed)), ...
func Iterate[T any](seed T, next func(T) T) Stream[T] {
	return derive(func() Source[T] {
		return &iterateSource[T]{current: seed, next: next}
	})
}

// Empty creates an empty Stream.
func Empty[T any]() Stream[T] {
	return derive(func() Source[T] {
		return &emptySource[T]{}
	})
}

// sliceSource implements Source for slices.
type sliceSource[T any] struct {
	slice []T
	index int
}

func (s *sliceSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	default:
	}

	if s.index >= len(s.slice) {
		return zero, false, nil
	}
	value := s.slice[s.index]
	s.index++
	return value, true, nil
}

func (s *sliceSource[T]) Close() error {
	return nil
}

// channelSource implements Source for channels.
type channelSource[T any] struct {
	ch <-chan T
}

func (s *channelSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case value, ok := <-s.ch:
		if !ok {
			return zero, false, nil
		}
		return value, true, nil
	case <-ctx.Done():
		return zero, false, ctx.Err()
	}
}

func (s *channelSource[T]) Close() error {
	return nil
}

// generatorSource implements Source for generator functions.
type generatorSource[T any] struct {
	generator func() T
}

func (s *generatorSource[T]) Next(ctx context.Context) (T, bool, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	default:
		return s.generator(), true, nil
	}
}

func (s *generatorSource[T]) Close() error {
	return nil
}

// iterateSource yields a seed followed by repeated applications of next.
type iterateSource[T any] struct {
	current T
	next    func(T) T
	started bool
}

func (s *iterateSource[T]) Next(ctx context.Context) (T, bool, error) {
	select {
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	default:
	}

	if s.started {
		s.current = s.next(s.current)
	}
	s.started = true
	return s.current, true, nil
}

func (s *iterateSource[T]) Close() error {
	return nil
}

// closedSource fails every read with ErrStreamClosed.
type closedSource[T any] struct{}

func (s *closedSource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, ErrStreamClosed
}

func (s *closedSource[T]) Close() error {
	return nil
}

// emptySource implements Source for empty streams.
type emptySource[T any] struct{}

func (s *emptySource[T]) Next(_ context.Context) (T, bool, error) {
	var zero T
	return zero, false, nil
}

func (s *emptySource[T]) Close() error {
	return nil
}
