package stream

import (
	"context"
	"slices"
)

// mappingSource implements Source that transforms elements from one type to another.
type mappingSource[From, To any] struct {
	originalSource Source[From]
	mapper         func(From) To
}

func (s *mappingSource[From, To]) Next(ctx context.Context) (To, bool, error) {
	var zero To

	value, hasMore, err := s.originalSource.Next(ctx)
	if err != nil || !hasMore {
		return zero, false, err
	}

	return s.mapper(value), true, nil
}

func (s *mappingSource[From, To]) Close() error {
	return s.originalSource.Close()
}

// filterSource passes through elements matching predicate.
type filterSource[T any] struct {
	upstream  Source[T]
	predicate func(T) bool
}

func (s *filterSource[T]) Next(ctx context.Context) (T, bool, error) {
	for {
		value, ok, err := s.upstream.Next(ctx)
		if err != nil || !ok {
			return value, false, err
		}
		if s.predicate(value) {
			return value, true, nil
		}
	}
}

func (s *filterSource[T]) Close() error {
	return s.upstream.Close()
}

// flatMapSource expands each upstream element into the elements of a sub-stream.
type flatMapSource[From, To any] struct {
	upstream Source[From]
	mapper   func(From) Stream[To]
	current  Source[To]
}

func (s *flatMapSource[From, To]) Next(ctx context.Context) (To, bool, error) {
	var zero To

	for {
		if s.current != nil {
			value, ok, err := s.current.Next(ctx)
			if err != nil {
				return zero, false, err
			}
			if ok {
				return value, true, nil
			}
			_ = s.current.Close()
			s.current = nil
		}

		value, ok, err := s.upstream.Next(ctx)
		if err != nil || !ok {
			return zero, false, err
		}
		if inner := s.mapper(value); inner != nil {
			s.current = inner.open()
		}
	}
}

func (s *flatMapSource[From, To]) Close() error {
	if s.current != nil {
		_ = s.current.Close()
		s.current = nil
	}
	return s.upstream.Close()
}

// distinctSource keeps the first element seen for each key.
type distinctSource[T any, K comparable] struct {
	upstream Source[T]
	key      func(T) K
	seen     map[K]struct{}
}

func (s *distinctSource[T, K]) Next(ctx context.Context) (T, bool, error) {
	for {
		value, ok, err := s.upstream.Next(ctx)
		if err != nil || !ok {
			return value, false, err
		}
		k := s.key(value)
		if _, dup := s.seen[k]; dup {
			continue
		}
		s.seen[k] = struct{}{}
		return value, true, nil
	}
}

func (s *distinctSource[T, K]) Close() error {
	return s.upstream.Close()
}

// sortedSource buffers the whole upstream on first pull, then replays it in order.
type sortedSource[T any] struct {
	upstream Source[T]
	compare  func(a, b T) int
	buffer   []T
	loaded   bool
	index    int
}

func (s *sortedSource[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	if !s.loaded {
		for {
			value, ok, err := s.upstream.Next(ctx)
			if err != nil {
				return zero, false, err
			}
			if !ok {
				break
			}
			s.buffer = append(s.buffer, value)
		}
		slices.SortStableFunc(s.buffer, s.compare)
		s.loaded = true
	}

	if s.index >= len(s.buffer) {
		return zero, false, nil
	}
	value := s.buffer[s.index]
	s.index++
	return value, true, nil
}

func (s *sortedSource[T]) Close() error {
	s.buffer = nil
	return s.upstream.Close()
}

// skipSource discards the first remaining elements.
type skipSource[T any] struct {
	upstream  Source[T]
	remaining int64
}

func (s *skipSource[T]) Next(ctx context.Context) (T, bool, error) {
	for s.remaining > 0 {
		value, ok, err := s.upstream.Next(ctx)
		if err != nil || !ok {
			return value, false, err
		}
		s.remaining--
	}
	return s.upstream.Next(ctx)
}

func (s *skipSource[T]) Close() error {
	return s.upstream.Close()
}

// limitSource stops pulling from upstream once remaining reaches zero,
// which keeps infinite sources bounded.
type limitSource[T any] struct {
	upstream  Source[T]
	remaining int64
}

func (s *limitSource[T]) Next(ctx context.Context) (T, bool, error) {
	if s.remaining <= 0 {
		var zero T
		return zero, false, nil
	}
	value, ok, err := s.upstream.Next(ctx)
	if err != nil || !ok {
		return value, false, err
	}
	s.remaining--
	return value, true, nil
}

func (s *limitSource[T]) Close() error {
	return s.upstream.Close()
}

// peekSource runs action on every element that passes through.
type peekSource[T any] struct {
	upstream Source[T]
	action   func(T)
}

func (s *peekSource[T]) Next(ctx context.Context) (T, bool, error) {
	value, ok, err := s.upstream.Next(ctx)
	if err == nil && ok {
		s.action(value)
	}
	return value, ok, err
}

func (s *peekSource[T]) Close() error {
	return s.upstream.Close()
}
