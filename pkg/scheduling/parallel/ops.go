package parallel

import (
	"context"

	"github.com/vnykmshr/recordflow/pkg/aggregation/collect"
	"github.com/vnykmshr/recordflow/pkg/aggregation/stats"
	"github.com/vnykmshr/recordflow/pkg/streaming/stream"
)

// Collect evaluates c over items, one container per chunk, combined in input
// order.
func Collect[T, A, R any](ctx context.Context, e *Evaluator, items []T, c stream.Collector[T, A, R]) (R, error) {
	return collectSpans(ctx, e, "collect", items, e.spans(len(items)), c)
}

// CollectStream drains s and collects its elements in parallel.
func CollectStream[T, A, R any](ctx context.Context, e *Evaluator, s stream.Stream[T], c stream.Collector[T, A, R]) (R, error) {
	items, err := s.ToSlice(ctx)
	if err != nil {
		var zero R
		return zero, err
	}
	return Collect(ctx, e, items, c)
}

// Reduce folds each chunk with accumulator starting from identity and merges
// the chunk results with combiner. combiner must be associative and
// consistent with accumulator; identity must be neutral for both.
func Reduce[T, U any](ctx context.Context, e *Evaluator, items []T, identity U, accumulator func(U, T) U, combiner func(U, U) U) (U, error) {
	reducer := collect.New(func() U { return identity }, accumulator, combiner, collect.Identity[U])
	return collectSpans(ctx, e, "reduce", items, e.spans(len(items)), reducer)
}

// Summarize absorbs each chunk into a zero-value accumulator and merges the
// accumulators in input order.
//
//	summary, err := parallel.Summarize[float64, stats.Summary](ctx, ev, salaries)
func Summarize[T, S any, PS interface {
	*S
	stats.Accumulator[T, S]
}](ctx context.Context, e *Evaluator, items []T) (S, error) {
	summarizer := collect.New(
		func() S {
			var s S
			return s
		},
		func(s S, v T) S {
			PS(&s).Absorb(v)
			return s
		},
		func(left, right S) S {
			PS(&left).Merge(right)
			return left
		},
		collect.Identity[S],
	)
	return collectSpans(ctx, e, "summarize", items, e.spans(len(items)), summarizer)
}

// Map applies mapper to every element and returns the results in input order.
func Map[T, U any](ctx context.Context, e *Evaluator, items []T, mapper func(T) U) ([]U, error) {
	return collectSpans(ctx, e, "map", items, e.spans(len(items)), collect.Mapping(mapper, collect.ToSlice[U]()))
}

// ForEach calls action for every element. Calls from different chunks run
// concurrently and in no particular order; action must be safe for that.
func ForEach[T any](ctx context.Context, e *Evaluator, items []T, action func(T)) error {
	_, err := run(ctx, e, "for_each", items, e.spans(len(items)), func(ctx context.Context, chunk []T) (struct{}, error) {
		return fold(ctx, chunk, struct{}{}, func(acc struct{}, v T) struct{} {
			action(v)
			return acc
		})
	})
	return err
}

// ForEachOrdered maps items concurrently, then calls action with each mapped
// value on the calling goroutine in input order, exactly as a sequential loop
// would. action needs no synchronization; mapper must be safe to call
// concurrently.
func ForEachOrdered[T, U any](ctx context.Context, e *Evaluator, items []T, mapper func(T) U, action func(U)) error {
	if ctx == nil {
		ctx = context.Background()
	}
	mapped, err := collectSpans(ctx, e, "for_each_ordered", items, e.spans(len(items)),
		collect.Mapping(mapper, collect.ToSlice[U]()))
	if err != nil {
		return err
	}
	_, err = fold(ctx, mapped, struct{}{}, func(acc struct{}, v U) struct{} {
		action(v)
		return acc
	})
	return err
}

func collectSpans[T, A, R any](ctx context.Context, e *Evaluator, operation string, items []T, spans []span, c stream.Collector[T, A, R]) (R, error) {
	partials, err := run(ctx, e, operation, items, spans, func(ctx context.Context, chunk []T) (A, error) {
		return fold(ctx, chunk, c.Supply(), c.Accumulate)
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return c.Finish(combineAll(partials, c.Supply, c.Combine)), nil
}
