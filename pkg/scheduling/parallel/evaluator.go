package parallel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"golang.org/x/sync/errgroup"

	rferrors "github.com/vnykmshr/recordflow/pkg/common/errors"
)

// ErrWorkerPanic is wrapped by errors returned when a user function panics
// inside a chunk.
var ErrWorkerPanic = errors.New("worker panicked")

// checkInterval is how many elements a chunk folds between context checks.
const checkInterval = 256

// Evaluator splits work across goroutines.
type Evaluator struct {
	config Config
	logger *slog.Logger
}

// New creates an Evaluator from config.
func New(config Config) (*Evaluator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Name == "" {
		config.Name = "default"
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Evaluator{
		config: config,
		logger: logger.With("component", "parallel", "evaluator", config.Name),
	}, nil
}

// Name returns the evaluator's name.
func (e *Evaluator) Name() string {
	if e == nil {
		return "sequential"
	}
	return e.config.Name
}

// Workers returns the configured worker limit, 1 for a nil evaluator.
func (e *Evaluator) Workers() int {
	if e == nil {
		return 1
	}
	return e.config.Workers
}

// span is the half-open range [lo, hi) of input positions.
type span struct {
	lo, hi int
}

// spans splits n elements into at most Workers contiguous chunks of at least
// MinChunk elements each. Earlier chunks take the remainder, one extra each.
func (e *Evaluator) spans(n int) []span {
	if n == 0 {
		return nil
	}
	chunks := 1
	if e != nil {
		chunks = min(e.config.Workers, max(1, n/e.config.MinChunk))
	}
	size, extra := n/chunks, n%chunks

	out := make([]span, 0, chunks)
	lo := 0
	for i := 0; i < chunks; i++ {
		hi := lo + size
		if i < extra {
			hi++
		}
		out = append(out, span{lo: lo, hi: hi})
		lo = hi
	}
	return out
}

// run applies work to every span and returns the partial results in span
// order. A single span runs on the calling goroutine.
func run[T, P any](ctx context.Context, e *Evaluator, operation string, items []T, spans []span, work func(context.Context, []T) (P, error)) (partials []P, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() { e.observe(operation, len(items), len(spans), time.Since(start), err) }()

	partials = make([]P, len(spans))
	if len(spans) == 1 {
		p, err := protect(ctx, operation, 0, items[spans[0].lo:spans[0].hi], work)
		if err != nil {
			return nil, err
		}
		partials[0] = p
		return partials, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.Workers())
	for i, sp := range spans {
		g.Go(func() error {
			p, err := protect(gctx, operation, i, items[sp.lo:sp.hi], work)
			if err != nil {
				return err
			}
			partials[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return partials, nil
}

// protect runs work and converts a panic into an error.
func protect[T, P any](ctx context.Context, operation string, chunk int, items []T, work func(context.Context, []T) (P, error)) (p P, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = rferrors.NewOperationError("parallel", operation,
				fmt.Errorf("%w: %v", ErrWorkerPanic, r)).
				WithContext(fmt.Sprintf("chunk %d\n%s", chunk, debug.Stack()))
		}
	}()
	return work(ctx, items)
}

// fold applies step across items, checking ctx periodically.
func fold[T, A any](ctx context.Context, items []T, acc A, step func(A, T) A) (A, error) {
	for i, v := range items {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return acc, err
			}
		}
		acc = step(acc, v)
	}
	return acc, nil
}

// combineAll merges partials left to right. No partials yields empty().
func combineAll[A any](partials []A, empty func() A, combine func(A, A) A) A {
	if len(partials) == 0 {
		return empty()
	}
	acc := partials[0]
	for _, p := range partials[1:] {
		acc = combine(acc, p)
	}
	return acc
}

func (e *Evaluator) observe(operation string, items, chunks int, elapsed time.Duration, err error) {
	if e == nil {
		return
	}
	if err != nil {
		e.logger.Debug("parallel evaluation failed",
			"operation", operation, "items", items, "chunks", chunks, "error", err)
	} else {
		e.logger.Debug("parallel evaluation",
			"operation", operation, "items", items, "chunks", chunks, "duration", elapsed)
	}

	reg := e.config.Metrics
	if reg == nil {
		return
	}
	reg.ParallelEvaluations.WithLabelValues(operation, e.config.Name).Inc()
	reg.ParallelChunks.WithLabelValues(operation, e.config.Name).Add(float64(chunks))
	reg.ParallelDuration.WithLabelValues(operation, e.config.Name).Observe(elapsed.Seconds())
	if err != nil {
		reg.ParallelFailures.WithLabelValues(operation, e.config.Name).Inc()
	}
}
