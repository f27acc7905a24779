package parallel

import (
	"log/slog"
	"runtime"

	"github.com/vnykmshr/recordflow/pkg/common/validation"
	"github.com/vnykmshr/recordflow/pkg/metrics"
)

// Config holds configuration options for an Evaluator.
type Config struct {
	// Name labels metrics and log lines produced by the evaluator.
	Name string

	// Workers is the maximum number of chunks evaluated at once, and the
	// maximum number of chunks an input is split into. Must be greater than 0.
	Workers int

	// MinChunk is the smallest number of elements worth a goroutine.
	// Inputs shorter than 2*MinChunk are evaluated as a single chunk.
	MinChunk int

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger

	// Metrics records evaluations when non-nil.
	Metrics *metrics.Registry
}

// DefaultConfig returns a configuration using one worker per available CPU.
func DefaultConfig() Config {
	return Config{
		Name:     "default",
		Workers:  runtime.GOMAXPROCS(0),
		MinChunk: 1,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validation.ValidatePositive("parallel", "workers", c.Workers); err != nil {
		return err
	}
	return validation.ValidatePositive("parallel", "min_chunk", c.MinChunk)
}
