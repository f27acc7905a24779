package report

import (
	"log/slog"

	"github.com/vnykmshr/recordflow/pkg/common/validation"
	"github.com/vnykmshr/recordflow/pkg/metrics"
	"github.com/vnykmshr/recordflow/pkg/scheduling/parallel"
)

// Config holds configuration options for an Assembler.
type Config struct {
	// HighEarnerThreshold is the salary a record must exceed to be listed
	// as a high earner.
	HighEarnerThreshold float64

	// TopN is how many top earners to list.
	TopN int

	// Parallel evaluates aggregations across goroutines. Nil runs them
	// sequentially.
	Parallel *parallel.Evaluator

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger

	// Metrics records assemblies when non-nil.
	Metrics *metrics.Registry
}

// DefaultConfig returns the thresholds used by the bundled reports.
func DefaultConfig() Config {
	return Config{
		HighEarnerThreshold: 70000,
		TopN:                3,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := validation.ValidateNonNegative("report", "high_earner_threshold", c.HighEarnerThreshold); err != nil {
		return err
	}
	return validation.ValidatePositive("report", "top_n", c.TopN)
}
