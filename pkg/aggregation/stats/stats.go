// Package stats provides mergeable summary statistics and the accumulator
// contract shared by sequential and parallel aggregation.
package stats

import (
	"encoding/json"
	"fmt"
	"math"
)

// Accumulator is running aggregation state. Absorb folds in one value;
// Merge folds in the state built over a later, disjoint range of the input.
//
// Implementations must give the same final state for any split of the input
// into contiguous ranges, absorbed separately and merged left to right.
type Accumulator[T any, S any] interface {
	Absorb(value T)
	Merge(other S)
}

// Summary is count, sum, min, max and average over float64 values,
// computed in a single pass. The sum is exact until read, so any split of
// the input merges to the same Summary.
//
// The zero value is an empty summary ready for use.
type Summary struct {
	count int64
	sum   Total[float64]
	min   float64
	max   float64
}

// Of summarizes values.
func Of(values ...float64) Summary {
	var s Summary
	for _, v := range values {
		s.Absorb(v)
	}
	return s
}

// Absorb adds one value.
func (s *Summary) Absorb(v float64) {
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		s.min = math.Min(s.min, v)
		s.max = math.Max(s.max, v)
	}
	s.count++
	s.sum.Add(v)
}

// Merge adds every value summarized by other.
func (s *Summary) Merge(other Summary) {
	if other.count == 0 {
		return
	}
	if s.count == 0 {
		*s = other
		return
	}
	s.count += other.count
	s.sum.Merge(other.sum)
	s.min = math.Min(s.min, other.min)
	s.max = math.Max(s.max, other.max)
}

// Count returns the number of values absorbed.
func (s Summary) Count() int64 { return s.count }

// Sum returns the correctly rounded total of the values, 0 when empty.
func (s Summary) Sum() float64 { return s.sum.Value() }

// Min returns the smallest value and false when the summary is empty.
func (s Summary) Min() (float64, bool) { return s.min, s.count > 0 }

// Max returns the largest value and false when the summary is empty.
func (s Summary) Max() (float64, bool) { return s.max, s.count > 0 }

// Average returns the mean, 0 when empty.
func (s Summary) Average() float64 {
	return Average(s.Sum(), s.count)
}

func (s Summary) String() string {
	if s.count == 0 {
		return "Summary{count=0}"
	}
	return fmt.Sprintf("Summary{count=%d, sum=%.2f, min=%.2f, average=%.2f, max=%.2f}",
		s.count, s.Sum(), s.min, s.Average(), s.max)
}

// MarshalJSON encodes the summary as an object. Min and max are omitted when
// the summary is empty.
func (s Summary) MarshalJSON() ([]byte, error) {
	out := struct {
		Count   int64    `json:"count"`
		Sum     float64  `json:"sum"`
		Min     *float64 `json:"min,omitempty"`
		Max     *float64 `json:"max,omitempty"`
		Average float64  `json:"average"`
	}{Count: s.count, Sum: s.Sum(), Average: s.Average()}
	if s.count > 0 {
		out.Min, out.Max = &s.min, &s.max
	}
	return json.Marshal(out)
}

var _ Accumulator[float64, Summary] = (*Summary)(nil)
