package stats

import (
	"math"
	"slices"
)

// Total is a running sum whose result does not depend on how the input was
// grouped. Integer types add directly, which is associative even when the
// sum wraps. Floating-point values are held exactly as a list of
// non-overlapping partial sums and rounded once when read, so Value is the
// correctly rounded sum of every value added.
//
// The partials are kept in canonical form: two Totals over the same values
// are deeply equal however they were split and merged. A running magnitude
// beyond math.MaxFloat64 reads as ±Inf. The zero value is an empty total.
type Total[N Number] struct {
	n        N
	partials []float64 // ascending magnitude; never written in place
	special  float64   // sum of infinities and NaNs
}

// Add adds v.
func (t *Total[N]) Add(v N) {
	if !isFloat[N]() {
		t.n += v
		return
	}
	x := float64(v)
	if math.IsInf(x, 0) || math.IsNaN(x) {
		t.special += x
		return
	}
	p, overflow := expand(t.partials, x)
	t.settle(p, overflow)
}

// Merge adds everything other has accumulated.
func (t *Total[N]) Merge(other Total[N]) {
	t.n += other.n
	t.special += other.special
	if len(other.partials) == 0 {
		return
	}
	p := t.partials
	for _, x := range other.partials {
		var overflow float64
		if p, overflow = expand(p, x); overflow != 0 {
			t.settle(nil, overflow)
			return
		}
	}
	t.settle(p, 0)
}

// Value returns the sum.
func (t Total[N]) Value() N {
	if !isFloat[N]() {
		return t.n
	}
	if t.special != 0 || math.IsNaN(t.special) {
		return N(t.special)
	}
	if len(t.partials) == 0 {
		return 0
	}
	// The largest canonical component is the rounded sum.
	return N(t.partials[len(t.partials)-1])
}

func (t *Total[N]) settle(p []float64, overflow float64) {
	if overflow != 0 {
		t.special += overflow
		t.partials = nil
		return
	}
	t.partials = canonical(p)
}

// isFloat reports whether N holds fractions.
func isFloat[N Number]() bool {
	half := 0.5
	return N(half) != 0
}

// expand adds x to the non-overlapping expansion p without rounding and
// returns a new expansion. A non-zero overflow reports an intermediate sum
// that left the float64 range.
func expand(p []float64, x float64) (out []float64, overflow float64) {
	out = make([]float64, 0, len(p)+1)
	for _, y := range p {
		if math.Abs(x) < math.Abs(y) {
			x, y = y, x
		}
		hi := x + y
		if math.IsInf(hi, 0) {
			return nil, hi
		}
		if lo := y - (hi - x); lo != 0 {
			out = append(out, lo)
		}
		x = hi
	}
	if x != 0 {
		out = append(out, x)
	}
	return out, 0
}

// round returns the correctly rounded (half to even) value of the expansion p.
func round(p []float64) float64 {
	n := len(p)
	if n == 0 {
		return 0
	}
	n--
	hi := p[n]
	var lo float64
	for n > 0 {
		x := hi
		n--
		y := p[n]
		hi = x + y
		lo = y - (hi - x)
		if lo != 0 {
			break
		}
	}
	// Break a halfway tie using the sign of the remaining partials.
	if n > 0 && (lo < 0 && p[n-1] < 0 || lo > 0 && p[n-1] > 0) {
		y := lo * 2
		x := hi + y
		if y == x-hi {
			hi = x
		}
	}
	return hi
}

// canonical rewrites p so that each component is the rounded value of
// everything below and including it. The result depends only on the exact
// sum p represents, not on how p was built.
func canonical(p []float64) []float64 {
	var out []float64
	for len(p) > 0 {
		hi := round(p)
		out = append(out, hi)
		p, _ = expand(p, -hi)
	}
	slices.Reverse(out)
	return out
}
