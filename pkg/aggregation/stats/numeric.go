package stats

// Number is any built-in numeric type a projection can produce.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Average divides total by count. An empty input averages to 0; every
// aggregation helper in this module follows that rule.
func Average[N Number](total N, count int64) float64 {
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}

// Sum adds key(v) over values. Floating-point sums are correctly rounded.
func Sum[T any, N Number](values []T, key func(T) N) N {
	var total Total[N]
	for _, v := range values {
		total.Add(key(v))
	}
	return total.Value()
}

// Mean averages key(v) over values, 0 when values is empty.
func Mean[T any, N Number](values []T, key func(T) N) float64 {
	return Average(Sum(values, key), int64(len(values)))
}

// Summarize builds a Summary of key(v) over values.
func Summarize[T any, N Number](values []T, key func(T) N) Summary {
	var s Summary
	for _, v := range values {
		s.Absorb(float64(key(v)))
	}
	return s
}
