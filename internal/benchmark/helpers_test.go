package benchmark

import (
	"fmt"

	"github.com/vnykmshr/recordflow/pkg/record"
)

var departments = []string{"IT", "HR", "Finance", "Sales", "Legal"}

// dataset builds size synthetic records cycling through departments.
func dataset(size int) []record.Record {
	out := make([]record.Record, size)
	for i := range out {
		out[i] = record.New(
			fmt.Sprintf("emp-%d", i),
			22+i%40,
			float64(40000+(i*7919)%60000),
			departments[i%len(departments)],
		)
	}
	return out
}

func sizeLabel(size int) string {
	switch {
	case size >= 100000:
		return "100k"
	case size >= 10000:
		return "10k"
	case size >= 1000:
		return "1k"
	default:
		return "100"
	}
}
