package compare

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vnykmshr/recordflow/pkg/record"
	"github.com/vnykmshr/recordflow/pkg/streaming/stream"
)

func names(rs []record.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name()
	}
	return out
}

func TestComparing(t *testing.T) {
	byAge := Comparing(record.Record.Age)
	a := record.New("A", 25, 0, "IT")
	b := record.New("B", 30, 0, "IT")

	assert.Negative(t, byAge(a, b))
	assert.Positive(t, byAge(b, a))
	assert.Zero(t, byAge(a, a))
	assert.Positive(t, byAge.Reversed()(a, b))
	assert.Positive(t, ComparingDesc(record.Record.Age)(a, b))
}

func TestChainFirstNonZeroWins(t *testing.T) {
	people := []record.Record{
		record.New("Tom", 31, 65000, "IT"),
		record.New("Lisa", 38, 75000, "HR"),
		record.New("Adam", 28, 55000, "IT"),
		record.New("Jane", 30, 60000, "HR"),
		record.New("Mike", 40, 80000, "IT"),
	}

	// Department ascending, then salary descending.
	order := ThenComparingDesc(Comparing(record.Record.Department), record.Record.Salary)

	sorted, err := stream.FromSlice(people).Sorted(order).ToSlice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Lisa", "Jane", "Mike", "Tom", "Adam"}, names(sorted))
}

func TestThenComparingAscending(t *testing.T) {
	people := []record.Record{
		record.New("Zed", 30, 0, "IT"),
		record.New("Amy", 30, 0, "IT"),
		record.New("Bob", 25, 0, "IT"),
	}
	order := ThenComparing(Comparing(record.Record.Age), record.Record.Name)

	sorted, err := stream.FromSlice(people).Sorted(order).ToSlice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bob", "Amy", "Zed"}, names(sorted))
}

func TestChainAllEqual(t *testing.T) {
	c := Chain(Natural[int](), Natural[int]().Reversed())
	assert.Zero(t, c(3, 3))
	assert.Zero(t, Chain[int]()(1, 2))
}

func TestComparingFuncAndLen(t *testing.T) {
	byNameLen := Len(record.Record.Name)
	shortest, err := stream.FromSlice(record.Sample()).Min(context.Background(), byNameLen)
	require.NoError(t, err)
	assert.Equal(t, "Eve", shortest.OrElse(record.Record{}).Name())

	byDeptDesc := ComparingFunc(record.Record.Department, Natural[string]().Reversed())
	assert.Negative(t, byDeptDesc(record.New("a", 0, 0, "IT"), record.New("b", 0, 0, "HR")))
}

func TestSortIdempotentWithComposite(t *testing.T) {
	order := ThenComparing(ComparingDesc(record.Record.Salary), record.Record.Name)

	once, err := stream.FromSlice(record.Sample()).Sorted(order).ToSlice(context.Background())
	require.NoError(t, err)
	twice, err := stream.FromSlice(once).Sorted(order).ToSlice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}
