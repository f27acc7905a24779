package report

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rferrors "github.com/vnykmshr/recordflow/pkg/common/errors"
	"github.com/vnykmshr/recordflow/pkg/metrics"
	"github.com/vnykmshr/recordflow/pkg/record"
	"github.com/vnykmshr/recordflow/pkg/scheduling/parallel"
)

func assemble(t *testing.T, config Config, records []record.Record) *BusinessReport {
	t.Helper()
	a, err := New(config)
	require.NoError(t, err)
	r, err := a.Assemble(context.Background(), records)
	require.NoError(t, err)
	return r
}

func names(rs []record.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Name()
	}
	return out
}

func TestAssembleSample(t *testing.T) {
	r := assemble(t, DefaultConfig(), record.Sample())

	assert.Equal(t, int64(12), r.TotalEmployees)
	assert.Equal(t, 785000.0, r.TotalSalary)
	assert.InDelta(t, 32.1667, r.AverageAge, 0.0001)

	assert.Equal(t, map[string]int64{"IT": 5, "HR": 3, "Finance": 4}, r.DepartmentDistribution)
	assert.Equal(t, map[string]float64{"IT": 69000, "HR": 60000, "Finance": 65000}, r.DepartmentAvgSalary)
	assert.Equal(t, map[string]int64{record.AgeYoung: 5, record.AgeMiddle: 5, record.AgeSenior: 2}, r.AgeGroups)
	assert.Equal(t, []string{"Mike", "David", "Robert", "Lisa"}, r.HighEarners)
	assert.Equal(t, []string{"Robert", "David", "Mike"}, names(r.TopEarners))
	assert.Equal(t, []string{"IT", "HR", "Finance"}, r.DepartmentNames())

	lo, _ := r.SalaryStats.Min()
	hi, _ := r.SalaryStats.Max()
	assert.Equal(t, 45000.0, lo)
	assert.Equal(t, 95000.0, hi)
	assert.InDelta(t, 65416.67, r.SalaryStats.Average(), 0.01)
}

func TestDepartmentSection(t *testing.T) {
	r := assemble(t, DefaultConfig(), record.Sample())

	it, err := r.Department("IT")
	require.NoError(t, err)
	assert.Equal(t, int64(5), it.Count)
	assert.Equal(t, 345000.0, it.TotalSalary)
	assert.Equal(t, 69000.0, it.AverageSalary)
	assert.Equal(t, 33.8, it.AverageAge)
	assert.Equal(t, []string{"John", "Adam", "Mike", "Robert", "Tom"}, it.Names)

	oldest, err := it.OldestMember()
	require.NoError(t, err)
	assert.Equal(t, "Robert", oldest.Name())

	_, err = DepartmentReport{Department: "Support"}.OldestMember()
	assert.ErrorIs(t, err, rferrors.ErrEmpty)

	_, err = r.Department("Marketing")
	assert.ErrorIs(t, err, rferrors.ErrKeyNotFound)
}

func TestExampleScenario(t *testing.T) {
	r := assemble(t, DefaultConfig(), []record.Record{
		record.New("John", 25, 50000, "IT"),
		record.New("Jane", 30, 60000, "HR"),
		record.New("Adam", 28, 55000, "IT"),
	})

	it, err := r.Department("IT")
	require.NoError(t, err)
	assert.Equal(t, []string{"John", "Adam"}, it.Names)
	assert.Equal(t, 52500.0, it.AverageSalary)
	assert.Equal(t, 52500.0, r.DepartmentAvgSalary["IT"])
}

func TestEmptyInput(t *testing.T) {
	for _, records := range [][]record.Record{nil, {}} {
		r := assemble(t, DefaultConfig(), records)

		assert.Equal(t, int64(0), r.TotalEmployees)
		assert.Equal(t, 0.0, r.TotalSalary)
		assert.Equal(t, 0.0, r.AverageAge)
		assert.NotNil(t, r.DepartmentDistribution)
		assert.Empty(t, r.DepartmentDistribution)
		assert.NotNil(t, r.DepartmentAvgSalary)
		assert.Empty(t, r.AgeGroups)
		assert.NotNil(t, r.AgeGroups)
		assert.Empty(t, r.HighEarners)
		assert.Empty(t, r.Departments)
		assert.Empty(t, r.TopEarners)
		assert.Equal(t, 0.0, r.SalaryStats.Average())
		_, ok := r.SalaryStats.Max()
		assert.False(t, ok)

		_, err := r.Department("IT")
		assert.ErrorIs(t, err, rferrors.ErrKeyNotFound)
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	people := record.Sample()
	want := assemble(t, DefaultConfig(), people)

	for workers := 1; workers <= len(people)+1; workers++ {
		ev, err := parallel.New(parallel.Config{Name: "report", Workers: workers, MinChunk: 1})
		require.NoError(t, err)

		config := DefaultConfig()
		config.Parallel = ev
		got := assemble(t, config, people)
		assert.Equal(t, want, got, "workers=%d", workers)
	}
}

func TestCancellingSalariesAgree(t *testing.T) {
	people := []record.Record{
		record.New("A", 30, 1, "IT"),
		record.New("B", 31, 1e16, "IT"),
		record.New("C", 32, -1e16, "HR"),
		record.New("D", 33, 1, "HR"),
	}
	want := assemble(t, DefaultConfig(), people)
	assert.Equal(t, 2.0, want.TotalSalary)
	assert.Equal(t, 2.0, want.SalaryStats.Sum())
	assert.Equal(t, 0.5, want.SalaryStats.Average())

	seq, err := parallel.Summarize[record.Record, DepartmentSummary](context.Background(), nil, people)
	require.NoError(t, err)
	assert.Equal(t, 2.0, seq.TotalSalary())

	for workers := 1; workers <= len(people); workers++ {
		ev, err := parallel.New(parallel.Config{Name: "cancel", Workers: workers, MinChunk: 1})
		require.NoError(t, err)

		par, err := parallel.Summarize[record.Record, DepartmentSummary](context.Background(), ev, people)
		require.NoError(t, err)
		assert.Equal(t, seq, par, "workers=%d", workers)

		config := DefaultConfig()
		config.Parallel = ev
		assert.Equal(t, want, assemble(t, config, people), "workers=%d", workers)
	}
}

func TestAssembleDoesNotModifyInput(t *testing.T) {
	people := record.Sample()
	_ = assemble(t, DefaultConfig(), people)
	assert.Equal(t, record.Sample(), people)
}

func TestCustomThresholds(t *testing.T) {
	config := DefaultConfig()
	config.HighEarnerThreshold = 85000
	config.TopN = 20

	r := assemble(t, config, record.Sample())
	assert.Equal(t, []string{"David", "Robert"}, r.HighEarners)
	assert.Len(t, r.TopEarners, 12)
	assert.Equal(t, "Sarah", r.TopEarners[11].Name())
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"negative threshold", Config{HighEarnerThreshold: -1, TopN: 3}},
		{"zero top n", Config{HighEarnerThreshold: 70000, TopN: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config)
			assert.True(t, rferrors.IsValidationError(err), "got %v", err)
		})
	}
}

func TestDepartmentSummarySplits(t *testing.T) {
	people := record.Sample()
	var whole DepartmentSummary
	for _, r := range people {
		whole.Absorb(r)
	}
	assert.Equal(t, "Employees: 12, Avg Salary: 65416.67, Avg Age: 32.2", whole.String())

	for at := 0; at <= len(people); at++ {
		var left, right DepartmentSummary
		for _, r := range people[:at] {
			left.Absorb(r)
		}
		for _, r := range people[at:] {
			right.Absorb(r)
		}
		left.Merge(right)
		assert.Equal(t, whole, left, "split %d", at)
	}

	var empty DepartmentSummary
	assert.Equal(t, 0.0, empty.AverageSalary())
	assert.Equal(t, 0.0, empty.AverageAge())
}

func TestMetrics(t *testing.T) {
	reg := metrics.NewRegistry(prometheus.NewRegistry())
	config := DefaultConfig()
	config.Metrics = reg

	a, err := New(config)
	require.NoError(t, err)
	assert.Equal(t, "sequential", a.Mode())

	_, err = a.Assemble(context.Background(), record.Sample())
	require.NoError(t, err)

	assert.Equal(t, 1.0, promtest.ToFloat64(reg.ReportsAssembled.WithLabelValues("sequential")))
	assert.Equal(t, 12.0, promtest.ToFloat64(reg.ReportRecords.WithLabelValues("sequential")))
}

func TestCanceledContext(t *testing.T) {
	a, err := New(DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = a.Assemble(ctx, record.Sample())
	assert.ErrorIs(t, err, context.Canceled)
}
