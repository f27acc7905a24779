package report

import (
	"context"
	"log/slog"
	"time"

	"github.com/vnykmshr/recordflow/pkg/aggregation/collect"
	"github.com/vnykmshr/recordflow/pkg/aggregation/stats"
	"github.com/vnykmshr/recordflow/pkg/record"
	"github.com/vnykmshr/recordflow/pkg/scheduling/parallel"
	"github.com/vnykmshr/recordflow/pkg/streaming/compare"
	"github.com/vnykmshr/recordflow/pkg/streaming/stream"
	"github.com/vnykmshr/recordflow/pkg/view"
)

// Assembler builds BusinessReports.
type Assembler struct {
	config Config
	logger *slog.Logger
}

// New creates an Assembler from config.
func New(config Config) (*Assembler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Assembler{config: config, logger: logger.With("component", "report")}, nil
}

// Mode is "parallel" when the assembler has an evaluator, "sequential" otherwise.
func (a *Assembler) Mode() string {
	if a.config.Parallel != nil {
		return "parallel"
	}
	return "sequential"
}

// Assemble builds the report for records. records is not modified.
func (a *Assembler) Assemble(ctx context.Context, records []record.Record) (*BusinessReport, error) {
	start := time.Now()
	ev := a.config.Parallel

	overall, err := parallel.Summarize[record.Record, DepartmentSummary](ctx, ev, records)
	if err != nil {
		return nil, err
	}

	salaryStats, err := parallel.Collect(ctx, ev, records, collect.Summarizing(record.Record.Salary))
	if err != nil {
		return nil, err
	}

	byDept, err := parallel.Collect(ctx, ev, records,
		collect.GroupingByWith(record.Record.Department, departmentCollector()))
	if err != nil {
		return nil, err
	}

	ageGroups, err := parallel.Collect(ctx, ev, records,
		collect.GroupingByWith(record.AgeGroup, collect.Counting[record.Record]()))
	if err != nil {
		return nil, err
	}

	top, err := stream.FromSlice(records).
		Sorted(compare.ComparingDesc(record.Record.Salary)).
		Limit(int64(a.config.TopN)).
		ToSlice(ctx)
	if err != nil {
		return nil, err
	}

	high := view.NewDataset(records).Where(record.SalaryAbove(a.config.HighEarnerThreshold))
	highNames, err := parallel.Map(ctx, ev, high.Records(), record.Record.Name)
	if err != nil {
		return nil, err
	}

	report := &BusinessReport{
		TotalEmployees:         overall.Count(),
		TotalSalary:            overall.TotalSalary(),
		AverageAge:             overall.AverageAge(),
		DepartmentDistribution: make(map[string]int64, byDept.Len()),
		DepartmentAvgSalary:    make(map[string]float64, byDept.Len()),
		AgeGroups:              ageGroups.ToMap(),
		HighEarners:            highNames,
		Departments:            make([]DepartmentReport, 0, byDept.Len()),
		SalaryStats:            salaryStats,
		TopEarners:             top,
	}
	byDept.Each(func(name string, d DepartmentReport) {
		d.Department = name
		report.Departments = append(report.Departments, d)
		report.DepartmentDistribution[name] = d.Count
		report.DepartmentAvgSalary[name] = d.AverageSalary
	})

	a.observe(len(records), time.Since(start))
	a.logger.Debug("report assembled",
		"mode", a.Mode(), "records", len(records), "departments", len(report.Departments))
	return report, nil
}

func (a *Assembler) observe(records int, elapsed time.Duration) {
	reg := a.config.Metrics
	if reg == nil {
		return
	}
	mode := a.Mode()
	reg.ReportsAssembled.WithLabelValues(mode).Inc()
	reg.ReportRecords.WithLabelValues(mode).Set(float64(records))
	reg.ReportDuration.WithLabelValues(mode).Observe(elapsed.Seconds())
}

// departmentState is the running state behind one DepartmentReport.
type departmentState struct {
	summary  DepartmentSummary
	salaries stats.Summary
	oldest   stream.Optional[record.Record]
	names    []string
}

// departmentCollector builds a DepartmentReport, minus its name, for one bucket.
func departmentCollector() stream.Collector[record.Record, *departmentState, DepartmentReport] {
	oldest := collect.MaxBy(compare.Comparing(record.Record.Age))

	return collect.New(
		func() *departmentState {
			return &departmentState{oldest: oldest.Supply(), names: make([]string, 0)}
		},
		func(s *departmentState, r record.Record) *departmentState {
			s.summary.Absorb(r)
			s.salaries.Absorb(r.Salary())
			s.oldest = oldest.Accumulate(s.oldest, r)
			s.names = append(s.names, r.Name())
			return s
		},
		func(left, right *departmentState) *departmentState {
			left.summary.Merge(right.summary)
			left.salaries.Merge(right.salaries)
			left.oldest = oldest.Combine(left.oldest, right.oldest)
			left.names = append(left.names, right.names...)
			return left
		},
		func(s *departmentState) DepartmentReport {
			return DepartmentReport{
				Count:         s.summary.Count(),
				TotalSalary:   s.summary.TotalSalary(),
				AverageSalary: s.summary.AverageSalary(),
				AverageAge:    s.summary.AverageAge(),
				SalaryStats:   s.salaries,
				Oldest:        s.oldest,
				Names:         s.names,
			}
		},
	)
}
