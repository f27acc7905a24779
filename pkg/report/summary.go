package report

import (
	"fmt"

	"github.com/vnykmshr/recordflow/pkg/aggregation/stats"
	"github.com/vnykmshr/recordflow/pkg/record"
)

// DepartmentSummary tracks head count, total salary and total age together.
// The zero value is empty and ready for use.
type DepartmentSummary struct {
	count       int64
	totalSalary stats.Total[float64]
	totalAge    int64
}

var _ stats.Accumulator[record.Record, DepartmentSummary] = (*DepartmentSummary)(nil)

// Absorb adds one record.
func (s *DepartmentSummary) Absorb(r record.Record) {
	s.count++
	s.totalSalary.Add(r.Salary())
	s.totalAge += int64(r.Age())
}

// Merge adds every record summarized by other.
func (s *DepartmentSummary) Merge(other DepartmentSummary) {
	s.count += other.count
	s.totalSalary.Merge(other.totalSalary)
	s.totalAge += other.totalAge
}

// Count returns the number of records absorbed.
func (s DepartmentSummary) Count() int64 { return s.count }

// TotalSalary returns the salary total.
func (s DepartmentSummary) TotalSalary() float64 { return s.totalSalary.Value() }

// AverageSalary returns the mean salary, 0 when empty.
func (s DepartmentSummary) AverageSalary() float64 {
	return stats.Average(s.TotalSalary(), s.count)
}

// AverageAge returns the mean age, 0 when empty.
func (s DepartmentSummary) AverageAge() float64 {
	return stats.Average(s.totalAge, s.count)
}

func (s DepartmentSummary) String() string {
	return fmt.Sprintf("Employees: %d, Avg Salary: %.2f, Avg Age: %.1f",
		s.count, s.AverageSalary(), s.AverageAge())
}
