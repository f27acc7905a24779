// Package report assembles a typed business report from a record dataset.
//
// Every figure in a BusinessReport comes from the query engine and the
// aggregation helpers; the Assembler only wires them together. Assembly is a
// pure function of its input, and an Assembler configured with a parallel
// evaluator returns the same report as a sequential one.
package report

import (
	"fmt"

	"github.com/vnykmshr/recordflow/pkg/aggregation/stats"
	rferrors "github.com/vnykmshr/recordflow/pkg/common/errors"
	"github.com/vnykmshr/recordflow/pkg/record"
	"github.com/vnykmshr/recordflow/pkg/streaming/stream"
)

// DepartmentReport is the per-department section of a BusinessReport.
type DepartmentReport struct {
	Department    string        `json:"department"`
	Count         int64         `json:"count"`
	TotalSalary   float64       `json:"total_salary"`
	AverageSalary float64       `json:"average_salary"`
	AverageAge    float64       `json:"average_age"`
	SalaryStats   stats.Summary `json:"salary_stats"`
	Names         []string      `json:"names"`

	// Oldest is the oldest member; the first one listed wins ties.
	Oldest stream.Optional[record.Record] `json:"-"`
}

// OldestMember returns the oldest member, or an error wrapping
// errors.ErrEmpty for a section with no members.
func (d DepartmentReport) OldestMember() (record.Record, error) {
	o, err := d.Oldest.OrError(rferrors.ErrEmpty)
	if err != nil {
		return o, fmt.Errorf("department %q: %w", d.Department, err)
	}
	return o, nil
}

// BusinessReport summarizes a dataset as a whole and per department.
// Maps are never nil; an empty dataset yields zero counts and empty maps.
type BusinessReport struct {
	TotalEmployees int64   `json:"total_employees"`
	TotalSalary    float64 `json:"total_salary"`
	AverageAge     float64 `json:"average_age"`

	DepartmentDistribution map[string]int64   `json:"department_distribution"`
	DepartmentAvgSalary    map[string]float64 `json:"department_avg_salary"`
	AgeGroups              map[string]int64   `json:"age_groups"`

	// HighEarners lists, in dataset order, everyone paid more than the threshold.
	HighEarners []string `json:"high_earners"`

	// Departments in first-occurrence order.
	Departments []DepartmentReport `json:"departments"`

	SalaryStats stats.Summary   `json:"salary_stats"`
	TopEarners  []record.Record `json:"top_earners"`
}

// Department returns the section for name, or an error wrapping
// errors.ErrKeyNotFound.
func (r *BusinessReport) Department(name string) (DepartmentReport, error) {
	for _, d := range r.Departments {
		if d.Department == name {
			return d, nil
		}
	}
	return DepartmentReport{}, rferrors.KeyNotFound(name)
}

// DepartmentNames returns department names in first-occurrence order.
func (r *BusinessReport) DepartmentNames() []string {
	names := make([]string, len(r.Departments))
	for i, d := range r.Departments {
		names[i] = d.Department
	}
	return names
}
