package record

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is an immutable person/employee entry.
//
// Fields are unexported so a Record cannot be modified after New; the
// accessor methods double as first-class extractors via method
// expressions, for example record.Record.Salary.
type Record struct {
	name       string
	age        int
	salary     float64
	department string
}

// New creates a Record. No range checks are applied to age or salary.
func New(name string, age int, salary float64, department string) Record {
	return Record{
		name:       name,
		age:        age,
		salary:     salary,
		department: department,
	}
}

// Name returns the person's name.
func (r Record) Name() string { return r.name }

// Age returns the person's age in years.
func (r Record) Age() int { return r.age }

// Salary returns the annual salary.
func (r Record) Salary() float64 { return r.salary }

// Department returns the department label.
func (r Record) Department() string { return r.department }

// WithSalary returns a copy of r with the salary replaced.
func (r Record) WithSalary(salary float64) Record {
	r.salary = salary
	return r
}

// String renders the record as "Name (age, salary, department)".
func (r Record) String() string {
	return fmt.Sprintf("%s (%d, %s, %s)", r.name, r.age,
		strconv.FormatFloat(r.salary, 'f', -1, 64), r.department)
}

// MarshalJSON encodes the record as an object with lower-case field names.
func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Name       string  `json:"name"`
		Age        int     `json:"age"`
		Salary     float64 `json:"salary"`
		Department string  `json:"department"`
	}{r.name, r.age, r.salary, r.department})
}
