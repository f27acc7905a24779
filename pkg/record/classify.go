package record

// Age group labels returned by AgeGroup.
const (
	AgeYoung  = "Young"
	AgeMiddle = "Middle"
	AgeSenior = "Senior"
)

// Salary band labels returned by SalaryBand.
const (
	BandLow  = "Below 50k"
	BandMid  = "50k-70k"
	BandHigh = "Above 70k"
)

// AgeGroup classifies r as Young (< 30), Middle (< 40) or Senior.
func AgeGroup(r Record) string {
	switch {
	case r.age < 30:
		return AgeYoung
	case r.age < 40:
		return AgeMiddle
	default:
		return AgeSenior
	}
}

// SalaryBand classifies r by salary; 70000 itself falls in the middle band.
func SalaryBand(r Record) string {
	switch {
	case r.salary < 50000:
		return BandLow
	case r.salary <= 70000:
		return BandMid
	default:
		return BandHigh
	}
}

// InDepartment returns a predicate matching records of the given department.
func InDepartment(department string) func(Record) bool {
	return func(r Record) bool { return r.department == department }
}

// AgeAtLeast returns a predicate matching records aged min or older.
func AgeAtLeast(min int) func(Record) bool {
	return func(r Record) bool { return r.age >= min }
}

// SalaryAbove returns a predicate matching records earning strictly more than threshold.
func SalaryAbove(threshold float64) func(Record) bool {
	return func(r Record) bool { return r.salary > threshold }
}
