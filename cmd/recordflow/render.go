package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/vnykmshr/recordflow/pkg/aggregation/collect"
	"github.com/vnykmshr/recordflow/pkg/record"
	"github.com/vnykmshr/recordflow/pkg/report"
)

// render writes the dashboard as aligned text.
func render(w io.Writer, r *report.BusinessReport, bands *collect.Groups[string, int64], threshold float64) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "=== EMPLOYEE DASHBOARD ===")
	fmt.Fprintf(tw, "Total Employees:\t%d\n", r.TotalEmployees)
	fmt.Fprintf(tw, "Total Salary Cost:\t%.2f\n", r.TotalSalary)
	fmt.Fprintf(tw, "Average Age:\t%.1f\n", r.AverageAge)

	fmt.Fprintln(tw, "\nDepartment\tEmployees\tAvg Salary\tAvg Age\tOldest")
	for _, d := range r.Departments {
		oldest := "-"
		if o, err := d.OldestMember(); err == nil {
			oldest = o.Name()
		}
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.1f\t%s\n", d.Department, d.Count, d.AverageSalary, d.AverageAge, oldest)
	}

	fmt.Fprintln(tw, "\nSalary Analysis")
	if lo, ok := r.SalaryStats.Min(); ok {
		hi, _ := r.SalaryStats.Max()
		fmt.Fprintf(tw, "  Min:\t%.2f\n  Max:\t%.2f\n", lo, hi)
	}
	fmt.Fprintf(tw, "  Avg:\t%.2f\n", r.SalaryStats.Average())

	fmt.Fprintln(tw, "\nAge Groups")
	for _, group := range []string{record.AgeYoung, record.AgeMiddle, record.AgeSenior} {
		fmt.Fprintf(tw, "  %s:\t%d\n", group, r.AgeGroups[group])
	}

	fmt.Fprintln(tw, "\nSalary Bands")
	for _, band := range []string{record.BandLow, record.BandMid, record.BandHigh} {
		count, _ := bands.Lookup(band)
		fmt.Fprintf(tw, "  %s:\t%d\n", band, count)
	}

	fmt.Fprintf(tw, "\nHigh Earners (> %s):\t%s\n",
		strconv.FormatFloat(threshold, 'f', -1, 64), strings.Join(r.HighEarners, ", "))

	fmt.Fprintf(tw, "\nTop %d Earners\n", len(r.TopEarners))
	for _, p := range r.TopEarners {
		fmt.Fprintf(tw, "  %s:\t%.2f\n", p.Name(), p.Salary())
	}

	return tw.Flush()
}
