/*
Package streaming groups the query engine's building blocks.

  - stream: Lazy, pull-based pipelines over slices, channels and generators
  - compare: Comparators composable into multi-key orderings

Basic usage:

	byDeptThenPay := compare.Comparing(record.Record.Department).
		Then(compare.ComparingDesc(record.Record.Salary))

	sorted, err := stream.FromSlice(people).
		Filter(record.AgeAtLeast(30)).
		Sorted(byDeptThenPay).
		ToSlice(ctx)

Intermediate operations never modify their input, and every terminal
operation honours context cancellation.
*/
package streaming
