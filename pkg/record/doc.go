// Package record defines the immutable person/employee record that the
// query, aggregation and report packages operate on, together with a few
// predicates and classifiers shared by the examples and the CLI.
package record
