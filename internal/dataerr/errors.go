// Package dataerr defines the typed errors shared by the import,
// transform and store layers.
package dataerr

import "fmt"

// RowError represents a defect in a single source row: a value that
// could not be parsed or violates a fact-table invariant.
type RowError struct {
	File  string
	Line  int
	Field string
	Value string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: bad %s=%q: %v", e.File, e.Line, e.Field, e.Value, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// ValidationError represents a file-level validation failure, such as a
// missing required column. The whole import is rejected.
type ValidationError struct {
	File   string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.File, e.Reason)
}

// StoreError wraps a failure in the relational store with the operation
// that produced it.
type StoreError struct {
	Operation string
	Err       error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Operation, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
