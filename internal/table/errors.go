// Package table provides the column-oriented table used to merge and rank bibliometric exports.
package table

import (
	"errors"
	"fmt"
)

var errNotFinite = errors.New("not a finite number")

// MissingColumnError is returned when a requested column is absent from a table or input file
type MissingColumnError struct {
	Column string
	File   string // empty when the column was looked up in an in-memory table
}

func (e *MissingColumnError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("missing column %q in %s", e.Column, e.File)
	}
	return fmt.Sprintf("missing column %q", e.Column)
}

// JoinKeyNotFoundError is returned when a target row has no matching row in the source table
type JoinKeyNotFoundError struct {
	KeyColumn string
	Key       string
	Row       int
}

func (e *JoinKeyNotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("join key not found: row %d has an empty %s", e.Row, e.KeyColumn)
	}
	return fmt.Sprintf("join key not found: %s %q (row %d) has no match in source", e.KeyColumn, e.Key, e.Row)
}

// ColumnLengthMismatchError is returned when a column is not row-aligned with the rest of its table
type ColumnLengthMismatchError struct {
	Column string
	Want   int
	Got    int
}

func (e *ColumnLengthMismatchError) Error() string {
	return fmt.Sprintf("column %q has %d values, expected %d", e.Column, e.Got, e.Want)
}

// ValueError represents a cell that cannot be interpreted as the expected type
type ValueError struct {
	Column string
	Row    int
	Value  string
	Cause  error
}

func (e *ValueError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid value %q in column %q (row %d): %v", e.Value, e.Column, e.Row, e.Cause)
	}
	return fmt.Sprintf("invalid value %q in column %q (row %d)", e.Value, e.Column, e.Row)
}

func (e *ValueError) Unwrap() error {
	return e.Cause
}
