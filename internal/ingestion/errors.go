// Package ingestion reads Web of Science exports into column tables.
package ingestion

import "fmt"

// UnsupportedFormatError is returned for export files the loader cannot parse
type UnsupportedFormatError struct {
	Path string
	Hint string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("unsupported export format: %s: %s", e.Path, e.Hint)
	}
	return fmt.Sprintf("unsupported export format: %s", e.Path)
}

// ReadError represents a failure opening or parsing an export file
type ReadError struct {
	Path  string
	Cause error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read export %s: %v", e.Path, e.Cause)
}

func (e *ReadError) Unwrap() error {
	return e.Cause
}
