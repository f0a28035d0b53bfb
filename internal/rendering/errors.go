// Package rendering builds e-mail bodies from templates and publication records.
package rendering

import "fmt"

// TemplateError represents an error reading or converting an e-mail template
type TemplateError struct {
	Message string
	Cause   error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("template error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("template error: %s", e.Message)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// EmptyNameListError is returned when a salutation is requested for zero authors
type EmptyNameListError struct {
	Field string // the raw authors field the list was split from, if any
}

func (e *EmptyNameListError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("empty author list in %q", e.Field)
	}
	return "empty author list"
}

// ArityMismatchError is returned when placeholders and values differ in count
type ArityMismatchError struct {
	Placeholders int
	Values       int
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("arity mismatch: %d placeholders, %d values", e.Placeholders, e.Values)
}
