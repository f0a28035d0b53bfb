package mail

import "fmt"

// AddressError represents an e-mail address the message builder rejected
type AddressError struct {
	Address string
	Cause   error
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("invalid address %q: %v", e.Address, e.Cause)
}

func (e *AddressError) Unwrap() error {
	return e.Cause
}

// SaveError represents a failure writing a draft to disk
type SaveError struct {
	Path  string
	Cause error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save draft to %s: %v", e.Path, e.Cause)
}

func (e *SaveError) Unwrap() error {
	return e.Cause
}
