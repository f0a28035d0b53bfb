package pipeline

import "fmt"

// MissingRecipientError is returned when a record that must be sent has no e-mail address
type MissingRecipientError struct {
	Index int
	Key   string
}

func (e *MissingRecipientError) Error() string {
	return fmt.Sprintf("record %d (%s) has no e-mail address to send to", e.Index+1, e.Key)
}

// RecordError wraps a failure while composing or emitting one ranked record
type RecordError struct {
	Index int
	Key   string
	Cause error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %d (%s): %v", e.Index+1, e.Key, e.Cause)
}

func (e *RecordError) Unwrap() error {
	return e.Cause
}
