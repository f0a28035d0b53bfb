package ranking

import "fmt"

// InsufficientRecordsError is returned when fewer ranked records exist than were requested
type InsufficientRecordsError struct {
	Requested int
	Available int
}

func (e *InsufficientRecordsError) Error() string {
	return fmt.Sprintf("insufficient records: requested top %d, only %d ranked", e.Requested, e.Available)
}
