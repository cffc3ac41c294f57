package notes

import "fmt"

// ValidationError is returned when a required note field is empty after trimming.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("note %s is required", e.Field)
}
