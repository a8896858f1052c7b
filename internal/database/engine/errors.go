package engine

import "fmt"

// NotIntegerError is returned when INCR is applied to a scalar that does
// not parse as a signed 64-bit decimal, or whose increment would overflow.
type NotIntegerError struct {
	Value string
}

func (e *NotIntegerError) Error() string {
	return fmt.Sprintf("value '%s' is not an integer or out of range", e.Value)
}
