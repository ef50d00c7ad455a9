package calrepo

import (
	"errors"
	"fmt"
)

// ErrNilCalendar is returned when a factory reports success without a
// calendar.
var ErrNilCalendar = errors.New("factory returned a nil calendar")

// KeyNotFoundError is returned by Lookup for a name missing from the
// definitions.
type KeyNotFoundError struct {
	Name string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("calendar %q not found", e.Name)
}

// LookupError wraps any failure while building a calendar. Name is the
// calendar being looked up; Err is the cause, reachable with errors.As.
type LookupError struct {
	Name string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("calendar %q: %v", e.Name, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}
