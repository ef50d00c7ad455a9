package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is matched (via errors.Is) by every error caused by a
// defect in calendar definitions rather than by the environment: parse
// errors here, invalid or unknown data specs in the loader, unknown
// extensions and transfer rules downstream.
var ErrInvalidConfig = errors.New("invalid calendar configuration")

// NotFoundError is returned when the definitions file cannot be read.
// It unwraps to the underlying I/O error, so errors.Is(err, fs.ErrNotExist)
// reports a missing file.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("calendar definitions %q not readable: %v", e.Path, e.Err)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the definitions file is malformed.
type ParseError struct {
	Path     string
	Calendar string
	Reason   string
	Err      error
}

func (e *ParseError) Error() string {
	msg := e.Reason
	if e.Calendar != "" {
		msg = fmt.Sprintf("calendar %q: %s", e.Calendar, msg)
	}
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", e.Path, msg)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ParseError as a configuration defect.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidConfig
}
