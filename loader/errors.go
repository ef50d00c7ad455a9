package loader

import (
	"errors"
	"fmt"

	"github.com/churchcal/calrepo/config"
)

// ErrUnsupportedFormat is wrapped by DataLoadError when a file's extension
// maps to no known parser.
var ErrUnsupportedFormat = errors.New("unsupported data format")

// DataLoadError is returned when a data source cannot be read or decoded.
// It describes the environment (missing file, bad encoding) rather than the
// calendar definitions, so it does not match config.ErrInvalidConfig.
type DataLoadError struct {
	// Path is the resolved file path, or "packaged:<id>" for packaged data.
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("loading sanctorale data %q: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// UnknownPackagedDatasetError is returned when a packaged spec names an
// identifier missing from the registry.
type UnknownPackagedDatasetError struct {
	ID string
}

func (e *UnknownPackagedDatasetError) Error() string {
	return fmt.Sprintf("unknown packaged dataset %q", e.ID)
}

// Is reports the error as a configuration defect.
func (e *UnknownPackagedDatasetError) Is(target error) bool {
	return target == config.ErrInvalidConfig
}

// InvalidDataSpecError is returned for a spec that is neither a file nor a
// packaged reference.
type InvalidDataSpecError struct {
	Raw any
}

func (e *InvalidDataSpecError) Error() string {
	return fmt.Sprintf("invalid sanctorale data spec %#v: want a mapping with one of %q or %q",
		e.Raw, config.SpecFile, config.SpecPackaged)
}

// Is reports the error as a configuration defect.
func (e *InvalidDataSpecError) Is(target error) bool {
	return target == config.ErrInvalidConfig
}
