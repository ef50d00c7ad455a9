package temporale

import (
	"fmt"
	"strings"

	"github.com/churchcal/calrepo/config"
)

// UnknownExtensionError is returned for an extension name outside the
// registry.
type UnknownExtensionError struct {
	Name string
}

func (e *UnknownExtensionError) Error() string {
	return fmt.Sprintf("unknown temporale extension %q (known: %s)", e.Name, strings.Join(ExtensionNames(), ", "))
}

// Is reports the error as a configuration defect.
func (e *UnknownExtensionError) Is(target error) bool {
	return target == config.ErrInvalidConfig
}
