// Package toml provides the TOML dataset parser.
//
// Date keys must be quoted in TOML ("01-17" = {...} or [["01-17"]] arrays
// of tables for several celebrations on one day).
package toml

import (
	"bytes"
	"errors"

	"github.com/churchcal/calrepo/format"
	"github.com/pelletier/go-toml/v2"
)

var tomlUnmarshal = toml.Unmarshal

// NewParser creates a new TOML parser.
func NewParser() format.Parser {
	return format.NewParser(format.FormatTOML, Parse)
}

// Parse decodes TOML data. Returns an empty map if data is empty.
func Parse(data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]any{}, nil
	}

	var result map[string]any
	if err := tomlUnmarshal(data, &result); err != nil {
		se := &format.SyntaxError{Format: format.FormatTOML, Reason: err.Error(), Err: err}
		var de *toml.DecodeError
		if errors.As(err, &de) {
			se.Line, _ = de.Position()
		}
		return nil, se
	}

	if result == nil {
		return map[string]any{}, nil
	}
	return result, nil
}
