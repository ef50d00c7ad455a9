// Package jsonc provides the JSON-with-comments dataset parser.
// Standard JSON is a subset and parses unchanged.
package jsonc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/churchcal/calrepo/format"
	"github.com/tailscale/hujson"
)

// NewParser creates a new JSONC parser.
func NewParser() format.Parser {
	return format.NewParser(format.FormatJSONC, Parse)
}

// Parse decodes JSONC data. Returns an empty map if data is empty.
func Parse(data []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return map[string]any{}, nil
	}

	v, err := hujson.Parse(trimmed)
	if err != nil {
		return nil, &format.SyntaxError{Format: format.FormatJSONC, Line: lineAt(err), Reason: err.Error(), Err: err}
	}

	// Strip comments and trailing commas before decoding.
	v.Standardize()

	var result map[string]any
	if err := json.Unmarshal(v.Pack(), &result); err != nil {
		return nil, &format.SyntaxError{Format: format.FormatJSONC, Reason: err.Error(), Err: err}
	}

	if result == nil {
		return map[string]any{}, nil
	}
	return result, nil
}

// lineAt extracts the line number from a hujson error message.
func lineAt(err error) int {
	msg := err.Error()
	i := strings.Index(msg, "line ")
	if i < 0 {
		return 0
	}
	var line int
	if _, scanErr := fmt.Sscanf(msg[i:], "line %d", &line); scanErr != nil {
		return 0
	}
	return line
}
