// Package format decodes raw dataset bytes into generic maps.
//
// Every parser produces the same shape regardless of encoding: a map from
// date key ("MM-DD" or "M/D") to either one celebration record or a list of
// them. Interpreting that shape is the job of package sanctorale.
package format

import (
	"fmt"

	"github.com/churchcal/calrepo/types"
)

// Format is an alias for types.Format.
type Format = types.Format

const (
	// FormatYAML is YAML (using gopkg.in/yaml.v3).
	FormatYAML Format = "yaml"

	// FormatTOML is TOML (using github.com/pelletier/go-toml/v2).
	FormatTOML Format = "toml"

	// FormatJSONC is JSON with comments (using github.com/tailscale/hujson).
	// Plain JSON is accepted by the same parser.
	FormatJSONC Format = "jsonc"

	// FormatText is the line-oriented sanctorale text format.
	FormatText Format = "text"
)

// ParseFunc parses raw bytes into a generic map.
type ParseFunc func([]byte) (map[string]any, error)

// Parser parses raw bytes of one format.
type Parser interface {
	// Parse decodes data. Empty input yields an empty, non-nil map.
	Parse(data []byte) (map[string]any, error)

	// Format returns the format this parser handles.
	Format() Format
}

// NewParser creates a Parser with the given format and parse function.
//
// Example:
//
//	parser := format.NewParser(format.FormatYAML, yaml.Parse)
func NewParser(f Format, parse ParseFunc) Parser {
	return &parser{format: f, parseFunc: parse}
}

type parser struct {
	format    Format
	parseFunc ParseFunc
}

// Ensure parser implements the Parser interface.
var _ Parser = (*parser)(nil)

func (p *parser) Parse(data []byte) (map[string]any, error) {
	return p.parseFunc(data)
}

func (p *parser) Format() Format {
	return p.format
}

// SyntaxError reports malformed input. Line is 1-based and zero when the
// underlying decoder does not expose a position.
type SyntaxError struct {
	Format Format
	Line   int
	Reason string
	Err    error
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("invalid %s at line %d: %s", e.Format, e.Line, e.Reason)
	}
	return fmt.Sprintf("invalid %s: %s", e.Format, e.Reason)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// Normalize converts nested map[any]any values (as produced by YAML decoding
// of mappings with non-string keys) into map[string]any, recursively. Keys
// are formatted with %v. Maps and slices are rewritten in place.
func Normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = Normalize(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = Normalize(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = Normalize(item)
		}
		return val
	default:
		return v
	}
}
