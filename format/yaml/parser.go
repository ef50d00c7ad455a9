// Package yaml provides the YAML parser for datasets and calendar definitions.
package yaml

import (
	"errors"
	"fmt"

	"github.com/churchcal/calrepo/format"
	"gopkg.in/yaml.v3"
)

// NewParser creates a new YAML parser.
//
// Example:
//
//	parser := yaml.NewParser()
//	l := layer.New("overrides", fs.New("overrides.yml"), parser)
func NewParser() format.Parser {
	return format.NewParser(format.FormatYAML, Parse)
}

// Parse decodes a YAML document whose root is a mapping.
// Empty input, or a document containing only comments, yields an empty map.
func Parse(data []byte) (map[string]any, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &format.SyntaxError{Format: format.FormatYAML, Line: errorLine(err), Reason: err.Error(), Err: err}
	}

	if root.Kind == 0 || len(root.Content) == 0 {
		return map[string]any{}, nil
	}

	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, &format.SyntaxError{
			Format: format.FormatYAML,
			Line:   doc.Line,
			Reason: fmt.Sprintf("root must be a mapping, got %s", kindName(doc.Kind)),
		}
	}

	var out map[string]any
	if err := doc.Decode(&out); err != nil {
		return nil, &format.SyntaxError{Format: format.FormatYAML, Line: doc.Line, Reason: err.Error(), Err: err}
	}
	if out == nil {
		out = map[string]any{}
	}
	return format.Normalize(out).(map[string]any), nil
}

// errorLine extracts the first line number from a "yaml: line N:" syntax
// error or a *yaml.TypeError.
func errorLine(err error) int {
	var line int
	if _, scanErr := fmt.Sscanf(err.Error(), "yaml: line %d:", &line); scanErr == nil {
		return line
	}
	var te *yaml.TypeError
	if errors.As(err, &te) && len(te.Errors) > 0 {
		if _, scanErr := fmt.Sscanf(te.Errors[0], "line %d:", &line); scanErr == nil {
			return line
		}
	}
	return 0
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
