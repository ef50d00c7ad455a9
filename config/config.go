// Package config parses calendar definitions.
//
// A definitions file maps calendar names to entries:
//
//	roman:
//	  sanctorale:
//	    - packaged: general_roman
//	    - file: local_overrides.yml
//	  temporale_extensions: [ChristEternalPriest]
//	  transfer_to_sunday: [epiphany]
//
// The parsed Map is immutable: nothing in calrepo modifies it after Load,
// and accessors that expose raw data return copies.
package config

import (
	"context"
	"fmt"
	"slices"

	"github.com/churchcal/calrepo/format/yaml"
	"github.com/churchcal/calrepo/source/fs"
)

// Keys recognised in a calendar entry. Other keys are kept in Raw and
// ignored by the lookup pipeline.
const (
	KeySanctorale          = "sanctorale"
	KeyTemporaleExtensions = "temporale_extensions"
	KeyTransferToSunday    = "transfer_to_sunday"

	SpecFile     = "file"
	SpecPackaged = "packaged"
)

// SpecKind tags a DataSpec.
type SpecKind int

const (
	// KindInvalid is a spec matching neither recognised shape.
	KindInvalid SpecKind = iota
	// KindFile references a file relative to the data directory.
	KindFile
	// KindPackaged references a packaged dataset by identifier.
	KindPackaged
)

func (k SpecKind) String() string {
	switch k {
	case KindFile:
		return SpecFile
	case KindPackaged:
		return SpecPackaged
	default:
		return "invalid"
	}
}

// DataSpec is one sanctorale data source of a calendar.
type DataSpec struct {
	Kind SpecKind
	// Path is set for KindFile.
	Path string
	// ID is set for KindPackaged.
	ID string
	// Raw is the value as it appeared in the definitions file.
	Raw any
}

// String renders the spec for logs and error messages.
func (s DataSpec) String() string {
	switch s.Kind {
	case KindFile:
		return "file:" + s.Path
	case KindPackaged:
		return "packaged:" + s.ID
	default:
		return fmt.Sprintf("invalid:%v", s.Raw)
	}
}

// ParseDataSpec classifies a raw spec. A valid spec is a mapping with
// exactly one of the "file" or "packaged" keys holding a non-empty string.
// Anything else yields KindInvalid; the decision to reject it is left to
// the loader so that a single bad calendar does not prevent startup.
func ParseDataSpec(raw any) DataSpec {
	spec := DataSpec{Kind: KindInvalid, Raw: raw}

	m, ok := raw.(map[string]any)
	if !ok {
		return spec
	}
	file, hasFile := m[SpecFile]
	pkg, hasPkg := m[SpecPackaged]
	switch {
	case hasFile && hasPkg:
		return spec
	case hasFile:
		if s, ok := file.(string); ok && s != "" {
			spec.Kind, spec.Path = KindFile, s
		}
	case hasPkg:
		if s, ok := pkg.(string); ok && s != "" {
			spec.Kind, spec.ID = KindPackaged, s
		}
	}
	return spec
}

// CalendarConfig is one named calendar definition.
type CalendarConfig struct {
	Name string

	// Sanctorale lists the data sources in layering order. Never empty.
	Sanctorale []DataSpec

	// TemporaleExtensions is meaningful only when HasExtensions is true.
	TemporaleExtensions []string
	HasExtensions       bool

	// TransferToSunday is meaningful only when HasTransfers is true.
	TransferToSunday []string
	HasTransfers     bool

	// Raw is the entry exactly as parsed.
	Raw map[string]any
}

// Clone returns a deep copy of c.
func (c *CalendarConfig) Clone() *CalendarConfig {
	out := *c
	out.Sanctorale = make([]DataSpec, len(c.Sanctorale))
	for i, s := range c.Sanctorale {
		s.Raw = deepCopyValue(s.Raw)
		out.Sanctorale[i] = s
	}
	out.TemporaleExtensions = slices.Clone(c.TemporaleExtensions)
	out.TransferToSunday = slices.Clone(c.TransferToSunday)
	out.Raw = deepCopyMap(c.Raw)
	return &out
}

// Map holds calendar definitions by name.
type Map map[string]*CalendarConfig

// Load reads and parses the definitions file at path.
//
// Returns *NotFoundError when the file cannot be read and *ParseError when it
// is not valid YAML or an entry is malformed.
func Load(ctx context.Context, path string) (Map, error) {
	data, err := fs.New(path).Load(ctx)
	if err != nil {
		return nil, &NotFoundError{Path: path, Err: err}
	}

	raw, err := yaml.Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Reason: "invalid YAML", Err: err}
	}

	m, err := Parse(raw)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return m, nil
}

// Parse builds a Map from an already decoded definitions document.
func Parse(raw map[string]any) (Map, error) {
	out := make(Map, len(raw))
	for name, value := range raw {
		entry, ok := value.(map[string]any)
		if !ok {
			return nil, &ParseError{Calendar: name, Reason: fmt.Sprintf("entry must be a mapping, got %T", value)}
		}
		cfg, err := parseEntry(name, entry)
		if err != nil {
			return nil, err
		}
		out[name] = cfg
	}
	return out, nil
}

func parseEntry(name string, entry map[string]any) (*CalendarConfig, error) {
	cfg := &CalendarConfig{Name: name, Raw: deepCopyMap(entry)}

	specs, ok := entry[KeySanctorale].([]any)
	if !ok || len(specs) == 0 {
		return nil, &ParseError{Calendar: name, Reason: "sanctorale must be a non-empty list"}
	}
	cfg.Sanctorale = make([]DataSpec, len(specs))
	for i, s := range specs {
		cfg.Sanctorale[i] = ParseDataSpec(deepCopyValue(s))
	}

	var err error
	cfg.TemporaleExtensions, cfg.HasExtensions, err = stringList(entry, KeyTemporaleExtensions)
	if err != nil {
		return nil, &ParseError{Calendar: name, Reason: err.Error()}
	}
	cfg.TransferToSunday, cfg.HasTransfers, err = stringList(entry, KeyTransferToSunday)
	if err != nil {
		return nil, &ParseError{Calendar: name, Reason: err.Error()}
	}
	return cfg, nil
}

// stringList reads an optional list of strings. A missing key or an explicit
// null both count as absent.
func stringList(entry map[string]any, key string) ([]string, bool, error) {
	value, ok := entry[key]
	if !ok || value == nil {
		return nil, false, nil
	}
	list, ok := value.([]any)
	if !ok {
		return nil, false, fmt.Errorf("%s must be a list, got %T", key, value)
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false, fmt.Errorf("%s[%d] must be a string, got %T", key, i, item)
		}
		out = append(out, s)
	}
	return out, true, nil
}
