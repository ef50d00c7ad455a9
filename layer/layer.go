// Package layer combines a Source and a format Parser into one sanctorale layer.
// Layers are composed in configuration order to produce a calendar's sanctorale.
package layer

import (
	"context"
	"sync"

	"github.com/churchcal/calrepo/format"
	"github.com/churchcal/calrepo/sanctorale"
	"github.com/churchcal/calrepo/source"
	"github.com/churchcal/calrepo/types"
)

// Name identifies a layer within one calendar.
type Name string

// Layer loads one sanctorale dataset.
//
// All Layer implementations must also implement types.DetailsFiller to
// describe where their data comes from.
type Layer interface {
	types.DetailsFiller

	// Name returns the identifier of this layer.
	Name() Name

	// Load reads and decodes the layer. Every call performs fresh I/O and
	// returns a new Dataset.
	Load(ctx context.Context) (*sanctorale.Dataset, error)
}

// FormatProvider is implemented by layers that know their encoding.
type FormatProvider interface {
	Format() format.Format
}

// basicLayer is the standard Layer implementation.
type basicLayer struct {
	name   Name
	source source.Source
	parser format.Parser

	mu      sync.Mutex
	entries int
}

// Ensure basicLayer implements Layer interface (which includes types.DetailsFiller).
var _ Layer = (*basicLayer)(nil)

// Ensure basicLayer implements FormatProvider interface.
var _ FormatProvider = (*basicLayer)(nil)

// New creates a Layer reading from src and decoding with parser.
//
// Example:
//
//	l := layer.New("overrides", fs.New("/data/overrides.yml"), yaml.NewParser())
//	ds, err := l.Load(ctx)
func New(name Name, src source.Source, parser format.Parser) Layer {
	return &basicLayer{
		name:   name,
		source: src,
		parser: parser,
	}
}

// Name returns the layer's name.
func (l *basicLayer) Name() Name {
	return l.name
}

// Format returns the parser's format.
func (l *basicLayer) Format() format.Format {
	return l.parser.Format()
}

// Load reads raw bytes from the source, parses them and decodes the dataset.
// Errors from each stage are returned unwrapped so callers can classify them.
func (l *basicLayer) Load(ctx context.Context) (*sanctorale.Dataset, error) {
	data, err := l.source.Load(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := l.parser.Parse(data)
	if err != nil {
		return nil, err
	}
	ds, err := sanctorale.Decode(raw)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.entries = ds.Len()
	l.mu.Unlock()
	return ds, nil
}

// FillDetails populates d from this layer and, when it implements
// types.DetailsFiller, from the underlying source.
func (l *basicLayer) FillDetails(d *types.Details) {
	d.Layer = string(l.name)
	d.Source = l.source.Type()
	d.Format = l.parser.Format()

	l.mu.Lock()
	d.Entries = l.entries
	l.mu.Unlock()

	if df, ok := l.source.(types.DetailsFiller); ok {
		df.FillDetails(d)
	}
}
