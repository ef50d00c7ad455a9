// Package loader turns data specs from calendar definitions into sanctorale
// datasets.
//
// File specs are resolved against a base directory and decoded with a parser
// chosen by file extension; packaged specs are looked up in a data.Registry.
// Every call performs fresh I/O.
package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/churchcal/calrepo/config"
	"github.com/churchcal/calrepo/data"
	"github.com/churchcal/calrepo/format"
	"github.com/churchcal/calrepo/format/jsonc"
	"github.com/churchcal/calrepo/format/text"
	"github.com/churchcal/calrepo/format/toml"
	"github.com/churchcal/calrepo/format/yaml"
	"github.com/churchcal/calrepo/layer"
	"github.com/churchcal/calrepo/sanctorale"
	"github.com/churchcal/calrepo/source/fs"
	"github.com/churchcal/calrepo/types"
)

// parsers maps lower-cased file extensions to parsers.
var parsers = map[string]format.Parser{
	".yml":   yaml.NewParser(),
	".yaml":  yaml.NewParser(),
	".toml":  toml.NewParser(),
	".json":  jsonc.NewParser(),
	".jsonc": jsonc.NewParser(),
	".txt":   text.NewParser(),
}

// ParserFor returns the parser for path's extension.
func ParserFor(path string) (format.Parser, error) {
	ext := strings.ToLower(filepath.Ext(path))
	p, ok := parsers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}
	return p, nil
}

// Loader resolves data specs. A Loader is immutable and safe for concurrent
// use.
type Loader struct {
	basePath string
	registry *data.Registry
}

// Option configures a Loader.
type Option func(*Loader)

// WithRegistry sets the packaged dataset registry. Default is data.Default().
func WithRegistry(r *data.Registry) Option {
	return func(l *Loader) {
		if r != nil {
			l.registry = r
		}
	}
}

// New creates a Loader resolving file specs relative to basePath.
func New(basePath string, opts ...Option) *Loader {
	l := &Loader{basePath: basePath, registry: data.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// BasePath returns the directory file specs are resolved against.
func (l *Loader) BasePath() string {
	return l.basePath
}

// Layer builds the layer for spec without loading it.
// The layer is named after the spec ("file:overrides.yml",
// "packaged:general_roman").
func (l *Loader) Layer(spec config.DataSpec) (layer.Layer, error) {
	name := layer.Name(spec.String())

	switch spec.Kind {
	case config.KindFile:
		path := filepath.Join(l.basePath, spec.Path)
		parser, err := ParserFor(path)
		if err != nil {
			return nil, &DataLoadError{Path: path, Err: err}
		}
		return layer.New(name, fs.New(path), parser), nil

	case config.KindPackaged:
		lay, ok := l.registry.Layer(name, spec.ID)
		if !ok {
			return nil, &UnknownPackagedDatasetError{ID: spec.ID}
		}
		return lay, nil

	default:
		return nil, &InvalidDataSpecError{Raw: spec.Raw}
	}
}

// Resolve loads the dataset described by spec, together with the details of
// the layer it came from.
//
// Returns *InvalidDataSpecError, *UnknownPackagedDatasetError or
// *DataLoadError.
func (l *Loader) Resolve(ctx context.Context, spec config.DataSpec) (*sanctorale.Dataset, types.Details, error) {
	lay, err := l.Layer(spec)
	if err != nil {
		return nil, types.Details{}, err
	}

	ds, err := lay.Load(ctx)
	var d types.Details
	lay.FillDetails(&d)
	if err != nil {
		return nil, d, &DataLoadError{Path: loadPath(spec, d), Err: err}
	}
	return ds, d, nil
}

func loadPath(spec config.DataSpec, d types.Details) string {
	if d.Path != "" {
		return d.Path
	}
	return spec.String()
}
