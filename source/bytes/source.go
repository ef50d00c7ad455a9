// Package bytes provides a byte slice based source.
// It backs packaged datasets embedded into the binary.
package bytes

import (
	"context"

	"github.com/churchcal/calrepo/source"
	"github.com/churchcal/calrepo/types"
)

// Source loads raw data from a byte slice.
type Source struct {
	data []byte
	typ  source.SourceType
	id   string
}

// Ensure Source implements the source.Source interface.
var _ source.Source = (*Source)(nil)

// Ensure Source implements the types.DetailsFiller interface.
var _ types.DetailsFiller = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithID records an identifier reported through FillDetails.
func WithID(id string) Option {
	return func(s *Source) {
		s.id = id
	}
}

// WithType overrides the reported source type. Default is source.TypePackaged.
func WithType(t source.SourceType) Option {
	return func(s *Source) {
		s.typ = t
	}
}

// New creates a source from raw bytes.
//
// Example:
//
//	src := bytes.New(data, bytes.WithID("general_roman"))
func New(data []byte, opts ...Option) *Source {
	s := &Source{
		data: data,
		typ:  source.TypePackaged,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromString creates a source from a string.
//
// Example:
//
//	src := bytes.FromString("01-17:\n  title: Saint Anthony, Abbot\n")
func FromString(data string, opts ...Option) *Source {
	return New([]byte(data), opts...)
}

// Type returns the source type identifier.
func (s *Source) Type() source.SourceType {
	return s.typ
}

// ID returns the identifier given by WithID.
func (s *Source) ID() string {
	return s.id
}

// FillDetails implements types.DetailsFiller.
func (s *Source) FillDetails(d *types.Details) {
	d.ID = s.id
}

// Load implements the source.Source interface.
// Returns a copy of the data to prevent callers from modifying the source.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := make([]byte, len(s.data))
	copy(result, s.data)
	return result, nil
}
