// Package data holds the closed registry of packaged sanctorale datasets.
//
// Packaged datasets are embedded into the binary and referenced from
// calendar definitions by identifier ("packaged: general_roman"). The set of
// identifiers is fixed at build time.
package data

import (
	"embed"
	"fmt"
	"slices"

	"github.com/churchcal/calrepo/format"
	"github.com/churchcal/calrepo/format/text"
	"github.com/churchcal/calrepo/format/toml"
	"github.com/churchcal/calrepo/format/yaml"
	"github.com/churchcal/calrepo/layer"
	"github.com/churchcal/calrepo/source/bytes"
)

//go:embed packaged
var packaged embed.FS

// Entry describes one packaged dataset.
type Entry struct {
	ID          string
	Description string
	Parser      format.Parser
	Data        []byte
}

// Registry maps packaged dataset identifiers to their contents.
// A Registry is read-only after construction and safe for concurrent use.
type Registry struct {
	entries map[string]Entry
}

// NewRegistry creates a Registry from entries. Duplicate identifiers panic,
// since registries are assembled from static tables.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{entries: make(map[string]Entry, len(entries))}
	for _, e := range entries {
		if _, dup := r.entries[e.ID]; dup {
			panic(fmt.Sprintf("data: duplicate packaged dataset %q", e.ID))
		}
		r.entries[e.ID] = e
	}
	return r
}

var defaultRegistry = NewRegistry(
	mustEmbedded("general_roman", "General Roman Calendar (selection)", "packaged/general_roman.txt", text.NewParser()),
	mustEmbedded("czech", "Proper celebrations of the Czech Republic", "packaged/czech.yml", yaml.NewParser()),
	mustEmbedded("latin_america", "Celebrations proper to Latin America", "packaged/latin_america.toml", toml.NewParser()),
)

// Default returns the registry of datasets bundled with calrepo.
func Default() *Registry {
	return defaultRegistry
}

func mustEmbedded(id, description, file string, parser format.Parser) Entry {
	b, err := packaged.ReadFile(file)
	if err != nil {
		panic(fmt.Sprintf("data: missing embedded dataset %s: %v", file, err))
	}
	return Entry{ID: id, Description: description, Parser: parser, Data: b}
}

// Lookup returns the entry registered under id.
func (r *Registry) Lookup(id string) (Entry, bool) {
	e, ok := r.entries[id]
	return e, ok
}

// Layer returns a layer reading the packaged dataset id.
// The returned layer decodes fresh on every Load.
func (r *Registry) Layer(name layer.Name, id string) (layer.Layer, bool) {
	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	return layer.New(name, bytes.New(e.Data, bytes.WithID(e.ID)), e.Parser), true
}

// IDs returns the registered identifiers in sorted order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
