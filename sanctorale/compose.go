package sanctorale

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNoLayers is returned by Compose when called without layers.
var ErrNoLayers = errors.New("sanctorale: at least one layer is required")

// Origins records, for each day of a composed Dataset, the index of the
// layer whose entry won.
type Origins map[MonthDay]int

// Compose merges ordered layers into a new Dataset.
//
// For each day, the entry of the highest-index layer defining it wins as a
// whole: celebrations are never merged field by field or appended across
// layers. Days defined by a single layer pass through unchanged, and a later
// layer can add days but never remove one.
//
// Example:
//
//	merged, err := sanctorale.Compose(generalRoman, nationalProper, diocesan)
func Compose(layers ...*Dataset) (*Dataset, error) {
	merged, _, err := ComposeTraced(layers...)
	return merged, err
}

// ComposeTraced is Compose that also reports which layer supplied each day.
func ComposeTraced(layers ...*Dataset) (*Dataset, Origins, error) {
	if len(layers) == 0 {
		return nil, nil, ErrNoLayers
	}

	merged := &Dataset{days: make(map[MonthDay][]Celebration)}
	origins := make(Origins)
	for i, layer := range layers {
		if layer == nil {
			return nil, nil, fmt.Errorf("sanctorale: layer %d is nil", i)
		}
		for md, list := range layer.days {
			merged.days[md] = slices.Clone(list)
			origins[md] = i
		}
	}
	return merged, origins, nil
}
