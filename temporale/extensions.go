package temporale

import (
	"slices"
	"time"

	"github.com/churchcal/calrepo/sanctorale"
)

// Feast is a celebration bound to a concrete date.
type Feast struct {
	Date        time.Time
	Celebration sanctorale.Celebration
}

// Extension adds movable celebrations to the temporale.
type Extension interface {
	// Name returns the canonical extension name.
	Name() string

	// Feasts returns the celebrations the extension contributes in year.
	Feasts(year int) []Feast
}

type extension struct {
	name   string
	feasts func(year int) []Feast
}

func (e *extension) Name() string { return e.name }
func (e *extension) Feasts(year int) []Feast { return e.feasts(year) }

// Canonical extension names.
const (
	ChristEternalPriest       = "ChristEternalPriest"
	DedicationBeforeAllSaints = "DedicationBeforeAllSaints"
)

// registry is the closed set of known extensions. Names are matched
// exactly or in snake_case.
var registry = map[string]func() Extension{
	ChristEternalPriest:       newChristEternalPriest,
	DedicationBeforeAllSaints: newDedicationBeforeAllSaints,
}

// Thursday after Pentecost.
func newChristEternalPriest() Extension {
	return &extension{
		name: ChristEternalPriest,
		feasts: func(year int) []Feast {
			return []Feast{{
				Date: Easter(year).AddDate(0, 0, 53),
				Celebration: sanctorale.Celebration{
					Title:  "Our Lord Jesus Christ, the Eternal High Priest",
					Rank:   sanctorale.RankFeast,
					Colour: sanctorale.ColourWhite,
					Symbol: "christ_eternal_priest",
				},
			}}
		},
	}
}

// Last Sunday of October, for churches whose date of dedication is unknown.
func newDedicationBeforeAllSaints() Extension {
	return &extension{
		name: DedicationBeforeAllSaints,
		feasts: func(year int) []Feast {
			return []Feast{{
				Date: SundayBefore(Date(year, time.November, 1)),
				Celebration: sanctorale.Celebration{
					Title:  "Anniversary of the Dedication of a Church",
					Rank:   sanctorale.RankSolemnity,
					Colour: sanctorale.ColourWhite,
					Symbol: "dedication",
				},
			}}
		},
	}
}

// LookupExtension returns a new instance of the named extension.
// Returns *UnknownExtensionError for names outside the registry.
func LookupExtension(name string) (Extension, error) {
	if ctor, ok := registry[name]; ok {
		return ctor(), nil
	}
	for canonical, ctor := range registry {
		if snakeCase(canonical) == name {
			return ctor(), nil
		}
	}
	return nil, &UnknownExtensionError{Name: name}
}

// ExtensionNames returns the canonical names of all known extensions,
// sorted.
func ExtensionNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
