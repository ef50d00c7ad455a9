// Package calendarium defines the calendar engine consumed by calrepo and
// ships a small default implementation.
//
// A calendar is built from a composed sanctorale dataset and optional
// temporale options. The repository depends only on the Factory interface,
// so any engine can be plugged in.
package calendarium

import (
	"time"

	"github.com/churchcal/calrepo/sanctorale"
	"github.com/churchcal/calrepo/temporale"
)

// Calendar answers what is celebrated on a given date.
type Calendar interface {
	// Day returns the celebrations of date. Only the calendar day of date
	// is considered; its clock and location are ignored.
	Day(date time.Time) Day

	// Sanctorale returns the dataset the calendar was built from.
	Sanctorale() *sanctorale.Dataset

	// Options returns the temporale options, or nil for engine defaults.
	Options() *temporale.Options
}

// Factory constructs calendars.
type Factory interface {
	New(ds *sanctorale.Dataset, opts *temporale.Options) (Calendar, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(ds *sanctorale.Dataset, opts *temporale.Options) (Calendar, error)

// New calls f(ds, opts).
func (f FactoryFunc) New(ds *sanctorale.Dataset, opts *temporale.Options) (Calendar, error) {
	return f(ds, opts)
}

// Day is the result of a calendar query.
type Day struct {
	Date time.Time

	// Temporale holds movable celebrations falling on Date.
	Temporale []sanctorale.Celebration

	// Sanctorale holds the fixed-date celebrations of Date.
	Sanctorale []sanctorale.Celebration
}

// Celebrations returns temporale celebrations followed by sanctorale ones.
// No precedence between them is resolved.
func (d Day) Celebrations() []sanctorale.Celebration {
	out := make([]sanctorale.Celebration, 0, len(d.Temporale)+len(d.Sanctorale))
	out = append(out, d.Temporale...)
	return append(out, d.Sanctorale...)
}
