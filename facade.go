package calrepo

import (
	"slices"
	"time"

	"github.com/churchcal/calrepo/calendarium"
	"github.com/churchcal/calrepo/config"
	"github.com/churchcal/calrepo/sanctorale"
	"github.com/churchcal/calrepo/types"
)

// Facade pairs a calendar with the definition it was built from.
// A Facade is immutable and shares no state with other lookups.
type Facade struct {
	calendar calendarium.Calendar
	config   *config.CalendarConfig
	sources  []types.Details
	origins  sanctorale.Origins
}

// Calendar returns the constructed calendar.
func (f *Facade) Calendar() calendarium.Calendar {
	return f.calendar
}

// Name returns the calendar's name.
func (f *Facade) Name() string {
	return f.config.Name
}

// Config returns a copy of the calendar's definition.
func (f *Facade) Config() *config.CalendarConfig {
	return f.config.Clone()
}

// Day is shorthand for f.Calendar().Day(date).
func (f *Facade) Day(date time.Time) calendarium.Day {
	return f.calendar.Day(date)
}

// Sources describes each composed layer, in layering order.
func (f *Facade) Sources() []types.Details {
	return slices.Clone(f.sources)
}

// Origin returns the layer whose entry for md ended up in the composed
// sanctorale.
func (f *Facade) Origin(md sanctorale.MonthDay) (types.Details, bool) {
	i, ok := f.origins[md]
	if !ok {
		return types.Details{}, false
	}
	return f.sources[i], true
}
