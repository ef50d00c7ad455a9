package sanctorale

import (
	"slices"
)

// Dataset is an immutable set of celebrations keyed by day.
type Dataset struct {
	days map[MonthDay][]Celebration
}

// New creates a Dataset from days. The input is copied. Days with no
// celebrations are dropped.
func New(days map[MonthDay][]Celebration) *Dataset {
	d := &Dataset{days: make(map[MonthDay][]Celebration, len(days))}
	for md, list := range days {
		if len(list) == 0 {
			continue
		}
		d.days[md] = slices.Clone(list)
	}
	return d
}

// Get returns a copy of the celebrations defined for md.
func (d *Dataset) Get(md MonthDay) ([]Celebration, bool) {
	list, ok := d.days[md]
	if !ok {
		return nil, false
	}
	return slices.Clone(list), true
}

// Has reports whether md is defined.
func (d *Dataset) Has(md MonthDay) bool {
	_, ok := d.days[md]
	return ok
}

// Len returns the number of defined days.
func (d *Dataset) Len() int {
	return len(d.days)
}

// Days returns the defined days in calendar order.
func (d *Dataset) Days() []MonthDay {
	out := make([]MonthDay, 0, len(d.days))
	for md := range d.days {
		out = append(out, md)
	}
	slices.SortFunc(out, func(a, b MonthDay) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		default:
			return 0
		}
	})
	return out
}

// Equal reports whether d and other define the same celebrations on the same days.
func (d *Dataset) Equal(other *Dataset) bool {
	if d.Len() != other.Len() {
		return false
	}
	for md, list := range d.days {
		o, ok := other.days[md]
		if !ok || !slices.Equal(list, o) {
			return false
		}
	}
	return true
}
