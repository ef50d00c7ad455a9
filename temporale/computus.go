package temporale

import "time"

// Easter returns Easter Sunday of the Gregorian calendar for year, at
// midnight UTC. Uses the Meeus/Jones/Butcher algorithm.
func Easter(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1

	return Date(year, time.Month(month), day)
}

// Date returns midnight UTC of the given day. All dates handled by the
// temporale are normalised this way so they compare with ==.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Truncate drops the clock and location of t, keeping its calendar day.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// SundayAfter returns the first Sunday strictly after t.
func SundayAfter(t time.Time) time.Time {
	offset := 7 - int(t.Weekday())
	return t.AddDate(0, 0, offset)
}

// SundayBefore returns the last Sunday strictly before t.
func SundayBefore(t time.Time) time.Time {
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7
	}
	return t.AddDate(0, 0, -offset)
}
