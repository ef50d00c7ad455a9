// Package sanctorale holds the fixed-date part of a liturgical calendar.
//
// A Dataset maps calendar days (MonthDay) to the celebrations observed on
// them. Datasets are immutable values: constructors copy their input,
// accessors return copies, and Compose builds a new Dataset from ordered
// layers.
package sanctorale

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Rank is the liturgical rank of a celebration.
type Rank string

const (
	RankSolemnity        Rank = "solemnity"
	RankFeast            Rank = "feast"
	RankMemorial         Rank = "memorial"
	RankOptionalMemorial Rank = "optional_memorial"
)

var ranks = map[string]Rank{
	"solemnity":         RankSolemnity,
	"feast":             RankFeast,
	"memorial":          RankMemorial,
	"optional_memorial": RankOptionalMemorial,
	"optional":          RankOptionalMemorial,
}

// ParseRank accepts a rank name in any case, with spaces or hyphens in
// place of underscores. The empty string yields RankOptionalMemorial.
func ParseRank(s string) (Rank, error) {
	if strings.TrimSpace(s) == "" {
		return RankOptionalMemorial, nil
	}
	if r, ok := ranks[normalizeWord(s)]; ok {
		return r, nil
	}
	return "", fmt.Errorf("unknown rank %q", s)
}

// Colour is the liturgical colour of a celebration.
type Colour string

const (
	ColourWhite  Colour = "white"
	ColourRed    Colour = "red"
	ColourGreen  Colour = "green"
	ColourViolet Colour = "violet"
	ColourRose   Colour = "rose"
	ColourBlack  Colour = "black"
)

var colours = map[string]Colour{
	"white":  ColourWhite,
	"w":      ColourWhite,
	"red":    ColourRed,
	"r":      ColourRed,
	"green":  ColourGreen,
	"g":      ColourGreen,
	"violet": ColourViolet,
	"purple": ColourViolet,
	"v":      ColourViolet,
	"rose":   ColourRose,
	"black":  ColourBlack,
}

// ParseColour accepts a colour name or its single-letter abbreviation in any
// case. The empty string yields ColourWhite.
func ParseColour(s string) (Colour, error) {
	if strings.TrimSpace(s) == "" {
		return ColourWhite, nil
	}
	if c, ok := colours[normalizeWord(s)]; ok {
		return c, nil
	}
	return "", fmt.Errorf("unknown colour %q", s)
}

func normalizeWord(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

// Celebration is one observance on a given day.
type Celebration struct {
	Title  string `mapstructure:"title" yaml:"title"`
	Rank   Rank   `mapstructure:"rank" yaml:"rank"`
	Colour Colour `mapstructure:"colour" yaml:"colour"`
	Symbol string `mapstructure:"symbol" yaml:"symbol,omitempty"`
}

// MonthDay identifies a day of the year independently of the year.
type MonthDay struct {
	Month time.Month
	Day   int
}

// daysIn uses a leap year so that 02-29 is a valid key.
var daysIn = [13]int{0, 31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// NewMonthDay validates and returns a MonthDay.
func NewMonthDay(month time.Month, day int) (MonthDay, error) {
	if month < time.January || month > time.December {
		return MonthDay{}, fmt.Errorf("month %d out of range", month)
	}
	if day < 1 || day > daysIn[month] {
		return MonthDay{}, fmt.Errorf("day %d out of range for %s", day, month)
	}
	return MonthDay{Month: month, Day: day}, nil
}

// ParseMonthDay parses "MM-DD" (leading zeros optional) or "M/D".
func ParseMonthDay(s string) (MonthDay, error) {
	sep := "-"
	if strings.Contains(s, "/") {
		sep = "/"
	}
	ms, ds, ok := strings.Cut(strings.TrimSpace(s), sep)
	if !ok {
		return MonthDay{}, fmt.Errorf("invalid date key %q: want MM-DD or M/D", s)
	}
	m, err := strconv.Atoi(ms)
	if err != nil {
		return MonthDay{}, fmt.Errorf("invalid date key %q: bad month", s)
	}
	d, err := strconv.Atoi(ds)
	if err != nil {
		return MonthDay{}, fmt.Errorf("invalid date key %q: bad day", s)
	}
	md, err := NewMonthDay(time.Month(m), d)
	if err != nil {
		return MonthDay{}, fmt.Errorf("invalid date key %q: %w", s, err)
	}
	return md, nil
}

// MonthDayOf returns the MonthDay of t in t's location.
func MonthDayOf(t time.Time) MonthDay {
	return MonthDay{Month: t.Month(), Day: t.Day()}
}

// String formats the day as "MM-DD".
func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// Before reports whether md comes earlier in the year than other.
func (md MonthDay) Before(other MonthDay) bool {
	if md.Month != other.Month {
		return md.Month < other.Month
	}
	return md.Day < other.Day
}
