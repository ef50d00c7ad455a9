package calendarium

import (
	"slices"
	"time"

	"github.com/churchcal/calrepo/sanctorale"
	"github.com/churchcal/calrepo/temporale"
)

// supportedTransfers lists the rules PerpetualCalendar implements.
var supportedTransfers = []temporale.TransferRule{
	temporale.TransferEpiphany,
	temporale.TransferAscension,
	temporale.TransferCorpusChristi,
}

// PerpetualFactory builds PerpetualCalendar values.
type PerpetualFactory struct{}

// Ensure PerpetualFactory implements Factory.
var _ Factory = PerpetualFactory{}

// New validates opts and returns a calendar over ds.
// Returns *UnknownTransferRuleError for a rule outside the supported set.
func (PerpetualFactory) New(ds *sanctorale.Dataset, opts *temporale.Options) (Calendar, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}
	if opts != nil {
		for _, rule := range opts.TransferToSunday {
			if !slices.Contains(supportedTransfers, rule) {
				return nil, &UnknownTransferRuleError{Rule: rule}
			}
		}
	}
	return &PerpetualCalendar{sanctorale: ds, options: opts}, nil
}

// PerpetualCalendar is a Gregorian calendar valid for any year. It knows
// the principal movable celebrations, applies transfer rules and
// extensions, and lists sanctorale entries as given.
type PerpetualCalendar struct {
	sanctorale *sanctorale.Dataset
	options    *temporale.Options
}

// Ensure PerpetualCalendar implements Calendar.
var _ Calendar = (*PerpetualCalendar)(nil)

// Sanctorale returns the dataset the calendar was built from.
func (c *PerpetualCalendar) Sanctorale() *sanctorale.Dataset {
	return c.sanctorale
}

// Options returns the temporale options, or nil.
func (c *PerpetualCalendar) Options() *temporale.Options {
	return c.options
}

// Day implements Calendar.
func (c *PerpetualCalendar) Day(date time.Time) Day {
	date = temporale.Truncate(date)
	day := Day{Date: date}

	for _, f := range c.Temporale(date.Year()) {
		if f.Date.Equal(date) {
			day.Temporale = append(day.Temporale, f.Celebration)
		}
	}
	day.Sanctorale, _ = c.sanctorale.Get(sanctorale.MonthDayOf(date))
	return day
}

// Temporale returns the movable celebrations of year, including those added
// by extensions, ordered by date.
func (c *PerpetualCalendar) Temporale(year int) []temporale.Feast {
	feasts := movable(year, c.transfers)
	if c.options != nil {
		for _, ext := range c.options.Extensions {
			feasts = append(feasts, ext.Feasts(year)...)
		}
	}
	slices.SortStableFunc(feasts, func(a, b temporale.Feast) int {
		return a.Date.Compare(b.Date)
	})
	return feasts
}

func (c *PerpetualCalendar) transfers(rule temporale.TransferRule) bool {
	return c.options != nil && c.options.Transfers(rule)
}

func celebration(title string, rank sanctorale.Rank, colour sanctorale.Colour, symbol string) sanctorale.Celebration {
	return sanctorale.Celebration{Title: title, Rank: rank, Colour: colour, Symbol: symbol}
}

// movable computes the principal movable celebrations of year.
func movable(year int, transferred func(temporale.TransferRule) bool) []temporale.Feast {
	easter := temporale.Easter(year)
	days := func(n int) time.Time { return easter.AddDate(0, 0, n) }

	epiphany := temporale.Date(year, time.January, 6)
	if transferred(temporale.TransferEpiphany) {
		// Sunday between January 2 and 8.
		epiphany = temporale.SundayAfter(temporale.Date(year, time.January, 1))
	}
	ascension := days(39)
	if transferred(temporale.TransferAscension) {
		ascension = days(42)
	}
	corpusChristi := days(60)
	if transferred(temporale.TransferCorpusChristi) {
		corpusChristi = days(63)
	}

	christmas := temporale.Date(year, time.December, 25)
	advent := temporale.SundayBefore(christmas).AddDate(0, 0, -21)

	const (
		solemnity = sanctorale.RankSolemnity
		white     = sanctorale.ColourWhite
		red       = sanctorale.ColourRed
		violet    = sanctorale.ColourViolet
	)
	return []temporale.Feast{
		{Date: epiphany, Celebration: celebration("The Epiphany of the Lord", solemnity, white, "epiphany")},
		{Date: days(-46), Celebration: celebration("Ash Wednesday", solemnity, violet, "ash_wednesday")},
		{Date: days(-7), Celebration: celebration("Palm Sunday of the Passion of the Lord", solemnity, red, "palm_sunday")},
		{Date: days(-2), Celebration: celebration("Friday of the Passion of the Lord", solemnity, red, "good_friday")},
		{Date: easter, Celebration: celebration("Easter Sunday of the Resurrection of the Lord", solemnity, white, "easter_sunday")},
		{Date: ascension, Celebration: celebration("The Ascension of the Lord", solemnity, white, "ascension")},
		{Date: days(49), Celebration: celebration("Pentecost Sunday", solemnity, red, "pentecost")},
		{Date: days(56), Celebration: celebration("The Most Holy Trinity", solemnity, white, "holy_trinity")},
		{Date: corpusChristi, Celebration: celebration("The Most Holy Body and Blood of Christ", solemnity, white, "corpus_christi")},
		{Date: days(68), Celebration: celebration("The Most Sacred Heart of Jesus", solemnity, white, "sacred_heart")},
		{Date: advent.AddDate(0, 0, -7), Celebration: celebration("Our Lord Jesus Christ, King of the Universe", solemnity, white, "christ_king")},
		{Date: advent, Celebration: celebration("First Sunday of Advent", sanctorale.RankFeast, violet, "first_advent_sunday")},
		{Date: christmas, Celebration: celebration("The Nativity of the Lord", solemnity, white, "nativity")},
	}
}
