// Package caltest provides compliance tests for calrepo sources and format
// parsers.
//
// Example usage with a parser:
//
//	func TestYAMLParser_Compliance(t *testing.T) {
//	    caltest.NewParserTester(t, yaml.NewParser(), caltest.ParserFixtures{
//	        Dataset: []byte(datasetYAML),
//	        Invalid: []byte("01-17: [unclosed\n"),
//	    }).TestAll()
//	}
package caltest

import (
	"time"

	"github.com/churchcal/calrepo/sanctorale"
)

// testT is the minimal testing interface used by caltest utilities.
type testT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
}

// require fails the test immediately if the condition is false.
func require(t testT, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

// requireNoError fails the test immediately if err is not nil.
func requireNoError(t testT, err error, format string, args ...any) {
	t.Helper()
	if err != nil {
		t.Fatalf(format, args...)
	}
}

// check reports an error if the condition is false, but continues the test.
func check(t testT, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Errorf(format, args...)
	}
}

// CanonicalDataset is the dataset every ParserFixtures.Dataset must encode:
//
//	01-17  Saint Anthony, Abbot            memorial, white, symbol anthony
//	02-14  Saint Cyril, Monk               memorial, white
//	       Saint Methodius, Bishop         memorial, white
//	08-10  Saint Lawrence, Deacon and Martyr  feast, red
func CanonicalDataset() *sanctorale.Dataset {
	return sanctorale.New(map[sanctorale.MonthDay][]sanctorale.Celebration{
		{Month: time.January, Day: 17}: {
			{Title: "Saint Anthony, Abbot", Rank: sanctorale.RankMemorial, Colour: sanctorale.ColourWhite, Symbol: "anthony"},
		},
		{Month: time.February, Day: 14}: {
			{Title: "Saint Cyril, Monk", Rank: sanctorale.RankMemorial, Colour: sanctorale.ColourWhite},
			{Title: "Saint Methodius, Bishop", Rank: sanctorale.RankMemorial, Colour: sanctorale.ColourWhite},
		},
		{Month: time.August, Day: 10}: {
			{Title: "Saint Lawrence, Deacon and Martyr", Rank: sanctorale.RankFeast, Colour: sanctorale.ColourRed},
		},
	})
}
