package caltest

import (
	"errors"
	"testing"

	"github.com/churchcal/calrepo/format"
	"github.com/churchcal/calrepo/sanctorale"
)

// ParserFixtures holds format-specific inputs for a ParserTester.
type ParserFixtures struct {
	// Dataset encodes CanonicalDataset.
	Dataset []byte

	// Invalid is malformed input. Optional.
	Invalid []byte

	// InvalidLine is the 1-based line the error in Invalid should be
	// reported at. Zero skips the line check.
	InvalidLine int
}

// ParserTester verifies format.Parser implementations.
type ParserTester struct {
	t        *testing.T
	parser   format.Parser
	fixtures ParserFixtures
}

// NewParserTester creates a ParserTester for parser.
func NewParserTester(t *testing.T, parser format.Parser, fixtures ParserFixtures) *ParserTester {
	return &ParserTester{t: t, parser: parser, fixtures: fixtures}
}

// TestAll runs all standard compliance tests.
func (pt *ParserTester) TestAll() {
	pt.t.Run("Format", pt.testFormat)
	pt.t.Run("Empty", pt.testEmpty)
	pt.t.Run("Dataset", pt.testDataset)
	pt.t.Run("Independent", pt.testIndependent)
	pt.t.Run("Invalid", pt.testInvalid)
}

func (pt *ParserTester) testFormat(t *testing.T) {
	require(t, pt.parser.Format() != "", "Format() returned empty string")
}

// testEmpty verifies empty input yields an empty, non-nil map.
func (pt *ParserTester) testEmpty(t *testing.T) {
	got, err := pt.parser.Parse(nil)
	requireNoError(t, err, "Parse(nil) error = %v", err)
	require(t, got != nil, "Parse(nil) returned nil map")
	check(t, len(got) == 0, "Parse(nil) = %v, want empty", got)
}

// testDataset verifies the fixture decodes to CanonicalDataset.
func (pt *ParserTester) testDataset(t *testing.T) {
	raw, err := pt.parser.Parse(pt.fixtures.Dataset)
	requireNoError(t, err, "Parse() error = %v", err)

	ds, err := sanctorale.Decode(raw)
	requireNoError(t, err, "Decode() error = %v", err)

	want := CanonicalDataset()
	if !ds.Equal(want) {
		for _, md := range want.Days() {
			gotDay, _ := ds.Get(md)
			wantDay, _ := want.Get(md)
			t.Errorf("%s = %+v, want %+v", md, gotDay, wantDay)
		}
		t.Errorf("decoded %d days, want %d", ds.Len(), want.Len())
	}
}

// testIndependent verifies repeated parses share no state.
func (pt *ParserTester) testIndependent(t *testing.T) {
	first, err := pt.parser.Parse(pt.fixtures.Dataset)
	requireNoError(t, err, "Parse() error = %v", err)
	clear(first)

	second, err := pt.parser.Parse(pt.fixtures.Dataset)
	requireNoError(t, err, "second Parse() error = %v", err)
	check(t, len(second) == CanonicalDataset().Len(), "second Parse() = %v", second)
}

// testInvalid verifies malformed input yields a *format.SyntaxError.
func (pt *ParserTester) testInvalid(t *testing.T) {
	if pt.fixtures.Invalid == nil {
		t.Skip("no invalid fixture")
	}

	_, err := pt.parser.Parse(pt.fixtures.Invalid)
	require(t, err != nil, "Parse() of invalid input should fail")

	var se *format.SyntaxError
	require(t, errors.As(err, &se), "error = %T %v, want *format.SyntaxError", err, err)
	check(t, se.Format == pt.parser.Format(), "SyntaxError.Format = %q, want %q", se.Format, pt.parser.Format())
	if pt.fixtures.InvalidLine > 0 {
		check(t, se.Line == pt.fixtures.InvalidLine, "SyntaxError.Line = %d, want %d", se.Line, pt.fixtures.InvalidLine)
	}
}
