package jsonc

import (
	"errors"
	"testing"

	"github.com/churchcal/calrepo/format"
)

func TestParse(t *testing.T) {
	input := `{
  // Czech patrons
  "09-28": {"title": "Saint Wenceslaus, Martyr", "rank": "solemnity", "colour": "red"},
  "07-05": [
    {"title": "Saints Cyril and Methodius", "rank": "solemnity"}, // trailing comma below
  ],
}`
	got, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	w, ok := got["09-28"].(map[string]any)
	if !ok || w["colour"] != "red" {
		t.Errorf("09-28 = %#v", got["09-28"])
	}
	if list, ok := got["07-05"].([]any); !ok || len(list) != 1 {
		t.Errorf("07-05 = %#v, want list of one", got["07-05"])
	}
}

func TestParse_PlainJSON(t *testing.T) {
	got, err := Parse([]byte(`{"01-01": {"title": "Mary, Mother of God"}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := got["01-01"]; !ok {
		t.Errorf("Parse() = %#v, missing 01-01", got)
	}
}

func TestParse_Empty(t *testing.T) {
	got, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("Parse() = %#v, want empty map", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unterminated", "{\n\"a\": \n"},
		{"array root", `[1, 2]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			var se *format.SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("Parse() error = %v, want *format.SyntaxError", err)
			}
		})
	}
}
