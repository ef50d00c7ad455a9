package yaml

import (
	"errors"
	"reflect"
	"testing"

	"github.com/churchcal/calrepo/format"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]any
		wantErr bool
	}{
		{
			name:  "empty",
			input: "",
			want:  map[string]any{},
		},
		{
			name:  "comments only",
			input: "# nothing here\n",
			want:  map[string]any{},
		},
		{
			name: "dataset",
			input: `
01-17:
  title: Saint Anthony, Abbot
  rank: memorial
1/28:
  - title: Saint Thomas Aquinas, Priest and Doctor
`,
			want: map[string]any{
				"01-17": map[string]any{"title": "Saint Anthony, Abbot", "rank": "memorial"},
				"1/28":  []any{map[string]any{"title": "Saint Thomas Aquinas, Priest and Doctor"}},
			},
		},
		{
			name:    "sequence root",
			input:   "- a\n- b\n",
			wantErr: true,
		},
		{
			name:    "syntax error",
			input:   "a: [unclosed\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.input))
			if tt.wantErr {
				var se *format.SyntaxError
				if !errors.As(err, &se) {
					t.Fatalf("Parse() error = %v, want *format.SyntaxError", err)
				}
				if se.Format != format.FormatYAML {
					t.Errorf("SyntaxError.Format = %q, want %q", se.Format, format.FormatYAML)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestParse_SequenceRootReportsLine(t *testing.T) {
	_, err := Parse([]byte("\n- a\n"))
	var se *format.SyntaxError
	if !errors.As(err, &se) {
		t.Fatalf("Parse() error = %v", err)
	}
	if se.Line != 2 {
		t.Errorf("Line = %d, want 2", se.Line)
	}
}

func TestNewParser(t *testing.T) {
	if got := NewParser().Format(); got != format.FormatYAML {
		t.Errorf("Format() = %q, want %q", got, format.FormatYAML)
	}
}
