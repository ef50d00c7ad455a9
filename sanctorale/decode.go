package sanctorale

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// DecodeError reports an entry that could not be decoded. Key is the raw
// date key as it appeared in the source.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("entry %q: %v", e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Decode converts the generic map produced by a format parser into a Dataset.
//
// Each key is a date ("MM-DD" or "M/D"); each value is one celebration
// record or a list of them. Records are decoded with mapstructure: unknown
// fields are rejected and title is required. Two keys naming the same day
// (e.g. "1/17" and "01-17") are an error.
func Decode(raw map[string]any) (*Dataset, error) {
	days := make(map[MonthDay][]Celebration, len(raw))
	seen := make(map[MonthDay]string, len(raw))

	for key, value := range raw {
		md, err := ParseMonthDay(key)
		if err != nil {
			return nil, &DecodeError{Key: key, Err: err}
		}
		if prev, dup := seen[md]; dup {
			return nil, &DecodeError{Key: key, Err: fmt.Errorf("same day as %q", prev)}
		}
		seen[md] = key

		list, err := decodeDay(value)
		if err != nil {
			return nil, &DecodeError{Key: key, Err: err}
		}
		days[md] = list
	}
	return &Dataset{days: days}, nil
}

func decodeDay(value any) ([]Celebration, error) {
	var records []any
	switch v := value.(type) {
	case map[string]any:
		records = []any{v}
	case []any:
		if len(v) == 0 {
			return nil, fmt.Errorf("empty celebration list")
		}
		records = v
	default:
		return nil, fmt.Errorf("expected a record or a list of records, got %T", value)
	}

	out := make([]Celebration, 0, len(records))
	for i, r := range records {
		c, err := decodeCelebration(r)
		if err != nil {
			if len(records) > 1 {
				return nil, fmt.Errorf("celebration %d: %w", i, err)
			}
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeCelebration(record any) (Celebration, error) {
	if _, ok := record.(map[string]any); !ok {
		return Celebration{}, fmt.Errorf("expected a record, got %T", record)
	}

	var c Celebration
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  enumHook,
		ErrorUnused: true,
		Result:      &c,
	})
	if err != nil {
		return Celebration{}, err
	}
	if err := dec.Decode(record); err != nil {
		return Celebration{}, err
	}

	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return Celebration{}, fmt.Errorf("missing title")
	}
	// Absent fields skip the hook; apply the defaults here.
	if c.Rank == "" {
		c.Rank = RankOptionalMemorial
	}
	if c.Colour == "" {
		c.Colour = ColourWhite
	}
	return c, nil
}

var (
	rankType   = reflect.TypeOf(Rank(""))
	colourType = reflect.TypeOf(Colour(""))
)

// enumHook validates rank and colour strings during decoding.
func enumHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String {
		return data, nil
	}
	switch to {
	case rankType:
		return ParseRank(data.(string))
	case colourType:
		return ParseColour(data.(string))
	default:
		return data, nil
	}
}
