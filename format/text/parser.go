// Package text parses the line-oriented sanctorale text format.
//
// The format is the one traditionally used for sanctorale data files:
//
//	---
//	title: General Roman Calendar
//	---
//	= 1
//	17 m : Saint Anthony, Abbot
//	28 m : Saint Thomas Aquinas, Priest and Doctor
//	= 2
//	2 f : Presentation of the Lord
//	2/22 f W chair_peter : Chair of Saint Peter the Apostle
//
// A "= N" line sets the current month. An entry line is
// "[MONTH/]DAY [RANK] [COLOUR] [SYMBOL] : TITLE". RANK is one of m, f, s
// (memorial, feast, solemnity), optionally followed by a numeric rank, or a
// bare numeric rank such as 3.12. COLOUR is a single upper-case letter
// (W, R, G, V). Lines starting with # are comments. An optional YAML front
// matter block is skipped.
package text

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/churchcal/calrepo/format"
)

var (
	monthLine  = regexp.MustCompile(`^=\s*(\d{1,2})\s*$`)
	dateToken  = regexp.MustCompile(`^(?:(\d{1,2})/)?(\d{1,2})$`)
	rankToken  = regexp.MustCompile(`^([mfs])?(\d\.\d{1,2})?$`)
	symbolWord = regexp.MustCompile(`^[a-z][a-z0-9_]+$`)
)

var colours = map[string]string{
	"W": "white",
	"R": "red",
	"G": "green",
	"V": "violet",
}

var rankLetters = map[string]string{
	"m": "memorial",
	"f": "feast",
	"s": "solemnity",
}

// NewParser creates a new sanctorale text parser.
func NewParser() format.Parser {
	return format.NewParser(format.FormatText, Parse)
}

// Parse decodes the text format into the common dataset map shape: each
// date key ("MM-DD") maps to a []any of celebration records.
func Parse(data []byte) (map[string]any, error) {
	result := map[string]any{}
	scanner := bufio.NewScanner(bytes.NewReader(data))

	month := 0
	lineNo := 0
	inFrontMatter := false
	seenContent := false

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if line == "---" {
			if !seenContent && !inFrontMatter {
				inFrontMatter = true
				continue
			}
			if inFrontMatter {
				inFrontMatter = false
				seenContent = true
				continue
			}
		}
		if inFrontMatter {
			continue
		}
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		seenContent = true

		if m := monthLine.FindStringSubmatch(line); m != nil {
			month, _ = strconv.Atoi(m[1])
			if month < 1 || month > 12 {
				return nil, syntaxError(lineNo, "month %d out of range", month)
			}
			continue
		}

		key, record, err := parseEntry(line, month)
		if err != nil {
			return nil, syntaxError(lineNo, "%s", err)
		}
		list, _ := result[key].([]any)
		result[key] = append(list, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, &format.SyntaxError{Format: format.FormatText, Line: lineNo, Reason: err.Error(), Err: err}
	}
	if inFrontMatter {
		return nil, syntaxError(lineNo, "unterminated front matter")
	}
	return result, nil
}

func parseEntry(line string, month int) (string, map[string]any, error) {
	head, title, ok := strings.Cut(line, ":")
	if !ok {
		return "", nil, fmt.Errorf("missing ':' separator")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", nil, fmt.Errorf("missing title")
	}

	fields := strings.Fields(head)
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("missing date")
	}

	d := dateToken.FindStringSubmatch(fields[0])
	if d == nil {
		return "", nil, fmt.Errorf("invalid date %q", fields[0])
	}
	if d[1] != "" {
		month, _ = strconv.Atoi(d[1])
	}
	if month == 0 {
		return "", nil, fmt.Errorf("day %s given before any month line", d[2])
	}
	day, _ := strconv.Atoi(d[2])

	record := map[string]any{"title": title}
	for _, tok := range fields[1:] {
		switch {
		case colours[tok] != "":
			if _, dup := record["colour"]; dup {
				return "", nil, fmt.Errorf("duplicate colour %q", tok)
			}
			record["colour"] = colours[tok]
		case tok != "" && rankToken.MatchString(tok):
			if _, dup := record["rank"]; dup {
				return "", nil, fmt.Errorf("duplicate rank %q", tok)
			}
			record["rank"] = rankName(tok)
		case symbolWord.MatchString(tok):
			if _, dup := record["symbol"]; dup {
				return "", nil, fmt.Errorf("unexpected token %q", tok)
			}
			record["symbol"] = tok
		default:
			return "", nil, fmt.Errorf("unexpected token %q", tok)
		}
	}

	return fmt.Sprintf("%02d-%02d", month, day), record, nil
}

// rankName maps a rank token to a rank name. A numeric part, when present,
// takes precedence over the letter.
func rankName(tok string) string {
	m := rankToken.FindStringSubmatch(tok)
	if num := m[2]; num != "" {
		switch {
		case strings.HasPrefix(num, "1."):
			return "solemnity"
		case strings.HasPrefix(num, "2."):
			return "feast"
		case num == "3.10" || num == "3.11":
			return "memorial"
		default:
			return "optional_memorial"
		}
	}
	return rankLetters[m[1]]
}

func syntaxError(line int, msg string, args ...any) error {
	return &format.SyntaxError{Format: format.FormatText, Line: line, Reason: fmt.Sprintf(msg, args...)}
}
