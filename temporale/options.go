// Package temporale resolves the movable-cycle options of a calendar:
// extensions adding celebrations and rules transferring feasts to Sunday.
package temporale

import (
	"slices"
	"strings"
	"unicode"

	"github.com/churchcal/calrepo/config"
)

// TransferRule identifies a feast that may be transferred to Sunday.
// Values are normalised snake_case identifiers.
type TransferRule string

// Transfer rules understood by the default calendar engine.
const (
	TransferEpiphany      TransferRule = "epiphany"
	TransferAscension     TransferRule = "ascension"
	TransferCorpusChristi TransferRule = "corpus_christi"
)

// Options configures the temporale of one calendar. A nil *Options means
// the engine defaults apply.
type Options struct {
	// Extensions holds resolved extensions in configuration order, without
	// duplicates. Never nil.
	Extensions []Extension

	// TransferToSunday holds normalised rules in configuration order,
	// without duplicates. Never nil.
	TransferToSunday []TransferRule
}

// ExtensionNames returns the canonical names of o's extensions.
func (o *Options) ExtensionNames() []string {
	names := make([]string, len(o.Extensions))
	for i, e := range o.Extensions {
		names[i] = e.Name()
	}
	return names
}

// Transfers reports whether rule is enabled.
func (o *Options) Transfers(rule TransferRule) bool {
	return slices.Contains(o.TransferToSunday, rule)
}

// Build resolves the options of cfg.
//
// It returns nil when cfg sets neither temporale_extensions nor
// transfer_to_sunday. Otherwise both fields of the result are non-nil, the
// one not configured being empty. Extension names are resolved through the
// closed registry; transfer rules are only normalised.
func Build(cfg *config.CalendarConfig) (*Options, error) {
	if !cfg.HasExtensions && !cfg.HasTransfers {
		return nil, nil
	}

	opts := &Options{
		Extensions:       []Extension{},
		TransferToSunday: []TransferRule{},
	}

	seen := make(map[string]bool, len(cfg.TemporaleExtensions))
	for _, name := range cfg.TemporaleExtensions {
		ext, err := LookupExtension(name)
		if err != nil {
			return nil, err
		}
		if seen[ext.Name()] {
			continue
		}
		seen[ext.Name()] = true
		opts.Extensions = append(opts.Extensions, ext)
	}

	for _, raw := range cfg.TransferToSunday {
		rule := NormalizeTransferRule(raw)
		if !slices.Contains(opts.TransferToSunday, rule) {
			opts.TransferToSunday = append(opts.TransferToSunday, rule)
		}
	}
	return opts, nil
}

// NormalizeTransferRule converts a configured rule name to its identifier:
// surrounding space is trimmed, spaces and hyphens become underscores and
// CamelCase becomes snake_case.
//
//	NormalizeTransferRule("Epiphany")       // "epiphany"
//	NormalizeTransferRule("CorpusChristi")  // "corpus_christi"
//	NormalizeTransferRule("corpus christi") // "corpus_christi"
func NormalizeTransferRule(name string) TransferRule {
	return TransferRule(snakeCase(strings.TrimSpace(name)))
}

func snakeCase(s string) string {
	var b strings.Builder
	var last, written rune
	for _, r := range s {
		switch {
		case r == ' ' || r == '-' || r == '_':
			if written != '_' && written != 0 {
				b.WriteByte('_')
				written = '_'
			}
		case unicode.IsUpper(r):
			if unicode.IsLower(last) || unicode.IsDigit(last) {
				b.WriteByte('_')
			}
			written = unicode.ToLower(r)
			b.WriteRune(written)
		default:
			written = r
			b.WriteRune(r)
		}
		last = r
	}
	return strings.TrimSuffix(b.String(), "_")
}
