// Package calrepo provides a repository of named liturgical calendars.
//
// Each calendar is described by an entry in a YAML definitions file. An entry
// lists its sanctorale data sources in layering order, optionally followed by
// temporale extensions and transfer-to-Sunday rules:
//
//	roman:
//	  sanctorale:
//	    - packaged: general_roman
//	    - file: local_overrides.yml
//	  transfer_to_sunday: [epiphany]
//
// Lookup builds a calendar on every call: the data sources are read afresh,
// composed so that a later layer's entry for a day replaces earlier ones, and
// handed with the resolved options to a calendarium.Factory. Nothing is
// cached between lookups.
//
// Basic usage:
//
//	repo, err := calrepo.Load(ctx, "calendars.yml", "data")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cal, err := repo.Lookup(ctx, "roman")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	day := cal.Day(time.Now())
package calrepo
