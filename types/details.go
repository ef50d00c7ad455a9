// Package types holds small value types shared across calrepo packages.
// It contains no logic so that sources, formats and layers can describe
// themselves without importing each other.
package types

// SourceType identifies where a dataset's raw bytes come from.
// Constants for standard types are defined in the source package.
type SourceType string

// Format identifies the on-disk encoding of a dataset.
// Constants for standard formats are defined in the format package.
type Format string

// Details describes one composed layer of a calendar.
// A Facade carries one Details per configured sanctorale entry, in layer order.
type Details struct {
	// Layer is the layer name, e.g. "0:packaged:general_roman".
	Layer string

	// Source is the type of source ("fs" or "packaged").
	Source SourceType

	// Path is the resolved file path for file-based layers and empty otherwise.
	Path string

	// ID is the packaged dataset identifier for packaged layers and empty otherwise.
	ID string

	// Format is the encoding the layer was parsed from.
	Format Format

	// Entries is the number of days the layer defines. Zero until loaded.
	Entries int
}

// DetailsFiller is implemented by layers and sources that contribute to Details.
type DetailsFiller interface {
	FillDetails(d *Details)
}
