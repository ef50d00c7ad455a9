// Package source provides the interface for raw dataset and configuration sources.
// A source is responsible only for I/O; parsing is handled by the format packages.
package source

import (
	"context"

	"github.com/churchcal/calrepo/types"
)

// SourceType is an alias for types.SourceType.
type SourceType = types.SourceType

// Standard source types.
const (
	// TypeFS is a file on the local file system.
	TypeFS SourceType = "fs"

	// TypePackaged is a dataset bundled into the binary.
	TypePackaged SourceType = "packaged"
)

// Source loads raw bytes from one location.
// Sources are format-agnostic and read-only: calrepo never writes data back.
type Source interface {
	// Load reads the raw data. Every call performs fresh I/O; sources do not cache.
	// The context can be used for cancellation.
	Load(ctx context.Context) ([]byte, error)

	// Type returns the source type identifier.
	Type() SourceType
}
