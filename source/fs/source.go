// Package fs provides a file system based source.
package fs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/churchcal/calrepo/source"
	"github.com/churchcal/calrepo/types"
	"github.com/churchcal/calrepo/watcher"
	"github.com/fsnotify/fsnotify"
)

var (
	userHomeDir = os.UserHomeDir
	osReadFile  = os.ReadFile
	osStat      = os.Stat
)

// Source loads raw data from a file.
type Source struct {
	path        string
	searchPaths []string
}

// Ensure Source implements the source.Source interface.
var _ source.Source = (*Source)(nil)

// Ensure Source implements the watcher.SubscriptionHandler interface.
var _ watcher.SubscriptionHandler = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithSearchPaths adds fallback paths. During Load the primary path is tried
// first, then each search path in order; the first existing file is read.
func WithSearchPaths(paths ...string) Option {
	return func(s *Source) {
		s.searchPaths = append(s.searchPaths, paths...)
	}
}

// New creates a source that reads from a file.
// The path can be absolute or relative. Tilde (~) expansion is supported.
//
// Example:
//
//	src := fs.New("/etc/calrepo/calendars.yml")
//	src := fs.New("calendars.yml", fs.WithSearchPaths("~/.config/calrepo/calendars.yml"))
func New(path string, opts ...Option) *Source {
	s := &Source{path: path}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the primary path given to New.
func (s *Source) Path() string {
	return s.path
}

// Type returns the source type identifier.
func (s *Source) Type() source.SourceType {
	return source.TypeFS
}

// FillDetails implements types.DetailsFiller.
func (s *Source) FillDetails(d *types.Details) {
	d.Path = s.ResolvedPath()
}

// Load implements the source.Source interface.
// The file is located and read on every call.
// Errors wrap the underlying *os.PathError, so errors.Is(err, fs.ErrNotExist)
// reports a missing file.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resolved, original, err := s.resolvePath()
	if err != nil {
		return nil, err
	}

	data, err := osReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", original, err)
	}
	return data, nil
}

// ResolvedPath returns the file Load would read right now.
// It falls back to the expanded primary path when no candidate exists.
func (s *Source) ResolvedPath() string {
	resolved, _, err := s.resolvePath()
	if err != nil {
		return s.path
	}
	return resolved
}

// resolvePath finds the first existing file from the primary path and search paths.
// Returns (expandedPath, originalPath, error).
func (s *Source) resolvePath() (expanded string, original string, err error) {
	allPaths := make([]string, 0, 1+len(s.searchPaths))
	allPaths = append(allPaths, s.path)
	allPaths = append(allPaths, s.searchPaths...)

	for _, p := range allPaths {
		expanded, err := expandTilde(p)
		if err != nil {
			continue
		}
		if _, statErr := osStat(expanded); statErr == nil {
			return expanded, p, nil
		}
	}

	expanded, err = expandTilde(s.path)
	if err != nil {
		return "", s.path, fmt.Errorf("failed to expand path %q: %w", s.path, err)
	}
	return expanded, s.path, nil
}

// expandTilde expands tilde (~) in the path.
// Handles both "~" (home directory) and "~/path" (path under home).
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand home directory: %w", err)
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// "~something" is not a home expansion.
	return path, nil
}

// Subscribe implements the watcher.SubscriptionHandler interface using fsnotify.
// notify is called with the resolved path whenever the file is written,
// created, renamed or removed.
func (s *Source) Subscribe(ctx context.Context, notify watcher.NotifyFunc) (watcher.StopFunc, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	path := s.ResolvedPath()

	// Watch the directory rather than the file so that editors replacing the
	// file (temp file + rename) keep producing events.
	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch directory %q: %w", dir, err)
	}

	filename := filepath.Base(path)

	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != filename {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
					notify(path, nil)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				notify(path, err)
			case <-ctx.Done():
				return
			}
		}
	}()

	stop := func(ctx context.Context) error {
		return w.Close()
	}
	return stop, nil
}
