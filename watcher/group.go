package watcher

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// ChangeFunc receives the deduplicated, sorted list of paths that changed
// during one debounce window.
type ChangeFunc func(ctx context.Context, changed []string)

// ErrorFunc receives errors reported by subscriptions.
type ErrorFunc func(err error)

// Group subscribes to several handlers and coalesces their notifications.
// Run must be called exactly once.
type Group struct {
	handlers []SubscriptionHandler
	debounce time.Duration
	onChange ChangeFunc
	onError  ErrorFunc
	started  atomic.Bool
}

// GroupOption configures a Group.
type GroupOption func(*Group)

// WithDebounce sets the quiet period. Zero or negative values fall back to DefaultDebounce.
func WithDebounce(d time.Duration) GroupOption {
	return func(g *Group) {
		if d > 0 {
			g.debounce = d
		}
	}
}

// WithErrorHandler sets the callback for subscription errors. Errors are dropped by default.
func WithErrorHandler(fn ErrorFunc) GroupOption {
	return func(g *Group) {
		g.onError = fn
	}
}

// NewGroup creates a Group that calls onChange after changes settle.
func NewGroup(onChange ChangeFunc, handlers []SubscriptionHandler, opts ...GroupOption) *Group {
	g := &Group{
		handlers: handlers,
		debounce: DefaultDebounce,
		onChange: onChange,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run subscribes every handler and blocks until ctx is cancelled.
// It returns nil on clean cancellation. If any subscription fails, the
// subscriptions already established are stopped and the error is returned.
func (g *Group) Run(ctx context.Context) error {
	if !g.started.CompareAndSwap(false, true) {
		return errors.New("watcher: Run called more than once")
	}
	if len(g.handlers) == 0 {
		return errors.New("watcher: no subscriptions")
	}

	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		timer   *time.Timer
		running sync.Mutex
	)

	fire := func() {
		if ctx.Err() != nil {
			return
		}
		running.Lock()
		defer running.Unlock()

		mu.Lock()
		changed := make([]string, 0, len(pending))
		for p := range pending {
			changed = append(changed, p)
		}
		clear(pending)
		mu.Unlock()

		if len(changed) == 0 {
			return
		}
		slices.Sort(changed)
		if g.onChange != nil {
			g.onChange(ctx, changed)
		}
	}

	notify := func(path string, err error) {
		if err != nil {
			if g.onError != nil {
				g.onError(err)
			}
			return
		}
		mu.Lock()
		defer mu.Unlock()
		pending[path] = struct{}{}
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(g.debounce, fire)
	}

	stops := make([]StopFunc, 0, len(g.handlers))
	stopAll := func() error {
		var errs []error
		for _, stop := range stops {
			if err := stop(context.Background()); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}

	for i, h := range g.handlers {
		stop, err := h.Subscribe(ctx, notify)
		if err != nil {
			if stopErr := stopAll(); stopErr != nil {
				err = errors.Join(err, stopErr)
			}
			return fmt.Errorf("watcher: subscription %d: %w", i, err)
		}
		stops = append(stops, stop)
	}

	<-ctx.Done()

	mu.Lock()
	if timer != nil {
		timer.Stop()
	}
	mu.Unlock()

	return stopAll()
}
