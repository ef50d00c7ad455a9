// Package watcher provides change notification for file-backed calendar inputs.
//
// calrepo itself never watches anything: every Lookup re-reads its sources.
// Watching exists for tools built on top of the repository (for example the
// CLI's check --watch) that want to re-run lookups when configuration or
// data files change.
package watcher

import (
	"context"
	"time"
)

// DefaultDebounce is the quiet period a Group waits after the last
// notification before invoking its callback.
const DefaultDebounce = 250 * time.Millisecond

// NotifyFunc is called by a subscription when the watched path changes
// (err == nil) or the underlying watcher reports an error.
type NotifyFunc func(path string, err error)

// StopFunc stops a subscription.
// The context can be used for timeout/cancellation of cleanup operations.
type StopFunc func(ctx context.Context) error

// SubscriptionHandler registers for change notifications.
type SubscriptionHandler interface {
	// Subscribe starts receiving change notifications.
	// Returns a StopFunc to unsubscribe, or an error if subscription failed.
	Subscribe(ctx context.Context, notify NotifyFunc) (StopFunc, error)
}

// SubscriptionHandlerFunc is a function that implements SubscriptionHandler.
type SubscriptionHandlerFunc func(ctx context.Context, notify NotifyFunc) (StopFunc, error)

// Subscribe implements SubscriptionHandler.
func (f SubscriptionHandlerFunc) Subscribe(ctx context.Context, notify NotifyFunc) (StopFunc, error) {
	return f(ctx, notify)
}
