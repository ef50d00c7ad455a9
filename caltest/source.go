package caltest

import (
	"context"
	"errors"
	iofs "io/fs"
	"sync"
	"testing"
	"time"

	"github.com/churchcal/calrepo/source"
	"github.com/churchcal/calrepo/types"
	"github.com/churchcal/calrepo/watcher"
)

// SourceFactory creates a Source initialized with the given test data.
// The factory is called for each test case to ensure test isolation.
type SourceFactory func(data []byte) source.Source

// NotExistFactory creates a Source that points to a non-existent resource.
type NotExistFactory func() source.Source

// TouchFunc modifies the resource behind a source so that a subscription
// should fire.
type TouchFunc func(s source.Source) error

// SourceTesterOption configures SourceTester behavior.
type SourceTesterOption func(*SourceTester)

// WithNotExistFactory enables the missing-resource test.
func WithNotExistFactory(factory NotExistFactory) SourceTesterOption {
	return func(st *SourceTester) {
		st.notExistFactory = factory
	}
}

// WithTouch enables the notification test for sources implementing
// watcher.SubscriptionHandler.
func WithTouch(touch TouchFunc) SourceTesterOption {
	return func(st *SourceTester) {
		st.touch = touch
	}
}

// SourceTester provides utilities to verify Source implementations.
type SourceTester struct {
	t               *testing.T
	factory         SourceFactory
	notExistFactory NotExistFactory
	touch           TouchFunc
}

// NewSourceTester creates a SourceTester for the given SourceFactory.
func NewSourceTester(t *testing.T, factory SourceFactory, opts ...SourceTesterOption) *SourceTester {
	st := &SourceTester{
		t:       t,
		factory: factory,
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// TestAll runs all standard compliance tests for Source implementations.
func (st *SourceTester) TestAll() {
	st.t.Run("Type", st.testType)
	st.t.Run("Load", st.testLoad)
	st.t.Run("LoadReturnsCopy", st.testLoadReturnsCopy)
	st.t.Run("LoadCancelled", st.testLoadCancelled)
	st.t.Run("Details", st.testDetails)
	st.t.Run("NotExist", st.testNotExist)
	st.t.Run("Subscribe", st.testSubscribe)
}

const sample = "01-17:\n  title: Saint Anthony, Abbot\n"

func (st *SourceTester) testType(t *testing.T) {
	s := st.factory([]byte(sample))
	require(t, s.Type() != "", "Type() returned empty string")
}

func (st *SourceTester) testLoad(t *testing.T) {
	s := st.factory([]byte(sample))

	data, err := s.Load(context.Background())
	requireNoError(t, err, "Load error = %v", err)
	check(t, string(data) == sample, "Load() = %q, want %q", data, sample)
}

// testLoadReturnsCopy verifies callers cannot corrupt later loads.
func (st *SourceTester) testLoadReturnsCopy(t *testing.T) {
	s := st.factory([]byte(sample))

	first, err := s.Load(context.Background())
	requireNoError(t, err, "Load error = %v", err)
	for i := range first {
		first[i] = 'x'
	}

	second, err := s.Load(context.Background())
	requireNoError(t, err, "second Load error = %v", err)
	check(t, string(second) == sample, "second Load() = %q, want %q", second, sample)
}

func (st *SourceTester) testLoadCancelled(t *testing.T) {
	s := st.factory([]byte(sample))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Load(ctx)
	check(t, errors.Is(err, context.Canceled), "Load(cancelled) error = %v, want context.Canceled", err)
}

// testDetails verifies DetailsFiller implementations leave the type alone
// and describe where the data lives.
func (st *SourceTester) testDetails(t *testing.T) {
	s := st.factory([]byte(sample))

	df, ok := s.(types.DetailsFiller)
	if !ok {
		t.Skip("Source does not implement types.DetailsFiller")
	}
	d := types.Details{Source: s.Type()}
	df.FillDetails(&d)
	check(t, d.Source == s.Type(), "FillDetails changed Source to %q", d.Source)
	check(t, d.Path != "" || d.ID != "", "FillDetails set neither Path nor ID: %+v", d)
}

func (st *SourceTester) testNotExist(t *testing.T) {
	if st.notExistFactory == nil {
		t.Skip("NotExistFactory not provided")
	}

	_, err := st.notExistFactory().Load(context.Background())
	require(t, err != nil, "Load() on non-existent resource should return error")
	check(t, errors.Is(err, iofs.ErrNotExist), "Load() error should wrap fs.ErrNotExist, got: %v", err)
}

// testSubscribe verifies a change to the resource is reported.
func (st *SourceTester) testSubscribe(t *testing.T) {
	s := st.factory([]byte(sample))

	h, ok := s.(watcher.SubscriptionHandler)
	if !ok {
		t.Skip("Source does not implement watcher.SubscriptionHandler")
	}
	if st.touch == nil {
		t.Skip("TouchFunc not provided")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var once sync.Once
	fired := make(chan struct{})
	stop, err := h.Subscribe(ctx, func(path string, err error) {
		if err == nil {
			once.Do(func() { close(fired) })
		}
	})
	requireNoError(t, err, "Subscribe() error = %v", err)
	defer func() {
		check(t, stop(context.Background()) == nil, "stop() failed")
	}()

	requireNoError(t, st.touch(s), "touch failed")

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("no notification after touching the source")
	}
}
