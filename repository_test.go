package calrepo

import (
	"context"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/churchcal/calrepo/calendarium"
	"github.com/churchcal/calrepo/config"
	"github.com/churchcal/calrepo/loader"
	"github.com/churchcal/calrepo/sanctorale"
	"github.com/churchcal/calrepo/source"
	"github.com/churchcal/calrepo/temporale"
)

const definitions = `
roman:
  title: Roman Calendar with local overrides
  sanctorale:
    - packaged: general_roman
    - file: local_overrides.yml

reversed:
  sanctorale:
    - file: local_overrides.yml
    - packaged: general_roman

czech:
  sanctorale:
    - packaged: general_roman
    - packaged: czech
  temporale_extensions: [ChristEternalPriest]

epiphany_sunday:
  sanctorale:
    - packaged: general_roman
  transfer_to_sunday: ["Epiphany"]

mars:
  sanctorale:
    - packaged: general_roman
  temporale_extensions: [MartianSolstice]

missing_file:
  sanctorale:
    - packaged: general_roman
    - file: nowhere.yml

atlantis:
  sanctorale:
    - packaged: atlantis

invalid_spec:
  sanctorale:
    - url: https://example.org/calendar.yml

bad_transfer:
  sanctorale:
    - packaged: general_roman
  transfer_to_sunday: [SaintJoseph]
`

const overrides = `
03-19:
  title: Saint Joseph, Patron of the Diocese
  rank: solemnity
  symbol: joseph
07-02:
  title: Dedication of the Cathedral
  rank: feast
`

var (
	joseph  = sanctorale.MonthDay{Month: time.March, Day: 19}
	july2   = sanctorale.MonthDay{Month: time.July, Day: 2}
	anthony = sanctorale.MonthDay{Month: time.January, Day: 17}
)

// recordingFactory captures the arguments of every factory call.
type recordingFactory struct {
	mu    sync.Mutex
	calls int
	ds    *sanctorale.Dataset
	opts  *temporale.Options
}

func (f *recordingFactory) New(ds *sanctorale.Dataset, opts *temporale.Options) (calendarium.Calendar, error) {
	f.mu.Lock()
	f.calls++
	f.ds, f.opts = ds, opts
	f.mu.Unlock()
	return calendarium.PerpetualFactory{}.New(ds, opts)
}

type fixture struct {
	dataDir string
	repo    *Repository
	factory *recordingFactory
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	dataDir := filepath.Join(dir, "data")
	if err := os.Mkdir(dataDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir, "calendars.yml"), definitions)
	writeFile(t, filepath.Join(dataDir, "local_overrides.yml"), overrides)

	f := &recordingFactory{}
	repo, err := Load(context.Background(), filepath.Join(dir, "calendars.yml"), dataDir, WithFactory(f))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return &fixture{dataDir: dataDir, repo: repo, factory: f}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRepository_Keys(t *testing.T) {
	fx := newFixture(t)

	want := []string{"atlantis", "bad_transfer", "czech", "epiphany_sunday", "invalid_spec", "mars", "missing_file", "reversed", "roman"}
	if got := fx.repo.Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if !fx.repo.HasKey("roman") {
		t.Error("HasKey(roman) = false")
	}
	if fx.repo.HasKey("gallican") {
		t.Error("HasKey(gallican) = true")
	}
}

func TestRepository_LookupUnknownKey(t *testing.T) {
	fx := newFixture(t)

	f, err := fx.repo.Lookup(context.Background(), "gallican")
	if f != nil {
		t.Error("facade should be nil")
	}
	var knf *KeyNotFoundError
	if !errors.As(err, &knf) || knf.Name != "gallican" {
		t.Errorf("error = %v, want KeyNotFoundError{gallican}", err)
	}
	if fx.factory.calls != 0 {
		t.Error("factory should not be called")
	}
}

// Dates in the override file replace the packaged entry for that date.
func TestRepository_LayeredLookup(t *testing.T) {
	fx := newFixture(t)

	f, err := fx.repo.Lookup(context.Background(), "roman")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if f.Name() != "roman" {
		t.Errorf("Name() = %q", f.Name())
	}

	ds := fx.factory.ds
	got, _ := ds.Get(joseph)
	if len(got) != 1 || got[0].Title != "Saint Joseph, Patron of the Diocese" {
		t.Errorf("03-19 = %+v, want override", got)
	}
	if !ds.Has(july2) {
		t.Error("07-02 from the override layer missing")
	}
	if a, _ := ds.Get(anthony); len(a) != 1 || a[0].Title != "Saint Anthony, Abbot" {
		t.Errorf("01-17 = %+v, want packaged entry", a)
	}
	if f.Calendar().Sanctorale() != ds {
		t.Error("facade calendar should hold the composed dataset")
	}

	// No options configured: engine defaults.
	if fx.factory.opts != nil {
		t.Errorf("options = %+v, want nil", fx.factory.opts)
	}

	day := f.Day(time.Date(2025, time.March, 19, 12, 0, 0, 0, time.UTC))
	if titles := day.Celebrations(); len(titles) != 1 || titles[0].Title != "Saint Joseph, Patron of the Diocese" {
		t.Errorf("Day(2025-03-19) = %+v", titles)
	}
}

func TestRepository_LayerOrderPreserved(t *testing.T) {
	fx := newFixture(t)

	if _, err := fx.repo.Lookup(context.Background(), "reversed"); err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	got, _ := fx.factory.ds.Get(joseph)
	if len(got) != 1 || got[0].Title != "Saint Joseph, Spouse of the Blessed Virgin Mary" {
		t.Errorf("03-19 = %+v, want packaged entry to win", got)
	}
	if !fx.factory.ds.Has(july2) {
		t.Error("days unique to the first layer must survive")
	}
}

func TestFacade_Sources(t *testing.T) {
	fx := newFixture(t)

	f, err := fx.repo.Lookup(context.Background(), "roman")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}

	sources := f.Sources()
	if len(sources) != 2 {
		t.Fatalf("Sources() = %+v", sources)
	}
	if sources[0].Source != source.TypePackaged || sources[0].ID != "general_roman" {
		t.Errorf("Sources()[0] = %+v", sources[0])
	}
	if sources[1].Source != source.TypeFS || sources[1].Path != filepath.Join(fx.dataDir, "local_overrides.yml") {
		t.Errorf("Sources()[1] = %+v", sources[1])
	}

	if d, ok := f.Origin(joseph); !ok || d.Layer != "file:local_overrides.yml" {
		t.Errorf("Origin(03-19) = %+v, %v", d, ok)
	}
	if d, ok := f.Origin(anthony); !ok || d.Layer != "packaged:general_roman" {
		t.Errorf("Origin(01-17) = %+v, %v", d, ok)
	}
	if _, ok := f.Origin(sanctorale.MonthDay{Month: time.July, Day: 1}); ok {
		t.Error("Origin(07-01) should be absent")
	}

	sources[0].ID = "changed"
	if f.Sources()[0].ID != "general_roman" {
		t.Error("Sources() should return a copy")
	}
}

func TestFacade_ConfigIsCopy(t *testing.T) {
	fx := newFixture(t)

	f, err := fx.repo.Lookup(context.Background(), "czech")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	cfg := f.Config()
	if len(cfg.Sanctorale) != 2 || cfg.Sanctorale[1].ID != "czech" {
		t.Fatalf("Config() = %+v", cfg)
	}
	cfg.Sanctorale[1].ID = "atlantis"
	if f.Config().Sanctorale[1].ID != "czech" {
		t.Error("Config() should return a copy")
	}
}

func TestRepository_Options(t *testing.T) {
	tests := []struct {
		name       string
		extensions []string
		transfers  []temporale.TransferRule
	}{
		{"czech", []string{temporale.ChristEternalPriest}, []temporale.TransferRule{}},
		{"epiphany_sunday", []string{}, []temporale.TransferRule{temporale.TransferEpiphany}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			if _, err := fx.repo.Lookup(context.Background(), tt.name); err != nil {
				t.Fatalf("Lookup() error = %v", err)
			}
			opts := fx.factory.opts
			if opts == nil {
				t.Fatal("factory received nil options")
			}
			if got := opts.ExtensionNames(); !slices.Equal(got, tt.extensions) {
				t.Errorf("extensions = %v, want %v", got, tt.extensions)
			}
			if !slices.Equal(opts.TransferToSunday, tt.transfers) {
				t.Errorf("transfers = %v, want %v", opts.TransferToSunday, tt.transfers)
			}
		})
	}
}

func TestRepository_LookupFailures(t *testing.T) {
	tests := []struct {
		name          string
		check         func(t *testing.T, err error)
		invalidConfig bool
	}{
		{
			name: "mars",
			check: func(t *testing.T, err error) {
				var ue *temporale.UnknownExtensionError
				if !errors.As(err, &ue) || ue.Name != "MartianSolstice" {
					t.Errorf("error = %v, want UnknownExtensionError", err)
				}
			},
			invalidConfig: true,
		},
		{
			name: "missing_file",
			check: func(t *testing.T, err error) {
				var dle *loader.DataLoadError
				if !errors.As(err, &dle) || !errors.Is(err, iofs.ErrNotExist) {
					t.Errorf("error = %v, want DataLoadError for a missing file", err)
				}
			},
		},
		{
			name: "atlantis",
			check: func(t *testing.T, err error) {
				var ue *loader.UnknownPackagedDatasetError
				if !errors.As(err, &ue) || ue.ID != "atlantis" {
					t.Errorf("error = %v, want UnknownPackagedDatasetError", err)
				}
			},
			invalidConfig: true,
		},
		{
			name: "invalid_spec",
			check: func(t *testing.T, err error) {
				var ie *loader.InvalidDataSpecError
				if !errors.As(err, &ie) {
					t.Errorf("error = %v, want InvalidDataSpecError", err)
				}
			},
			invalidConfig: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)

			f, err := fx.repo.Lookup(context.Background(), tt.name)
			if f != nil {
				t.Error("facade should be nil on failure")
			}
			var le *LookupError
			if !errors.As(err, &le) || le.Name != tt.name {
				t.Fatalf("error = %v, want LookupError{%s}", err, tt.name)
			}
			tt.check(t, err)
			if got := errors.Is(err, config.ErrInvalidConfig); got != tt.invalidConfig {
				t.Errorf("errors.Is(err, ErrInvalidConfig) = %v, want %v", got, tt.invalidConfig)
			}
			if fx.factory.calls != 0 {
				t.Errorf("factory called %d times, want 0", fx.factory.calls)
			}
		})
	}
}

func TestRepository_DefaultFactoryRejectsUnknownTransfer(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "calendars.yml"), definitions)
	repo, err := Load(context.Background(), filepath.Join(dir, "calendars.yml"), dir)
	if err != nil {
		t.Fatal(err)
	}

	_, err = repo.Lookup(context.Background(), "bad_transfer")
	var ue *calendarium.UnknownTransferRuleError
	if !errors.As(err, &ue) || ue.Rule != "saint_joseph" {
		t.Errorf("error = %v, want UnknownTransferRuleError", err)
	}
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Error("unknown transfer rule should be a configuration defect")
	}
}

func TestRepository_FactoryError(t *testing.T) {
	boom := errors.New("engine unavailable")
	cfg, err := config.Parse(map[string]any{
		"roman": map[string]any{"sanctorale": []any{map[string]any{"packaged": "general_roman"}}},
	})
	if err != nil {
		t.Fatal(err)
	}

	repo := New(cfg, "", WithFactory(calendarium.FactoryFunc(func(*sanctorale.Dataset, *temporale.Options) (calendarium.Calendar, error) {
		return nil, boom
	})))
	if _, err := repo.Lookup(context.Background(), "roman"); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}

	repo = New(cfg, "", WithFactory(calendarium.FactoryFunc(func(*sanctorale.Dataset, *temporale.Options) (calendarium.Calendar, error) {
		return nil, nil
	})))
	if _, err := repo.Lookup(context.Background(), "roman"); !errors.Is(err, ErrNilCalendar) {
		t.Errorf("error = %v, want ErrNilCalendar", err)
	}
}

// Every lookup re-reads its sources and returns a distinct facade.
func TestRepository_NoCaching(t *testing.T) {
	fx := newFixture(t)

	first, err := fx.repo.Lookup(context.Background(), "roman")
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(fx.dataDir, "local_overrides.yml"), "03-19:\n  title: Changed\n")
	second, err := fx.repo.Lookup(context.Background(), "roman")
	if err != nil {
		t.Fatal(err)
	}

	if first == second {
		t.Error("lookups returned the same facade")
	}
	a, _ := first.Calendar().Sanctorale().Get(joseph)
	b, _ := second.Calendar().Sanctorale().Get(joseph)
	if a[0].Title != "Saint Joseph, Patron of the Diocese" || b[0].Title != "Changed" {
		t.Errorf("titles = %q, %q", a[0].Title, b[0].Title)
	}
	if second.Calendar().Sanctorale().Has(july2) {
		t.Error("07-02 should be gone after the override file changed")
	}
	if fx.factory.calls != 2 {
		t.Errorf("factory calls = %d, want 2", fx.factory.calls)
	}
}

func TestRepository_Metadata(t *testing.T) {
	fx := newFixture(t)

	md := fx.repo.Metadata()
	if md["roman"]["title"] != "Roman Calendar with local overrides" {
		t.Errorf("Metadata()[roman][title] = %v", md["roman"]["title"])
	}

	md["roman"]["sanctorale"] = []any{map[string]any{"packaged": "atlantis"}}
	delete(md, "czech")

	if !fx.repo.HasKey("czech") {
		t.Error("Metadata() changes leaked into the repository")
	}
	if _, err := fx.repo.Lookup(context.Background(), "roman"); err != nil {
		t.Errorf("Lookup() after Metadata() mutation error = %v", err)
	}
	if got := fx.repo.Metadata()["roman"]["sanctorale"].([]any)[0].(map[string]any)["packaged"]; got != "general_roman" {
		t.Errorf("second Metadata() = %v", got)
	}
}

func TestNew_CopiesDefinitions(t *testing.T) {
	cfg, err := config.Parse(map[string]any{
		"roman": map[string]any{"sanctorale": []any{map[string]any{"packaged": "general_roman"}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	repo := New(cfg, "")
	cfg["roman"].Sanctorale[0] = config.ParseDataSpec(map[string]any{"packaged": "atlantis"})
	delete(cfg, "roman")

	if _, err := repo.Lookup(context.Background(), "roman"); err != nil {
		t.Errorf("Lookup() error = %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(context.Background(), filepath.Join(dir, "missing.yml"), dir)
	var nf *config.NotFoundError
	if !errors.As(err, &nf) || !errors.Is(err, iofs.ErrNotExist) {
		t.Errorf("error = %v, want NotFoundError", err)
	}

	writeFile(t, filepath.Join(dir, "bad.yml"), "roman:\n  sanctorale: []\n")
	_, err = Load(context.Background(), filepath.Join(dir, "bad.yml"), dir)
	var pe *config.ParseError
	if !errors.As(err, &pe) || pe.Calendar != "roman" {
		t.Errorf("error = %v, want ParseError for roman", err)
	}
}

func TestRepository_ConcurrentLookups(t *testing.T) {
	fx := newFixture(t)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := []string{"roman", "czech", "epiphany_sunday"}[i%3]
			if _, err := fx.repo.Lookup(context.Background(), name); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestRepository_LookupCancelled(t *testing.T) {
	fx := newFixture(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fx.repo.Lookup(ctx, "roman")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}
