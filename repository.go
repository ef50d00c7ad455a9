package calrepo

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/churchcal/calrepo/calendarium"
	"github.com/churchcal/calrepo/config"
	"github.com/churchcal/calrepo/data"
	"github.com/churchcal/calrepo/loader"
	"github.com/churchcal/calrepo/sanctorale"
	"github.com/churchcal/calrepo/temporale"
	"github.com/churchcal/calrepo/types"
)

// Option configures a Repository.
type Option func(*options)

type options struct {
	factory  calendarium.Factory
	logger   *log.Logger
	registry *data.Registry
}

// WithFactory sets the calendar engine. Default is calendarium.PerpetualFactory.
func WithFactory(f calendarium.Factory) Option {
	return func(o *options) {
		o.factory = f
	}
}

// WithLogger sets the logger. By default only warnings and errors are
// written, to stderr.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithRegistry sets the packaged dataset registry. Default is data.Default().
func WithRegistry(r *data.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// Repository maps calendar names to calendars built on demand.
//
// A Repository is read-only after construction and safe for concurrent use.
type Repository struct {
	configs config.Map
	loader  *loader.Loader
	factory calendarium.Factory
	logger  *log.Logger
}

// Load reads the definitions at configPath and returns a Repository
// resolving file data sources against dataPath.
//
// Returns *config.NotFoundError when the file cannot be read and
// *config.ParseError when it is malformed.
func Load(ctx context.Context, configPath, dataPath string, opts ...Option) (*Repository, error) {
	configs, err := config.Load(ctx, configPath)
	if err != nil {
		return nil, err
	}
	r := New(configs, dataPath, opts...)
	r.logger.Info("calendar definitions loaded", "path", configPath, "calendars", len(configs))
	return r, nil
}

// New returns a Repository over already parsed definitions. The map is
// copied; later changes to cfg do not affect the Repository.
func New(cfg config.Map, dataPath string, opts ...Option) *Repository {
	o := options{
		factory:  calendarium.PerpetualFactory{},
		registry: data.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewWithOptions(os.Stderr, log.Options{
			Prefix: "calrepo",
			Level:  log.WarnLevel,
		})
	}

	configs := make(config.Map, len(cfg))
	for name, c := range cfg {
		configs[name] = c.Clone()
	}

	return &Repository{
		configs: configs,
		loader:  loader.New(dataPath, loader.WithRegistry(o.registry)),
		factory: o.factory,
		logger:  o.logger,
	}
}

// Keys returns the calendar names in sorted order.
func (r *Repository) Keys() []string {
	keys := make([]string, 0, len(r.configs))
	for name := range r.configs {
		keys = append(keys, name)
	}
	slices.Sort(keys)
	return keys
}

// HasKey reports whether name is defined.
func (r *Repository) HasKey(name string) bool {
	_, ok := r.configs[name]
	return ok
}

// Definition returns a copy of the parsed entry for name.
func (r *Repository) Definition(name string) (*config.CalendarConfig, bool) {
	cfg, ok := r.configs[name]
	if !ok {
		return nil, false
	}
	return cfg.Clone(), true
}

// Metadata returns a deep copy of every raw calendar entry.
func (r *Repository) Metadata() map[string]map[string]any {
	return r.configs.Metadata()
}

// Lookup builds the calendar called name.
//
// Every call reads the data sources afresh and returns a new Facade. An
// unknown name yields *KeyNotFoundError; any other failure is wrapped in
// *LookupError and no Facade is returned.
func (r *Repository) Lookup(ctx context.Context, name string) (*Facade, error) {
	cfg, ok := r.configs[name]
	if !ok {
		return nil, &KeyNotFoundError{Name: name}
	}

	f, err := r.build(ctx, cfg)
	if err != nil {
		r.logger.Debug("lookup failed", "calendar", name, "error", err)
		return nil, &LookupError{Name: name, Err: err}
	}
	return f, nil
}

func (r *Repository) build(ctx context.Context, cfg *config.CalendarConfig) (*Facade, error) {
	layers := make([]*sanctorale.Dataset, 0, len(cfg.Sanctorale))
	sources := make([]types.Details, 0, len(cfg.Sanctorale))

	for i, spec := range cfg.Sanctorale {
		ds, d, err := r.loader.Resolve(ctx, spec)
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, spec, err)
		}
		r.logger.Debug("layer loaded", "calendar", cfg.Name, "layer", i, "spec", spec.String(), "entries", ds.Len())
		layers = append(layers, ds)
		sources = append(sources, d)
	}

	merged, origins, err := sanctorale.ComposeTraced(layers...)
	if err != nil {
		return nil, err
	}

	opts, err := temporale.Build(cfg)
	if err != nil {
		return nil, err
	}

	cal, err := r.factory.New(merged, opts)
	if err != nil {
		return nil, err
	}
	if cal == nil {
		return nil, ErrNilCalendar
	}

	r.logger.Debug("calendar built", "calendar", cfg.Name, "layers", len(layers), "days", merged.Len())
	return &Facade{
		calendar: cal,
		config:   cfg.Clone(),
		sources:  sources,
		origins:  origins,
	}, nil
}
