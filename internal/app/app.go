package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/specialistvlad/signalgrid/internal/barstore"
	"github.com/specialistvlad/signalgrid/internal/config"
	"github.com/specialistvlad/signalgrid/internal/ctxlog"
	"github.com/specialistvlad/signalgrid/internal/hcl"
	"github.com/specialistvlad/signalgrid/internal/indicator"
	"github.com/specialistvlad/signalgrid/internal/jsonstrategy"
	"github.com/specialistvlad/signalgrid/internal/publish"
	"github.com/specialistvlad/signalgrid/internal/report"
)

// Publisher delivers the run result to an external consumer.
type Publisher interface {
	Publish(ctx context.Context, payload publish.Payload) error
}

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *Config
	runID      string
	loader     config.Loader
	store      barstore.Store
	indicators *indicator.Registry
	publisher  Publisher

	httpServer *http.Server
	stage      atomic.Value
	summary    *report.RunSummary
}

// Option overrides one of the App's collaborators, mostly for tests.
type Option func(*App)

// WithLoader sets the strategy loader instead of choosing one by file
// extension.
func WithLoader(l config.Loader) Option {
	return func(a *App) { a.loader = l }
}

// WithStore sets the bar store instead of building one from the config.
func WithStore(s barstore.Store) Option {
	return func(a *App) { a.store = s }
}

// WithIndicators replaces the built-in indicator catalog.
func WithIndicators(r *indicator.Registry) Option {
	return func(a *App) { a.indicators = r }
}

// WithPublisher sets the result publisher instead of building one from the
// publish URL.
func WithPublisher(p Publisher) Option {
	return func(a *App) { a.publisher = p }
}

// WithRunID fixes the run identifier.
func WithRunID(id string) Option {
	return func(a *App) { a.runID = id }
}

// New is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func New(outW io.Writer, cfg *Config, opts ...Option) *App {
	a := &App{
		outW:       outW,
		config:     cfg,
		runID:      uuid.NewString(),
		indicators: indicator.Builtin(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = newLogger(cfg.LogLevel, cfg.LogFormat, outW).With("run_id", a.runID)
	a.stage.Store("starting")

	ctx := ctxlog.WithLogger(context.Background(), a.logger)
	a.logger.Debug("Logger configured successfully.")

	// A broken indicator catalog is a programmer error, so we panic.
	if err := a.indicators.Validate(ctx); err != nil {
		panic(err)
	}
	a.logger.Debug("Indicator catalog validation passed.", "count", len(a.indicators.Names()))

	return a
}

// RunID returns the identifier attached to logs, reports and publications.
func (a *App) RunID() string {
	return a.runID
}

// Summary returns the summary of the last successful run, or nil. This is
// primarily for testing.
func (a *App) Summary() *report.RunSummary {
	return a.summary
}

func (a *App) setStage(s string) {
	a.stage.Store(s)
	a.logger.Debug("Stage changed.", "stage", s)
}

// loaderFor picks the JSON loader for .json paths and the HCL loader
// otherwise.
func (a *App) loaderFor(path string) config.Loader {
	if a.loader != nil {
		return a.loader
	}
	if strings.EqualFold(filepath.Ext(path), jsonstrategy.Extension) {
		return jsonstrategy.NewLoader()
	}
	return hcl.NewLoader()
}
