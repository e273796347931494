// Package app implements the application layer for featcalc.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"go.trai.ch/featcalc/internal/adapters/reporter" //nolint:depguard // Wired in app layer
	"go.trai.ch/featcalc/internal/core/domain"
	"go.trai.ch/featcalc/internal/core/ports"
	"go.trai.ch/featcalc/internal/engine/features"
	"go.trai.ch/featcalc/internal/engine/session"
	"go.trai.ch/zerr"
)

// Output formats understood by Run.
const (
	FormatTable = "table"
	FormatYAML  = "yaml"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	inputLoader  ports.InputLoader
	logger       ports.Logger
	tracer       ports.Tracer
	telemetry    ports.Telemetry
	out          io.Writer
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	inputLoader ports.InputLoader,
	log ports.Logger,
	tracer ports.Tracer,
	telemetry ports.Telemetry,
) *App {
	return &App{
		configLoader: configLoader,
		inputLoader:  inputLoader,
		logger:       log,
		tracer:       tracer,
		telemetry:    telemetry,
		out:          os.Stdout,
	}
}

// WithOutput sets where results are written. Defaults to stdout.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	ConfigPath     string
	InputPath      string
	Workers        int
	SuppressErrors bool
	ReuseCaches    bool
	Format         string
}

// Result is a calculated feature table.
type Result struct {
	Columns  []string
	Rows     []Row
	Failures int
}

// Row holds the values of one input. Invalid cells hold nil.
type Row struct {
	Name   string
	Values []*float64
}

// ConfigureLogging adjusts the logger when it supports levels and formats.
func (a *App) ConfigureLogging(verbose, jsonLogs bool) {
	if l, ok := a.logger.(interface{ SetJSON(bool) }); ok {
		l.SetJSON(jsonLogs)
	}
	if l, ok := a.logger.(interface{ SetLevel(slog.Level) }); ok && verbose {
		l.SetLevel(slog.LevelDebug)
	}
}

// Run calculates the configured features on every input of the dataset and
// writes the table in the requested format.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	if opts.Format == "" {
		opts.Format = FormatTable
	}
	if opts.Format != FormatTable && opts.Format != FormatYAML {
		return zerr.With(zerr.Wrap(domain.ErrUnknownFormat, "failed to render results"), "format", opts.Format)
	}

	cfg, err := step(ctx, a.telemetry, "load configuration", func(context.Context) (*domain.FeatureConfig, error) {
		return a.configLoader.Load(opts.ConfigPath)
	})
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	ds, err := step(ctx, a.telemetry, "load dataset", func(context.Context) (*domain.Dataset, error) {
		return a.inputLoader.Load(opts.InputPath)
	})
	if err != nil {
		return zerr.Wrap(err, "failed to load dataset")
	}

	result, err := step(ctx, a.telemetry, "calculate features", func(ctx context.Context) (*Result, error) {
		return a.Calculate(ctx, cfg, ds, opts)
	})
	if err != nil {
		return err
	}

	if err := render(a.out, result, opts.Format); err != nil {
		return zerr.Wrap(err, "failed to write results")
	}
	if result.Failures > 0 {
		a.logger.Warn(strconv.Itoa(result.Failures) + " calculations failed and were left empty")
	}
	return nil
}

// Calculate builds the calculator for the configuration's input type and
// calculates it on the matching inputs of ds.
func (a *App) Calculate(ctx context.Context, cfg *domain.FeatureConfig, ds *domain.Dataset, opts RunOptions) (*Result, error) {
	inputs := ds.Rows(cfg.InputType)
	if len(inputs) == 0 {
		a.logger.Warn("dataset has no " + cfg.InputType.Short() + " inputs")
	}

	switch cfg.InputType {
	case domain.TypeObject:
		return calculate[*domain.ObjectMask](ctx, a, cfg, inputs, opts)
	case domain.TypeCollection:
		return calculate[*domain.ObjectCollection](ctx, a, cfg, inputs, opts)
	default:
		return nil, zerr.With(
			zerr.Wrap(domain.ErrUnknownInputType, "no calculator for input type"),
			"input_type", cfg.InputType.String(),
		)
	}
}

func calculate[T domain.Input](
	ctx context.Context,
	a *App,
	cfg *domain.FeatureConfig,
	inputs []domain.Input,
	opts RunOptions,
) (*Result, error) {
	typed := make([]T, len(inputs))
	for i, in := range inputs {
		v, ok := in.(T)
		if !ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrInputTypeMismatch, "unexpected input"), "row", i)
		}
		typed[i] = v
	}

	calc, err := step(ctx, a.telemetry, "initialize features", func(context.Context) (*session.CalculatorMulti[T], error) {
		return newCalculator[T](cfg, a.logger, opts.ReuseCaches, inputs)
	}, ports.Internal())
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var rep *reporter.Reporter
	var sink ports.ErrorReporter
	if opts.SuppressErrors {
		rep = reporter.New(a.logger)
		sink = rep
	}

	vectors, err := session.NewTable(calc, a.tracer, a.logger).CalcRows(ctx, typed, workers, sink)
	if err != nil {
		return nil, errors.Join(domain.ErrCalculationFailed, err)
	}

	result := &Result{Columns: calc.Names(), Rows: make([]Row, len(vectors))}
	for i, vec := range vectors {
		row := Row{Name: rowName(typed[i]), Values: make([]*float64, vec.Len())}
		for j := range row.Values {
			if v, err := vec.Get(j); err == nil {
				row.Values[j] = &v
			}
		}
		result.Rows[i] = row
	}
	if rep != nil {
		result.Failures = len(rep.Entries())
	}

	if vertex, ok := ports.VertexFromContext(ctx); ok {
		_, _ = fmt.Fprintf(vertex.Stdout(), "%d rows, %d features, %d workers\n", len(typed), calc.Len(), workers)
		if result.Failures > 0 {
			_, _ = fmt.Fprintf(vertex.Stderr(), "%d calculations failed\n", result.Failures)
		}
	}
	return result, nil
}

// newCalculator builds the shared and calculated features of cfg and initializes them.
// With reuse, one session per worker is rebound to each input and the per-object
// child caches of collections survive the rebinding.
func newCalculator[T domain.Input](
	cfg *domain.FeatureConfig,
	log ports.Logger,
	reuse bool,
	inputs []domain.Input,
) (*session.CalculatorMulti[T], error) {
	shared, err := features.BuildShared(cfg.Shared, cfg.InputType)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build shared features")
	}
	list, err := features.BuildList[T](cfg.Features)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to build features")
	}

	strategy := session.Fresh[T]()
	if reuse {
		strategy = session.Reuse[T](objectCaches(inputs))
	}
	calc, err := session.NewCalculatorMulti(cfg.InputType, list,
		session.WithShared[T](shared),
		session.WithParams[T](cfg.Params),
		session.WithLogger[T](log),
		session.WithStrategy(strategy),
	)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to initialize features")
	}
	return calc, nil
}

// objectCaches names the per-object child caches of the largest collection in inputs.
func objectCaches(inputs []domain.Input) []domain.ChildCacheName {
	size := 0
	for _, in := range inputs {
		if c, ok := in.(*domain.ObjectCollection); ok {
			size = max(size, len(c.Objects))
		}
	}
	names := make([]domain.ChildCacheName, size)
	for i := range names {
		names[i] = domain.NewIndexedChildCacheName(features.ObjectsGroup, i)
	}
	return names
}

func rowName(in domain.Input) string {
	switch v := in.(type) {
	case *domain.ObjectMask:
		return v.Name
	case *domain.ObjectCollection:
		return v.Name
	default:
		return in.InputType().Short()
	}
}

// step runs fn as a recorded progress vertex. fn receives the vertex context.
func step[R any](
	ctx context.Context,
	telemetry ports.Telemetry,
	name string,
	fn func(context.Context) (R, error),
	opts ...ports.VertexOption,
) (R, error) {
	ctx, vertex := telemetry.Record(ctx, name, opts...)
	res, err := fn(ctx)
	vertex.Complete(err)
	return res, err
}

// List writes the available feature kinds.
func (a *App) List(_ context.Context) error {
	kinds := features.Kinds()
	rows := make([][]string, len(kinds))
	for i, k := range kinds {
		rows[i] = []string{k.Kind, k.Input.Short(), k.Description}
	}
	return renderKinds(a.out, rows)
}
