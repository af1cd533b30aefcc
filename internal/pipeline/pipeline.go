// Package pipeline chains loading, feature derivation, valuation and
// clustering into one run, with stage spans and a content-addressed
// result cache. Running the same files under the same configuration
// twice returns the cached result untouched.
package pipeline

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/analytics"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/cluster"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/config"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/dataset"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/errors"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/features"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/infrastructure"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/valuation"
)

// RunResult bundles everything one pipeline run produces.
type RunResult struct {
	Table       *dataset.Table         `json:"-"`
	LoadReports []*dataset.LoadReport  `json:"load_reports"`
	Derived     *features.Result       `json:"-"`
	Summary     analytics.Summary      `json:"summary"`
	FitReport   *valuation.FitReport   `json:"fit_report,omitempty"`
	Predictions []valuation.Prediction `json:"predictions,omitempty"`
	Clusters    *cluster.Result        `json:"clusters,omitempty"`
	FromCache   bool                   `json:"from_cache"`
}

// Options selects which stages a run executes.
type Options struct {
	Valuate  bool
	Cluster  bool
	Clusters int // 0 falls back to the configured default
}

// Pipeline orchestrates the stages over a shared configuration.
type Pipeline struct {
	cfg    *config.Config
	logger *slog.Logger
	tracer trace.Tracer
	loader *dataset.Loader

	mu    sync.Mutex
	cache map[string]*RunResult
}

// New creates a pipeline.
func New(cfg *config.Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		cfg:    cfg,
		logger: infrastructure.WithComponent(logger, "pipeline"),
		tracer: otel.Tracer(infrastructure.TracerName),
		loader: dataset.NewLoader(logger),
		cache:  make(map[string]*RunResult),
	}
}

// Run executes the pipeline over the given source files. Multiple
// files merge into a single table, with a gender tag inferred from the
// file name when the data itself carries none.
func (p *Pipeline) Run(ctx context.Context, paths []string, opts Options) (*RunResult, error) {
	if len(paths) == 0 {
		return nil, errors.NewConfigError("no input files given", nil)
	}
	ctx = infrastructure.EnsureTraceID(ctx)

	ctx, span := p.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(attribute.Int("input_files", len(paths))))
	defer span.End()

	table, reports, err := p.load(ctx, paths)
	if err != nil {
		return nil, err
	}

	key := p.cacheKey(table, opts)
	p.mu.Lock()
	if cached, ok := p.cache[key]; ok {
		p.mu.Unlock()
		p.logger.InfoContext(ctx, "pipeline cache hit", slog.String("key", key[:12]))
		hit := *cached
		hit.FromCache = true
		return &hit, nil
	}
	p.mu.Unlock()

	result := &RunResult{Table: table, LoadReports: reports}

	result.Derived, err = p.derive(ctx, table)
	if err != nil {
		return nil, err
	}
	result.Summary = p.summarize(ctx, result.Derived)

	if opts.Valuate {
		if err := p.valuate(ctx, result); err != nil {
			return nil, err
		}
	}
	if opts.Cluster {
		if err := p.clusterStage(ctx, result, opts.Clusters); err != nil {
			return nil, err
		}
	}

	p.mu.Lock()
	p.cache[key] = result
	p.mu.Unlock()

	return result, nil
}

func (p *Pipeline) load(ctx context.Context, paths []string) (*dataset.Table, []*dataset.LoadReport, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.load")
	defer span.End()

	tables := make([]*dataset.Table, 0, len(paths))
	reports := make([]*dataset.LoadReport, 0, len(paths))
	fallbacks := make([]string, 0, len(paths))

	for _, path := range paths {
		var (
			table  *dataset.Table
			report *dataset.LoadReport
			err    error
		)
		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx", ".xlsm":
			table, report, err = p.loader.LoadExcel(ctx, path)
		default:
			table, report, err = p.loader.Load(ctx, path)
		}
		if err != nil {
			span.RecordError(err)
			return nil, nil, err
		}
		tables = append(tables, table)
		reports = append(reports, report)
		fallbacks = append(fallbacks, genderFromFilename(path))
	}

	if len(tables) == 1 {
		return tables[0], reports, nil
	}
	merged, duplicates, err := dataset.Merge(tables, fallbacks)
	if err != nil {
		return nil, nil, errors.NewValidationError("merging input tables failed", err)
	}
	if duplicates > 0 {
		p.logger.WarnContext(ctx, "duplicate identifiers dropped during merge",
			slog.Int("duplicates", duplicates))
	}
	span.SetAttributes(attribute.Int("rows", merged.Len()), attribute.Int("duplicates", duplicates))
	return merged, reports, nil
}

func (p *Pipeline) derive(ctx context.Context, table *dataset.Table) (*features.Result, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.derive",
		trace.WithAttributes(attribute.Int("rows", table.Len())))
	defer span.End()

	return features.NewDeriver(p.logger).Derive(ctx, table)
}

func (p *Pipeline) summarize(ctx context.Context, derived *features.Result) analytics.Summary {
	_, span := p.tracer.Start(ctx, "pipeline.summarize")
	defer span.End()

	return analytics.Summarize(derived)
}

func (p *Pipeline) valuate(ctx context.Context, result *RunResult) error {
	ctx, span := p.tracer.Start(ctx, "pipeline.valuate")
	defer span.End()

	predictor := valuation.NewPredictor(p.cfg.ML, p.logger)
	report, err := predictor.Fit(ctx, result.Derived)
	if err != nil {
		span.RecordError(err)
		return err
	}
	predictions, err := predictor.Predict(ctx, result.Derived)
	if err != nil {
		span.RecordError(err)
		return err
	}

	result.FitReport = report
	result.Predictions = predictions
	span.SetAttributes(attribute.Float64("ensemble_r2", report.EnsembleMetrics.R2))
	return nil
}

func (p *Pipeline) clusterStage(ctx context.Context, result *RunResult, k int) error {
	if k == 0 {
		k = p.cfg.ML.DefaultClusters
	}
	ctx, span := p.tracer.Start(ctx, "pipeline.cluster",
		trace.WithAttributes(attribute.Int("k", k)))
	defer span.End()

	clusters, err := cluster.NewClusterer(p.cfg.ML, p.logger).FitPredict(ctx, result.Table, k)
	if err != nil {
		span.RecordError(err)
		return err
	}
	result.Clusters = clusters
	return nil
}

// cacheKey hashes the table content together with every configuration
// knob that can change the output.
func (p *Pipeline) cacheKey(table *dataset.Table, opts Options) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%+v|%+v", table.Fingerprint(), p.cfg.ML, opts)
	return fmt.Sprintf("%x", h.Sum(nil))
}

func genderFromFilename(path string) string {
	name := strings.ToLower(filepath.Base(path))
	switch {
	case strings.Contains(name, "female") || strings.Contains(name, "women"):
		return "female"
	case strings.Contains(name, "male") || strings.Contains(name, "men"):
		return "male"
	default:
		return ""
	}
}
