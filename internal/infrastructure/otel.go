package infrastructure

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/config"
)

const (
	ServiceName    = "fifa-analytics-pipeline"
	ServiceVersion = "1.0.0"
	TracerName     = "fifa-analytics"
)

// TracingProviders holds the tracer provider and tracer used by the
// pipeline. When tracing is disabled both are no-ops.
type TracingProviders struct {
	TracerProvider *sdktrace.TracerProvider
	Tracer         trace.Tracer
	logger         *slog.Logger
}

// InitializeTracing sets up OpenTelemetry tracing with a stdout span
// exporter. The pipeline is a batch tool, so spans go to the console
// rather than a collector.
func InitializeTracing(cfg config.TracingConfig, logger *slog.Logger) (*TracingProviders, error) {
	if logger == nil {
		logger = GetLogger()
	}

	if !cfg.Enabled {
		return &TracingProviders{
			Tracer: noop.NewTracerProvider().Tracer(TracerName),
			logger: logger,
		}, nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(ServiceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create otel resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(cfg.SampleRatio)),
	)
	otel.SetTracerProvider(tp)

	logger.Info("tracing initialized",
		slog.String("service", ServiceName),
		slog.Float64("sample_ratio", cfg.SampleRatio))

	return &TracingProviders{
		TracerProvider: tp,
		Tracer:         tp.Tracer(TracerName),
		logger:         logger,
	}, nil
}

// Shutdown flushes and stops the tracer provider.
func (p *TracingProviders) Shutdown(ctx context.Context) error {
	if p == nil || p.TracerProvider == nil {
		return nil
	}
	if err := p.TracerProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down tracer provider: %w", err)
	}
	return nil
}
