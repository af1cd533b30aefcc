// Command processor runs the full analytics pipeline over player CSV
// or Excel exports: load, derive, valuation model, clustering, and
// report files under data/reports.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/analytics"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/config"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/exporter"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/infrastructure"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/pipeline"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/validation"
	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts"
)

func main() {
	inputs := flag.String("in", "", "comma-separated player CSV/Excel files (defaults to data/male_players.csv,data/female_players.csv)")
	clusters := flag.Int("clusters", 0, "cluster count (defaults to configured value)")
	skipValuation := flag.Bool("no-valuation", false, "skip the valuation model")
	skipClustering := flag.Bool("no-clustering", false, "skip clustering")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		return
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}
	defer infrastructure.CloseLogger()

	paths, err := config.GetPaths()
	if err != nil {
		slog.Error("Failed to initialize paths", "error", err)
		os.Exit(1)
	}
	if err := paths.EnsureDirs(); err != nil {
		slog.Error("Failed to create data directories", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.EnsureTraceID(context.Background())

	providers, err := infrastructure.InitializeTracing(cfg.Tracing, logger)
	if err != nil {
		slog.Error("Failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer providers.Shutdown(ctx)

	files := resolveInputs(*inputs, paths)
	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateDatasetFiles(files); err != nil {
		slog.ErrorContext(ctx, "Input validation failed", "error", err)
		os.Exit(1)
	}
	if err := validator.ValidateOutputDirectory(paths.ReportsDir); err != nil {
		slog.ErrorContext(ctx, "Output validation failed", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "Starting pipeline", slog.Any("files", files))

	p := pipeline.New(cfg, logger)
	result, err := p.Run(ctx, files, pipeline.Options{
		Valuate:  !*skipValuation,
		Cluster:  !*skipClustering,
		Clusters: *clusters,
	})
	if err != nil {
		slog.ErrorContext(ctx, "Pipeline failed", "error", err)
		os.Exit(1)
	}

	for _, report := range result.LoadReports {
		slog.InfoContext(ctx, "Load report",
			slog.Int("total_rows", report.TotalRows),
			slog.Int("loaded_rows", report.LoadedRows),
			slog.Int("dropped_parse", report.DroppedParse),
			slog.Int("dropped_critical", report.DroppedCritical),
			slog.Int("dropped_duplicate", report.DroppedDuplicate))
	}

	csvWriter := exporter.NewCSVWriter(paths)
	jsonWriter := exporter.NewJSONWriter(paths)

	if err := csvWriter.WriteDerived(config.CombinedDataFile, result.Derived); err != nil {
		slog.ErrorContext(ctx, "Failed to export derived table", "error", err)
		os.Exit(1)
	}
	if err := jsonWriter.WriteJSON("dataset_summary.json", result.Summary); err != nil {
		slog.ErrorContext(ctx, "Failed to export summary", "error", err)
		os.Exit(1)
	}
	if err := jsonWriter.WriteJSON("market_trends.json", analytics.Trends(result.Derived)); err != nil {
		slog.ErrorContext(ctx, "Failed to export market trends", "error", err)
		os.Exit(1)
	}
	if result.FitReport != nil {
		if err := jsonWriter.WriteJSON("valuation_metrics.json", result.FitReport); err != nil {
			slog.ErrorContext(ctx, "Failed to export metrics", "error", err)
			os.Exit(1)
		}
		if err := csvWriter.WritePredictions("valuations.csv", result.Predictions); err != nil {
			slog.ErrorContext(ctx, "Failed to export predictions", "error", err)
			os.Exit(1)
		}
	}
	if result.Clusters != nil {
		if err := csvWriter.WriteAssignments("clusters.csv", result.Clusters); err != nil {
			slog.ErrorContext(ctx, "Failed to export cluster assignments", "error", err)
			os.Exit(1)
		}
		if err := jsonWriter.WriteJSON("cluster_profiles.json", result.Clusters.Profiles); err != nil {
			slog.ErrorContext(ctx, "Failed to export cluster profiles", "error", err)
			os.Exit(1)
		}
	}

	slog.InfoContext(ctx, "Pipeline complete",
		slog.Int("players", result.Summary.Players),
		slog.Int("clubs", result.Summary.Clubs),
		slog.Bool("from_cache", result.FromCache))
}

func resolveInputs(flagValue string, paths *config.Paths) []string {
	if flagValue != "" {
		parts := strings.Split(flagValue, ",")
		files := make([]string, 0, len(parts))
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				files = append(files, trimmed)
			}
		}
		return files
	}

	var files []string
	for _, candidate := range []string{paths.MalePlayersCSV, paths.FemalePlayersCSV} {
		if _, err := os.Stat(candidate); err == nil {
			files = append(files, candidate)
		}
	}
	return files
}
