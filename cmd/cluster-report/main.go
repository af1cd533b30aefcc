// Command cluster-report groups players into playing styles and prints
// each cluster's profile.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/config"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/exporter"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/infrastructure"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/pipeline"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/validation"
	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts/domain"
)

func main() {
	inputs := flag.String("in", "", "comma-separated player CSV/Excel files")
	k := flag.Int("k", 0, "cluster count (defaults to configured value)")
	flag.Parse()

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

	if *inputs == "" {
		slog.Error("No input files given, use -in")
		os.Exit(1)
	}
	files := strings.Split(*inputs, ",")
	if err := validation.NewFileValidator(logger).ValidateDatasetFiles(files); err != nil {
		slog.Error("Input validation failed", "error", err)
		os.Exit(1)
	}

	ctx := infrastructure.EnsureTraceID(context.Background())

	p := pipeline.New(cfg, logger)
	result, err := p.Run(ctx, files, pipeline.Options{Cluster: true, Clusters: *k})
	if err != nil {
		slog.ErrorContext(ctx, "Pipeline failed", "error", err)
		os.Exit(1)
	}

	csvWriter := exporter.NewCSVWriter(paths)
	jsonWriter := exporter.NewJSONWriter(paths)
	if err := csvWriter.WriteAssignments("clusters.csv", result.Clusters); err != nil {
		slog.ErrorContext(ctx, "Failed to export assignments", "error", err)
		os.Exit(1)
	}
	if err := jsonWriter.WriteJSON("cluster_profiles.json", result.Clusters.Profiles); err != nil {
		slog.ErrorContext(ctx, "Failed to export profiles", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Clustered %d players into %d styles (inertia %.1f)\n",
		len(result.Clusters.Assignments), result.Clusters.K, result.Clusters.Inertia)
	fmt.Printf("2-D projection explains %.1f%% + %.1f%% of variance\n\n",
		100*result.Clusters.ExplainedVariance[0], 100*result.Clusters.ExplainedVariance[1])

	for _, profile := range result.Clusters.Profiles {
		fmt.Printf("Cluster %d: %s (%d players, %.1f ovr, %.1f yrs)\n",
			profile.Cluster, profile.Style, profile.Size, profile.MeanOverall, profile.MeanAge)
		for _, col := range domain.SkillColumns {
			fmt.Printf("  %-10s %5.1f\n", col, profile.MeanSkills[col])
		}
		if len(profile.TopPlayers) > 0 {
			fmt.Printf("  notable: %s\n", strings.Join(profile.TopPlayers, ", "))
		}
		fmt.Println()
	}
}
