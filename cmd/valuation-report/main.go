// Command valuation-report trains the market value ensemble over a
// player export and writes the undervalued-player report. With
// -player or -club it produces a scouting card or a squad report
// instead.
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
)

func main() {
	inputs := flag.String("in", "", "comma-separated player CSV/Excel files")
	minOverall := flag.Int("min-overall", 0, "minimum overall for the bargain list (defaults to configured value)")
	top := flag.Int("top", 25, "number of bargains to print")
	playerID := flag.Int64("player", 0, "print a scouting card for one player instead of the bargain list")
	club := flag.String("club", "", "print a squad report for one club instead of the bargain list")
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

	// The scouting and squad reports only need derived features; the
	// ensemble is trained for the bargain list.
	valuate := *playerID == 0 && *club == ""

	p := pipeline.New(cfg, logger)
	result, err := p.Run(ctx, files, pipeline.Options{Valuate: valuate})
	if err != nil {
		slog.ErrorContext(ctx, "Pipeline failed", "error", err)
		os.Exit(1)
	}

	jsonWriter := exporter.NewJSONWriter(paths)

	if *playerID != 0 {
		if err := runPlayerReport(ctx, result, jsonWriter, *playerID); err != nil {
			slog.ErrorContext(ctx, "Player report failed", "error", err)
			os.Exit(1)
		}
		return
	}
	if *club != "" {
		if err := runClubReport(ctx, result, jsonWriter, *club); err != nil {
			slog.ErrorContext(ctx, "Club report failed", "error", err)
			os.Exit(1)
		}
		return
	}

	threshold := *minOverall
	if threshold == 0 {
		threshold = cfg.ML.MinOverall
	}
	bargains := analytics.Undervalued(result.Derived, threshold)

	if err := jsonWriter.WriteJSON("undervalued.json", bargains); err != nil {
		slog.ErrorContext(ctx, "Failed to export bargains", "error", err)
		os.Exit(1)
	}
	if err := jsonWriter.WriteJSON("valuation_metrics.json", result.FitReport); err != nil {
		slog.ErrorContext(ctx, "Failed to export metrics", "error", err)
		os.Exit(1)
	}

	metrics := result.FitReport.EnsembleMetrics
	fmt.Printf("Model: R²=%.3f MAE=€%.0f RMSE=€%.0f (test n=%d)\n",
		metrics.R2, metrics.MAE, metrics.RMSE, metrics.TestSize)
	fmt.Printf("Undervalued players (overall ≥ %d):\n", threshold)

	limit := *top
	if limit > len(bargains) {
		limit = len(bargains)
	}
	for i, b := range bargains[:limit] {
		fmt.Printf("%3d. %-28s %-4s %2d ovr  €%.1fM (group median €%.0f/ovr)\n",
			i+1, b.Name, b.Position, b.Overall, b.ValueEUR/1e6, b.GroupMedian)
	}
}

func runPlayerReport(ctx context.Context, result *pipeline.RunResult, w *exporter.JSONWriter, id int64) error {
	report, err := analytics.Report(result.Derived, id, 5)
	if err != nil {
		return err
	}
	if err := w.WriteJSON(fmt.Sprintf("player_%d.json", id), report); err != nil {
		return err
	}

	p := report.Player
	fmt.Printf("%s (#%d) — %s, %s, age %d\n", p.Name, p.ID, report.PositionGroup, p.Club, p.Age)
	fmt.Printf("Overall %d (p%.0f)  Value €%.1fM (p%.0f)  Growth +%d  %s\n",
		p.Overall, report.OverallPercentile, p.ValueEUR/1e6,
		report.ValuePercentile, report.GrowthPotential, report.AgeGroup)
	fmt.Printf("Performance index %.1f, €%.0f per overall point\n",
		report.PerformanceIndex, report.ValuePerOverall)
	fmt.Println("Similar players:")
	for _, s := range report.Similar {
		fmt.Printf("  %-28s %-20s %2d ovr  similarity %.3f\n",
			s.Name, s.Club, s.Overall, s.Similarity)
	}
	slog.InfoContext(ctx, "Player report written", slog.Int64("player_id", id))
	return nil
}

func runClubReport(ctx context.Context, result *pipeline.RunResult, w *exporter.JSONWriter, club string) error {
	chemistry, err := analytics.TeamChemistry(result.Derived, club)
	if err != nil {
		return err
	}
	lineups, err := analytics.BestLineups(result.Derived, club)
	if err != nil {
		return err
	}

	payload := struct {
		Chemistry *analytics.Chemistry    `json:"chemistry"`
		Lineups   []analytics.FormationFit `json:"lineups"`
	}{chemistry, lineups}
	if err := w.WriteJSON("club_report.json", payload); err != nil {
		return err
	}

	fmt.Printf("%s: %d players, mean overall %.1f, squad value €%.1fM\n",
		chemistry.Club, chemistry.SquadSize, chemistry.MeanOverall, chemistry.TotalValueEUR/1e6)
	fmt.Printf("Chemistry %.0f/100 — core nation %s (%.0f%%), mean age %.1f (spread %.1f)\n",
		chemistry.Score, chemistry.CoreNation, chemistry.CoreNationPct,
		chemistry.MeanAge, chemistry.AgeSpread)
	for _, fit := range lineups {
		status := "complete"
		if !fit.Complete {
			status = "missing " + strings.Join(fit.Missing, ", ")
		}
		fmt.Printf("Formation %s (%s): mean overall %.1f, index %.1f\n",
			fit.Formation, status, fit.MeanOverall, fit.MeanIndex)
		for _, slot := range fit.Lineup {
			fmt.Printf("  %-3s %-28s %2d ovr  index %.1f\n",
				slot.Position, slot.Name, slot.Overall, slot.PerformanceIndex)
		}
	}
	slog.InfoContext(ctx, "Club report written", slog.String("club", club))
	return nil
}
