// Package features derives analytic columns from a loaded player table.
// Derivation is a pure function of the input table: two calls on an
// unmodified table always yield identical output.
package features

import (
	"context"
	"log/slog"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/config"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/dataset"
	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts/domain"
)

// Row is one player with its derived columns attached. Player carries
// the clipped copy used for all downstream computation; the source
// table remains untouched.
type Row struct {
	Player domain.PlayerRecord `json:"player"`

	ValuePerOverall  float64 `json:"value_per_overall"`
	PerformanceIndex float64 `json:"performance_index"`
	GrowthPotential  int     `json:"growth_potential"`
	AgeGroup         string  `json:"age_group"`
}

// Result is the extended table plus the count of clipped inputs.
type Result struct {
	Rows     []Row
	Warnings int
	Source   *dataset.Table
}

// Deriver computes the derived columns.
type Deriver struct {
	logger *slog.Logger
}

// NewDeriver creates a deriver. A nil logger falls back to slog.Default.
func NewDeriver(logger *slog.Logger) *Deriver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Deriver{logger: logger}
}

// Derive computes all derived columns for the table. Out-of-range
// inputs are clipped to their documented ranges and counted as
// warnings; derivation itself never fails on data content.
func (d *Deriver) Derive(ctx context.Context, table *dataset.Table) (*Result, error) {
	result := &Result{
		Rows:   make([]Row, 0, table.Len()),
		Source: table,
	}

	for _, record := range table.Rows {
		clipped, warnings := clipRecord(record)
		result.Warnings += warnings

		result.Rows = append(result.Rows, Row{
			Player:           clipped,
			ValuePerOverall:  valuePerOverall(clipped),
			PerformanceIndex: performanceIndex(clipped),
			GrowthPotential:  growthPotential(clipped),
			AgeGroup:         ageGroup(clipped.Age),
		})
	}

	d.logger.InfoContext(ctx, "features derived",
		slog.Int("rows", len(result.Rows)),
		slog.Int("clip_warnings", result.Warnings))

	return result, nil
}

// valuePerOverall is market value per overall rating point. The
// denominator is floored at 1 so the result is always finite.
func valuePerOverall(r domain.PlayerRecord) float64 {
	overall := r.Overall
	if overall < 1 {
		overall = 1
	}
	return r.ValueEUR / float64(overall)
}

// growthPotential is the headroom between potential and overall,
// floored at zero for players past their projected peak.
func growthPotential(r domain.PlayerRecord) int {
	g := r.Potential - r.Overall
	if g < 0 {
		return 0
	}
	return g
}

// ageGroup buckets an age the way the dashboards did.
func ageGroup(age int) string {
	switch {
	case age <= 20:
		return "U20"
	case age <= 25:
		return "20-25"
	case age <= 30:
		return "25-30"
	case age <= 35:
		return "30-35"
	default:
		return "35+"
	}
}

// clipRecord clamps out-of-range fields to their documented ranges and
// returns the number of fields touched.
func clipRecord(r domain.PlayerRecord) (domain.PlayerRecord, int) {
	warnings := 0

	clipRating := func(v int) int {
		if v < config.RatingMin {
			warnings++
			return config.RatingMin
		}
		if v > config.RatingMax {
			warnings++
			return config.RatingMax
		}
		return v
	}

	r.Overall = clipRating(r.Overall)
	r.Potential = clipRating(r.Potential)
	r.Pace = clipRating(r.Pace)
	r.Shooting = clipRating(r.Shooting)
	r.Passing = clipRating(r.Passing)
	r.Dribbling = clipRating(r.Dribbling)
	r.Defending = clipRating(r.Defending)
	r.Physic = clipRating(r.Physic)

	if r.Age < config.AgeMin {
		r.Age = config.AgeMin
		warnings++
	} else if r.Age > config.AgeMax {
		r.Age = config.AgeMax
		warnings++
	}

	if r.ValueEUR < 0 {
		r.ValueEUR = 0
		warnings++
	}
	if r.WageEUR < 0 {
		r.WageEUR = 0
		warnings++
	}

	return r, warnings
}
