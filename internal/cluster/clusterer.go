// Package cluster groups players into playing styles with seeded
// k-means over standardized skill ratings. Identical input and
// configuration always produce identical assignments.
package cluster

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/config"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/dataset"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/errors"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/ml"
	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts/domain"
)

// Assignment is one player's cluster membership plus its 2-D embedding
// for scatter plotting.
type Assignment struct {
	PlayerID int64   `json:"player_id"`
	Name     string  `json:"name"`
	Cluster  int     `json:"cluster"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// Profile describes one cluster.
type Profile struct {
	Cluster     int                `json:"cluster"`
	Style       string             `json:"style"`
	Size        int                `json:"size"`
	MeanOverall float64            `json:"mean_overall"`
	MeanAge     float64            `json:"mean_age"`
	MeanSkills  map[string]float64 `json:"mean_skills"`
	TopPlayers  []string           `json:"top_players"`
}

// Result is a full clustering run.
type Result struct {
	K                 int          `json:"k"`
	Assignments       []Assignment `json:"assignments"`
	Profiles          []Profile    `json:"profiles"`
	Inertia           float64      `json:"inertia"`
	ExplainedVariance []float64    `json:"explained_variance"`
}

// Clusterer runs seeded k-means plus a 2-component projection.
type Clusterer struct {
	cfg    config.MLConfig
	logger *slog.Logger
}

// NewClusterer creates a clusterer.
func NewClusterer(cfg config.MLConfig, logger *slog.Logger) *Clusterer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Clusterer{cfg: cfg, logger: logger}
}

// clusterFeature extracts the skill profile used for clustering:
// the six skills plus overall.
func clusterFeature(r domain.PlayerRecord) []float64 {
	skills := r.SkillRatings()
	return []float64{
		skills[0], skills[1], skills[2], skills[3], skills[4], skills[5],
		float64(r.Overall),
	}
}

// FitPredict clusters the table into k styles.
func (c *Clusterer) FitPredict(ctx context.Context, table *dataset.Table, k int) (*Result, error) {
	if k < 2 {
		return nil, errors.NewConfigError(fmt.Sprintf("cluster count must be at least 2, got %d", k), nil)
	}
	if k > table.Len() {
		return nil, errors.NewConfigError(
			fmt.Sprintf("cluster count %d exceeds row count %d", k, table.Len()), nil)
	}

	x := make([][]float64, table.Len())
	for i, r := range table.Rows {
		x[i] = clusterFeature(r)
	}

	scaler := &ml.StandardScaler{}
	scaled, err := scaler.FitTransform(x)
	if err != nil {
		return nil, errors.NewValidationError("feature scaling failed", err)
	}

	km := ml.NewKMeans(ml.KMeansParams{
		Clusters: k,
		Restarts: c.cfg.KMeansRestarts,
		Seed:     c.cfg.RandomSeed,
	})
	fit, err := km.Fit(scaled)
	if err != nil {
		return nil, errors.NewConfigError("clustering failed", err)
	}

	pca := ml.NewPCA(2)
	coords, err := pca.FitTransform(scaled)
	if err != nil {
		return nil, errors.NewValidationError("projection failed", err)
	}

	result := &Result{
		K:                 k,
		Assignments:       make([]Assignment, table.Len()),
		Inertia:           fit.Inertia,
		ExplainedVariance: pca.ExplainedVariance,
	}
	for i, r := range table.Rows {
		result.Assignments[i] = Assignment{
			PlayerID: r.ID,
			Name:     r.Name,
			Cluster:  fit.Labels[i],
			X:        coords[i][0],
			Y:        coords[i][1],
		}
	}
	result.Profiles = c.profile(table, fit.Labels, k)

	c.logger.InfoContext(ctx, "players clustered",
		slog.Int("k", k),
		slog.Int("rows", table.Len()),
		slog.Float64("inertia", fit.Inertia))

	return result, nil
}

// profile aggregates per-cluster means and names each cluster's style.
func (c *Clusterer) profile(table *dataset.Table, labels []int, k int) []Profile {
	globalSkills := make([]float64, len(domain.SkillColumns))
	var globalOverall float64
	for _, r := range table.Rows {
		skills := r.SkillRatings()
		for j := range globalSkills {
			globalSkills[j] += skills[j]
		}
		globalOverall += float64(r.Overall)
	}
	n := float64(table.Len())
	for j := range globalSkills {
		globalSkills[j] /= n
	}
	globalOverall /= n

	profiles := make([]Profile, k)
	skillSums := make([][]float64, k)
	type topEntry struct {
		name    string
		overall int
	}
	tops := make([][]topEntry, k)
	for cl := 0; cl < k; cl++ {
		skillSums[cl] = make([]float64, len(domain.SkillColumns))
		profiles[cl] = Profile{Cluster: cl, MeanSkills: map[string]float64{}}
	}

	for i, r := range table.Rows {
		cl := labels[i]
		profiles[cl].Size++
		profiles[cl].MeanOverall += float64(r.Overall)
		profiles[cl].MeanAge += float64(r.Age)
		skills := r.SkillRatings()
		for j := range skills {
			skillSums[cl][j] += skills[j]
		}
		tops[cl] = append(tops[cl], topEntry{name: r.Name, overall: r.Overall})
	}

	for cl := range profiles {
		if profiles[cl].Size == 0 {
			profiles[cl].Style = StyleBalanced
			continue
		}
		size := float64(profiles[cl].Size)
		profiles[cl].MeanOverall /= size
		profiles[cl].MeanAge /= size

		means := make([]float64, len(domain.SkillColumns))
		for j, col := range domain.SkillColumns {
			means[j] = skillSums[cl][j] / size
			profiles[cl].MeanSkills[col] = means[j]
		}
		profiles[cl].Style = styleName(means, globalSkills, profiles[cl].MeanOverall, globalOverall)

		// Top players by overall, order stable for equal ratings.
		entries := tops[cl]
		for a := 1; a < len(entries); a++ {
			for b := a; b > 0 && entries[b].overall > entries[b-1].overall; b-- {
				entries[b], entries[b-1] = entries[b-1], entries[b]
			}
		}
		limit := 5
		if len(entries) < limit {
			limit = len(entries)
		}
		for _, e := range entries[:limit] {
			profiles[cl].TopPlayers = append(profiles[cl].TopPlayers, e.name)
		}
	}
	return profiles
}
