package analytics

import (
	"sort"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/errors"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/features"
	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts/domain"
)

// PlayerReport is a single player's scouting card: the raw record, the
// derived columns and dataset percentile ranks.
type PlayerReport struct {
	Player           domain.PlayerRecord `json:"player"`
	PositionGroup    string              `json:"position_group"`
	PerformanceIndex float64             `json:"performance_index"`
	ValuePerOverall  float64             `json:"value_per_overall"`
	GrowthPotential  int                 `json:"growth_potential"`
	AgeGroup         string              `json:"age_group"`

	OverallPercentile float64 `json:"overall_percentile"`
	ValuePercentile   float64 `json:"value_percentile"`

	Similar []SimilarPlayer `json:"similar_players"`
}

// Report builds the scouting card for one player, including its top
// lookalikes.
func Report(derived *features.Result, playerID int64, similarCount int) (*PlayerReport, error) {
	var found *features.Row
	for i := range derived.Rows {
		if derived.Rows[i].Player.ID == playerID {
			found = &derived.Rows[i]
			break
		}
	}
	if found == nil {
		return nil, errors.NewValidationError("player not found in dataset", nil).
			WithContext("player_id", playerID)
	}

	similar, err := Similar(derived, playerID, similarCount)
	if err != nil {
		return nil, err
	}

	return &PlayerReport{
		Player:            found.Player,
		PositionGroup:     string(found.Player.Group()),
		PerformanceIndex:  found.PerformanceIndex,
		ValuePerOverall:   found.ValuePerOverall,
		GrowthPotential:   found.GrowthPotential,
		AgeGroup:          found.AgeGroup,
		OverallPercentile: percentile(derived.Rows, float64(found.Player.Overall), func(r features.Row) float64 { return float64(r.Player.Overall) }),
		ValuePercentile:   percentile(derived.Rows, found.Player.ValueEUR, func(r features.Row) float64 { return r.Player.ValueEUR }),
		Similar:           similar,
	}, nil
}

// percentile is the share of rows at or below the given value.
func percentile(rows []features.Row, value float64, get func(features.Row) float64) float64 {
	if len(rows) == 0 {
		return 0
	}
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = get(r)
	}
	sort.Float64s(values)
	at := sort.SearchFloat64s(values, value+1e-12)
	return 100 * float64(at) / float64(len(values))
}
