package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/features"
)

// undervaluedRatio marks players priced below this share of the median
// value-per-overall for their position group.
const undervaluedRatio = 0.8

// Bargain is one undervalued candidate.
type Bargain struct {
	PlayerID        int64   `json:"player_id"`
	Name            string  `json:"name"`
	Club            string  `json:"club"`
	Position        string  `json:"position_group"`
	Overall         int     `json:"overall"`
	Age             int     `json:"age"`
	ValueEUR        float64 `json:"value_eur"`
	ValuePerOverall float64 `json:"value_per_overall"`
	GroupMedian     float64 `json:"group_median_value_per_overall"`
}

// Undervalued finds players whose value-per-overall sits below 80% of
// the median for their position group. Players under the minimum
// overall or without a market value are skipped; a bargain that nobody
// would sign is not a bargain.
func Undervalued(derived *features.Result, minOverall int) []Bargain {
	groups := map[string][]float64{}
	for _, row := range derived.Rows {
		if row.Player.ValueEUR <= 0 || row.Player.Overall < minOverall {
			continue
		}
		key := string(row.Player.Group())
		groups[key] = append(groups[key], row.ValuePerOverall)
	}

	medians := make(map[string]float64, len(groups))
	for key, values := range groups {
		sort.Float64s(values)
		medians[key] = stat.Quantile(0.5, stat.Empirical, values, nil)
	}

	var out []Bargain
	for _, row := range derived.Rows {
		if row.Player.ValueEUR <= 0 || row.Player.Overall < minOverall {
			continue
		}
		key := string(row.Player.Group())
		median := medians[key]
		if median <= 0 || row.ValuePerOverall >= undervaluedRatio*median {
			continue
		}
		out = append(out, Bargain{
			PlayerID:        row.Player.ID,
			Name:            row.Player.Name,
			Club:            row.Player.Club,
			Position:        key,
			Overall:         row.Player.Overall,
			Age:             row.Player.Age,
			ValueEUR:        row.Player.ValueEUR,
			ValuePerOverall: row.ValuePerOverall,
			GroupMedian:     median,
		})
	}

	// Cheapest relative to their group first.
	sort.SliceStable(out, func(i, j int) bool {
		ri := out[i].ValuePerOverall / out[i].GroupMedian
		rj := out[j].ValuePerOverall / out[j].GroupMedian
		if ri != rj {
			return ri < rj
		}
		return out[i].PlayerID < out[j].PlayerID
	})
	return out
}
