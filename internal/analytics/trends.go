package analytics

import (
	"sort"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/features"
	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts/domain"
)

// TrendBucket is one aggregated market segment.
type TrendBucket struct {
	Key          string  `json:"key"`
	Players      int     `json:"players"`
	MeanValueEUR float64 `json:"mean_value_eur"`
	MeanOverall  float64 `json:"mean_overall"`
	MaxValueEUR  float64 `json:"max_value_eur"`
}

// MarketTrends groups market value along the axes scouts browse by.
type MarketTrends struct {
	ByAgeGroup []TrendBucket `json:"by_age_group"`
	ByPosition []TrendBucket `json:"by_position"`
	ByOverall  []TrendBucket `json:"by_overall_band"`
	ByLeague   []TrendBucket `json:"by_league"`
}

// ageGroupOrder fixes the presentation order of age buckets.
var ageGroupOrder = []string{"U20", "20-25", "25-30", "30-35", "35+"}

// leagueTrendLimit caps the league table to the strongest markets.
const leagueTrendLimit = 15

// Trends aggregates the derived table into market trend buckets.
func Trends(derived *features.Result) MarketTrends {
	type agg struct {
		n       int
		value   float64
		overall float64
		max     float64
	}

	byAge := map[string]*agg{}
	byPos := map[string]*agg{}
	byBand := map[string]*agg{}
	byLeague := map[string]*agg{}

	add := func(m map[string]*agg, key string, row features.Row) {
		if key == "" {
			return
		}
		a := m[key]
		if a == nil {
			a = &agg{}
			m[key] = a
		}
		a.n++
		a.value += row.Player.ValueEUR
		a.overall += float64(row.Player.Overall)
		if row.Player.ValueEUR > a.max {
			a.max = row.Player.ValueEUR
		}
	}

	for _, row := range derived.Rows {
		add(byAge, row.AgeGroup, row)
		add(byPos, string(row.Player.Group()), row)
		add(byBand, overallBand(row.Player.Overall), row)
		add(byLeague, row.Player.League, row)
	}

	finish := func(m map[string]*agg, order []string) []TrendBucket {
		keys := order
		if keys == nil {
			keys = make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
		}
		out := make([]TrendBucket, 0, len(keys))
		for _, k := range keys {
			a := m[k]
			if a == nil {
				continue
			}
			out = append(out, TrendBucket{
				Key:          k,
				Players:      a.n,
				MeanValueEUR: a.value / float64(a.n),
				MeanOverall:  a.overall / float64(a.n),
				MaxValueEUR:  a.max,
			})
		}
		return out
	}

	trends := MarketTrends{
		ByAgeGroup: finish(byAge, ageGroupOrder),
		ByPosition: finish(byPos, []string{
			string(domain.PositionGoalkeeper), string(domain.PositionDefender),
			string(domain.PositionMidfielder), string(domain.PositionForward),
		}),
		ByOverall: finish(byBand, []string{"<60", "60-69", "70-79", "80-89", "90+"}),
	}

	leagues := finish(byLeague, nil)
	sort.SliceStable(leagues, func(i, j int) bool {
		return leagues[i].MeanValueEUR > leagues[j].MeanValueEUR
	})
	if len(leagues) > leagueTrendLimit {
		leagues = leagues[:leagueTrendLimit]
	}
	trends.ByLeague = leagues

	return trends
}

func overallBand(overall int) string {
	switch {
	case overall < 60:
		return "<60"
	case overall < 70:
		return "60-69"
	case overall < 80:
		return "70-79"
	case overall < 90:
		return "80-89"
	default:
		return "90+"
	}
}
