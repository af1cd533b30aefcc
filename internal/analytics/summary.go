// Package analytics answers scouting questions over a derived player
// table: dataset summaries, market trends, undervalued candidates,
// similar players, formation fits and squad chemistry. Everything here
// is a pure read over the derived rows.
package analytics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/features"
)

// Summary is the headline view of a loaded dataset.
type Summary struct {
	Players       int     `json:"players"`
	Clubs         int     `json:"clubs"`
	Leagues       int     `json:"leagues"`
	Nationalities int     `json:"nationalities"`
	MeanOverall   float64 `json:"mean_overall"`
	MeanAge       float64 `json:"mean_age"`
	MeanValueEUR  float64 `json:"mean_value_eur"`
	TotalValueEUR float64 `json:"total_value_eur"`

	TopRated    []PlayerBrief `json:"top_rated"`
	MostValued  []PlayerBrief `json:"most_valued"`
	TopProspect []PlayerBrief `json:"top_prospects"`
}

// PlayerBrief is the compact listing used in rankings.
type PlayerBrief struct {
	PlayerID int64   `json:"player_id"`
	Name     string  `json:"name"`
	Club     string  `json:"club"`
	Overall  int     `json:"overall"`
	Age      int     `json:"age"`
	ValueEUR float64 `json:"value_eur"`
}

const rankingSize = 10

// Summarize computes the dataset summary.
func Summarize(derived *features.Result) Summary {
	clubs := map[string]bool{}
	leagues := map[string]bool{}
	nations := map[string]bool{}

	overalls := make([]float64, 0, len(derived.Rows))
	ages := make([]float64, 0, len(derived.Rows))
	var totalValue float64

	for _, row := range derived.Rows {
		p := row.Player
		if p.Club != "" {
			clubs[p.Club] = true
		}
		if p.League != "" {
			leagues[p.League] = true
		}
		if p.Nationality != "" {
			nations[p.Nationality] = true
		}
		overalls = append(overalls, float64(p.Overall))
		ages = append(ages, float64(p.Age))
		totalValue += p.ValueEUR
	}

	s := Summary{
		Players:       len(derived.Rows),
		Clubs:         len(clubs),
		Leagues:       len(leagues),
		Nationalities: len(nations),
		TotalValueEUR: totalValue,
	}
	if len(derived.Rows) > 0 {
		s.MeanOverall = stat.Mean(overalls, nil)
		s.MeanAge = stat.Mean(ages, nil)
		s.MeanValueEUR = totalValue / float64(len(derived.Rows))
	}

	s.TopRated = topBy(derived.Rows, rankingSize, func(a, b features.Row) bool {
		return a.Player.Overall > b.Player.Overall
	})
	s.MostValued = topBy(derived.Rows, rankingSize, func(a, b features.Row) bool {
		return a.Player.ValueEUR > b.Player.ValueEUR
	})
	s.TopProspect = topBy(derived.Rows, rankingSize, func(a, b features.Row) bool {
		if a.GrowthPotential != b.GrowthPotential {
			return a.GrowthPotential > b.GrowthPotential
		}
		return a.Player.Potential > b.Player.Potential
	})
	return s
}

// topBy returns the first n rows under the given ordering, with the
// player ID as a stable tiebreak.
func topBy(rows []features.Row, n int, less func(a, b features.Row) bool) []PlayerBrief {
	sorted := make([]features.Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if less(sorted[i], sorted[j]) {
			return true
		}
		if less(sorted[j], sorted[i]) {
			return false
		}
		return sorted[i].Player.ID < sorted[j].Player.ID
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	out := make([]PlayerBrief, n)
	for i := 0; i < n; i++ {
		p := sorted[i].Player
		out[i] = PlayerBrief{
			PlayerID: p.ID,
			Name:     p.Name,
			Club:     p.Club,
			Overall:  p.Overall,
			Age:      p.Age,
			ValueEUR: p.ValueEUR,
		}
	}
	return out
}
