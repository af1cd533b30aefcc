package analytics

import (
	"sort"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/errors"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/features"
	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts/domain"
)

// Formation describes how many players each position group fields.
type Formation struct {
	Name        string
	Goalkeepers int
	Defenders   int
	Midfielders int
	Forwards    int
}

// Formations supported by the squad analyzer.
var Formations = []Formation{
	{Name: "4-3-3", Goalkeepers: 1, Defenders: 4, Midfielders: 3, Forwards: 3},
	{Name: "4-4-2", Goalkeepers: 1, Defenders: 4, Midfielders: 4, Forwards: 2},
}

// LineupSlot is one selected player in a formation.
type LineupSlot struct {
	Position         string  `json:"position_group"`
	PlayerID         int64   `json:"player_id"`
	Name             string  `json:"name"`
	Overall          int     `json:"overall"`
	PerformanceIndex float64 `json:"performance_index"`
}

// FormationFit is the best XI a squad can field in one formation.
type FormationFit struct {
	Formation   string       `json:"formation"`
	Complete    bool         `json:"complete"`
	Lineup      []LineupSlot `json:"lineup"`
	MeanOverall float64      `json:"mean_overall"`
	MeanIndex   float64      `json:"mean_performance_index"`
	Missing     []string     `json:"missing_positions,omitempty"`
}

// BestLineups evaluates every supported formation for a club's squad
// and returns the fits ordered best first. Incomplete formations sort
// after complete ones.
func BestLineups(derived *features.Result, club string) ([]FormationFit, error) {
	squad := map[domain.PositionGroup][]features.Row{}
	count := 0
	for _, row := range derived.Rows {
		if row.Player.Club != club {
			continue
		}
		group := row.Player.Group()
		squad[group] = append(squad[group], row)
		count++
	}
	if count == 0 {
		return nil, errors.NewValidationError("club not found in dataset", nil).
			WithContext("club", club)
	}

	for group := range squad {
		rows := squad[group]
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].PerformanceIndex != rows[j].PerformanceIndex {
				return rows[i].PerformanceIndex > rows[j].PerformanceIndex
			}
			return rows[i].Player.ID < rows[j].Player.ID
		})
	}

	fits := make([]FormationFit, 0, len(Formations))
	for _, f := range Formations {
		fits = append(fits, buildFit(f, squad))
	}
	sort.SliceStable(fits, func(i, j int) bool {
		if fits[i].Complete != fits[j].Complete {
			return fits[i].Complete
		}
		return fits[i].MeanIndex > fits[j].MeanIndex
	})
	return fits, nil
}

func buildFit(f Formation, squad map[domain.PositionGroup][]features.Row) FormationFit {
	fit := FormationFit{Formation: f.Name, Complete: true}

	needs := []struct {
		group domain.PositionGroup
		count int
	}{
		{domain.PositionGoalkeeper, f.Goalkeepers},
		{domain.PositionDefender, f.Defenders},
		{domain.PositionMidfielder, f.Midfielders},
		{domain.PositionForward, f.Forwards},
	}

	var sumOverall, sumIndex float64
	for _, need := range needs {
		available := squad[need.group]
		if len(available) < need.count {
			fit.Complete = false
			fit.Missing = append(fit.Missing, string(need.group))
		}
		take := need.count
		if take > len(available) {
			take = len(available)
		}
		for _, row := range available[:take] {
			fit.Lineup = append(fit.Lineup, LineupSlot{
				Position:         string(need.group),
				PlayerID:         row.Player.ID,
				Name:             row.Player.Name,
				Overall:          row.Player.Overall,
				PerformanceIndex: row.PerformanceIndex,
			})
			sumOverall += float64(row.Player.Overall)
			sumIndex += row.PerformanceIndex
		}
	}

	if len(fit.Lineup) > 0 {
		fit.MeanOverall = sumOverall / float64(len(fit.Lineup))
		fit.MeanIndex = sumIndex / float64(len(fit.Lineup))
	}
	return fit
}
