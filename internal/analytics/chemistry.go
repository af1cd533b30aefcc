package analytics

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/errors"
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/features"
)

// Chemistry summarizes how well a squad hangs together: shared
// nationalities, an age core in its prime, and positional balance.
type Chemistry struct {
	Club          string  `json:"club"`
	SquadSize     int     `json:"squad_size"`
	MeanOverall   float64 `json:"mean_overall"`
	MeanAge       float64 `json:"mean_age"`
	AgeSpread     float64 `json:"age_spread"`
	Nationalities int     `json:"nationalities"`
	CoreNation    string  `json:"core_nation"`
	CoreNationPct float64 `json:"core_nation_pct"`
	TotalValueEUR float64 `json:"total_value_eur"`

	PositionCounts map[string]int `json:"position_counts"`
	Score          float64        `json:"score"` // 0 to 100
}

// TeamChemistry computes the chemistry profile for one club.
func TeamChemistry(derived *features.Result, club string) (*Chemistry, error) {
	var squad []features.Row
	for _, row := range derived.Rows {
		if row.Player.Club == club {
			squad = append(squad, row)
		}
	}
	if len(squad) == 0 {
		return nil, errors.NewValidationError("club not found in dataset", nil).
			WithContext("club", club)
	}

	ages := make([]float64, len(squad))
	nations := map[string]int{}
	positions := map[string]int{}
	var sumOverall, totalValue float64
	for i, row := range squad {
		ages[i] = float64(row.Player.Age)
		sumOverall += float64(row.Player.Overall)
		totalValue += row.Player.ValueEUR
		if row.Player.Nationality != "" {
			nations[row.Player.Nationality]++
		}
		positions[string(row.Player.Group())]++
	}

	coreNation, coreCount := "", 0
	names := make([]string, 0, len(nations))
	for n := range nations {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		if nations[n] > coreCount {
			coreNation, coreCount = n, nations[n]
		}
	}

	c := &Chemistry{
		Club:           club,
		SquadSize:      len(squad),
		MeanOverall:    sumOverall / float64(len(squad)),
		MeanAge:        stat.Mean(ages, nil),
		AgeSpread:      math.Sqrt(stat.PopVariance(ages, nil)),
		Nationalities:  len(nations),
		CoreNation:     coreNation,
		TotalValueEUR:  totalValue,
		PositionCounts: positions,
	}
	if len(squad) > 0 && coreCount > 0 {
		c.CoreNationPct = 100 * float64(coreCount) / float64(len(squad))
	}
	c.Score = chemistryScore(c)
	return c, nil
}

// chemistryScore combines a prime-age core, a shared dressing-room
// language and positional coverage into a single 0-100 number.
func chemistryScore(c *Chemistry) float64 {
	// Peak chemistry near a mean age of 26, tapering either side.
	ageScore := 100 - 8*math.Abs(c.MeanAge-26)
	if ageScore < 0 {
		ageScore = 0
	}

	nationScore := c.CoreNationPct
	if nationScore > 60 {
		nationScore = 60 + (nationScore-60)/2 // diminishing returns
	}

	coverage := 0.0
	for _, group := range []string{"GK", "DEF", "MID", "FWD"} {
		if c.PositionCounts[group] > 0 {
			coverage += 25
		}
	}

	score := 0.4*ageScore + 0.3*nationScore + 0.3*coverage
	if score > 100 {
		score = 100
	}
	return score
}
