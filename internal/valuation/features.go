package valuation

import (
	"github.com/KaanDRoid/fifa-analytics-dashboard/internal/dataset"
	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts/domain"
)

// baseFeatures are always available; they come from required columns.
var baseFeatures = []string{
	"overall", "potential", "age",
	"pace", "shooting", "passing", "dribbling", "defending", "physic",
}

// extraFeatures join the matrix only when the source carried them.
var extraFeatures = []string{"height_cm", "weight_kg", "weak_foot", "skill_moves"}

// featureColumns returns the ordered feature set a table supports.
func featureColumns(table *dataset.Table) []string {
	cols := make([]string, 0, len(baseFeatures)+len(extraFeatures))
	cols = append(cols, baseFeatures...)
	for _, col := range extraFeatures {
		if table.HasColumn(col) {
			cols = append(cols, col)
		}
	}
	return cols
}

// featureVector extracts one row in the given column order.
func featureVector(r domain.PlayerRecord, cols []string) []float64 {
	vec := make([]float64, len(cols))
	for i, col := range cols {
		switch col {
		case "overall":
			vec[i] = float64(r.Overall)
		case "potential":
			vec[i] = float64(r.Potential)
		case "age":
			vec[i] = float64(r.Age)
		case "pace":
			vec[i] = float64(r.Pace)
		case "shooting":
			vec[i] = float64(r.Shooting)
		case "passing":
			vec[i] = float64(r.Passing)
		case "dribbling":
			vec[i] = float64(r.Dribbling)
		case "defending":
			vec[i] = float64(r.Defending)
		case "physic":
			vec[i] = float64(r.Physic)
		case "height_cm":
			vec[i] = r.HeightCM
		case "weight_kg":
			vec[i] = r.WeightKG
		case "weak_foot":
			vec[i] = float64(r.WeakFoot)
		case "skill_moves":
			vec[i] = float64(r.SkillMoves)
		}
	}
	return vec
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
