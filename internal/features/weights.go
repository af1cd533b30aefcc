package features

import (
	"github.com/KaanDRoid/fifa-analytics-dashboard/pkg/contracts/domain"
)

// skillWeights assigns per-attribute weights for the performance index.
// Attributes absent from a table renormalize over the remaining weights.
type skillWeights map[string]float64

// Position-group weight tables. Defenders lean on defending and
// physicality, midfielders on distribution, forwards on finishing and
// pace. Goalkeepers have no dedicated rating columns in the six-skill
// schema, so they fall back to an equal weighting (see performanceIndex).
var positionWeights = map[domain.PositionGroup]skillWeights{
	domain.PositionDefender: {
		"defending": 0.3,
		"physic":    0.2,
		"pace":      0.2,
		"passing":   0.2,
		"dribbling": 0.1,
	},
	domain.PositionMidfielder: {
		"passing":   0.3,
		"dribbling": 0.25,
		"defending": 0.15,
		"physic":    0.15,
		"shooting":  0.15,
	},
	domain.PositionForward: {
		"shooting":  0.3,
		"pace":      0.25,
		"dribbling": 0.25,
		"passing":   0.1,
		"physic":    0.1,
	},
}

// skillValue returns the named skill rating from a record.
func skillValue(r domain.PlayerRecord, name string) (float64, bool) {
	switch name {
	case "pace":
		return float64(r.Pace), true
	case "shooting":
		return float64(r.Shooting), true
	case "passing":
		return float64(r.Passing), true
	case "dribbling":
		return float64(r.Dribbling), true
	case "defending":
		return float64(r.Defending), true
	case "physic":
		return float64(r.Physic), true
	default:
		return 0, false
	}
}

// performanceIndex computes the position-weighted skill average.
// Missing attributes drop out and the remaining weights renormalize;
// a zero total weight (goalkeepers) falls back to the plain mean of the
// six skills.
func performanceIndex(r domain.PlayerRecord) float64 {
	weights, ok := positionWeights[r.Group()]
	var index, totalWeight float64

	if ok {
		for attr, weight := range weights {
			if v, present := skillValue(r, attr); present {
				index += v * weight
				totalWeight += weight
			}
		}
	}

	if totalWeight > 0 {
		return index / totalWeight
	}

	skills := r.SkillRatings()
	var sum float64
	for _, v := range skills {
		sum += v
	}
	return sum / float64(len(skills))
}
