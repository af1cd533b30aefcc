package cluster

// Style labels for cluster profiles, assigned from the skill that
// separates a cluster most from the dataset average.
const (
	StyleDefensiveAnchors  = "Defensive Anchors"
	StylePaceAndPower      = "Pace & Power"
	StylePlaymakers        = "Playmakers"
	StyleClinicalFinishers = "Clinical Finishers"
	StyleBoxToBox          = "Box-to-Box"
	StyleBalanced          = "Balanced Players"
)

// styleThreshold is the minimum rating-point deviation from the global
// mean before a cluster earns a specialist label.
const styleThreshold = 2.0

// styleName maps a cluster's mean skills to a playing style. global
// holds the dataset-wide means in the same order as skill columns:
// pace, shooting, passing, dribbling, defending, physic.
func styleName(clusterMeans, global []float64, clusterOverall, globalOverall float64) string {
	devs := make([]float64, len(clusterMeans))
	maxDev, maxIdx := 0.0, -1
	for i := range clusterMeans {
		devs[i] = clusterMeans[i] - global[i]
		if devs[i] > maxDev {
			maxDev = devs[i]
			maxIdx = i
		}
	}

	if maxDev < styleThreshold {
		if clusterOverall-globalOverall >= styleThreshold {
			return StyleBoxToBox
		}
		return StyleBalanced
	}

	switch maxIdx {
	case 4: // defending
		return StyleDefensiveAnchors
	case 0, 5: // pace, physic
		return StylePaceAndPower
	case 2, 3: // passing, dribbling
		return StylePlaymakers
	case 1: // shooting
		return StyleClinicalFinishers
	}
	return StyleBalanced
}
