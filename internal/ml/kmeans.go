package ml

import (
	"fmt"
	"math"
	"math/rand"
)

// KMeansParams controls clustering.
type KMeansParams struct {
	Clusters int
	Restarts int // independent seeded initializations; best inertia wins
	MaxIter  int
	Seed     int64
}

// KMeansResult is the best clustering found across restarts.
type KMeansResult struct {
	Labels    []int
	Centroids [][]float64
	Inertia   float64
}

// KMeans partitions rows into k clusters with Lloyd's algorithm and
// careful seeding, so repeated runs over the same data produce
// identical labels.
type KMeans struct {
	params KMeansParams
}

// NewKMeans creates a clusterer with sane defaults for restarts and
// iteration caps.
func NewKMeans(params KMeansParams) *KMeans {
	if params.Restarts <= 0 {
		params.Restarts = 10
	}
	if params.MaxIter <= 0 {
		params.MaxIter = 300
	}
	return &KMeans{params: params}
}

// Fit clusters x and returns the best restart by inertia.
func (k *KMeans) Fit(x [][]float64) (*KMeansResult, error) {
	if k.params.Clusters < 2 {
		return nil, fmt.Errorf("clusters must be at least 2, got %d", k.params.Clusters)
	}
	if len(x) < k.params.Clusters {
		return nil, fmt.Errorf("need at least %d rows, got %d", k.params.Clusters, len(x))
	}

	var best *KMeansResult
	for r := 0; r < k.params.Restarts; r++ {
		rng := rand.New(rand.NewSource(k.params.Seed + int64(r)*104729))
		result := k.run(x, rng)
		if best == nil || result.Inertia < best.Inertia {
			best = result
		}
	}
	return best, nil
}

func (k *KMeans) run(x [][]float64, rng *rand.Rand) *KMeansResult {
	centroids := k.seedCentroids(x, rng)
	labels := make([]int, len(x))

	var inertia float64
	for iter := 0; iter < k.params.MaxIter; iter++ {
		changed := false
		inertia = 0
		for i, row := range x {
			label, dist := nearestCentroid(row, centroids)
			if label != labels[i] {
				labels[i] = label
				changed = true
			}
			inertia += dist
		}

		if iter > 0 && !changed {
			break
		}

		// Recompute centroids. An empty cluster keeps its previous
		// centroid rather than being reseeded, which keeps restarts
		// reproducible.
		counts := make([]int, len(centroids))
		sums := make([][]float64, len(centroids))
		for c := range sums {
			sums[c] = make([]float64, len(x[0]))
		}
		for i, row := range x {
			counts[labels[i]]++
			for j, v := range row {
				sums[labels[i]][j] += v
			}
		}
		for c := range centroids {
			if counts[c] == 0 {
				continue
			}
			for j := range centroids[c] {
				centroids[c][j] = sums[c][j] / float64(counts[c])
			}
		}
	}

	return &KMeansResult{Labels: labels, Centroids: centroids, Inertia: inertia}
}

// seedCentroids implements k-means++ seeding: the first centroid is
// uniform, each later one is drawn proportionally to squared distance
// from the nearest chosen centroid.
func (k *KMeans) seedCentroids(x [][]float64, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k.params.Clusters)
	first := append([]float64(nil), x[rng.Intn(len(x))]...)
	centroids = append(centroids, first)

	dists := make([]float64, len(x))
	for len(centroids) < k.params.Clusters {
		var total float64
		for i, row := range x {
			_, d := nearestCentroid(row, centroids)
			dists[i] = d
			total += d
		}

		var pick int
		if total <= 0 {
			// All rows coincide with existing centroids; fall back to
			// a uniform draw so seeding still terminates.
			pick = rng.Intn(len(x))
		} else {
			target := rng.Float64() * total
			var cum float64
			pick = len(x) - 1
			for i, d := range dists {
				cum += d
				if cum >= target {
					pick = i
					break
				}
			}
		}
		centroids = append(centroids, append([]float64(nil), x[pick]...))
	}
	return centroids
}

func nearestCentroid(row []float64, centroids [][]float64) (int, float64) {
	best := 0
	bestDist := math.MaxFloat64
	for c, centroid := range centroids {
		var d float64
		for j, v := range row {
			diff := v - centroid[j]
			d += diff * diff
		}
		if d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best, bestDist
}
