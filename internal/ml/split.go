package ml

import (
	"fmt"
	"math/rand"
)

// TrainTestSplit returns deterministic train/test index sets for n rows.
// The shuffle is driven entirely by the seed, so repeated splits of the
// same input are identical, which keeps fit metrics exactly stable.
func TrainTestSplit(n int, testSize float64, seed int64) (train, test []int, err error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("need at least 2 rows to split, got %d", n)
	}
	if testSize <= 0 || testSize >= 1 {
		return nil, nil, fmt.Errorf("test size must be in (0,1), got %v", testSize)
	}

	testCount := int(float64(n) * testSize)
	if testCount < 1 {
		testCount = 1
	}
	if testCount >= n {
		testCount = n - 1
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	return indices[testCount:], indices[:testCount], nil
}

// Subset gathers matrix rows by index.
func Subset(x [][]float64, idx []int) [][]float64 {
	out := make([][]float64, len(idx))
	for i, index := range idx {
		out[i] = x[index]
	}
	return out
}

// SubsetVec gathers vector entries by index.
func SubsetVec(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, index := range idx {
		out[i] = y[index]
	}
	return out
}
