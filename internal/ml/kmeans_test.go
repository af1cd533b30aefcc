package ml

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoBlobs samples points around two well-separated centers.
func twoBlobs(n int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	x := make([][]float64, 0, 2*n)
	for i := 0; i < n; i++ {
		x = append(x, []float64{rng.NormFloat64(), rng.NormFloat64()})
		x = append(x, []float64{20 + rng.NormFloat64(), 20 + rng.NormFloat64()})
	}
	return x
}

func TestKMeans_SeparatesBlobs(t *testing.T) {
	x := twoBlobs(50, 1)

	km := NewKMeans(KMeansParams{Clusters: 2, Seed: 42})
	result, err := km.Fit(x)
	require.NoError(t, err)
	require.Len(t, result.Labels, len(x))

	// Points from the same blob share a label; blobs differ.
	assert.Equal(t, result.Labels[0], result.Labels[2])
	assert.Equal(t, result.Labels[1], result.Labels[3])
	assert.NotEqual(t, result.Labels[0], result.Labels[1])
}

func TestKMeans_Deterministic(t *testing.T) {
	x := twoBlobs(30, 2)

	km := NewKMeans(KMeansParams{Clusters: 3, Seed: 42})
	r1, err := km.Fit(x)
	require.NoError(t, err)
	r2, err := km.Fit(x)
	require.NoError(t, err)

	assert.Equal(t, r1.Labels, r2.Labels)
	assert.Equal(t, r1.Inertia, r2.Inertia)
	assert.Equal(t, r1.Centroids, r2.Centroids)
}

func TestKMeans_LabelRange(t *testing.T) {
	x := twoBlobs(25, 3)

	km := NewKMeans(KMeansParams{Clusters: 4, Seed: 42})
	result, err := km.Fit(x)
	require.NoError(t, err)

	for _, label := range result.Labels {
		assert.GreaterOrEqual(t, label, 0)
		assert.Less(t, label, 4)
	}
}

func TestKMeans_IdenticalRows(t *testing.T) {
	x := make([][]float64, 10)
	for i := range x {
		x[i] = []float64{1, 2, 3}
	}

	km := NewKMeans(KMeansParams{Clusters: 2, Seed: 42})
	result, err := km.Fit(x)
	require.NoError(t, err)

	// Zero-variance data collapses to a single occupied cluster.
	first := result.Labels[0]
	for _, label := range result.Labels {
		assert.Equal(t, first, label)
	}
	assert.Equal(t, 0.0, result.Inertia)
}

func TestKMeans_Invalid(t *testing.T) {
	km := NewKMeans(KMeansParams{Clusters: 1, Seed: 42})
	_, err := km.Fit(twoBlobs(5, 4))
	assert.Error(t, err)

	km = NewKMeans(KMeansParams{Clusters: 50, Seed: 42})
	_, err = km.Fit(twoBlobs(5, 5))
	assert.Error(t, err)
}
