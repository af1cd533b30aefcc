package ml

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"
)

// ForestParams controls random forest training.
type ForestParams struct {
	NumTrees       int
	MaxDepth       int // 0 means unbounded
	MaxConcurrency int // parallel tree fits; 0 means 4
	Seed           int64
}

// RandomForest is a bagged ensemble of CART trees. Each tree gets its
// own bootstrap sample and feature subsampling driven by a seed derived
// from the forest seed and the tree index, so training is deterministic
// no matter how the parallel fits interleave.
type RandomForest struct {
	trees  []*RegressionTree
	params ForestParams
}

// NewRandomForest creates an unfitted forest.
func NewRandomForest(params ForestParams) *RandomForest {
	if params.NumTrees <= 0 {
		params.NumTrees = 100
	}
	if params.MaxConcurrency <= 0 {
		params.MaxConcurrency = 4
	}
	return &RandomForest{params: params}
}

// Fit trains the forest. Trees train concurrently but land in a
// pre-sized slice, so the ensemble is identical across runs.
func (f *RandomForest) Fit(ctx context.Context, x [][]float64, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training data: %d rows, %d targets", len(x), len(y))
	}

	nFeatures := len(x[0])
	maxFeatures := nFeatures / 3
	if maxFeatures < 1 {
		maxFeatures = 1
	}

	f.trees = make([]*RegressionTree, f.params.NumTrees)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(f.params.MaxConcurrency)

	for i := 0; i < f.params.NumTrees; i++ {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rng := rand.New(rand.NewSource(f.params.Seed + int64(i)*7919))

			// Bootstrap sample with replacement.
			bx := make([][]float64, len(x))
			by := make([]float64, len(y))
			for j := range bx {
				pick := rng.Intn(len(x))
				bx[j] = x[pick]
				by[j] = y[pick]
			}

			tree := &RegressionTree{params: TreeParams{
				MaxDepth:    f.params.MaxDepth,
				MaxFeatures: maxFeatures,
			}}
			if err := tree.Fit(bx, by, rng); err != nil {
				return fmt.Errorf("fit tree %d: %w", i, err)
			}
			f.trees[i] = tree
			return nil
		})
	}

	return g.Wait()
}

// Predict returns the ensemble mean for one feature row.
func (f *RandomForest) Predict(row []float64) float64 {
	if len(f.trees) == 0 {
		return 0
	}
	var sum float64
	for _, tree := range f.trees {
		sum += tree.Predict(row)
	}
	return sum / float64(len(f.trees))
}

// PredictPerTree returns every tree's estimate for one row, used to
// build empirical prediction intervals.
func (f *RandomForest) PredictPerTree(row []float64) []float64 {
	out := make([]float64, len(f.trees))
	for i, tree := range f.trees {
		out[i] = tree.Predict(row)
	}
	return out
}

// FeatureImportances averages the per-tree impurity decreases and
// normalizes them to sum to 1.
func (f *RandomForest) FeatureImportances() []float64 {
	if len(f.trees) == 0 {
		return nil
	}
	n := len(f.trees[0].Importances())
	sums := make([]float64, n)
	for _, tree := range f.trees {
		for j, imp := range tree.Importances() {
			sums[j] += imp
		}
	}
	var total float64
	for _, s := range sums {
		total += s
	}
	if total > 0 {
		for j := range sums {
			sums[j] /= total
		}
	}
	return sums
}

// Quantile returns the q-th empirical quantile of values (0 ≤ q ≤ 1).
func Quantile(values []float64, q float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}
