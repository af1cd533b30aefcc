package ml

import (
	"fmt"
	"math/rand"
	"sort"
)

// TreeParams controls regression tree growth.
type TreeParams struct {
	MaxDepth        int // 0 means unbounded
	MinSamplesSplit int // minimum samples to attempt a split; 0 means 2
	MaxFeatures     int // features considered per split; 0 means all
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

// RegressionTree is a CART tree minimizing squared error.
type RegressionTree struct {
	root        *treeNode
	params      TreeParams
	nFeatures   int
	importances []float64
}

// Fit grows the tree over x, y. The rng drives per-split feature
// subsampling; it may be nil when MaxFeatures selects all features.
func (t *RegressionTree) Fit(x [][]float64, y []float64, rng *rand.Rand) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training data: %d rows, %d targets", len(x), len(y))
	}
	t.nFeatures = len(x[0])
	t.importances = make([]float64, t.nFeatures)
	if t.params.MinSamplesSplit < 2 {
		t.params.MinSamplesSplit = 2
	}
	if t.params.MaxFeatures <= 0 || t.params.MaxFeatures > t.nFeatures {
		t.params.MaxFeatures = t.nFeatures
	}
	if t.params.MaxFeatures < t.nFeatures && rng == nil {
		return fmt.Errorf("feature subsampling requires a random source")
	}

	indices := make([]int, len(x))
	for i := range indices {
		indices[i] = i
	}
	t.root = t.build(x, y, indices, 0, len(x), rng)
	return nil
}

func (t *RegressionTree) build(x [][]float64, y []float64, indices []int, depth, total int, rng *rand.Rand) *treeNode {
	mean, sse := meanSSE(y, indices)

	if len(indices) < t.params.MinSamplesSplit || sse == 0 ||
		(t.params.MaxDepth > 0 && depth >= t.params.MaxDepth) {
		return &treeNode{leaf: true, value: mean}
	}

	feature, threshold, gain, leftIdx, rightIdx := t.bestSplit(x, y, indices, sse, rng)
	if feature < 0 {
		return &treeNode{leaf: true, value: mean}
	}

	// Importance is the impurity decrease weighted by node size.
	t.importances[feature] += gain * float64(len(indices)) / float64(total)

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      t.build(x, y, leftIdx, depth+1, total, rng),
		right:     t.build(x, y, rightIdx, depth+1, total, rng),
	}
}

// bestSplit scans candidate features for the threshold with the largest
// squared-error reduction. Thresholds are midpoints between distinct
// consecutive sorted values.
func (t *RegressionTree) bestSplit(x [][]float64, y []float64, indices []int, parentSSE float64, rng *rand.Rand) (feature int, threshold, gain float64, left, right []int) {
	feature = -1

	candidates := t.candidateFeatures(rng)
	sorted := make([]int, len(indices))

	for _, f := range candidates {
		copy(sorted, indices)
		sort.Slice(sorted, func(a, b int) bool { return x[sorted[a]][f] < x[sorted[b]][f] })

		// Incremental sums from the left; the complement gives the right.
		var leftSum, leftSq float64
		var totalSum, totalSq float64
		for _, i := range sorted {
			totalSum += y[i]
			totalSq += y[i] * y[i]
		}

		n := len(sorted)
		for pos := 0; pos < n-1; pos++ {
			v := y[sorted[pos]]
			leftSum += v
			leftSq += v * v

			cur, next := x[sorted[pos]][f], x[sorted[pos+1]][f]
			if cur == next {
				continue
			}

			nl := float64(pos + 1)
			nr := float64(n - pos - 1)
			leftSSE := leftSq - leftSum*leftSum/nl
			rightSum := totalSum - leftSum
			rightSSE := (totalSq - leftSq) - rightSum*rightSum/nr

			reduction := parentSSE - leftSSE - rightSSE
			if reduction > gain {
				gain = reduction
				feature = f
				threshold = (cur + next) / 2
			}
		}
	}

	if feature < 0 {
		return -1, 0, 0, nil, nil
	}

	for _, i := range indices {
		if x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	return feature, threshold, gain, left, right
}

func (t *RegressionTree) candidateFeatures(rng *rand.Rand) []int {
	if t.params.MaxFeatures >= t.nFeatures {
		all := make([]int, t.nFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}
	perm := rng.Perm(t.nFeatures)[:t.params.MaxFeatures]
	sort.Ints(perm)
	return perm
}

// Predict returns the tree's estimate for one feature row.
func (t *RegressionTree) Predict(row []float64) float64 {
	node := t.root
	for !node.leaf {
		if row[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

// Importances returns the raw per-feature impurity decreases.
func (t *RegressionTree) Importances() []float64 {
	return t.importances
}

func meanSSE(y []float64, indices []int) (mean, sse float64) {
	if len(indices) == 0 {
		return 0, 0
	}
	var sum, sq float64
	for _, i := range indices {
		sum += y[i]
		sq += y[i] * y[i]
	}
	n := float64(len(indices))
	mean = sum / n
	sse = sq - sum*sum/n
	if sse < 0 {
		sse = 0 // numeric noise on constant targets
	}
	return mean, sse
}
