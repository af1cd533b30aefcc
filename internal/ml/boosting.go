package ml

import "fmt"

// BoostingParams controls gradient boosting training.
type BoostingParams struct {
	Stages       int
	LearningRate float64
	MaxDepth     int
}

// GradientBoosting fits shallow regression trees to residuals in
// sequence. Training is fully deterministic: no sampling is involved,
// each stage sees every row.
type GradientBoosting struct {
	initial float64
	stages  []*RegressionTree
	params  BoostingParams
}

// NewGradientBoosting creates an unfitted booster.
func NewGradientBoosting(params BoostingParams) *GradientBoosting {
	if params.Stages <= 0 {
		params.Stages = 100
	}
	if params.LearningRate <= 0 {
		params.LearningRate = 0.1
	}
	if params.MaxDepth <= 0 {
		params.MaxDepth = 3
	}
	return &GradientBoosting{params: params}
}

// Fit trains the booster on squared-error residuals.
func (b *GradientBoosting) Fit(x [][]float64, y []float64) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("invalid training data: %d rows, %d targets", len(x), len(y))
	}

	var sum float64
	for _, v := range y {
		sum += v
	}
	b.initial = sum / float64(len(y))

	current := make([]float64, len(y))
	for i := range current {
		current[i] = b.initial
	}

	residuals := make([]float64, len(y))
	b.stages = make([]*RegressionTree, 0, b.params.Stages)

	for s := 0; s < b.params.Stages; s++ {
		for i := range residuals {
			residuals[i] = y[i] - current[i]
		}

		tree := &RegressionTree{params: TreeParams{MaxDepth: b.params.MaxDepth}}
		if err := tree.Fit(x, residuals, nil); err != nil {
			return fmt.Errorf("fit stage %d: %w", s, err)
		}
		b.stages = append(b.stages, tree)

		for i := range current {
			current[i] += b.params.LearningRate * tree.Predict(x[i])
		}
	}
	return nil
}

// Predict returns the boosted estimate for one feature row.
func (b *GradientBoosting) Predict(row []float64) float64 {
	out := b.initial
	for _, tree := range b.stages {
		out += b.params.LearningRate * tree.Predict(row)
	}
	return out
}

// FeatureImportances sums stage-tree impurity decreases, normalized to 1.
func (b *GradientBoosting) FeatureImportances() []float64 {
	if len(b.stages) == 0 {
		return nil
	}
	n := len(b.stages[0].Importances())
	sums := make([]float64, n)
	for _, tree := range b.stages {
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
