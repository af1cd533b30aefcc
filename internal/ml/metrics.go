package ml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// RegressionMetrics holds the quality numbers attached to a fitted model.
type RegressionMetrics struct {
	MAE      float64 `json:"mae"`
	RMSE     float64 `json:"rmse"`
	R2       float64 `json:"r2"`
	TestSize int     `json:"test_size"`
}

// Evaluate computes MAE, RMSE and R² for predictions against truth.
func Evaluate(truth, predicted []float64) (RegressionMetrics, error) {
	if len(truth) != len(predicted) {
		return RegressionMetrics{}, fmt.Errorf("length mismatch: %d truth vs %d predicted", len(truth), len(predicted))
	}
	if len(truth) == 0 {
		return RegressionMetrics{}, fmt.Errorf("no samples to evaluate")
	}

	n := float64(len(truth))
	mean := stat.Mean(truth, nil)

	var absSum, sqSum, totSum float64
	for i := range truth {
		diff := truth[i] - predicted[i]
		absSum += math.Abs(diff)
		sqSum += diff * diff
		dev := truth[i] - mean
		totSum += dev * dev
	}

	r2 := 0.0
	if totSum > 0 {
		r2 = 1 - sqSum/totSum
	}

	return RegressionMetrics{
		MAE:      absSum / n,
		RMSE:     math.Sqrt(sqSum / n),
		R2:       r2,
		TestSize: len(truth),
	}, nil
}
