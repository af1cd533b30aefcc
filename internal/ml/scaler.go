package ml

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler centers each feature column to zero mean and unit
// variance. Scaling parameters are captured at fit time and reused for
// every subsequent transform, so train and inference data share one
// frame of reference.
type StandardScaler struct {
	Means  []float64 `json:"means"`
	Scales []float64 `json:"scales"`
}

// Fit computes per-column means and standard deviations.
// Zero-variance columns get scale 1 so they map to constant zero
// instead of dividing by zero.
func (s *StandardScaler) Fit(x [][]float64) error {
	if len(x) == 0 {
		return fmt.Errorf("cannot fit scaler on empty matrix")
	}
	cols := len(x[0])
	s.Means = make([]float64, cols)
	s.Scales = make([]float64, cols)

	column := make([]float64, len(x))
	for j := 0; j < cols; j++ {
		for i := range x {
			if len(x[i]) != cols {
				return fmt.Errorf("ragged matrix: row %d has %d columns, want %d", i, len(x[i]), cols)
			}
			column[i] = x[i][j]
		}
		s.Means[j] = stat.Mean(column, nil)
		scale := stat.PopStdDev(column, nil)
		if scale == 0 {
			scale = 1
		}
		s.Scales[j] = scale
	}
	return nil
}

// Transform applies the fitted scaling to a matrix, returning a new
// matrix and leaving the input untouched.
func (s *StandardScaler) Transform(x [][]float64) ([][]float64, error) {
	if s.Means == nil {
		return nil, fmt.Errorf("scaler is not fitted")
	}
	out := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != len(s.Means) {
			return nil, fmt.Errorf("row %d has %d columns, scaler fitted on %d", i, len(row), len(s.Means))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Means[j]) / s.Scales[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits the scaler and transforms the input in one call.
func (s *StandardScaler) FitTransform(x [][]float64) ([][]float64, error) {
	if err := s.Fit(x); err != nil {
		return nil, err
	}
	return s.Transform(x)
}
