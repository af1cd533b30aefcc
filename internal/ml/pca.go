package ml

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// PCA projects centered data onto its top principal components via a
// thin SVD. Components are sign-fixed so projections are stable across
// runs.
type PCA struct {
	Components        int
	means             []float64
	basis             *mat.Dense // nFeatures x Components
	ExplainedVariance []float64  // ratio per component, in [0, 1]
}

// NewPCA creates a projector onto n components.
func NewPCA(components int) *PCA {
	if components <= 0 {
		components = 2
	}
	return &PCA{Components: components}
}

// Fit learns the principal axes of x.
func (p *PCA) Fit(x [][]float64) error {
	if len(x) == 0 {
		return fmt.Errorf("no rows to fit")
	}
	rows, cols := len(x), len(x[0])
	if p.Components > cols {
		return fmt.Errorf("cannot extract %d components from %d features", p.Components, cols)
	}

	p.means = make([]float64, cols)
	for _, row := range x {
		if len(row) != cols {
			return fmt.Errorf("ragged input: expected %d features, got %d", cols, len(row))
		}
		for j, v := range row {
			p.means[j] += v
		}
	}
	for j := range p.means {
		p.means[j] /= float64(rows)
	}

	centered := mat.NewDense(rows, cols, nil)
	for i, row := range x {
		for j, v := range row {
			centered.Set(i, j, v-p.means[j])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return fmt.Errorf("svd factorization failed")
	}

	var v mat.Dense
	svd.VTo(&v)
	singular := svd.Values(nil)

	p.basis = mat.NewDense(cols, p.Components, nil)
	for c := 0; c < p.Components; c++ {
		// Fix each axis's sign so the largest-magnitude loading is
		// positive.
		maxAbs, sign := 0.0, 1.0
		for j := 0; j < cols; j++ {
			if abs := v.At(j, c); abs*abs > maxAbs*maxAbs {
				maxAbs = abs
				if abs < 0 {
					sign = -1
				} else {
					sign = 1
				}
			}
		}
		for j := 0; j < cols; j++ {
			p.basis.Set(j, c, sign*v.At(j, c))
		}
	}

	var total float64
	variances := make([]float64, len(singular))
	for i, s := range singular {
		variances[i] = s * s
		total += variances[i]
	}
	p.ExplainedVariance = make([]float64, p.Components)
	if total > 0 {
		for c := 0; c < p.Components; c++ {
			p.ExplainedVariance[c] = variances[c] / total
		}
	}
	return nil
}

// Transform projects rows onto the fitted components.
func (p *PCA) Transform(x [][]float64) ([][]float64, error) {
	if p.basis == nil {
		return nil, fmt.Errorf("pca not fitted")
	}
	cols := len(p.means)
	out := make([][]float64, len(x))
	for i, row := range x {
		if len(row) != cols {
			return nil, fmt.Errorf("row %d: expected %d features, got %d", i, cols, len(row))
		}
		proj := make([]float64, p.Components)
		for c := 0; c < p.Components; c++ {
			var sum float64
			for j, val := range row {
				sum += (val - p.means[j]) * p.basis.At(j, c)
			}
			proj[c] = sum
		}
		out[i] = proj
	}
	return out, nil
}

// FitTransform fits the axes and projects x in one call.
func (p *PCA) FitTransform(x [][]float64) ([][]float64, error) {
	if err := p.Fit(x); err != nil {
		return nil, err
	}
	return p.Transform(x)
}
