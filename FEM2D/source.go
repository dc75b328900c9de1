package FEM2D

import "math"

// SourceFunc is the externally supplied forcing term of the Helmholtz problem,
// evaluated pointwise at mesh vertices
type SourceFunc func(x, y, z float64) complex128

// NewGaussianPulse builds the reference source: a Gaussian of amplitude amp
// and variance sigma2 centered at (x0, y0)
func NewGaussianPulse(amp, sigma2, x0, y0 float64) SourceFunc {
	return func(x, y, z float64) complex128 {
		var (
			dx = x - x0
			dy = y - y0
		)
		return complex(amp*math.Exp(-(dx*dx+dy*dy)/(2.*sigma2)), 0)
	}
}

// ZeroSource is the homogeneous forcing term
func ZeroSource(x, y, z float64) complex128 { return 0 }
