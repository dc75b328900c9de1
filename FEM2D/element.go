package FEM2D

import (
	"fmt"
	"math"
)

// TriGeometry carries the per-triangle quantities the assembly kernel needs:
// the area and the constant gradient of each linear barycentric basis function
type TriGeometry struct {
	Area float64
	Grad [3][3]float64
}

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func norm(a [3]float64) float64 {
	return math.Sqrt(dot(a, a))
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// NewTriGeometry computes area and basis gradients from the three vertex
// coordinates. Area comes from the cross product magnitude so it is positive
// for either vertex winding; the gradient of basis i is
// (unit normal x opposite edge tangent) / 2A, which flips sign with the
// normal under reversed winding and so is winding independent too.
func NewTriGeometry(v [3][3]float64) (tg TriGeometry, err error) {
	var (
		e1 = sub(v[1], v[0])
		e2 = sub(v[2], v[0])
		n  = cross(e1, e2)
		nl = norm(n)
	)
	if nl == 0 {
		err = fmt.Errorf("degenerate triangle, vertices %v", v)
		return
	}
	tg.Area = 0.5 * nl
	nHat := [3]float64{n[0] / nl, n[1] / nl, n[2] / nl}
	for i := 0; i < 3; i++ {
		// tangent of the edge opposite vertex i, cyclic order
		t := sub(v[(i+2)%3], v[(i+1)%3])
		g := cross(nHat, t)
		for d := 0; d < 3; d++ {
			tg.Grad[i][d] = g[d] / (2. * tg.Area)
		}
	}
	return
}

// ElementAssembler computes the per-triangle contributions of the weak form
// of the Helmholtz operator del^2(u) + k^2 u
type ElementAssembler struct {
	WaveNo float64
	Source SourceFunc
}

// LocalMatrix is the 3x3 stiffness plus mass contribution. Entry (i,j) is
// area * grad_i . grad_j for the Laplacian, plus the linear-triangle mass
// matrix area/12 * [[2,1,1],[1,2,1],[1,1,2]] scaled by -k^2 for the
// Helmholtz term. Symmetric by construction.
func (ea ElementAssembler) LocalMatrix(tg TriGeometry) (A [3][3]float64) {
	var (
		k2 = ea.WaveNo * ea.WaveNo
	)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			mass := -k2 / 12.
			if i == j {
				mass = -k2 / 6.
			}
			A[i][j] = tg.Area * (dot(tg.Grad[i], tg.Grad[j]) + mass)
		}
	}
	return
}

// LocalLoad is the lumped one-point-per-vertex quadrature of the source term,
// area * f(v_i) / 3 at each vertex
func (ea ElementAssembler) LocalLoad(tg TriGeometry, v [3][3]float64) (b [3]complex128) {
	for i := 0; i < 3; i++ {
		b[i] = complex(tg.Area/3., 0) * ea.Source(v[i][0], v[i][1], v[i][2])
	}
	return
}
