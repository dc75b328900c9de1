package FEM2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriGeometry(t *testing.T) {
	// Unit right triangle: area and gradient identity
	{
		v := [3][3]float64{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
		}
		tg, err := NewTriGeometry(v)
		require.NoError(t, err)
		assert.Equal(t, 0.5, tg.Area)
		// gradients of the three linear basis functions sum to zero
		for d := 0; d < 3; d++ {
			sum := tg.Grad[0][d] + tg.Grad[1][d] + tg.Grad[2][d]
			assert.InDelta(t, 0., sum, 1.e-14)
		}
		// known gradients for this triangle
		assert.InDelta(t, -1., tg.Grad[0][0], 1.e-14)
		assert.InDelta(t, -1., tg.Grad[0][1], 1.e-14)
		assert.InDelta(t, 1., tg.Grad[1][0], 1.e-14)
		assert.InDelta(t, 0., tg.Grad[1][1], 1.e-14)
		assert.InDelta(t, 0., tg.Grad[2][0], 1.e-14)
		assert.InDelta(t, 1., tg.Grad[2][1], 1.e-14)
	}
	// Area stays positive and gradients unchanged under reversed winding
	{
		ccw := [3][3]float64{{0.3, -0.2, 0}, {1.7, 0.4, 0}, {0.9, 2.1, 0}}
		cw := [3][3]float64{ccw[0], ccw[2], ccw[1]}
		tgF, err := NewTriGeometry(ccw)
		require.NoError(t, err)
		tgR, err := NewTriGeometry(cw)
		require.NoError(t, err)
		assert.Greater(t, tgF.Area, 0.)
		assert.InDelta(t, tgF.Area, tgR.Area, 1.e-14)
		// slot 0 is the same vertex in both windings
		for d := 0; d < 3; d++ {
			assert.InDelta(t, tgF.Grad[0][d], tgR.Grad[0][d], 1.e-13)
		}
	}
	// Degenerate triangle is a hard error
	{
		v := [3][3]float64{{0, 0, 0}, {1, 1, 0}, {2, 2, 0}}
		_, err := NewTriGeometry(v)
		assert.Error(t, err)
	}
}

func TestLocalMatrix(t *testing.T) {
	var (
		waveNo = 3.
		v      = [3][3]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	)
	tg, err := NewTriGeometry(v)
	require.NoError(t, err)
	ea := ElementAssembler{WaveNo: waveNo, Source: ZeroSource}
	A := ea.LocalMatrix(tg)
	// symmetry regardless of entry
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, A[i][j], A[j][i], 1.e-14)
		}
	}
	// the mass part must equal the standard linear-triangle mass matrix
	// area/12 * [[2,1,1],[1,2,1],[1,1,2]] scaled by -k^2
	k2 := waveNo * waveNo
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			stiff := tg.Area * dot(tg.Grad[i], tg.Grad[j])
			std := 2.
			if i != j {
				std = 1.
			}
			mass := -k2 * tg.Area / 12. * std
			assert.InDelta(t, stiff+mass, A[i][j], 1.e-13)
		}
	}
}

func TestLocalLoad(t *testing.T) {
	var (
		v = [3][3]float64{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}}
	)
	tg, err := NewTriGeometry(v)
	require.NoError(t, err)
	require.Equal(t, 2., tg.Area)
	ea := ElementAssembler{Source: func(x, y, z float64) complex128 {
		return complex(x+10.*y, 0)
	}}
	b := ea.LocalLoad(tg, v)
	// lumped quadrature: area * f(v_i) / 3
	assert.InDelta(t, 0., real(b[0]), 1.e-14)
	assert.InDelta(t, 2.*2./3., real(b[1]), 1.e-14)
	assert.InDelta(t, 2.*20./3., real(b[2]), 1.e-14)
}

func TestBoundaryLocalMatrix(t *testing.T) {
	var (
		v1 = [3]float64{0, 0, 0}
		v2 = [3]float64{3, 4, 0}
	)
	ba := BoundaryAssembler{Toggle: 1}
	B := ba.LocalMatrix(v1, v2)
	L := 5. // 3-4-5 segment
	assert.InDelta(t, 2.*L/6., B[0][0], 1.e-14)
	assert.InDelta(t, 2.*L/6., B[1][1], 1.e-14)
	assert.InDelta(t, L/6., B[0][1], 1.e-14)
	assert.InDelta(t, L/6., B[1][0], 1.e-14)

	// toggle off zeroes the contribution entirely
	ba = BoundaryAssembler{Toggle: 0}
	B = ba.LocalMatrix(v1, v2)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.Equal(t, 0., B[i][j])
		}
	}
}

func TestGaussianPulse(t *testing.T) {
	src := NewGaussianPulse(2., 0.25, 1., 1.)
	assert.InDelta(t, 2., real(src(1., 1., 0.)), 1.e-14)
	// radially symmetric about the center
	a := real(src(1.5, 1., 0.))
	b := real(src(1., 1.5, 0.))
	c := real(src(0.5, 1., 0.))
	assert.InDelta(t, a, b, 1.e-14)
	assert.InDelta(t, a, c, 1.e-14)
	assert.InDelta(t, 2.*math.Exp(-0.25/(2.*0.25)), a, 1.e-14)
}
