package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrix(t *testing.T) {
	// Row extraction as integer index
	{
		M := NewMatrix(2, 3, []float64{
			0, 1, 2,
			3, 4, 5,
		})
		assert.Equal(t, Index{0, 1, 2}, M.Row(0))
		assert.Equal(t, Index{3, 4, 5}, M.Row(1))
	}
	// SliceRows subsets and reorders
	{
		M := NewMatrix(3, 2, []float64{
			1, 2,
			3, 4,
			5, 6,
		})
		R := M.SliceRows(Index{2, 0})
		assert.Equal(t, []float64{5, 6, 1, 2}, R.Data())
		assert.Panics(t, func() { M.SliceRows(Index{3}) })
	}
}

func TestVector(t *testing.T) {
	V := NewVector(4, []float64{3, -1, 2, 0})
	assert.Equal(t, -1., V.Min())
	assert.Equal(t, 3., V.Max())
	C := V.Copy()
	C.Data()[0] = 99
	assert.Equal(t, 3., V.AtVec(0))
}

func TestIndex(t *testing.T) {
	assert.Equal(t, Index{2, 3, 4}, NewRange(2, 4))
	assert.Equal(t, Index{1, 3}, NewFromFloat([]float64{1.2, 3.9}))
	assert.True(t, NewRange(0, 5).Contains(5))
	assert.False(t, NewRange(0, 5).Contains(6))
}

func TestDOK(t *testing.T) {
	D := NewDOK(3, 3)
	D.Add(1, 2, 1.5)
	D.Add(1, 2, 0.5)
	D.Add(0, 0, -1)
	assert.Equal(t, 2., D.At(1, 2))
	assert.Equal(t, 2, D.NNZ())
	var sum float64
	D.DoNonZero(func(i, j int, v float64) { sum += v })
	assert.Equal(t, 1., sum)
}
