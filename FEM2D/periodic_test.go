package FEM2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/helm2d/readfiles"
	"github.com/notargets/helm2d/types"
	"github.com/notargets/helm2d/utils"
)

func unitExtents() Extents {
	return Extents{Left: 0, Right: 1, Bottom: 0, Top: 1}
}

func TestSideClassification(t *testing.T) {
	var (
		nx, ny = 4, 4
		msh    = readfiles.GenRectMesh(nx, ny, 0, 1, 0, 1, false)
		border = msh.Groups[types.TAG_Border]
		region = msh.Groups[types.TAG_Sea]
	)
	avs := NewActiveVertexSet(msh, region, nil)
	pr, err := NewPeriodicBoundaryResolver(msh, border, avs, unitExtents(), 1.e-10, false)
	require.NoError(t, err)
	// each side holds nx+1 vertices, corners belong to two sides
	for _, s := range []Side{SideBottom, SideTop, SideLeft, SideRight} {
		assert.Equal(t, nx+1, len(pr.SideVerts[s]), "side %s", s)
	}
	// sorted along the shared axis
	vx, vy := msh.VX.Data(), msh.VY.Data()
	for i := 1; i <= nx; i++ {
		assert.Less(t, vx[pr.SideVerts[SideBottom][i-1]], vx[pr.SideVerts[SideBottom][i]])
		assert.Less(t, vy[pr.SideVerts[SideLeft][i-1]], vy[pr.SideVerts[SideLeft][i]])
	}
	// non-periodic leaves the alias off, the wrapped map is the identity
	assert.Nil(t, pr.Alias)
}

func TestPeriodicPairing(t *testing.T) {
	var (
		nx, ny = 4, 4
		msh    = readfiles.GenRectMesh(nx, ny, 0, 1, 0, 1, false)
		border = msh.Groups[types.TAG_Border]
		region = msh.Groups[types.TAG_Sea]
		vx, vy = msh.VX.Data(), msh.VY.Data()
	)
	avs := NewActiveVertexSet(msh, region, nil)
	pr, err := NewPeriodicBoundaryResolver(msh, border, avs, unitExtents(), 1.e-10, true)
	require.NoError(t, err)
	require.NotNil(t, pr.Alias)

	// bijection onto the retained sides: every bottom vertex aliases to the
	// top vertex with the same x, every left vertex to the right vertex with
	// the same y; corner chains terminate at the top-right corner
	srcCount := 0
	for _, tgt := range pr.Alias {
		// the target is never itself a source (chains fully flattened)
		_, isSrc := pr.Alias[tgt]
		assert.False(t, isSrc, "alias target %d is still a source", tgt)
		srcCount++
	}
	// total distinct aliased DOFs = bottom row + left column minus the
	// shared corner, so count retained by complement instead:
	retained := msh.Nv - srcCount
	// wrap removes one row and one column of the periodic grid
	assert.Equal(t, nx*ny, retained)

	isCorner := func(v int) bool {
		onX := vx[v] == 0 || vx[v] == 1
		onY := vy[v] == 0 || vy[v] == 1
		return onX && onY
	}
	// rank pairing preserves the shared coordinate; flattened corner chains
	// are the one exception, bottom-left routes through top-left to the
	// retained top-right corner and shares neither coordinate with it
	for src, tgt := range pr.Alias {
		sv, tv := avs.Vertex(src), avs.Vertex(tgt)
		if isCorner(sv) {
			assert.True(t, isCorner(tv), "corner alias %d->%d off the corner set", sv, tv)
			assert.Equal(t, 1., vx[tv], "corner alias %d->%d not at top-right", sv, tv)
			assert.Equal(t, 1., vy[tv], "corner alias %d->%d not at top-right", sv, tv)
			continue
		}
		sameX := vx[sv] == vx[tv]
		sameY := vy[sv] == vy[tv]
		assert.True(t, sameX || sameY, "alias %d->%d shares no axis coordinate", sv, tv)
	}
}

func TestPeriodicDimensionMismatch(t *testing.T) {
	// Hand-built mesh: bottom side has 3 vertices, top only 2
	var (
		msh readfiles.Mesh
	)
	coords := [][2]float64{{0, 0}, {0.5, 0}, {1, 0}, {0, 1}, {1, 1}}
	msh.Nv = len(coords)
	msh.VX, msh.VY, msh.VZ = utils.NewVector(msh.Nv), utils.NewVector(msh.Nv), utils.NewVector(msh.Nv)
	for i, c := range coords {
		msh.VX.Data()[i], msh.VY.Data()[i] = c[0], c[1]
	}
	sea := utils.NewMatrix(3, 3, []float64{
		0, 1, 3,
		1, 4, 3,
		1, 2, 4,
	})
	border := utils.NewMatrix(5, 2, []float64{
		0, 1,
		1, 2,
		3, 4,
		0, 3,
		2, 4,
	})
	msh.Groups = map[types.MeshTAG]readfiles.Group{
		types.TAG_Sea:    {Kind: types.KindTriangle, K: 3, EToV: sea},
		types.TAG_Border: {Kind: types.KindSegment, K: 5, EToV: border},
	}
	avs := NewActiveVertexSet(msh, msh.Groups[types.TAG_Sea], nil)
	_, err := NewPeriodicBoundaryResolver(msh, msh.Groups[types.TAG_Border], avs, unitExtents(), 1.e-10, true)
	require.Error(t, err)
	var dm *DimensionMismatchError
	require.ErrorAs(t, err, &dm)
	assert.Equal(t, SideBottom, dm.SideA)
	assert.Equal(t, SideTop, dm.SideB)
	assert.Equal(t, 3, dm.CountA)
	assert.Equal(t, 2, dm.CountB)
}

func TestUnmappedBoundaryVertex(t *testing.T) {
	var (
		msh    = readfiles.GenRectMesh(3, 3, 0, 1, 0, 1, false)
		border = msh.Groups[types.TAG_Border]
		region = msh.Groups[types.TAG_Sea]
	)
	// excluding the border from the active set makes periodic pairing
	// impossible: side vertices carry no DOF
	avs := NewActiveVertexSet(msh, region, []types.MeshTAG{types.TAG_Border})
	_, err := NewPeriodicBoundaryResolver(msh, border, avs, unitExtents(), 1.e-10, true)
	require.Error(t, err)
	var ub *UnmappedBoundaryVertexError
	require.ErrorAs(t, err, &ub)
}

func TestLocalToGlobalInjectivity(t *testing.T) {
	var (
		msh    = readfiles.GenRectMesh(4, 4, 0, 1, 0, 1, false)
		region = msh.Groups[types.TAG_Sea]
	)
	avs := NewActiveVertexSet(msh, region, []types.MeshTAG{types.TAG_Border})
	l2g := NewLocalToGlobalMap(region, avs)
	for k := 0; k < region.K; k++ {
		seen := make(map[int]bool)
		for p := 0; p < 3; p++ {
			g, active := l2g.GlobalIndex(k, p)
			if !active {
				continue
			}
			assert.False(t, seen[g], "element %d maps two local slots to DOF %d", k, g)
			seen[g] = true
		}
	}
}

func TestWrappedMapRouting(t *testing.T) {
	var (
		msh    = readfiles.GenRectMesh(4, 4, 0, 1, 0, 1, false)
		border = msh.Groups[types.TAG_Border]
		region = msh.Groups[types.TAG_Sea]
	)
	avs := NewActiveVertexSet(msh, region, nil)
	pr, err := NewPeriodicBoundaryResolver(msh, border, avs, unitExtents(), 1.e-10, true)
	require.NoError(t, err)
	l2g := NewLocalToGlobalMap(region, avs).Wrapped(pr.Alias)
	// no wrapped lookup may resolve to an aliased source
	for k := 0; k < region.K; k++ {
		for p := 0; p < 3; p++ {
			g, active := l2g.GlobalIndex(k, p)
			require.True(t, active)
			_, isSrc := pr.Alias[g]
			assert.False(t, isSrc, "wrapped lookup returned source DOF %d", g)
		}
	}
}
