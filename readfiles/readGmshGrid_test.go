package readfiles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/helm2d/types"
)

const gmshUnitSquare = `$MeshFormat
2.2 0 8
$EndMeshFormat
$PhysicalNames
3
2 1 "Sea"
1 2 "Coast"
1 3 "Border"
$EndPhysicalNames
$Nodes
4
1 0 0 0
2 1 0 0
3 1 1 0
4 0 1 0
$EndNodes
$Elements
8
1 2 2 1 1 1 2 3
2 2 2 1 1 1 3 4
3 1 2 3 2 1 2
4 1 2 3 2 2 3
5 1 2 3 2 3 4
6 1 2 3 2 4 1
7 1 2 2 3 1 3
8 15 2 2 4 1
$EndElements
`

func writeGrid(t *testing.T, contents string) (fileName string) {
	t.Helper()
	fileName = filepath.Join(t.TempDir(), "grid.msh")
	require.NoError(t, os.WriteFile(fileName, []byte(contents), 0644))
	return
}

func TestReadGmsh2(t *testing.T) {
	msh, err := ReadGmsh2(writeGrid(t, gmshUnitSquare), false)
	require.NoError(t, err)
	assert.Equal(t, 4, msh.Nv)
	assert.InDelta(t, 0., msh.VX.Min(), 1.e-15)
	assert.InDelta(t, 1., msh.VX.Max(), 1.e-15)

	sea, err := msh.Group(types.TAG_Sea)
	require.NoError(t, err)
	assert.Equal(t, types.KindTriangle, sea.Kind)
	assert.Equal(t, 2, sea.K)
	// vertex indices converted to zero-based
	assert.Equal(t, []int{0, 1, 2}, []int(sea.EToV.Row(0)))
	assert.Equal(t, []int{0, 2, 3}, []int(sea.EToV.Row(1)))

	border, err := msh.Group(types.TAG_Border)
	require.NoError(t, err)
	assert.Equal(t, types.KindSegment, border.Kind)
	assert.Equal(t, 4, border.K)

	// the point element is skipped, the coast diagonal is kept
	coast, err := msh.Group(types.TAG_Coast)
	require.NoError(t, err)
	assert.Equal(t, 1, coast.K)
	assert.Equal(t, []int{0, 2}, []int(coast.EToV.Row(0)))
}

func TestReadGmsh2MissingGroup(t *testing.T) {
	msh, err := ReadGmsh2(writeGrid(t, gmshUnitSquare), false)
	require.NoError(t, err)
	_, err = msh.Group(types.NewMeshTAG("Lake"))
	require.Error(t, err)
	var mle *MeshLoadError
	assert.ErrorAs(t, err, &mle)
}

func TestReadGmsh2Malformed(t *testing.T) {
	// Wrong version
	{
		_, err := ReadGmsh2(writeGrid(t, "$MeshFormat\n4.1 0 8\n$EndMeshFormat\n"), false)
		require.Error(t, err)
		var mle *MeshLoadError
		assert.ErrorAs(t, err, &mle)
	}
	// Truncated file
	{
		_, err := ReadGmsh2(writeGrid(t, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n$Nodes\n5\n"), false)
		require.Error(t, err)
	}
	// Missing file
	{
		_, err := ReadGmsh2(filepath.Join(t.TempDir(), "nope.msh"), false)
		require.Error(t, err)
	}
}

func TestGenRectMesh(t *testing.T) {
	msh := GenRectMesh(4, 4, 0, 2, 0, 2, true)
	assert.Equal(t, 25, msh.Nv)
	sea := msh.Groups[types.TAG_Sea]
	assert.Equal(t, 32, sea.K)
	border := msh.Groups[types.TAG_Border]
	assert.Equal(t, 16, border.K)
	coast := msh.Groups[types.TAG_Coast]
	assert.Equal(t, 4, coast.K)
	// coast runs along the horizontal mid-line
	vy := msh.VY.Data()
	for k := 0; k < coast.K; k++ {
		for _, v := range coast.EToV.Row(k) {
			assert.InDelta(t, 1., vy[v], 1.e-15)
		}
	}
}
