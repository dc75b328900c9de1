package FEM2D

import (
	"encoding/binary"
	"math/cmplx"
	"os"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/helm2d/readfiles"
	"github.com/notargets/helm2d/types"
)

// FieldMagnitude is the per-vertex |u| handed to the rendering collaborator
func FieldMagnitude(uMesh []complex128) (mag []float32) {
	mag = make([]float32, len(uMesh))
	for i, u := range uMesh {
		mag[i] = float32(cmplx.Abs(u))
	}
	return
}

func makePlotMesh(msh readfiles.Mesh) (tMesh geometry.TriMesh) {
	var (
		region = msh.Groups[types.TAG_Sea]
		vx, vy = msh.VX.Data(), msh.VY.Data()
	)
	tMesh = geometry.TriMesh{
		XY:       make([]float32, 2*msh.Nv),
		TriVerts: make([][3]int64, region.K),
	}
	for i, x := range vx {
		tMesh.XY[2*i] = float32(x)
		tMesh.XY[2*i+1] = float32(vy[i])
	}
	for k := 0; k < region.K; k++ {
		for n := 0; n < 3; n++ {
			tMesh.TriVerts[k][n] = int64(region.EToV.At(k, n))
		}
	}
	return
}

func getFieldMinMax32(field []float32) (fMin, fMax float32) {
	for i, f := range field {
		if i == 0 {
			fMin = f
			fMax = f
		}
		if f < fMin {
			fMin = f
		}
		if f > fMax {
			fMax = f
		}
	}
	return
}

func getSquareBoundingBox(xMin, xMax, yMin, yMax float32) (xBMin,
	xBMax, yBMin, yBMax float32) {
	xRange := xMax - xMin
	yRange := yMax - yMin
	if yRange > xRange {
		yBMin = yMin
		yBMax = yMax
		xCent := xRange/2. + xMin
		xBMin = xCent - yRange/2.
		xBMax = xCent + yRange/2.
	} else {
		xBMin = xMin
		xBMax = xMax
		yCent := yRange/2. + yMin
		yBMin = yCent - xRange/2.
		yBMax = yCent + xRange/2.
	}
	return
}

// PlotField displays the solved field magnitude shaded over the region
// triangulation. Blocks forever, it is the end of a visualization run.
func PlotField(msh readfiles.Mesh, uMesh []complex128) {
	var (
		gm     = makePlotMesh(msh)
		pField = FieldMagnitude(uMesh)
	)
	xMin, xMax, yMin, yMax := getSquareBoundingBox(
		float32(msh.VX.Min()), float32(msh.VX.Max()),
		float32(msh.VY.Min()), float32(msh.VY.Max()))
	ch := chart2d.NewChart2D(xMin, xMax, yMin, yMax,
		1024, 1024, utils2.WHITE, utils2.BLACK)
	fMin, fMax := getFieldMinMax32(pField)
	vs := geometry.VertexScalar{
		TMesh:       &gm,
		FieldValues: pField,
	}
	ch.AddShadedVertexScalar(&vs, fMin, fMax)
	ch.AddTriMesh(gm)
	for {
	}
}

// WriteFieldFile writes the field magnitude as a little-endian int64 vertex
// count followed by one float32 value per vertex
func WriteFieldFile(uMesh []complex128, fileName string) (err error) {
	var (
		file  *os.File
		mag   = FieldMagnitude(uMesh)
		count = int64(len(mag))
	)
	if file, err = os.Create(fileName); err != nil {
		return
	}
	defer file.Close()
	if err = binary.Write(file, binary.LittleEndian, &count); err != nil {
		return
	}
	err = binary.Write(file, binary.LittleEndian, mag)
	return
}
