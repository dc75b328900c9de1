package FEM2D

import (
	"fmt"
	"math"
	"sort"

	"github.com/notargets/helm2d/readfiles"
	"github.com/notargets/helm2d/utils"
)

// Side names one of the four axis-aligned boundary families of the domain
// rectangle
type Side uint8

const (
	SideBottom Side = iota
	SideTop
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideBottom:
		return "bottom"
	case SideTop:
		return "top"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "unknown"
}

// Extents are the nominal domain bounds used for side classification
type Extents struct {
	Left, Right, Bottom, Top float64
}

// PeriodicBoundaryResolver classifies border vertices into sides and, for the
// periodic configuration, pairs opposite sides 1:1 by rank order along the
// shared axis into an alias table. The alias maps a redundant "source" DOF
// (bottom, left) to its paired "target" DOF (top, right). With aliasing off
// it still classifies sides, used to identify purely Dirichlet boundaries,
// and the wrapped map is the identity.
type PeriodicBoundaryResolver struct {
	SideVerts [4]utils.Index // vertex ids per side, sorted along the shared axis
	Alias     map[int]int    // flattened source DOF -> target DOF, nil when not periodic
}

// NewPeriodicBoundaryResolver builds the resolver from the border group. The
// tolerance is an explicit parameter: exact floating point equality against
// the extents only holds for generated meshes, so side membership is decided
// within tol of the nominal coordinate.
func NewPeriodicBoundaryResolver(msh readfiles.Mesh, border readfiles.Group,
	avs *ActiveVertexSet, ext Extents, tol float64, periodic bool) (pr *PeriodicBoundaryResolver, err error) {
	pr = &PeriodicBoundaryResolver{}
	if err = pr.classifySides(msh, border, ext, tol); err != nil {
		return
	}
	if !periodic {
		return
	}
	raw := make(map[int]int)
	// bottom pairs to top by x rank, then left to right by y rank. A corner
	// vertex belongs to two families; the first family to claim it as a
	// source wins, which keeps the table deterministic and free of double
	// contributions. Chains left by the corner overlap are flattened below.
	if err = pr.pairSides(avs, raw, SideBottom, SideTop); err != nil {
		return
	}
	if err = pr.pairSides(avs, raw, SideLeft, SideRight); err != nil {
		return
	}
	pr.Alias = flattenAlias(raw)
	return
}

func (pr *PeriodicBoundaryResolver) classifySides(msh readfiles.Mesh,
	border readfiles.Group, ext Extents, tol float64) (err error) {
	var (
		seen = make(map[int]bool)
		vx   = msh.VX.Data()
		vy   = msh.VY.Data()
	)
	for k := 0; k < border.K; k++ {
		for _, v := range border.EToV.Row(k) {
			if seen[v] {
				continue
			}
			seen[v] = true
			var onSide bool
			if math.Abs(vy[v]-ext.Bottom) < tol {
				pr.SideVerts[SideBottom] = append(pr.SideVerts[SideBottom], v)
				onSide = true
			}
			if math.Abs(vy[v]-ext.Top) < tol {
				pr.SideVerts[SideTop] = append(pr.SideVerts[SideTop], v)
				onSide = true
			}
			if math.Abs(vx[v]-ext.Left) < tol {
				pr.SideVerts[SideLeft] = append(pr.SideVerts[SideLeft], v)
				onSide = true
			}
			if math.Abs(vx[v]-ext.Right) < tol {
				pr.SideVerts[SideRight] = append(pr.SideVerts[SideRight], v)
				onSide = true
			}
			if !onSide {
				err = fmt.Errorf("border vertex %d at (%g,%g) lies on no side of extents %+v (tol %g)",
					v, vx[v], vy[v], ext, tol)
				return
			}
		}
	}
	// sort each side along its shared axis: bottom/top by x, left/right by y
	for _, s := range []Side{SideBottom, SideTop} {
		verts := pr.SideVerts[s]
		sort.Slice(verts, func(i, j int) bool { return vx[verts[i]] < vx[verts[j]] })
	}
	for _, s := range []Side{SideLeft, SideRight} {
		verts := pr.SideVerts[s]
		sort.Slice(verts, func(i, j int) bool { return vy[verts[i]] < vy[verts[j]] })
	}
	return
}

// pairSides zips a sorted source side against a sorted target side by rank.
// Both sides must be consumed exactly, unequal cardinalities are a hard error.
func (pr *PeriodicBoundaryResolver) pairSides(avs *ActiveVertexSet,
	alias map[int]int, src, tgt Side) (err error) {
	var (
		sv = pr.SideVerts[src]
		tv = pr.SideVerts[tgt]
	)
	if len(sv) != len(tv) {
		err = &DimensionMismatchError{SideA: src, SideB: tgt, CountA: len(sv), CountB: len(tv)}
		return
	}
	for i := range sv {
		sg, ok := avs.DOF(sv[i])
		if !ok {
			err = &UnmappedBoundaryVertexError{Vertex: sv[i], Side: src}
			return
		}
		tg, ok := avs.DOF(tv[i])
		if !ok {
			err = &UnmappedBoundaryVertexError{Vertex: tv[i], Side: tgt}
			return
		}
		if sg == tg {
			continue
		}
		if _, claimed := alias[sg]; claimed {
			continue
		}
		alias[sg] = tg
	}
	return
}

// flattenAlias resolves alias chains so every source maps directly to its
// final retained target. Corners produce chains like bottomleft -> topleft ->
// topright; pairing never routes a target back to a source, so chains are
// short and acyclic, but the iteration cap guards against a malformed table.
func flattenAlias(raw map[int]int) (flat map[int]int) {
	flat = make(map[int]int, len(raw))
	for src, tgt := range raw {
		for i := 0; i <= len(raw); i++ {
			next, ok := raw[tgt]
			if !ok {
				break
			}
			tgt = next
		}
		flat[src] = tgt
	}
	return
}

// SourceDOFs lists the redundant aliased DOFs in ascending order, the rows
// and columns dropped by system reduction
func (pr *PeriodicBoundaryResolver) SourceDOFs() (I utils.Index) {
	for src := range pr.Alias {
		I = append(I, src)
	}
	sort.Ints(I)
	return
}
