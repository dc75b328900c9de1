package FEM2D

import (
	"sort"

	"github.com/notargets/helm2d/readfiles"
	"github.com/notargets/helm2d/types"
	"github.com/notargets/helm2d/utils"
)

// ActiveVertexSet is the ordered, duplicate-free subset of mesh vertices that
// carry a DOF. Vertices referenced by a Dirichlet tagged group are excluded,
// they are forced to zero by the homogeneous boundary condition. Built once,
// read-only afterward.
type ActiveVertexSet struct {
	Verts utils.Index // ascending vertex ids, position = DOF index
	dof   map[int]int // vertex id -> DOF index
}

// NewActiveVertexSet filters the region group's vertices against the
// Dirichlet tags. Tags absent from the mesh contribute no exclusions.
func NewActiveVertexSet(msh readfiles.Mesh, region readfiles.Group, dirichlet []types.MeshTAG) (avs *ActiveVertexSet) {
	var (
		excluded = make(map[int]bool)
		seen     = make(map[int]bool)
	)
	for _, tag := range dirichlet {
		g, ok := msh.Groups[tag]
		if !ok {
			continue
		}
		for k := 0; k < g.K; k++ {
			for _, v := range g.EToV.Row(k) {
				excluded[v] = true
			}
		}
	}
	avs = &ActiveVertexSet{dof: make(map[int]int)}
	for k := 0; k < region.K; k++ {
		for _, v := range region.EToV.Row(k) {
			if seen[v] || excluded[v] {
				continue
			}
			seen[v] = true
			avs.Verts = append(avs.Verts, v)
		}
	}
	sort.Ints(avs.Verts)
	for g, v := range avs.Verts {
		avs.dof[v] = g
	}
	return
}

// NumDOFs is the active DOF count prior to periodic reduction
func (avs *ActiveVertexSet) NumDOFs() int { return len(avs.Verts) }

// DOF resolves a mesh vertex to its active DOF index. The second return is
// false for inactive (Dirichlet-eliminated) vertices, an expected condition
// during interior assembly, not a fault.
func (avs *ActiveVertexSet) DOF(vert int) (g int, active bool) {
	g, active = avs.dof[vert]
	return
}

// Vertex is the inverse of DOF over the active set
func (avs *ActiveVertexSet) Vertex(g int) int { return avs.Verts[g] }

// LocalToGlobalMap translates (element k, local slot p) of one tagged group
// into an active DOF index. Lookups are near-constant time, one hash access,
// plus one more when an alias routing is attached.
type LocalToGlobalMap struct {
	etov  utils.Matrix
	npe   int
	avs   *ActiveVertexSet
	alias map[int]int // flattened periodic alias routing, nil = identity
}

func NewLocalToGlobalMap(g readfiles.Group, avs *ActiveVertexSet) LocalToGlobalMap {
	return LocalToGlobalMap{
		etov: g.EToV,
		npe:  g.Kind.NumVerts(),
		avs:  avs,
	}
}

// Wrapped returns a copy of the map that rewrites any lookup resolving to a
// periodic source DOF into its paired target, so both physical copies of a
// wrapped vertex accumulate into one global DOF
func (m LocalToGlobalMap) Wrapped(alias map[int]int) LocalToGlobalMap {
	m.alias = alias
	return m
}

// GlobalIndex returns the active DOF matching local slot p of element k, or
// active == false when that vertex carries no DOF
func (m LocalToGlobalMap) GlobalIndex(k, p int) (g int, active bool) {
	v := int(m.etov.At(k, p))
	if g, active = m.avs.DOF(v); !active {
		return
	}
	if m.alias != nil {
		if tgt, wrapped := m.alias[g]; wrapped {
			g = tgt
		}
	}
	return
}

// Vertex returns the mesh vertex id at local slot p of element k
func (m LocalToGlobalMap) Vertex(k, p int) int {
	return int(m.etov.At(k, p))
}
