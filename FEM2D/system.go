package FEM2D

import (
	"fmt"

	"github.com/notargets/helm2d/readfiles"
	"github.com/notargets/helm2d/utils"
)

// GlobalSystem is the assembled linear system over the active DOF space,
// prior to and after periodic reduction. S holds the real stiffness plus mass
// contributions, B the real absorbing-boundary weights; the effective matrix
// is S_eff = S + i*k*B. Built once per configuration, consumed by the solver.
type GlobalSystem struct {
	NDOF     int
	S        utils.DOK
	B        utils.DOK
	F        []complex128
	Retained utils.Index // DOFs surviving reduction, ascending
	rmap     map[int]int // DOF -> reduced index
}

// GlobalSystemBuilder accumulates element and boundary contributions into a
// global system, always through the wrapped (aliased) local-to-global map so
// periodic merging happens at accumulation time
type GlobalSystemBuilder struct {
	Mesh     readfiles.Mesh
	Region   readfiles.Group
	Absorb   *readfiles.Group // nil when no absorbing boundary participates
	Active   *ActiveVertexSet
	Resolver *PeriodicBoundaryResolver
	WaveNo   float64
	Source   SourceFunc
}

func (gb *GlobalSystemBuilder) vertexCoords(m LocalToGlobalMap, k, np int) (v [3][3]float64) {
	var (
		vx = gb.Mesh.VX.Data()
		vy = gb.Mesh.VY.Data()
		vz = gb.Mesh.VZ.Data()
	)
	for p := 0; p < np; p++ {
		vid := m.Vertex(k, p)
		v[p] = [3]float64{vx[vid], vy[vid], vz[vid]}
	}
	return
}

// Assemble runs the element-wise accumulation loop and computes the retained
// DOF set. A local slot resolving to inactive is Dirichlet elimination and is
// skipped silently.
func (gb *GlobalSystemBuilder) Assemble() (gs *GlobalSystem, err error) {
	var (
		nDOF = gb.Active.NumDOFs()
		ea   = ElementAssembler{WaveNo: gb.WaveNo, Source: gb.Source}
	)
	gs = &GlobalSystem{
		NDOF: nDOF,
		S:    utils.NewDOK(nDOF, nDOF),
		B:    utils.NewDOK(nDOF, nDOF),
		F:    make([]complex128, nDOF),
	}

	l2g := NewLocalToGlobalMap(gb.Region, gb.Active)
	if gb.Resolver != nil && gb.Resolver.Alias != nil {
		l2g = l2g.Wrapped(gb.Resolver.Alias)
	}
	for k := 0; k < gb.Region.K; k++ {
		verts := gb.vertexCoords(l2g, k, 3)
		var tg TriGeometry
		if tg, err = NewTriGeometry(verts); err != nil {
			err = fmt.Errorf("element %d of region: %w", k, err)
			return
		}
		A := ea.LocalMatrix(tg)
		b := ea.LocalLoad(tg, verts)
		for i := 0; i < 3; i++ {
			gi, active := l2g.GlobalIndex(k, i)
			if !active {
				continue
			}
			gs.F[gi] += b[i]
			for j := 0; j < 3; j++ {
				gj, active := l2g.GlobalIndex(k, j)
				if !active {
					continue
				}
				gs.S.Add(gi, gj, A[i][j])
			}
		}
	}

	if gb.Absorb != nil {
		ba := BoundaryAssembler{Toggle: 1}
		bl2g := NewLocalToGlobalMap(*gb.Absorb, gb.Active)
		if gb.Resolver != nil && gb.Resolver.Alias != nil {
			bl2g = bl2g.Wrapped(gb.Resolver.Alias)
		}
		for k := 0; k < gb.Absorb.K; k++ {
			verts := gb.vertexCoords(bl2g, k, 2)
			B := ba.LocalMatrix(verts[0], verts[1])
			for i := 0; i < 2; i++ {
				gi, active := bl2g.GlobalIndex(k, i)
				if !active {
					continue
				}
				for j := 0; j < 2; j++ {
					gj, active := bl2g.GlobalIndex(k, j)
					if !active {
						continue
					}
					gs.B.Add(gi, gj, B[i][j])
				}
			}
		}
	}

	gs.buildRetained(gb.Resolver)
	return
}

func (gs *GlobalSystem) buildRetained(pr *PeriodicBoundaryResolver) {
	var (
		dropped = make(map[int]bool)
	)
	if pr != nil {
		for src := range pr.Alias {
			dropped[src] = true
		}
	}
	gs.Retained = make(utils.Index, 0, gs.NDOF-len(dropped))
	gs.rmap = make(map[int]int, gs.NDOF-len(dropped))
	for g := 0; g < gs.NDOF; g++ {
		if dropped[g] {
			continue
		}
		gs.rmap[g] = len(gs.Retained)
		gs.Retained = append(gs.Retained, g)
	}
}

// ReducedDim is the dimension actually solved
func (gs *GlobalSystem) ReducedDim() int { return len(gs.Retained) }

// Reduced forms the dense row-major reduced system A*u = b with
// A = S + i*k*absorb*B restricted to retained rows and columns. Aliased
// source rows received no contributions, the wrapped map routed them to their
// targets, so dropping them loses nothing.
func (gs *GlobalSystem) Reduced(waveNo, absorb float64) (A []complex128, b []complex128) {
	var (
		n = len(gs.Retained)
	)
	A = make([]complex128, n*n)
	b = make([]complex128, n)
	gs.S.DoNonZero(func(i, j int, v float64) {
		ri, ok := gs.rmap[i]
		if !ok {
			return
		}
		rj, ok := gs.rmap[j]
		if !ok {
			return
		}
		A[ri*n+rj] += complex(v, 0)
	})
	gs.B.DoNonZero(func(i, j int, v float64) {
		ri, ok := gs.rmap[i]
		if !ok {
			return
		}
		rj, ok := gs.rmap[j]
		if !ok {
			return
		}
		A[ri*n+rj] += complex(0, waveNo*absorb*v)
	})
	for g, rg := range gs.rmap {
		b[rg] = gs.F[g]
	}
	return
}
