package FEM2D

import (
	"fmt"
	"math"

	"github.com/notargets/helm2d/readfiles"
	"github.com/notargets/helm2d/types"
	"github.com/notargets/helm2d/utils"
)

// Parameters configures one solver run
type Parameters struct {
	WaveNumber float64 // k = 2*pi / wavelength
	Extents    Extents
	Periodic   bool    // enable periodic wrap-around on the Border group
	Absorbing  bool    // enable the absorbing (Sommerfeld) term on the Coast group
	SideTol    float64 // side classification tolerance, 0 derives a default from the extents
	Verbose    bool
}

func (p Parameters) sideTol() (tol float64) {
	if tol = p.SideTol; tol == 0 {
		width := math.Abs(p.Extents.Right-p.Extents.Left) + math.Abs(p.Extents.Top-p.Extents.Bottom)
		tol = utils.NODETOL + 1.e-8*width
	}
	return
}

// Helmholtz2D is the one-shot steady-state pipeline:
// load -> filter -> map -> (alias) -> assemble -> reduce -> solve -> expand.
// Each stage failure aborts the run; nothing is retried.
type Helmholtz2D struct {
	Mesh     readfiles.Mesh
	Params   Parameters
	Source   SourceFunc
	Region   readfiles.Group
	Active   *ActiveVertexSet
	Resolver *PeriodicBoundaryResolver
	System   *GlobalSystem
	U        []complex128 // reduced solution
	UFull    []complex128 // all active DOFs, aliases mirrored
	UMesh    []complex128 // all mesh vertices, zero off the active set
}

// NewHelmholtz2D validates the configuration against the tagged groups and
// builds the active vertex set and periodic resolver. The three supported
// configurations are (non-periodic, no absorption), (periodic, no
// absorption) and (periodic, with absorption); Coast is Dirichlet unless it
// absorbs, Border is Dirichlet unless it wraps.
func NewHelmholtz2D(msh readfiles.Mesh, params Parameters, src SourceFunc) (h *Helmholtz2D, err error) {
	if params.Absorbing && !params.Periodic {
		err = fmt.Errorf("unsupported configuration: absorbing boundary requires the periodic configuration")
		return
	}
	h = &Helmholtz2D{
		Mesh:   msh,
		Params: params,
		Source: src,
	}
	if h.Region, err = msh.Group(types.TAG_Sea); err != nil {
		return
	}

	var dirichlet []types.MeshTAG
	if !params.Absorbing {
		dirichlet = append(dirichlet, types.TAG_Coast)
	}
	if !params.Periodic {
		dirichlet = append(dirichlet, types.TAG_Border)
	}
	h.Active = NewActiveVertexSet(msh, h.Region, dirichlet)
	if h.Active.NumDOFs() == 0 {
		err = fmt.Errorf("no active vertices remain after Dirichlet filtering")
		return
	}

	if border, ok := msh.Groups[types.TAG_Border]; ok {
		if h.Resolver, err = NewPeriodicBoundaryResolver(msh, border, h.Active,
			params.Extents, params.sideTol(), params.Periodic); err != nil {
			return
		}
	} else if params.Periodic {
		err = &readfiles.MeshLoadError{Detail: "periodic configuration requires a Border group"}
		return
	}

	if params.Verbose {
		fmt.Printf("active DOFs = %d of %d vertices\n", h.Active.NumDOFs(), msh.Nv)
		if h.Resolver != nil && h.Resolver.Alias != nil {
			fmt.Printf("periodic aliases = %d\n", len(h.Resolver.Alias))
		}
	}
	return
}

// Solve runs assembly, reduction, the direct solve and both expansion passes
func (h *Helmholtz2D) Solve() (err error) {
	var (
		absorb float64
		gb     = GlobalSystemBuilder{
			Mesh:     h.Mesh,
			Region:   h.Region,
			Active:   h.Active,
			Resolver: h.Resolver,
			WaveNo:   h.Params.WaveNumber,
			Source:   h.Source,
		}
	)
	if h.Params.Absorbing {
		var coast readfiles.Group
		if coast, err = h.Mesh.Group(types.TAG_Coast); err != nil {
			return
		}
		gb.Absorb = &coast
		absorb = 1
	}
	if h.System, err = gb.Assemble(); err != nil {
		return
	}
	n := h.System.ReducedDim()
	if h.Params.Verbose {
		fmt.Printf("reduced system dimension = %d (dropped %d aliased DOFs)\n",
			n, h.System.NDOF-n)
	}
	A, b := h.System.Reduced(h.Params.WaveNumber, absorb)
	if h.U, err = SolveReduced(A, b, n, h.Params.Periodic, h.Params.Absorbing); err != nil {
		return
	}
	h.UFull = h.System.ExpandToActive(h.U, h.Resolver)
	h.UMesh = h.Active.ExpandToMesh(h.UFull, h.Mesh.Nv)
	return
}
