package FEM2D

// ExpandToActive mirrors the reduced solution back over all active DOFs:
// retained DOFs copy their value, each aliased source takes exactly the value
// of its paired target. Pure, order independent, single pass.
func (gs *GlobalSystem) ExpandToActive(u []complex128, pr *PeriodicBoundaryResolver) (uFull []complex128) {
	uFull = make([]complex128, gs.NDOF)
	for rg, g := range gs.Retained {
		uFull[g] = u[rg]
	}
	if pr == nil {
		return
	}
	for src, tgt := range pr.Alias {
		uFull[src] = uFull[tgt]
	}
	return
}

// ExpandToMesh spreads the active-DOF field over all mesh vertices, leaving
// non-active vertices at zero per the homogeneous boundary condition
func (avs *ActiveVertexSet) ExpandToMesh(uFull []complex128, Nv int) (uMesh []complex128) {
	uMesh = make([]complex128, Nv)
	for g, v := range avs.Verts {
		uMesh[v] = uFull[g]
	}
	return
}
