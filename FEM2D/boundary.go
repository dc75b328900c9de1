package FEM2D

// BoundaryAssembler computes per-segment absorbing boundary contributions, a
// first-order outgoing-wave (Sommerfeld) condition discretized with the
// standard linear-segment mass matrix L/6 * [[2,1],[1,2]]. The toggle is an
// explicit 0/1 multiplier so the damping term can be switched off without
// changing anything else about the system.
type BoundaryAssembler struct {
	Toggle float64
}

// LocalMatrix returns the real segment mass weights. The complex damping
// factor i*k is applied once when the global boundary matrix is folded into
// S_eff, so T = i*k*toggle*B with B the matrix assembled from these entries.
func (ba BoundaryAssembler) LocalMatrix(v1, v2 [3]float64) (B [2][2]float64) {
	var (
		length = norm(sub(v2, v1))
		w      = ba.Toggle * length / 6.
	)
	B[0][0], B[1][1] = 2.*w, 2.*w
	B[0][1], B[1][0] = w, w
	return
}
