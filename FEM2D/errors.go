package FEM2D

import "fmt"

// UnmappedBoundaryVertexError reports a vertex that lies on a classified side
// but resolves to no active DOF, which would corrupt periodic pairing
type UnmappedBoundaryVertexError struct {
	Vertex int
	Side   Side
}

func (e *UnmappedBoundaryVertexError) Error() string {
	return fmt.Sprintf("boundary vertex %d on side %s carries no active DOF", e.Vertex, e.Side)
}

// DimensionMismatchError reports a periodic side pair with unequal DOF counts,
// which cannot be paired 1:1
type DimensionMismatchError struct {
	SideA, SideB   Side
	CountA, CountB int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("periodic sides %s/%s have unequal DOF counts %d/%d, unable to pair 1:1",
		e.SideA, e.SideB, e.CountA, e.CountB)
}

// SingularSystemError reports a reduced system with no unique solution. An
// under-constrained configuration, no absorption and no periodicity leaving a
// pure Neumann remainder, is an expected cause
type SingularSystemError struct {
	Dim       int
	Periodic  bool
	Absorbing bool
}

func (e *SingularSystemError) Error() string {
	return fmt.Sprintf("reduced system of dimension %d is singular or near-singular (periodic=%v, absorbing=%v)",
		e.Dim, e.Periodic, e.Absorbing)
}
