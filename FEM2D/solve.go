package FEM2D

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const (
	// MaxSystemDim bounds the dense solve so a pathological mesh reports a
	// resource error instead of exhausting memory
	MaxSystemDim = 20000

	// condLimit marks the factorization as unusable; beyond this the direct
	// solve returns numerical garbage rather than a solution
	condLimit = 1.e12
)

// SolveReduced direct-solves the reduced complex system A*u = b, with A dense
// row-major of dimension n. The complex system is solved through its
// equivalent 2n x 2n real block form [[Re -Im],[Im Re]], factored by LU.
// A singular or near-singular factorization is reported as a
// SingularSystemError carrying the dimension and the configuration flags,
// never silently tolerated.
func SolveReduced(A, b []complex128, n int, periodic, absorbing bool) (u []complex128, err error) {
	if n == 0 {
		return nil, fmt.Errorf("reduced system is empty, no active DOFs to solve for")
	}
	if n > MaxSystemDim {
		return nil, fmt.Errorf("reduced system dimension %d exceeds limit %d", n, MaxSystemDim)
	}
	var (
		M   = mat.NewDense(2*n, 2*n, nil)
		rhs = mat.NewVecDense(2*n, nil)
		lu  mat.LU
		x   mat.VecDense
	)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			re, im := real(A[i*n+j]), imag(A[i*n+j])
			M.Set(i, j, re)
			M.Set(i, j+n, -im)
			M.Set(i+n, j, im)
			M.Set(i+n, j+n, re)
		}
		rhs.SetVec(i, real(b[i]))
		rhs.SetVec(i+n, imag(b[i]))
	}
	lu.Factorize(M)
	if cond := lu.Cond(); cond > condLimit {
		return nil, &SingularSystemError{Dim: n, Periodic: periodic, Absorbing: absorbing}
	}
	if err = lu.SolveVecTo(&x, false, rhs); err != nil {
		return nil, &SingularSystemError{Dim: n, Periodic: periodic, Absorbing: absorbing}
	}
	u = make([]complex128, n)
	for i := 0; i < n; i++ {
		u[i] = complex(x.AtVec(i), x.AtVec(i+n))
	}
	return
}
