package qbench

import (
	"math"
	"math/cmplx"
)

// Matrix2 is a single-qubit operator in the computational basis.
type Matrix2 [2][2]complex128

var (
	// Hadamard = 1/√2 * [1  1]
	//                   [1 -1]
	Hadamard = Matrix2{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}
	PauliX = Matrix2{{0, 1}, {1, 0}}
	PauliZ = Matrix2{{1, 0}, {0, -1}}
)

// PhaseShift is diag(1, e^{iθ}).
func PhaseShift(theta float64) Matrix2 {
	return Matrix2{{1, 0}, {0, cmplx.Exp(complex(0, theta))}}
}

// Dagger is the conjugate transpose.
func (m Matrix2) Dagger() Matrix2 {
	return Matrix2{
		{cmplx.Conj(m[0][0]), cmplx.Conj(m[1][0])},
		{cmplx.Conj(m[0][1]), cmplx.Conj(m[1][1])},
	}
}

// Mul returns m·o.
func (m Matrix2) Mul(o Matrix2) Matrix2 {
	var out Matrix2
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			out[r][c] = m[r][0]*o[0][c] + m[r][1]*o[1][c]
		}
	}
	return out
}

// IsUnitary checks m·m† = I within tol.
func (m Matrix2) IsUnitary(tol float64) bool {
	p := m.Mul(m.Dagger())
	return cmplx.Abs(p[0][0]-1) <= tol &&
		cmplx.Abs(p[1][1]-1) <= tol &&
		cmplx.Abs(p[0][1]) <= tol &&
		cmplx.Abs(p[1][0]) <= tol
}
