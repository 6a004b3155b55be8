package qhack

import (
	"math"
	"math/cmplx"
)

// matrix is a single-qubit unitary in row-major order.
type matrix [2][2]complex128

var (
	// H = 1/√2 * [1  1]
	//           [1 -1]
	hadamard = matrix{
		{complex(1/math.Sqrt2, 0), complex(1/math.Sqrt2, 0)},
		{complex(1/math.Sqrt2, 0), complex(-1/math.Sqrt2, 0)},
	}
	pauliX = matrix{{0, 1}, {1, 0}}
	pauliY = matrix{{0, -1i}, {1i, 0}}
	pauliZ = matrix{{1, 0}, {0, -1}}
)

func rx(theta float64) matrix {
	c, s := complex(math.Cos(theta/2), 0), complex(math.Sin(theta/2), 0)
	return matrix{{c, -1i * s}, {-1i * s, c}}
}

func ry(theta float64) matrix {
	c, s := complex(math.Cos(theta/2), 0), complex(math.Sin(theta/2), 0)
	return matrix{{c, -s}, {s, c}}
}

func rz(theta float64) matrix {
	return matrix{
		{cmplx.Exp(complex(0, -theta/2)), 0},
		{0, cmplx.Exp(complex(0, theta/2))},
	}
}

/*
applySingle multiplies the amplitudes of every |…0…⟩, |…1…⟩ pair on the
target wire by m. Pairs whose control wires are not all set are left alone.
*/
func (qs *QuantumState) applySingle(m matrix, target int, controls ...int) {
	bit := qs.bit(target)
	mask := qs.controlMask(controls)

	for i := range qs.Vector {
		if i&bit != 0 || i&mask != mask {
			continue
		}
		j := i | bit
		a, b := qs.Vector[i], qs.Vector[j]
		qs.Vector[i] = m[0][0]*a + m[0][1]*b
		qs.Vector[j] = m[1][0]*a + m[1][1]*b
	}
}

/*
applySwap exchanges the states of two wires, conditioned on the controls.
*/
func (qs *QuantumState) applySwap(a, b int, controls ...int) {
	bitA, bitB := qs.bit(a), qs.bit(b)
	mask := qs.controlMask(controls)

	for i := range qs.Vector {
		// Visit each |…1_a…0_b…⟩ once and swap it with |…0_a…1_b…⟩.
		if i&bitA == 0 || i&bitB != 0 || i&mask != mask {
			continue
		}
		j := (i &^ bitA) | bitB
		qs.Vector[i], qs.Vector[j] = qs.Vector[j], qs.Vector[i]
	}
}

func (qs *QuantumState) controlMask(controls []int) int {
	mask := 0
	for _, c := range controls {
		mask |= qs.bit(c)
	}
	return mask
}
