package qhack

import (
	"fmt"
	"math/cmplx"
	"math/rand/v2"
)

/*
QuantumState is the state vector of a register of qubits. Wire 0 is the
most significant bit of a basis index, so |10⟩ on two wires is index 2.
*/
type QuantumState struct {
	Vector []complex128
	wires  int
}

// MaxWires bounds a register. The state vector holds 2^wires amplitudes.
const MaxWires = 24

/*
NewQuantumState returns a register of the given size in |0…0⟩. It panics
if wires is outside [0, MaxWires]. Device.Execute checks the size and
returns an error instead.
*/
func NewQuantumState(wires int) *QuantumState {
	if err := checkRegister(wires); err != nil {
		panic(err)
	}
	vector := make([]complex128, 1<<wires)
	vector[0] = 1
	return &QuantumState{Vector: vector, wires: wires}
}

func checkRegister(wires int) error {
	if wires < 0 || wires > MaxWires {
		return fmt.Errorf("%w: register of %d wires, limit %d", ErrWireOutOfRange, wires, MaxWires)
	}
	return nil
}

func (qs *QuantumState) Wires() int {
	return qs.wires
}

func (qs *QuantumState) Clone() *QuantumState {
	vector := make([]complex128, len(qs.Vector))
	copy(vector, qs.Vector)
	return &QuantumState{Vector: vector, wires: qs.wires}
}

/*
Apply evolves the state by a single gate.
*/
func (qs *QuantumState) Apply(gate Gate) error {
	if err := qs.checkWires(gate.Wires); err != nil {
		return fmt.Errorf("%s: %w", gate.Name, err)
	}
	return gate.apply(qs)
}

func (qs *QuantumState) checkWires(wires []int) error {
	seen := make(map[int]struct{}, len(wires))
	for _, w := range wires {
		if w < 0 || w >= qs.wires {
			return fmt.Errorf("%w: %d not in [0,%d)", ErrWireOutOfRange, w, qs.wires)
		}
		if _, dup := seen[w]; dup {
			return fmt.Errorf("%w: %d", ErrDuplicateWire, w)
		}
		seen[w] = struct{}{}
	}
	return nil
}

// bit returns the index mask of a wire.
func (qs *QuantumState) bit(wire int) int {
	return 1 << (qs.wires - 1 - wire)
}

/*
Inner returns ⟨qs|other⟩. Both states must span the same number of wires.
*/
func (qs *QuantumState) Inner(other *QuantumState) complex128 {
	var sum complex128
	for i, amplitude := range qs.Vector {
		sum += cmplx.Conj(amplitude) * other.Vector[i]
	}
	return sum
}

func (qs *QuantumState) Probabilities() []float64 {
	probs := make([]float64, len(qs.Vector))
	for i, amplitude := range qs.Vector {
		prob := cmplx.Abs(amplitude)
		probs[i] = prob * prob
	}
	return probs
}

/*
Measure samples a basis state in the computational basis and collapses the
register onto it.
*/
func (qs *QuantumState) Measure(rng *rand.Rand) int {
	n := len(qs.Vector)
	if n == 0 {
		return 0
	}

	probs := qs.Probabilities()
	totalProb := 0.0
	for _, prob := range probs {
		totalProb += prob
	}

	r := rng.Float64() * totalProb

	cumulativeProb := 0.0
	measuredState := n - 1
	for i, prob := range probs {
		cumulativeProb += prob
		if r < cumulativeProb {
			measuredState = i
			break
		}
	}

	collapsedVector := make([]complex128, n)
	collapsedVector[measuredState] = 1
	qs.Vector = collapsedVector

	return measuredState
}
