package qhack

import (
	"fmt"
	"math/rand/v2"
)

// RotAngles is the number of angles a Rot gate takes.
const RotAngles = 3

/*
Params are the angles of the variational ansatz, shaped
layers × qubits × 3 and stored flat in row-major order.
*/
type Params struct {
	Layers int
	Qubits int
	Values []float64
}

func NewParams(layers, qubits int) Params {
	return Params{
		Layers: layers,
		Qubits: qubits,
		Values: make([]float64, layers*qubits*RotAngles),
	}
}

// RandomParams draws every angle uniformly from [0, 1).
func RandomParams(layers, qubits int, rng *rand.Rand) Params {
	p := NewParams(layers, qubits)
	for i := range p.Values {
		p.Values[i] = rng.Float64()
	}
	return p
}

func (p Params) Len() int {
	return len(p.Values)
}

// At returns the (phi, theta, omega) triple for one qubit of one layer.
func (p Params) At(layer, qubit int) (phi, theta, omega float64) {
	i := (layer*p.Qubits + qubit) * RotAngles
	return p.Values[i], p.Values[i+1], p.Values[i+2]
}

// With returns a copy of p holding the given values.
func (p Params) With(values []float64) (Params, error) {
	if len(values) != len(p.Values) {
		return Params{}, fmt.Errorf("%w: got %d values, want %d", ErrShapeMismatch, len(values), len(p.Values))
	}
	return Params{Layers: p.Layers, Qubits: p.Qubits, Values: append([]float64(nil), values...)}, nil
}

/*
VariationalAnsatz builds the layered circuit body: each layer puts a Rot
on every wire and then a ring of CNOTs.
*/
func VariationalAnsatz(p Params, wires []int) ([]Gate, error) {
	if p.Qubits != len(wires) {
		return nil, fmt.Errorf("%w: params for %d qubits, %d wires", ErrShapeMismatch, p.Qubits, len(wires))
	}

	gates := make([]Gate, 0, p.Layers*(2*len(wires)))
	for layer := 0; layer < p.Layers; layer++ {
		gates = append(gates, BroadcastSingle(wires, func(wire, i int) Gate {
			phi, theta, omega := p.At(layer, i)
			return Rot(phi, theta, omega, wire)
		})...)
		gates = append(gates, BroadcastRing(wires, CNOT)...)
	}
	return gates, nil
}

func wireRange(from, to int) []int {
	wires := make([]int, 0, to-from)
	for w := from; w < to; w++ {
		wires = append(wires, w)
	}
	return wires
}
