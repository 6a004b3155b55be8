package qhack

import (
	"fmt"
	"strings"
)

// GateName identifies a supported gate.
type GateName string

const (
	GateHadamard GateName = "Hadamard"
	GatePauliX   GateName = "PauliX"
	GatePauliY   GateName = "PauliY"
	GatePauliZ   GateName = "PauliZ"
	GateRX       GateName = "RX"
	GateRY       GateName = "RY"
	GateRZ       GateName = "RZ"
	GateRot      GateName = "Rot"
	GateCNOT     GateName = "CNOT"
	GateSWAP     GateName = "SWAP"
	GateCSWAP    GateName = "CSWAP"
)

// gateArity holds the wire and parameter counts of each gate.
var gateArity = map[GateName][2]int{
	GateHadamard: {1, 0},
	GatePauliX:   {1, 0},
	GatePauliY:   {1, 0},
	GatePauliZ:   {1, 0},
	GateRX:       {1, 1},
	GateRY:       {1, 1},
	GateRZ:       {1, 1},
	GateRot:      {1, 3},
	GateCNOT:     {2, 0},
	GateSWAP:     {2, 0},
	GateCSWAP:    {3, 0},
}

/*
Gate is one operation of a circuit. Controlled gates list their control
wires first, matching the usual CNOT(control, target) order.
*/
type Gate struct {
	Name   GateName
	Wires  []int
	Params []float64
}

func Hadamard(wire int) Gate { return Gate{Name: GateHadamard, Wires: []int{wire}} }
func PauliX(wire int) Gate   { return Gate{Name: GatePauliX, Wires: []int{wire}} }
func PauliY(wire int) Gate   { return Gate{Name: GatePauliY, Wires: []int{wire}} }
func PauliZ(wire int) Gate   { return Gate{Name: GatePauliZ, Wires: []int{wire}} }

func RX(theta float64, wire int) Gate {
	return Gate{Name: GateRX, Wires: []int{wire}, Params: []float64{theta}}
}

func RY(theta float64, wire int) Gate {
	return Gate{Name: GateRY, Wires: []int{wire}, Params: []float64{theta}}
}

func RZ(theta float64, wire int) Gate {
	return Gate{Name: GateRZ, Wires: []int{wire}, Params: []float64{theta}}
}

// Rot is RZ(omega)·RY(theta)·RZ(phi).
func Rot(phi, theta, omega float64, wire int) Gate {
	return Gate{Name: GateRot, Wires: []int{wire}, Params: []float64{phi, theta, omega}}
}

func CNOT(control, target int) Gate {
	return Gate{Name: GateCNOT, Wires: []int{control, target}}
}

func SWAP(a, b int) Gate {
	return Gate{Name: GateSWAP, Wires: []int{a, b}}
}

func CSWAP(control, a, b int) Gate {
	return Gate{Name: GateCSWAP, Wires: []int{control, a, b}}
}

func (g Gate) String() string {
	var b strings.Builder
	b.WriteString(string(g.Name))
	b.WriteByte('(')
	for i, p := range g.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(FormatFloat(p))
	}
	if len(g.Params) > 0 {
		b.WriteString(", ")
	}
	fmt.Fprintf(&b, "wires=%v)", g.Wires)
	return b.String()
}

func (g Gate) validate() error {
	arity, ok := gateArity[g.Name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownGate, g.Name)
	}
	if len(g.Wires) != arity[0] {
		return fmt.Errorf("%s: %w: got %d, want %d", g.Name, ErrWireCount, len(g.Wires), arity[0])
	}
	if len(g.Params) != arity[1] {
		return fmt.Errorf("%s: %w: got %d, want %d", g.Name, ErrParamCount, len(g.Params), arity[1])
	}
	return nil
}

func (g Gate) apply(qs *QuantumState) error {
	if err := g.validate(); err != nil {
		return err
	}

	w := g.Wires
	switch g.Name {
	case GateHadamard:
		qs.applySingle(hadamard, w[0])
	case GatePauliX:
		qs.applySingle(pauliX, w[0])
	case GatePauliY:
		qs.applySingle(pauliY, w[0])
	case GatePauliZ:
		qs.applySingle(pauliZ, w[0])
	case GateRX:
		qs.applySingle(rx(g.Params[0]), w[0])
	case GateRY:
		qs.applySingle(ry(g.Params[0]), w[0])
	case GateRZ:
		qs.applySingle(rz(g.Params[0]), w[0])
	case GateRot:
		qs.applySingle(rz(g.Params[0]), w[0])
		qs.applySingle(ry(g.Params[1]), w[0])
		qs.applySingle(rz(g.Params[2]), w[0])
	case GateCNOT:
		qs.applySingle(pauliX, w[1], w[0])
	case GateSWAP:
		qs.applySwap(w[0], w[1])
	case GateCSWAP:
		qs.applySwap(w[1], w[2], w[0])
	}
	return nil
}
