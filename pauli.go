package qhack

import (
	"fmt"
	"sort"
	"strings"
)

// Pauli is a single-qubit Pauli letter.
type Pauli byte

const (
	Identity Pauli = 'I'
	SigmaX   Pauli = 'X'
	SigmaY   Pauli = 'Y'
	SigmaZ   Pauli = 'Z'
)

func (p Pauli) Valid() bool {
	switch p {
	case Identity, SigmaX, SigmaY, SigmaZ:
		return true
	}
	return false
}

func (p Pauli) matrix() matrix {
	switch p {
	case SigmaX:
		return pauliX
	case SigmaY:
		return pauliY
	case SigmaZ:
		return pauliZ
	}
	return matrix{{1, 0}, {0, 1}}
}

// PauliOp is a Pauli letter on one wire.
type PauliOp struct {
	Pauli Pauli
	Wire  int
}

func (op PauliOp) String() string {
	return fmt.Sprintf("%c%d", op.Pauli, op.Wire)
}

/*
PauliWord is a tensor product of Pauli operators, kept in the order they
were written.
*/
type PauliWord []PauliOp

func (pw PauliWord) String() string {
	parts := make([]string, len(pw))
	for i, op := range pw {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}

func (pw PauliWord) Wires() []int {
	seen := make(map[int]struct{}, len(pw))
	wires := make([]int, 0, len(pw))
	for _, op := range pw {
		if _, ok := seen[op.Wire]; ok {
			continue
		}
		seen[op.Wire] = struct{}{}
		wires = append(wires, op.Wire)
	}
	sort.Ints(wires)
	return wires
}

/*
Expval returns Re⟨ψ|P|ψ⟩. Operators sharing a wire are multiplied in
order, which can make the word non-Hermitian; only the real part is kept.
*/
func (pw PauliWord) Expval(state *QuantumState) (float64, error) {
	if len(pw) == 0 {
		return 0, ErrNoWires
	}
	if err := state.checkWires(pw.Wires()); err != nil {
		return 0, err
	}

	applied := state.Clone()
	for _, op := range pw {
		if op.Pauli == Identity {
			continue
		}
		applied.applySingle(op.Pauli.matrix(), op.Wire)
	}
	return real(state.Inner(applied)), nil
}
