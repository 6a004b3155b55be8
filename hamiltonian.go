package qhack

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

/*
Hamiltonian is a weighted sum of Pauli words. Coeffs[i] weighs Terms[i].
*/
type Hamiltonian struct {
	Coeffs []float64
	Terms  []PauliWord
}

func NewHamiltonian(coeffs []float64, terms []PauliWord) (*Hamiltonian, error) {
	if len(coeffs) != len(terms) {
		return nil, fmt.Errorf("%w: %d coefficients, %d terms", ErrTermCount, len(coeffs), len(terms))
	}
	return &Hamiltonian{Coeffs: coeffs, Terms: terms}, nil
}

func (h *Hamiltonian) Len() int {
	return len(h.Terms)
}

/*
Wires returns the distinct wires the Hamiltonian acts on, in ascending
order.
*/
func (h *Hamiltonian) Wires() []int {
	seen := make(map[int]struct{})
	wires := make([]int, 0)
	for _, term := range h.Terms {
		for _, w := range term.Wires() {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			wires = append(wires, w)
		}
	}
	sort.Ints(wires)
	return wires
}

/*
NumQubits is the register size needed to hold every wire, one past the
highest wire index.
*/
func (h *Hamiltonian) NumQubits() int {
	wires := h.Wires()
	if len(wires) == 0 {
		return 0
	}
	return wires[len(wires)-1] + 1
}

func (h *Hamiltonian) Expval(state *QuantumState) (float64, error) {
	if len(h.Terms) == 0 {
		return 0, ErrNoWires
	}

	var energy float64
	for i, term := range h.Terms {
		ev, err := term.Expval(state)
		if err != nil {
			return 0, fmt.Errorf("term %d (%s): %w", i, term, err)
		}
		energy += h.Coeffs[i] * ev
	}
	return energy, nil
}

/*
String renders the Hamiltonian in the same S-delimited text format that
ParseHamiltonian reads.
*/
func (h *Hamiltonian) String() string {
	lines := make([]string, len(h.Terms))
	for i, term := range h.Terms {
		sign, coeff := "+", h.Coeffs[i]
		if math.Signbit(coeff) {
			sign, coeff = "-", -coeff
		}
		lines[i] = fmt.Sprintf("%s %s %s", sign, FormatFloat(coeff), term)
	}
	return strings.Join(lines, " S")
}
