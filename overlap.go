package qhack

/*
SwapTestCircuit prepares the two ansatz states on registers [0,n) and
[n,2n) and runs a swap test with the ancilla on wire 2n. The expectation of
PauliZ on the ancilla is then |⟨a|b⟩|².
*/
func SwapTestCircuit(a, b Params) (*Circuit, int, error) {
	n := a.Qubits
	ancilla := 2 * n

	first, err := VariationalAnsatz(a, wireRange(0, n))
	if err != nil {
		return nil, 0, err
	}
	second, err := VariationalAnsatz(b, wireRange(n, 2*n))
	if err != nil {
		return nil, 0, err
	}

	circuit := NewCircuit(first...).Add(second...)
	circuit.Add(Hadamard(ancilla))
	for i := 0; i < n; i++ {
		circuit.Add(CSWAP(ancilla, i, i+n))
	}
	circuit.Add(Hadamard(ancilla))

	return circuit, ancilla, nil
}
