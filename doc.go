/*
Package qhack simulates small qubit registers exactly and runs a
variational eigensolver on top of them.

The simulator keeps the full state vector. Circuits are plain gate lists
run on a Device, and observables (Pauli words and Hamiltonians) are read
straight off the final state.

The eigensolver finds the lowest few energies of a Hamiltonian by
penalised minimisation. Each state is minimised against the overlap with
every state already found. Gradients come from the parameter-shift rule,
and their components are spread over a worker pool (Q) whose results
travel through a QuantumSpace.
*/
package qhack
