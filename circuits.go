package qhack

/*
RotationExpectation rotates one qubit about the y-axis by angle, starting
from |0⟩, and returns the expectation value of a PauliX measurement, which
is sin(angle).
*/
func RotationExpectation(angle float64) (float64, error) {
	dev := NewDevice(1)
	circuit := NewCircuit(RY(angle, 0))
	return dev.Expval(circuit, PauliWord{{Pauli: SigmaX, Wire: 0}})
}
