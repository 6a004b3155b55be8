package qhack

import "errors"

var (
	ErrUnknownGate    = errors.New("unknown gate")
	ErrWireOutOfRange = errors.New("wire out of range")
	ErrDuplicateWire  = errors.New("duplicate wire")
	ErrWireCount      = errors.New("wrong number of gate wires")
	ErrParamCount     = errors.New("wrong number of gate parameters")

	// Parser errors.
	ErrMalformedTerm = errors.New("malformed hamiltonian term")
	ErrInvalidSign   = errors.New("invalid coefficient sign")
	ErrInvalidPauli  = errors.New("invalid pauli operator")
	ErrEmptyTerm     = errors.New("hamiltonian term has no pauli operators")
	ErrTermCount     = errors.New("coefficient and term counts differ")

	ErrNoWires       = errors.New("observable acts on no wires")
	ErrPoolClosed    = errors.New("pool is closed")
	ErrNoWorkers     = errors.New("no available workers")
	ErrShapeMismatch = errors.New("parameter shape mismatch")
	ErrInvalidConfig = errors.New("invalid solver configuration")
)
