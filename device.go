package qhack

import "fmt"

/*
Observable is anything whose expectation value can be read off a state.
*/
type Observable interface {
	Expval(*QuantumState) (float64, error)
	Wires() []int
}

/*
Device is an exact state-vector simulator with a fixed number of wires.
It keeps no state between executions, so it is safe for concurrent use.
*/
type Device struct {
	wires int
}

func NewDevice(wires int) *Device {
	return &Device{wires: wires}
}

func (d *Device) Wires() int {
	return d.wires
}

/*
Execute runs the circuit from |0…0⟩ and returns the final state.
*/
func (d *Device) Execute(c *Circuit) (*QuantumState, error) {
	if err := checkRegister(d.wires); err != nil {
		return nil, err
	}

	state := NewQuantumState(d.wires)
	for i, g := range c.Gates {
		if err := state.Apply(g); err != nil {
			return nil, fmt.Errorf("gate %d: %w", i, err)
		}
	}
	return state, nil
}

/*
Expval runs the circuit and measures the observable on the final state.
*/
func (d *Device) Expval(c *Circuit, obs Observable) (float64, error) {
	for _, w := range obs.Wires() {
		if w < 0 || w >= d.wires {
			return 0, fmt.Errorf("observable: %w: %d not in [0,%d)", ErrWireOutOfRange, w, d.wires)
		}
	}

	state, err := d.Execute(c)
	if err != nil {
		return 0, err
	}
	return obs.Expval(state)
}
