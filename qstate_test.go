package qhack

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const tolerance = 1e-12

func TestQuantumState(t *testing.T) {
	Convey("Given a fresh two-wire register", t, func() {
		qs := NewQuantumState(2)

		Convey("It should start in |00⟩", func() {
			So(qs.Wires(), ShouldEqual, 2)
			So(qs.Probabilities(), ShouldResemble, []float64{1, 0, 0, 0})
		})

		Convey("When flipping wire 0", func() {
			So(qs.Apply(PauliX(0)), ShouldBeNil)

			Convey("Wire 0 should be the most significant bit", func() {
				So(qs.Probabilities()[2], ShouldAlmostEqual, 1, tolerance)
			})

			Convey("A CNOT from wire 0 should flip wire 1", func() {
				So(qs.Apply(CNOT(0, 1)), ShouldBeNil)
				So(qs.Probabilities()[3], ShouldAlmostEqual, 1, tolerance)
			})

			Convey("A SWAP should move the excitation to wire 1", func() {
				So(qs.Apply(SWAP(0, 1)), ShouldBeNil)
				So(qs.Probabilities()[1], ShouldAlmostEqual, 1, tolerance)
			})
		})

		Convey("When applying a Hadamard to each wire", func() {
			So(qs.Apply(Hadamard(0)), ShouldBeNil)
			So(qs.Apply(Hadamard(1)), ShouldBeNil)

			Convey("Every basis state should be equally likely", func() {
				for _, p := range qs.Probabilities() {
					So(p, ShouldAlmostEqual, 0.25, tolerance)
				}
			})
		})

		Convey("When a gate names a wire outside the register", func() {
			err := qs.Apply(PauliX(2))

			Convey("It should be rejected", func() {
				So(errors.Is(err, ErrWireOutOfRange), ShouldBeTrue)
			})
		})

		Convey("When a gate repeats a wire", func() {
			So(errors.Is(qs.Apply(CNOT(1, 1)), ErrDuplicateWire), ShouldBeTrue)
		})

		Convey("When a gate is missing parameters", func() {
			So(errors.Is(qs.Apply(Gate{Name: GateRY, Wires: []int{0}}), ErrParamCount), ShouldBeTrue)
		})

		Convey("When a gate has the wrong number of wires", func() {
			So(errors.Is(qs.Apply(Gate{Name: GateCNOT, Wires: []int{0}}), ErrWireCount), ShouldBeTrue)
		})

		Convey("When a gate is unknown", func() {
			So(errors.Is(qs.Apply(Gate{Name: "Toffoli", Wires: []int{0}}), ErrUnknownGate), ShouldBeTrue)
		})
	})

	Convey("Given register sizes past the limit", t, func() {
		Convey("A device should refuse to execute", func() {
			for _, wires := range []int{MaxWires + 1, 63, 64, 130} {
				_, err := NewDevice(wires).Execute(NewCircuit())
				So(errors.Is(err, ErrWireOutOfRange), ShouldBeTrue)
			}
		})

		Convey("Building the state directly should panic", func() {
			So(func() { NewQuantumState(64) }, ShouldPanic)
			So(func() { NewQuantumState(-1) }, ShouldPanic)
		})
	})

	Convey("Given a three-wire register with the control set", t, func() {
		qs := NewQuantumState(3)
		So(qs.Apply(PauliX(0)), ShouldBeNil)
		So(qs.Apply(PauliX(1)), ShouldBeNil)

		Convey("A CSWAP should exchange the targets", func() {
			So(qs.Apply(CSWAP(0, 1, 2)), ShouldBeNil)
			So(qs.Probabilities()[0b101], ShouldAlmostEqual, 1, tolerance)
		})

		Convey("A CSWAP with the control clear should do nothing", func() {
			So(qs.Apply(PauliX(0)), ShouldBeNil)
			So(qs.Apply(CSWAP(0, 1, 2)), ShouldBeNil)
			So(qs.Probabilities()[0b010], ShouldAlmostEqual, 1, tolerance)
		})
	})

	Convey("Given rotations", t, func() {
		Convey("Rot should equal RZ·RY·RZ applied in order", func() {
			a := NewQuantumState(1)
			b := NewQuantumState(1)
			So(a.Apply(Hadamard(0)), ShouldBeNil)
			So(b.Apply(Hadamard(0)), ShouldBeNil)

			So(a.Apply(Rot(0.3, 1.1, -0.7, 0)), ShouldBeNil)
			So(b.Apply(RZ(0.3, 0)), ShouldBeNil)
			So(b.Apply(RY(1.1, 0)), ShouldBeNil)
			So(b.Apply(RZ(-0.7, 0)), ShouldBeNil)

			for i := range a.Vector {
				So(real(a.Vector[i]), ShouldAlmostEqual, real(b.Vector[i]), tolerance)
				So(imag(a.Vector[i]), ShouldAlmostEqual, imag(b.Vector[i]), tolerance)
			}
		})

		Convey("RX(π) should flip |0⟩ to |1⟩ up to phase", func() {
			qs := NewQuantumState(1)
			So(qs.Apply(RX(math.Pi, 0)), ShouldBeNil)
			So(qs.Probabilities()[1], ShouldAlmostEqual, 1, tolerance)
		})

		Convey("Rotations should preserve the norm", func() {
			qs := NewQuantumState(2)
			So(qs.Apply(RY(0.4, 0)), ShouldBeNil)
			So(qs.Apply(RX(2.2, 1)), ShouldBeNil)
			So(qs.Apply(CNOT(0, 1)), ShouldBeNil)
			So(real(qs.Inner(qs)), ShouldAlmostEqual, 1, tolerance)
		})
	})

	Convey("Given a state in superposition", t, func() {
		qs := NewQuantumState(1)
		So(qs.Apply(Hadamard(0)), ShouldBeNil)
		clone := qs.Clone()

		Convey("Measuring should collapse onto a basis state", func() {
			outcome := qs.Measure(rand.New(rand.NewPCG(1, 2)))
			So(outcome, ShouldBeBetweenOrEqual, 0, 1)
			So(qs.Probabilities()[outcome], ShouldEqual, 1)
		})

		Convey("The clone should be unaffected", func() {
			qs.Measure(rand.New(rand.NewPCG(1, 2)))
			So(clone.Probabilities()[0], ShouldAlmostEqual, 0.5, tolerance)
		})
	})
}
