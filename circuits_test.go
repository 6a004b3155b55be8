package qhack

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRotationExpectation(t *testing.T) {
	Convey("Given an unrotated qubit", t, func() {
		ev, err := RotationExpectation(0)

		Convey("Its PauliX expectation should be zero", func() {
			So(err, ShouldBeNil)
			So(ev, ShouldEqual, 0.0)
			So(FormatFloat(ev), ShouldEqual, "0.0")
		})
	})

	Convey("Given a quarter turn about y", t, func() {
		ev, err := RotationExpectation(math.Pi / 2)

		Convey("The qubit should point along x", func() {
			So(err, ShouldBeNil)
			So(ev, ShouldAlmostEqual, 1.0, 1e-12)
		})
	})

	Convey("Given arbitrary angles", t, func() {
		Convey("The expectation should follow sin(angle)", func() {
			for _, angle := range []float64{-2.5, -1, 0.3, 1.2, math.Pi, 4.7} {
				ev, err := RotationExpectation(angle)
				So(err, ShouldBeNil)
				So(ev, ShouldAlmostEqual, math.Sin(angle), 1e-12)
			}
		})
	})
}
