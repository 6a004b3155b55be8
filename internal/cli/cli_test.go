package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/cobra"

	"github.com/theapemachine/qhack"
)

func execute(cmd *cobra.Command, input string, args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func energies(line string) []float64 {
	var values []float64
	for _, field := range strings.Split(strings.TrimSpace(line), ",") {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			panic(err)
		}
		values = append(values, v)
	}
	return values
}

func TestSimpleCircuitsCmd(t *testing.T) {
	Convey("Given the rotation command", t, func() {
		Convey("An angle of zero should print 0.0", func() {
			out, _, err := execute(NewSimpleCircuitsCmd(), "0\n")
			So(err, ShouldBeNil)
			So(out, ShouldEqual, "0.0\n")
		})

		Convey("A quarter turn should print one", func() {
			out, _, err := execute(NewSimpleCircuitsCmd(), " 1.5707963267948966 ")
			So(err, ShouldBeNil)
			So(energies(out)[0], ShouldAlmostEqual, 1, 1e-12)
		})

		Convey("A non-numeric angle should fail", func() {
			_, _, err := execute(NewSimpleCircuitsCmd(), "quarter")
			So(errors.Is(err, strconv.ErrSyntax), ShouldBeTrue)
		})
	})
}

func TestVQECmd(t *testing.T) {
	quick := []string{"--seed", "7", "--overlap-weight", "5", "--workers", "2"}

	Convey("Given the eigensolver command", t, func() {
		Convey("It should print the two levels of one qubit", func() {
			out, _, err := execute(NewVQECmd(), "+ 0.5 Z0", append(quick, "--eigen", "2")...)
			So(err, ShouldBeNil)
			So(strings.Count(out, "\n"), ShouldEqual, 1)

			levels := energies(out)
			So(levels, ShouldHaveLength, 2)
			So(levels[0], ShouldAlmostEqual, -0.5, 1e-3)
			So(levels[1], ShouldAlmostEqual, 0.5, 1e-3)
		})

		Convey("An unknown Pauli letter should fail by default", func() {
			_, _, err := execute(NewVQECmd(), "+ 1.0 Q0 Z1", quick...)
			So(errors.Is(err, qhack.ErrInvalidPauli), ShouldBeTrue)
		})

		Convey("An unknown Pauli letter should be skipped when lenient", func() {
			out, _, err := execute(NewVQECmd(), "+ 1.0 Q0 Z1",
				append(quick, "--lenient", "--eigen", "1", "--iterations", "20")...)
			So(err, ShouldBeNil)
			So(energies(out), ShouldHaveLength, 1)
		})

		Convey("Settings should come from a config file", func() {
			path := filepath.Join(t.TempDir(), "vqe.yaml")
			So(os.WriteFile(path, []byte("eigen: 2\niterations: 20\n"), 0o644), ShouldBeNil)

			out, _, err := execute(NewVQECmd(), "+ 1.0 X0", append(quick, "--config", path)...)
			So(err, ShouldBeNil)
			So(energies(out), ShouldHaveLength, 2)
		})

		Convey("A missing config file should fail", func() {
			_, _, err := execute(NewVQECmd(), "+ 1.0 X0",
				append(quick, "--config", filepath.Join(t.TempDir(), "missing.yaml"))...)
			So(err, ShouldNotBeNil)
		})

		Convey("The dump flag should write the Hamiltonian to stderr", func() {
			out, errOut, err := execute(NewVQECmd(), "- 2.0 Z0",
				append(quick, "--dump", "--eigen", "1", "--iterations", "5")...)
			So(err, ShouldBeNil)
			So(errOut, ShouldContainSubstring, "Coeffs")
			So(out, ShouldNotContainSubstring, "Coeffs")
		})

		Convey("A wire too high to simulate should fail", func() {
			_, _, err := execute(NewVQECmd(), "+ 1.0 Z64", quick...)
			So(errors.Is(err, qhack.ErrWireOutOfRange), ShouldBeTrue)
		})

		Convey("An invalid setting should be rejected", func() {
			_, _, err := execute(NewVQECmd(), "+ 1.0 Z0", append(quick, "--layers", "0")...)
			So(errors.Is(err, qhack.ErrInvalidConfig), ShouldBeTrue)
		})
	})
}

func TestVQECmdEnvironment(t *testing.T) {
	t.Setenv("QHACK_EIGEN", "1")
	t.Setenv("QHACK_ITERATIONS", "20")

	Convey("Given settings in the environment", t, func() {
		out, _, err := execute(NewVQECmd(), "+ 1.0 X0", "--seed", "7", "--workers", "2")

		Convey("They should apply when no flag overrides them", func() {
			So(err, ShouldBeNil)
			So(energies(out), ShouldHaveLength, 1)
		})
	})

	Convey("Given a flag that overrides the environment", t, func() {
		out, _, err := execute(NewVQECmd(), "+ 1.0 X0", "--seed", "7", "--workers", "2", "--eigen", "2")

		Convey("The flag should win", func() {
			So(err, ShouldBeNil)
			So(energies(out), ShouldHaveLength, 2)
		})
	})
}
