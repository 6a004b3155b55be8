package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theapemachine/qhack"
)

/*
NewSimpleCircuitsCmd reads a rotation angle from stdin and prints the
PauliX expectation of a qubit rotated by it about y.
*/
func NewSimpleCircuitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "simplecircuits",
		Short:        "Print ⟨X⟩ of a qubit after RY(angle)",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			input, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return err
			}

			angle, err := strconv.ParseFloat(strings.TrimSpace(string(input)), 64)
			if err != nil {
				return fmt.Errorf("angle: %w", err)
			}

			ev, err := qhack.RotationExpectation(angle)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), qhack.FormatFloat(ev))
			return err
		},
	}
}
