package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/theapemachine/errnie"

	"github.com/theapemachine/qhack"
)

// progressEvery thins the verbose progress log to one line per so many steps.
const progressEvery = 50

/*
NewVQECmd reads a Hamiltonian from stdin and prints its lowest energies as
a comma-separated line. Every flag can also come from a QHACK_* variable
or from the file named by --config.
*/
func NewVQECmd() *cobra.Command {
	v := viper.New()
	defaults := qhack.NewConfig()

	cmd := &cobra.Command{
		Use:          "vqe",
		Short:        "Find the lowest eigenvalues of a Hamiltonian",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(v); err != nil {
				return err
			}
			return runVQE(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.Float64("step-size", defaults.StepSize, "optimiser step size")
	flags.Float64("momentum", defaults.Momentum, "optimiser momentum")
	flags.Float64("overlap-weight", defaults.OverlapWeight, "penalty on overlap with earlier states")
	flags.Int("layers", defaults.Layers, "ansatz layers")
	flags.Int("iterations", defaults.MaxIterations, "optimiser steps per state")
	flags.Int("eigen", defaults.NumEigen, "number of eigenvalues to find")
	flags.Float64("threshold", defaults.Threshold, "stop once the cost changes by less than this")
	flags.Uint64("seed", 0, "seed for the initial parameters (0 picks one)")
	flags.Int("workers", 0, "gradient workers (0 uses GOMAXPROCS)")
	flags.Int("retries", defaults.Retries, "times a failed evaluation is run again")
	flags.Bool("lenient", false, "skip unknown Pauli letters instead of failing")
	flags.Bool("verbose", false, "log progress and pool metrics")
	flags.Bool("dump", false, "dump the parsed Hamiltonian to stderr")
	flags.String("config", "", "config file (yaml, json or toml)")

	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}
	v.SetEnvPrefix("QHACK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return cmd
}

func loadConfig(v *viper.Viper) error {
	path := v.GetString("config")
	if path == "" {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config %s: %w", path, err)
	}
	return nil
}

func solverConfig(v *viper.Viper) *qhack.Config {
	cfg := qhack.NewConfig()
	cfg.StepSize = v.GetFloat64("step-size")
	cfg.Momentum = v.GetFloat64("momentum")
	cfg.OverlapWeight = v.GetFloat64("overlap-weight")
	cfg.Layers = v.GetInt("layers")
	cfg.MaxIterations = v.GetInt("iterations")
	cfg.NumEigen = v.GetInt("eigen")
	cfg.Threshold = v.GetFloat64("threshold")
	cfg.Seed = v.GetUint64("seed")
	cfg.Retries = v.GetInt("retries")
	cfg.Verbose = v.GetBool("verbose")
	if workers := v.GetInt("workers"); workers > 0 {
		cfg.Workers = workers
	}
	return cfg
}

func runVQE(cmd *cobra.Command, v *viper.Viper) error {
	input, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return err
	}

	var opts []qhack.ParseOption
	if v.GetBool("lenient") {
		opts = append(opts, qhack.WithLenient())
	}

	h, err := qhack.ParseHamiltonian(string(input), opts...)
	if err != nil {
		return err
	}

	if v.GetBool("dump") {
		spew.Fdump(cmd.ErrOrStderr(), h)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := solverConfig(v)
	solver, err := qhack.NewSolver(ctx, h, cfg)
	if err != nil {
		return err
	}
	defer solver.Close()

	if cfg.Verbose {
		go logProgress(solver.Subscribe())
	}

	energies, err := solver.FindExcitedStates(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), qhack.FormatEnergies(energies))
	return err
}

func logProgress(progress chan qhack.QuantumValue) {
	for qv := range progress {
		p, ok := qv.Value.(qhack.Progress)
		if !ok || p.Iteration%progressEvery != 0 {
			continue
		}
		errnie.Info("state %d step %d cost %s", p.State, p.Iteration, qhack.FormatFloat(p.Cost))
	}
}
