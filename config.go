package qhack

import (
	"runtime"
	"time"
)

/*
Config holds the evaluation pool settings and the eigensolver
hyperparameters. NewConfig fills in the values the solver was tuned with.
*/
type Config struct {
	SchedulingTimeout time.Duration
	Workers           int
	// Retries is how many times a failed evaluation job is run again.
	Retries int

	StepSize float64
	Momentum float64
	// OverlapWeight scales the penalty on overlap with earlier states. It
	// must exceed the gap to the next level. At 50 the default step size
	// overshoots on small problems and excited states often miss their
	// level; around 5 converges reliably there.
	OverlapWeight float64
	Layers        int
	MaxIterations int
	NumEigen      int
	Threshold     float64

	// Seed fixes the random initial parameters. Zero draws a fresh seed.
	Seed    uint64
	Verbose bool
}

func NewConfig() *Config {
	return &Config{
		SchedulingTimeout: 10 * time.Second,
		Workers:           runtime.GOMAXPROCS(0),
		StepSize:          0.1,
		Momentum:          0.9,
		OverlapWeight:     50,
		Layers:            2,
		MaxIterations:     500,
		NumEigen:          3,
		Threshold:         1e-8,
	}
}

func (c *Config) workers() int {
	if c == nil || c.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return c.Workers
}
