package qhack

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"sync/atomic"
	"time"

	"github.com/theapemachine/errnie"
)

// ProgressGroup is the broadcast group a Solver publishes Progress on.
const ProgressGroup = "progress"

// Progress reports the cost after one optimiser step.
type Progress struct {
	State     int
	Iteration int
	Cost      float64
}

/*
Solver finds the lowest energies of a Hamiltonian one state at a time.
Each state minimises its energy plus a penalty on its overlap with every
state found before it, which pushes it towards the next eigenstate up.
*/
type Solver struct {
	hamiltonian   *Hamiltonian
	config        *Config
	qubits        int
	energyDevice  *Device
	overlapDevice *Device
	pool          *Q
	progress      *BroadcastGroup
	rng           *rand.Rand
	runs          atomic.Uint64
}

func NewSolver(ctx context.Context, h *Hamiltonian, config *Config) (*Solver, error) {
	if config == nil {
		config = NewConfig()
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	qubits := h.NumQubits()
	if qubits == 0 {
		return nil, fmt.Errorf("hamiltonian: %w", ErrNoWires)
	}
	// The swap test needs both states and an ancilla in one register.
	if err := checkRegister(2*qubits + 1); err != nil {
		return nil, fmt.Errorf("hamiltonian on %d qubits: %w", qubits, err)
	}

	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	pool := NewQ(ctx, config.Workers, config)

	return &Solver{
		hamiltonian:   h,
		config:        config,
		qubits:        qubits,
		energyDevice:  NewDevice(qubits),
		overlapDevice: NewDevice(2*qubits + 1),
		pool:          pool,
		progress:      pool.CreateBroadcastGroup(ProgressGroup, 0),
		rng:           rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

func validateConfig(c *Config) error {
	switch {
	case c.NumEigen < 1:
		return fmt.Errorf("%w: need at least one eigenvalue, got %d", ErrInvalidConfig, c.NumEigen)
	case c.Layers < 1:
		return fmt.Errorf("%w: need at least one ansatz layer, got %d", ErrInvalidConfig, c.Layers)
	case c.Retries < 0:
		return fmt.Errorf("%w: negative retry count %d", ErrInvalidConfig, c.Retries)
	case c.MaxIterations < 0:
		return fmt.Errorf("%w: negative iteration budget %d", ErrInvalidConfig, c.MaxIterations)
	}
	return nil
}

func (s *Solver) Qubits() int {
	return s.qubits
}

// Subscribe returns a channel of Progress values, wrapped in QuantumValues.
func (s *Solver) Subscribe() chan QuantumValue {
	return s.pool.Subscribe(ProgressGroup)
}

// Metrics exports the evaluation pool's job metrics.
func (s *Solver) Metrics() map[string]interface{} {
	return s.pool.Metrics()
}

func (s *Solver) Close() {
	s.pool.Close()
}

// Energy is ⟨H⟩ in the state the ansatz prepares from p.
func (s *Solver) Energy(p Params) (float64, error) {
	gates, err := VariationalAnsatz(p, wireRange(0, s.qubits))
	if err != nil {
		return 0, err
	}
	return s.energyDevice.Expval(NewCircuit(gates...), s.hamiltonian)
}

// Overlap is |⟨a|b⟩|², measured with a swap test.
func (s *Solver) Overlap(a, b Params) (float64, error) {
	circuit, ancilla, err := SwapTestCircuit(a, b)
	if err != nil {
		return 0, err
	}
	return s.overlapDevice.Expval(circuit, PauliWord{{Pauli: SigmaZ, Wire: ancilla}})
}

// Cost is the energy of p plus the weighted overlap with each earlier state.
func (s *Solver) Cost(p Params, prev []Params) (float64, error) {
	cost, err := s.Energy(p)
	if err != nil {
		return 0, err
	}

	for _, q := range prev {
		overlap, err := s.Overlap(p, q)
		if err != nil {
			return 0, err
		}
		cost += s.config.OverlapWeight * overlap
	}
	return cost, nil
}

/*
FindExcitedStates returns the NumEigen lowest energies in ascending order.
*/
func (s *Solver) FindExcitedStates(ctx context.Context) ([]float64, error) {
	run := s.runs.Add(1)
	opt := NewMomentumOptimizer(s.config.StepSize, s.config.Momentum)

	energies := make([]float64, 0, s.config.NumEigen)
	prev := make([]Params, 0, s.config.NumEigen)

	for state := 0; state < s.config.NumEigen; state++ {
		opt.Reset()

		found, err := s.optimizeState(ctx, opt, run, state, append([]Params(nil), prev...))
		if err != nil {
			return nil, fmt.Errorf("state %d: %w", state, err)
		}

		energy, err := s.Energy(found)
		if err != nil {
			return nil, fmt.Errorf("state %d: %w", state, err)
		}

		if s.config.Verbose {
			errnie.Info("state %d energy %s", state, FormatFloat(energy))
		}

		energies = append(energies, energy)
		prev = append(prev, found)
	}

	sort.Float64s(energies)
	return energies, nil
}

func (s *Solver) optimizeState(
	ctx context.Context, opt *MomentumOptimizer, run uint64, state int, prev []Params,
) (Params, error) {
	params := RandomParams(s.config.Layers, s.qubits, s.rng)

	objective := func(x []float64) (float64, error) {
		p, err := params.With(x)
		if err != nil {
			return 0, err
		}
		return s.Cost(p, prev)
	}
	grad := ParameterShift(s.pool, fmt.Sprintf("run%d/state%d", run, state), objective, s.jobOptions()...)

	x := params.Values
	for it := 0; it < s.config.MaxIterations; it++ {
		if err := ctx.Err(); err != nil {
			return Params{}, err
		}

		next, prevCost, err := opt.StepAndCost(ctx, objective, grad, x)
		if err != nil {
			return Params{}, err
		}
		x = next

		cost, err := objective(x)
		if err != nil {
			return Params{}, err
		}

		s.progress.Send(QuantumValue{Value: Progress{State: state, Iteration: it, Cost: cost}})

		if math.Abs(cost-prevCost) < s.config.Threshold {
			break
		}
	}

	return params.With(x)
}

func (s *Solver) jobOptions() []JobOption {
	if s.config.Retries <= 0 {
		return nil
	}
	return []JobOption{WithRetry(s.config.Retries+1, &ExponentialBackoff{Initial: time.Millisecond})}
}

/*
FindExcitedStates runs a Solver over h and formats the energies as a
comma-separated line.
*/
func FindExcitedStates(ctx context.Context, h *Hamiltonian, config *Config) (string, error) {
	solver, err := NewSolver(ctx, h, config)
	if err != nil {
		return "", err
	}
	defer solver.Close()

	energies, err := solver.FindExcitedStates(ctx)
	if err != nil {
		return "", err
	}
	return FormatEnergies(energies), nil
}
