package qhack

import (
	"context"
	"fmt"
)

/*
MomentumOptimizer is gradient descent with momentum:

	a ← m·a + η·∇C(x)
	x ← x − a
*/
type MomentumOptimizer struct {
	StepSize     float64
	Momentum     float64
	accumulation []float64
}

func NewMomentumOptimizer(stepSize, momentum float64) *MomentumOptimizer {
	return &MomentumOptimizer{StepSize: stepSize, Momentum: momentum}
}

/*
StepAndCost takes one step from x. It returns the new parameters and the
cost at x, before the step.
*/
func (o *MomentumOptimizer) StepAndCost(
	ctx context.Context, cost Objective, grad GradientFunc, x []float64,
) ([]float64, float64, error) {
	before, err := cost(x)
	if err != nil {
		return nil, 0, err
	}

	g, err := grad(ctx, x)
	if err != nil {
		return nil, 0, err
	}
	if len(g) != len(x) {
		return nil, 0, fmt.Errorf("%w: gradient has %d entries, params %d", ErrShapeMismatch, len(g), len(x))
	}

	if len(o.accumulation) != len(x) {
		o.accumulation = make([]float64, len(x))
	}

	next := make([]float64, len(x))
	for i := range x {
		o.accumulation[i] = o.Momentum*o.accumulation[i] + o.StepSize*g[i]
		next[i] = x[i] - o.accumulation[i]
	}
	return next, before, nil
}

// Reset forgets the accumulated velocity.
func (o *MomentumOptimizer) Reset() {
	o.accumulation = nil
}
