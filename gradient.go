package qhack

import (
	"context"
	"fmt"
	"math"
	"sync/atomic"
)

// Objective maps a flat parameter vector to a scalar cost.
type Objective func(x []float64) (float64, error)

// GradientFunc returns the gradient of an objective at x.
type GradientFunc func(ctx context.Context, x []float64) ([]float64, error)

// shift is the parameter-shift offset for rotations generated by P/2.
const shift = math.Pi / 2

/*
ParameterShift differentiates an objective whose parameters each enter one
Pauli rotation per circuit:

	∂C/∂xₖ = (C(x + π/2·eₖ) − C(x − π/2·eₖ)) / 2

Each component is scheduled as its own job on the pool, with opts. id
prefixes the job ids and must be unique among gradient functions sharing
the pool.
*/
func ParameterShift(q *Q, id string, cost Objective, opts ...JobOption) GradientFunc {
	var calls atomic.Uint64

	return func(ctx context.Context, x []float64) ([]float64, error) {
		call := calls.Add(1)
		results := make([]chan QuantumValue, len(x))

		for k := range x {
			k := k
			results[k] = q.Schedule(fmt.Sprintf("%s/%d/%d", id, call, k), func() (any, error) {
				return shiftedDifference(cost, x, k)
			}, opts...)
		}

		grad := make([]float64, len(x))
		for k, ch := range results {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case qv := <-ch:
				if qv.Error != nil {
					return nil, qv.Error
				}
				grad[k] = qv.Value.(float64)
			}
		}
		return grad, nil
	}
}

func shiftedDifference(cost Objective, x []float64, k int) (float64, error) {
	shifted := append([]float64(nil), x...)

	shifted[k] = x[k] + shift
	plus, err := cost(shifted)
	if err != nil {
		return 0, err
	}

	shifted[k] = x[k] - shift
	minus, err := cost(shifted)
	if err != nil {
		return 0, err
	}

	return (plus - minus) / 2, nil
}
