// Package difffilter designs discrete-time state space realizations of low-pass
// filtered differentiators
//
// H(s) = 1 / (1 + tau s)^order
//
// The design runs in three steps: the transfer function is expanded with
// binomial coefficients, realized as a continuous time state space model in
// companion form and finally discretized with a zero-order hold.
package difffilter

import (
	"fmt"

	"github.com/hammal/difffilter/ssm"
	"github.com/hammal/difffilter/tf"
)

// Filter holds every stage of a differentiator design.
type Filter struct {
	// TransferFunction is the differentiator transfer function
	TransferFunction *tf.TransferFunction
	// Continuous is the continuous time realization
	Continuous *ssm.StateSpace
	// Discrete is the zero-order-hold equivalent of Continuous
	Discrete *ssm.StateSpace
}

// Design returns the differentiator of the given order and time constant
// discretized for the sample period step.
func Design(order uint, timeConstant, step float64, opts ...ssm.Option) (*Filter, error) {
	if err := ssm.CheckTimeConstant(timeConstant); err != nil {
		return nil, fmt.Errorf("difffilter: order %d filter: %w", order, err)
	}
	h := tf.NewDifferentiatorFilter(order, timeConstant)
	continuous, err := ssm.FromDifferentiator(h, opts...)
	if err != nil {
		return nil, fmt.Errorf("difffilter: realize order %d filter: %w", order, err)
	}
	discrete, err := continuous.Discretize(step)
	if err != nil {
		return nil, fmt.Errorf("difffilter: discretize order %d filter: %w", order, err)
	}
	return &Filter{
		TransferFunction: h,
		Continuous:       continuous,
		Discrete:         discrete,
	}, nil
}
