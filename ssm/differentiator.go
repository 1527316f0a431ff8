package ssm

import (
	"fmt"
	"math"

	"github.com/hammal/difffilter/gonumExtensions"
	"github.com/hammal/difffilter/tf"
)

// Convention selects the sign of the feedback row in the companion form
// realization of a differentiator.
type Convention int

const (
	// DirectFeedback places the denominator coefficients divided by the
	// leading coefficient in the last row of A as they are.
	DirectFeedback Convention = iota
	// NegatedFeedback is the textbook controllable canonical form where the
	// feedback row, and hence the output row, is negated.
	NegatedFeedback
)

func (c Convention) String() string {
	switch c {
	case DirectFeedback:
		return "direct"
	case NegatedFeedback:
		return "negated"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// ParseConvention maps "direct" and "negated" to a Convention.
func ParseConvention(s string) (Convention, error) {
	switch s {
	case "", "direct":
		return DirectFeedback, nil
	case "negated":
		return NegatedFeedback, nil
	}
	return 0, fmt.Errorf("ssm: unknown convention %q", s)
}

type options struct {
	convention Convention
}

// Option configures the differentiator realization.
type Option func(*options)

// WithConvention selects the feedback sign convention. The default is
// DirectFeedback.
func WithConvention(c Convention) Option {
	return func(o *options) {
		o.convention = c
	}
}

// NewDifferentiatorFilter returns the continuous time state space model of an
// order-th order filtered differentiator with the given time constant.
func NewDifferentiatorFilter(order uint, timeConstant float64, opts ...Option) (*StateSpace, error) {
	if err := CheckTimeConstant(timeConstant); err != nil {
		return nil, err
	}
	return FromDifferentiator(tf.NewDifferentiatorFilter(order, timeConstant), opts...)
}

// CheckTimeConstant returns ErrInvalidTimeConstant unless timeConstant is
// positive and finite.
func CheckTimeConstant(timeConstant float64) error {
	if !(timeConstant > 0) || math.IsInf(timeConstant, 1) {
		return fmt.Errorf("%w: got %v", ErrInvalidTimeConstant, timeConstant)
	}
	return nil
}

// FromDifferentiator realizes a differentiator transfer function in companion
// form with order states, a single input and order+1 outputs.
//
// The first order outputs observe the states directly, i.e. the filtered input
// and its first order-1 derivatives, whereas the last output is the order-th
// derivative reconstructed from the states and the input.
//
// With an = denominator[order] and row = denominator[0:order] / an:
//
// A = superdiagonal ones with row as its last row
//
// B = [0 ... 0 1/an]^T
//
// C = [I; row]
//
// D = [0 ... 0 1/an]^T
func FromDifferentiator(filter *tf.TransferFunction, opts ...Option) (*StateSpace, error) {
	o := options{convention: DirectFeedback}
	for _, opt := range opts {
		opt(&o)
	}

	denom := filter.Denominator()
	nstates := filter.Order()
	noutputs := nstates + 1
	an := filter.LeadingCoefficient()
	if an == 0 || math.IsNaN(an) || math.IsInf(an, 0) {
		return nil, fmt.Errorf("%w: got %v", ErrZeroLeadingCoefficient, an)
	}

	ss, err := New(1, noutputs, nstates)
	if err != nil {
		return nil, err
	}

	// Order zero is a static gain of 1/an
	ss.d.Set(noutputs-1, 0, 1./an)
	if nstates == 0 {
		return ss, nil
	}

	sign := 1.
	if o.convention == NegatedFeedback {
		sign = -1.
	}
	row := make([]float64, nstates)
	for index := range row {
		row[index] = sign * denom[index] / an
	}

	// fill A
	gonumExtensions.FillDiagonal(ss.a, 1., 1)
	ss.a.SetRow(nstates-1, row)

	// fill B
	ss.b.Set(nstates-1, 0, 1./an)

	// fill C
	gonumExtensions.FillDiagonal(ss.c, 1., 0)
	ss.c.SetRow(noutputs-1, row)

	return ss, nil
}
