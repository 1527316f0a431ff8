package ssm

import (
	"fmt"
	"math"

	"github.com/hammal/difffilter/gonumExtensions"
	"gonum.org/v1/gonum/mat"
)

// computeStateTransition computes e^(At) where A is a square matrix and
// t is a scalar.
func computeStateTransition(t float64, A mat.Matrix) *mat.Dense {
	var res mat.Dense
	res.Scale(t, A)
	res.Exp(&res)
	return &res
}

// Discretize returns the zero-order-hold equivalent of a continuous time model
// for the sample period step, i.e.
//
// Ad = e^(A step)
//
// Bd = A^(-1) (Ad - I) B
//
// where Bd is obtained by solving A Bd = Ad B - B with a QR factorization of A.
// C and D are carried over unchanged. The receiver is not modified.
//
// ErrSingular is returned when A can't be solved against and ErrNonFinite when
// either Ad or Bd overflows.
func (ss *StateSpace) Discretize(step float64) (*StateSpace, error) {
	if !(step > 0) || math.IsInf(step, 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidStep, step)
	}
	if ss.IsDiscrete() {
		return nil, ErrAlreadyDiscrete
	}

	res := &StateSpace{
		c:          gonumExtensions.Clone(ss.c),
		d:          gonumExtensions.Clone(ss.d),
		inputs:     ss.inputs,
		outputs:    ss.outputs,
		states:     ss.states,
		sampleTime: step,
	}

	// Nothing to discretize for a memoryless system
	if ss.states == 0 {
		res.a = &mat.Dense{}
		res.b = &mat.Dense{}
		return res, nil
	}

	var qr mat.QR
	qr.Factorize(ss.a)

	Ad := computeStateTransition(step, ss.a)
	if gonumExtensions.NANORINF(Ad) {
		return nil, fmt.Errorf("%w: state transition e^(A %v)", ErrNonFinite, step)
	}

	// Without inputs there is nothing to solve for but A must still be regular
	if ss.inputs == 0 {
		if cond := qr.Cond(); !(cond <= mat.ConditionTolerance) {
			return nil, fmt.Errorf("%w: %w", ErrSingular, mat.Condition(cond))
		}
		res.a = Ad
		res.b = &mat.Dense{}
		return res, nil
	}

	// tmp = Ad B - B
	var tmp, Bd mat.Dense
	tmp.Mul(Ad, ss.b)
	tmp.Sub(&tmp, ss.b)

	if err := qr.SolveTo(&Bd, false, &tmp); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSingular, err)
	}
	if gonumExtensions.NANORINF(&Bd) {
		return nil, fmt.Errorf("%w: input matrix", ErrNonFinite)
	}

	res.a = Ad
	res.b = &Bd
	return res, nil
}
