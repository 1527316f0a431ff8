// Package ssm implements linear time-invariant state space models
//
// x'(t) = A x(t) + B u(t)
//
// y(t) = C x(t) + D u(t)
//
// and their zero-order-hold discrete-time counterparts
//
// x[k+1] = Ad x[k] + Bd u[k]
//
// y[k] = C x[k] + D u[k]
package ssm

import (
	"fmt"

	"github.com/hammal/difffilter/gonumExtensions"
	"gonum.org/v1/gonum/mat"
)

// StateSpace holds the four system matrices together with the system
// dimensions. Matrices with a zero dimension are stored as empty matrices,
// therefore the dimensions are kept separately.
//
// A StateSpace is not modified after construction. The accessors return
// copies.
type StateSpace struct {
	// State dynamics (states x states)
	a *mat.Dense
	// Input matrix (states x inputs)
	b *mat.Dense
	// Observation matrix (outputs x states)
	c *mat.Dense
	// Feed-through matrix (outputs x inputs)
	d *mat.Dense

	inputs, outputs, states int

	// 0 for continuous time models
	sampleTime float64
}

// New returns a zero-filled continuous time state space model.
func New(ninputs, noutputs, nstates int) (*StateSpace, error) {
	if ninputs < 0 || noutputs < 0 || nstates < 0 {
		return nil, fmt.Errorf("%w: inputs=%d outputs=%d states=%d", ErrInvalidDimension, ninputs, noutputs, nstates)
	}
	return &StateSpace{
		a:       gonumExtensions.Zeros(nstates, nstates),
		b:       gonumExtensions.Zeros(nstates, ninputs),
		c:       gonumExtensions.Zeros(noutputs, nstates),
		d:       gonumExtensions.Zeros(noutputs, ninputs),
		inputs:  ninputs,
		outputs: noutputs,
		states:  nstates,
	}, nil
}

// NewFromMatrices returns a continuous time state space model from the given
// system matrices. The matrices are copied. Matrices with a zero dimension are
// passed as empty matrices, the number of inputs and outputs is then taken
// from B and C.
func NewFromMatrices(A, B, C, D *mat.Dense) (*StateSpace, error) {
	if A == nil || B == nil || C == nil || D == nil {
		return nil, fmt.Errorf("%w: nil system matrix", ErrInvalidDimension)
	}
	states, n := A.Dims()
	if states != n {
		return nil, fmt.Errorf("%w: A is %dx%d", ErrInvalidDimension, states, n)
	}
	outputs, inputs := D.Dims()
	if D.IsEmpty() {
		_, inputs = B.Dims()
		outputs, _ = C.Dims()
	}
	if !hasShape(B, states, inputs) || !hasShape(C, outputs, states) || !hasShape(D, outputs, inputs) {
		mB, nB := B.Dims()
		mC, nC := C.Dims()
		mD, nD := D.Dims()
		return nil, fmt.Errorf("%w: A %dx%d, B %dx%d, C %dx%d, D %dx%d", ErrInvalidDimension, states, states, mB, nB, mC, nC, mD, nD)
	}
	return &StateSpace{
		a:       gonumExtensions.Clone(A),
		b:       gonumExtensions.Clone(B),
		c:       gonumExtensions.Clone(C),
		d:       gonumExtensions.Clone(D),
		inputs:  inputs,
		outputs: outputs,
		states:  states,
	}, nil
}

// hasShape reports whether m is r by c, where any zero dimension requires an
// empty matrix.
func hasShape(m *mat.Dense, r, c int) bool {
	if r == 0 || c == 0 {
		return m.IsEmpty()
	}
	mr, mc := m.Dims()
	return mr == r && mc == c
}

// A returns a copy of the state dynamics matrix.
func (ss *StateSpace) A() *mat.Dense { return gonumExtensions.Clone(ss.a) }

// B returns a copy of the input matrix.
func (ss *StateSpace) B() *mat.Dense { return gonumExtensions.Clone(ss.b) }

// C returns a copy of the observation matrix.
func (ss *StateSpace) C() *mat.Dense { return gonumExtensions.Clone(ss.c) }

// D returns a copy of the feed-through matrix.
func (ss *StateSpace) D() *mat.Dense { return gonumExtensions.Clone(ss.d) }

func (ss *StateSpace) StateSpaceOrder() int { return ss.states }

func (ss *StateSpace) ObservationSpaceOrder() int { return ss.outputs }

func (ss *StateSpace) InputSpaceOrder() int { return ss.inputs }

// SampleTime returns the sample period of a discretized model and 0 for a
// continuous time model.
func (ss *StateSpace) SampleTime() float64 { return ss.sampleTime }

// IsDiscrete reports whether the model is a discrete time model.
func (ss *StateSpace) IsDiscrete() bool { return ss.sampleTime > 0 }

// String formats the system matrices.
func (ss *StateSpace) String() string {
	return fmt.Sprintf("A = \n%v\nB = \n%v\nC = \n%v\nD = \n%v\n", format(ss.a), format(ss.b), format(ss.c), format(ss.d))
}

func format(m *mat.Dense) fmt.Formatter {
	if m.IsEmpty() {
		return emptyMatrix{}
	}
	return mat.Formatted(m, mat.Squeeze())
}

type emptyMatrix struct{}

func (emptyMatrix) Format(fs fmt.State, c rune) { fmt.Fprint(fs, "[]") }
