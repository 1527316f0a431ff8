// Package simulate runs discretized state space models sample by sample and
// provides a numerically integrated reference for the same model in
// continuous time.
package simulate

import (
	"errors"
	"fmt"

	"github.com/hammal/difffilter/ode"
	"github.com/hammal/difffilter/signal"
	"github.com/hammal/difffilter/ssm"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNotDiscrete is returned when a continuous time model is simulated.
	ErrNotDiscrete = errors.New("simulate: model is not discrete")
	// ErrInputMismatch is returned when the input doesn't match the model.
	ErrInputMismatch = errors.New("simulate: input doesn't match the model")
)

// Simulator evaluates
//
// y[k] = C x[k] + D u[k]
//
// x[k+1] = Ad x[k] + Bd u[k]
//
// starting from x[0] = 0.
type Simulator struct {
	ad, bd, c, d *mat.Dense
	ts           float64
	state        *mat.VecDense
	index        int
	model        *ssm.StateSpace
}

// NewSimulator returns an initialized simulator for a discrete model.
func NewSimulator(model *ssm.StateSpace) (*Simulator, error) {
	if !model.IsDiscrete() {
		return nil, ErrNotDiscrete
	}
	sim := &Simulator{
		ad:    model.A(),
		bd:    model.B(),
		c:     model.C(),
		d:     model.D(),
		ts:    model.SampleTime(),
		model: model,
	}
	sim.Reset()
	return sim, nil
}

// Reset sets the state back to zero.
func (sim *Simulator) Reset() {
	sim.index = 0
	sim.state = nil
	if n := sim.model.StateSpaceOrder(); n > 0 {
		sim.state = mat.NewVecDense(n, nil)
	}
}

// State returns a copy of the current state.
func (sim *Simulator) State() []float64 {
	if sim.state == nil {
		return nil
	}
	return append([]float64(nil), sim.state.RawVector().Data...)
}

// Step returns the observation for the input u and moves the state one sample
// forward.
func (sim *Simulator) Step(u []float64) ([]float64, error) {
	if len(u) != sim.model.InputSpaceOrder() {
		return nil, fmt.Errorf("%w: got %d inputs, want %d", ErrInputMismatch, len(u), sim.model.InputSpaceOrder())
	}
	y := observe(sim.c, sim.d, sim.state, u, sim.model.ObservationSpaceOrder())

	if sim.state != nil {
		// x = Ad x + Bd u
		var next mat.VecDense
		next.MulVec(sim.ad, sim.state)
		if len(u) > 0 {
			var input mat.VecDense
			input.MulVec(sim.bd, mat.NewVecDense(len(u), u))
			next.AddVec(&next, &input)
		}
		sim.state.CopyVec(&next)
	}
	sim.index++
	return y, nil
}

// Run simulates a single input model for samples samples with the input
// sampled at u(k Ts). Returns an array [sample][observation]float64.
func (sim *Simulator) Run(input signal.Signal, samples int) ([][]float64, error) {
	if sim.model.InputSpaceOrder() != 1 {
		return nil, fmt.Errorf("%w: Run needs a single input model", ErrInputMismatch)
	}
	res := make([][]float64, samples)
	u := make([]float64, 1)
	for index := range res {
		u[0] = input.Value(float64(sim.index) * sim.ts)
		y, err := sim.Step(u)
		if err != nil {
			return nil, err
		}
		res[index] = y
	}
	return res, nil
}

// observe computes C x + D u. x may be nil for models without states.
func observe(C, D *mat.Dense, x *mat.VecDense, u []float64, outputs int) []float64 {
	y := make([]float64, outputs)
	if outputs == 0 {
		return y
	}
	if x != nil {
		var tmp mat.VecDense
		tmp.MulVec(C, x)
		for row := range y {
			y[row] = tmp.AtVec(row)
		}
	}
	for row := range y {
		for col, value := range u {
			y[row] += D.At(row, col) * value
		}
	}
	return y
}

// zeroOrderHold is the continuous system x'(t) = A x(t) + B u with u held
// constant.
type zeroOrderHold struct {
	A     *mat.Dense
	input *mat.VecDense
}

func (sys zeroOrderHold) Derivative(t float64, state mat.Vector) mat.Vector {
	var res mat.VecDense
	res.MulVec(sys.A, state)
	res.AddVec(&res, sys.input)
	return &res
}

// Reference simulates a continuous time single input model by numerically
// integrating the state equation with rk, holding the input u(k ts) constant
// over each sample period. The result is an array [sample][observation]float64
// comparable to Run on the discretized model.
func Reference(model *ssm.StateSpace, input signal.Signal, ts float64, samples int, rk *ode.RungeKutta, substeps int) ([][]float64, error) {
	if model.IsDiscrete() {
		return nil, fmt.Errorf("simulate: reference needs a continuous model")
	}
	if model.InputSpaceOrder() != 1 {
		return nil, fmt.Errorf("%w: Reference needs a single input model", ErrInputMismatch)
	}
	if substeps < 1 {
		substeps = 1
	}
	var (
		A     = model.A()
		B     = model.B()
		C     = model.C()
		D     = model.D()
		n     = model.StateSpaceOrder()
		state *mat.VecDense
	)
	if n > 0 {
		state = mat.NewVecDense(n, nil)
	}

	res := make([][]float64, samples)
	u := make([]float64, 1)
	for index := range res {
		t0 := float64(index) * ts
		u[0] = input.Value(t0)
		res[index] = observe(C, D, state, u, model.ObservationSpaceOrder())
		if state == nil {
			continue
		}

		sys := zeroOrderHold{A: A, input: mat.NewVecDense(n, nil)}
		sys.input.ScaleVec(u[0], B.ColView(0))
		h := ts / float64(substeps)
		for step := 0; step < substeps; step++ {
			rk.Compute(t0+float64(step)*h, t0+float64(step+1)*h, state, sys)
		}
	}
	return res, nil
}
