// Package ode is a ordinary differential equation library that implements the
// Runge-Kutta methods https://en.wikipedia.org/wiki/Runge–Kutta_methods.
//
// It is used to cross-check exact discretizations against a numerical
// integration of the continuous time system.
package ode

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrNoConvergence is returned by AdaptiveCompute when the step length had to
// be halved too many times.
var ErrNoConvergence = errors.New("ode: maximum number of iterations reached, adaptive Runge-Kutta doesn't converge")

// Set max number of iterations
const maxNumberOfIterations int = 10000

// DifferentiableSystem describes x'(t) = f(t, x(t)).
type DifferentiableSystem interface {
	Derivative(t float64, state mat.Vector) mat.Vector
}

// RungeKutta holds the butcherTableau which describes the Runge Kutta method.
type RungeKutta struct {
	Description butcherTableau
}

// Compute advances state from t = from to t = to with a single Runge-Kutta
// step. The state is updated in place. The returned vector is the local error
// estimate which is zero for methods without an embedded lower order method.
func (rk RungeKutta) Compute(from, to float64, state *mat.VecDense, system DifferentiableSystem) *mat.VecDense {
	// State order
	M := state.Len()
	// The precomputed derivative points
	K := make([]mat.Vector, rk.Description.stages)
	// Step length
	h := to - from

	tempV := mat.NewVecDense(M, nil)
	for index := range K {
		// Compute the relevant vector by combining previously computed derivate points
		// according to Butcher Tableau.
		tempV.CopyVec(state)
		if index < len(rk.Description.rungeKuttaMatrix) {
			for index2, a := range rk.Description.rungeKuttaMatrix[index] {
				tempV.AddScaledVec(tempV, h*a, K[index2])
			}
		}
		K[index] = system.Derivative(from+h*rk.Description.nodes[index], tempV)
	}

	// Sum up the different contributions with relevant weights.
	err := mat.NewVecDense(M, nil)
	tempV.CopyVec(state)
	for index, k := range K {
		tempV.AddScaledVec(tempV, h*rk.Description.weights[0][index], k)
		// If the Butcher Tableau allows for adaptive error computation
		if len(rk.Description.weights) == 2 {
			err.AddScaledVec(err, h*(rk.Description.weights[1][index]-rk.Description.weights[0][index]), k)
		}
	}

	state.CopyVec(tempV)
	return err
}

// AdaptiveCompute implements an adaptive version which for a
// given error tolerance tol. Makes recursive steps such that the local error
// never exceeds the error specification.
func (rk RungeKutta) AdaptiveCompute(from, to, tol float64, state *mat.VecDense, system DifferentiableSystem) error {
	var (
		count       int
		tnow, tnext float64
	)
	M := state.Len()
	current := mat.NewVecDense(M, nil)
	trial := mat.NewVecDense(M, nil)
	current.CopyVec(state)

	// Repeat until time to is reached
	for tnow = from; tnow < to; tnow = tnext {
		tnext = to
		// Repeat until target error is reached
		for {
			trial.CopyVec(current)
			e := rk.Compute(tnow, tnext, trial, system)
			if mat.Norm(e, 1) < tol {
				break
			}
			// Half the next integration interval and try again
			tnext = (tnext-tnow)/2. + tnow

			count++
			if count >= maxNumberOfIterations {
				return ErrNoConvergence
			}
		}
		current.CopyVec(trial)
	}
	state.CopyVec(current)
	return nil
}

// NewRK4 function returns a forth order Runge-Kutta object
func NewRK4() *RungeKutta {
	var temp butcherTableau
	temp.stages = 4
	temp.nodes = []float64{0, 1. / 2., 1. / 2., 1}
	temp.weights = [][]float64{{1. / 6., 1. / 3., 1. / 3., 1. / 6.}}
	temp.rungeKuttaMatrix = [][]float64{
		nil,
		{1. / 2.},
		{0, 1. / 2.},
		{0, 0, 1.},
	}
	return &RungeKutta{temp}
}

// NewEulerMethod returns a pointer to a Runge-Kutta that does the Euler method.
func NewEulerMethod() *RungeKutta {
	var temp butcherTableau
	temp.stages = 1
	temp.nodes = []float64{0}
	temp.weights = [][]float64{{1}}
	return &RungeKutta{temp}
}

// NewFehlberg45 implements https://en.wikipedia.org/wiki/Runge%E2%80%93Kutta%E2%80%93Fehlberg_method
func NewFehlberg45() *RungeKutta {
	var temp butcherTableau
	temp.stages = 6
	temp.nodes = []float64{0, 1. / 4., 3. / 8., 12. / 13., 1., 1. / 2.}
	temp.weights = [][]float64{
		{16. / 135., 0, 6656. / 12825., 28561. / 56430., -9. / 50., 2. / 55.},
		{25. / 216., 0, 1408. / 2565., 2197. / 4104., -1. / 5., 0},
	}
	temp.rungeKuttaMatrix = [][]float64{
		nil,
		{1. / 4.},
		{3. / 32., 9. / 32.},
		{1932. / 2197., -7200. / 2197., 7296. / 2197.},
		{439. / 216., -8., 3680. / 513., -845. / 4104.},
		{-8. / 27., 2, -3544. / 2565., 1859. / 4104., -11. / 40.},
	}
	return &RungeKutta{temp}
}

// butcherTableau which describes the approximate solution, see https://en.wikipedia.org/wiki/Runge–Kutta_methods.
type butcherTableau struct {
	stages           int
	weights          [][]float64
	nodes            []float64
	rungeKuttaMatrix [][]float64
}
