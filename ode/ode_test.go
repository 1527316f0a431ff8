package ode

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// linearSystem is x'(t) = A x(t)
type linearSystem struct {
	A mat.Matrix
}

func (sys linearSystem) Derivative(t float64, state mat.Vector) mat.Vector {
	var res mat.VecDense
	res.MulVec(sys.A, state)
	return &res
}

func TestRk4(t *testing.T) {
	test := NewRK4()
	if test.Description.stages != 4 {
		t.Errorf("Not four stages. Rk4 should have four stages. Instead has %v", test.Description.stages)
	}
}

func TestEuler(t *testing.T) {
	test := NewEulerMethod()
	if test.Description.stages != 1 {
		t.Error("Wrong number of stages.")
	}
}

func TestComputeExponentialDecay(t *testing.T) {
	sys := linearSystem{mat.NewDense(1, 1, []float64{-1})}
	tests := []struct {
		name string
		rk   *RungeKutta
		tol  float64
	}{
		{"euler", NewEulerMethod(), 1e-2},
		{"rk4", NewRK4(), 1e-9},
		{"fehlberg45", NewFehlberg45(), 1e-9},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			state := mat.NewVecDense(1, []float64{1})
			const N = 100
			for i := 0; i < N; i++ {
				tc.rk.Compute(float64(i)/N, float64(i+1)/N, state, sys)
			}
			assert.InDelta(t, math.Exp(-1), state.AtVec(0), tc.tol)
		})
	}
}

func TestComputeMatchesMatrixExponential(t *testing.T) {
	A := mat.NewDense(2, 2, []float64{0, 1, -4, -0.5})
	sys := linearSystem{A}
	x0 := mat.NewVecDense(2, []float64{1, -1})
	// Compute works in place so keep x0 apart from the integrated state
	state := mat.VecDenseCopyOf(x0)
	const N = 1000
	for i := 0; i < N; i++ {
		NewRK4().Compute(float64(i)/N, float64(i+1)/N, state, sys)
	}

	var expA mat.Dense
	expA.Exp(A)
	var want mat.VecDense
	want.MulVec(&expA, x0)
	assert.True(t, mat.EqualApprox(&want, state, 1e-10), "got\n%v\nwant\n%v", mat.Formatted(state), mat.Formatted(&want))
}

func TestErrorEstimate(t *testing.T) {
	sys := linearSystem{mat.NewDense(1, 1, []float64{-1})}
	state := mat.NewVecDense(1, []float64{1})
	e := NewRK4().Compute(0, 1, state, sys)
	assert.Equal(t, 0., e.AtVec(0))

	state.SetVec(0, 1)
	e = NewFehlberg45().Compute(0, 1, state, sys)
	assert.NotEqual(t, 0., e.AtVec(0))
}

func TestAdaptiveCompute(t *testing.T) {
	sys := linearSystem{mat.NewDense(1, 1, []float64{-3})}
	state := mat.NewVecDense(1, []float64{2})
	require.NoError(t, NewFehlberg45().AdaptiveCompute(0, 2, 1e-10, state, sys))
	assert.InDelta(t, 2*math.Exp(-6), state.AtVec(0), 1e-8)
}

func TestAdaptiveComputeNoConvergence(t *testing.T) {
	sys := linearSystem{mat.NewDense(1, 1, []float64{-1})}
	state := mat.NewVecDense(1, []float64{1})
	err := NewFehlberg45().AdaptiveCompute(0, 1, 0, state, sys)
	assert.ErrorIs(t, err, ErrNoConvergence)
	// The state is left untouched on failure
	assert.Equal(t, 1., state.AtVec(0))
}
