package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignals(t *testing.T) {
	tests := []struct {
		name   string
		signal Signal
		t      float64
		want   float64
	}{
		{"step before", Step{Amplitude: 2, Delay: 1}, 0.5, 0},
		{"step after", Step{Amplitude: 2, Delay: 1}, 1, 2},
		{"ramp", Ramp{Slope: 3}, 2, 6},
		{"ramp negative time", Ramp{Slope: 3}, -2, 0},
		{"sine quarter period", Sinusoid{Amplitude: 1.5, Frequency: 2}, 0.125, 1.5},
		{"impulse at zero", Impulse{Amplitude: 4, SampleTime: 0.1}, 0, 4},
		{"impulse next sample", Impulse{Amplitude: 4, SampleTime: 0.1}, 0.1, 0},
		{"func", Func(func(t float64) float64 { return t * t }), 3, 9},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.signal.Value(tc.t), 1e-12)
		})
	}
}

func TestParse(t *testing.T) {
	s, err := Parse("sine", 2, 50)
	require.NoError(t, err)
	assert.Equal(t, Sinusoid{Amplitude: 2, Frequency: 50}, s)

	s, err = Parse("impulse", 1, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, s.(Impulse).SampleTime, 1e-15)

	_, err = Parse("impulse", 1, 0)
	assert.Error(t, err)
	_, err = Parse("chirp", 1, 1)
	assert.Error(t, err)

	s, err = Parse("step", 1, math.NaN())
	require.NoError(t, err)
	assert.Equal(t, 1., s.Value(0))
}
