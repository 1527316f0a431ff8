// Package signal holds scalar input signals u(t) used to drive the simulations
// of a state space model.
package signal

import (
	"fmt"
	"math"
)

// Signal holds the signal interface
type Signal interface {
	Value(t float64) float64
}

// Func adapts an ordinary function to the Signal interface.
type Func func(float64) float64

// Value returns f(t)
func (f Func) Value(t float64) float64 {
	return f(t)
}

// Step is a step of height Amplitude at time Delay.
type Step struct {
	Amplitude float64
	Delay     float64
}

func (s Step) Value(t float64) float64 {
	if t < s.Delay {
		return 0
	}
	return s.Amplitude
}

// Ramp is Slope * t for t >= 0.
type Ramp struct {
	Slope float64
}

func (r Ramp) Value(t float64) float64 {
	if t < 0 {
		return 0
	}
	return r.Slope * t
}

// Sinusoid is Amplitude sin(2 pi Frequency t + Phase)
type Sinusoid struct {
	Amplitude float64
	Frequency float64
	Phase     float64
}

func (s Sinusoid) Value(t float64) float64 {
	return s.Amplitude * math.Sin(2*math.Pi*s.Frequency*t+s.Phase)
}

// Impulse is the discrete unit sample scaled by Amplitude, i.e. it is
// non-zero on the interval [0, SampleTime) only.
type Impulse struct {
	Amplitude  float64
	SampleTime float64
}

func (i Impulse) Value(t float64) float64 {
	if t < 0 || t >= i.SampleTime {
		return 0
	}
	return i.Amplitude
}

// Parse returns the signal named kind. Supported kinds are "step", "ramp",
// "sine" and "impulse". The frequency is the sine frequency for "sine", the
// inverse sample period for "impulse" and ignored otherwise. For "ramp" the
// amplitude is the slope.
func Parse(kind string, amplitude, frequency float64) (Signal, error) {
	switch kind {
	case "step":
		return Step{Amplitude: amplitude}, nil
	case "ramp":
		return Ramp{Slope: amplitude}, nil
	case "sine":
		return Sinusoid{Amplitude: amplitude, Frequency: frequency}, nil
	case "impulse":
		if !(frequency > 0) {
			return nil, fmt.Errorf("signal: impulse needs a positive sample frequency, got %v", frequency)
		}
		return Impulse{Amplitude: amplitude, SampleTime: 1. / frequency}, nil
	}
	return nil, fmt.Errorf("signal: unknown signal %q", kind)
}
