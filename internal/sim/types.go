// Package sim orchestrates molecular dynamics runs: it drives an
// integrator over a state, applies an optional thermostat, and fans each
// sampled state out to observers.
package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/molsim/internal/state"
)

// Integrator advances a state by one timestep.
type Integrator interface {
	Advance(s *state.State) error
}

// Primer is implemented by integrators that need to initialize a state
// (velocities, forces) before the first step. Observers sampling the
// initial state rely on this having run.
type Primer interface {
	Prime(s *state.State) error
}

// Thermostat adjusts velocities after a step to hold a target temperature.
type Thermostat interface {
	Apply(s *state.State) error
}

// Observer receives the state at every sampling interval.
type Observer interface {
	OnSample(s *state.State) error
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(s *state.State) error

func (f ObserverFunc) OnSample(s *state.State) error { return f(s) }

// RunConfig controls a simulation run.
type RunConfig struct {
	// Steps is the number of integration steps to take.
	Steps int

	// SampleEvery sets the observer interval in steps. Zero disables
	// sampling.
	SampleEvery int
}

func (c RunConfig) validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("sim: steps must be positive, got %d", c.Steps)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("sim: sample interval must be nonnegative, got %d", c.SampleEvery)
	}
	return nil
}

// ErrUnstable indicates the integration produced a non-finite state.
var ErrUnstable = errors.New("sim: simulation unstable (NaN or Inf in state)")

// StepError wraps an error with the step counter at which it occurred.
type StepError struct {
	Step    int
	Wrapped error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d: %v", e.Step, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
