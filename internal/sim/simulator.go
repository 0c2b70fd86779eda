package sim

import (
	"context"

	"github.com/san-kum/molsim/internal/state"
)

// Simulator drives one molecular dynamics run. It is not safe for
// concurrent use; for replicated runs see [Ensemble].
type Simulator struct {
	state      *state.State
	integrator Integrator
	thermostat Thermostat
	observers  []Observer
}

// New creates a simulator around a state and an integrator.
func New(s *state.State, integ Integrator) *Simulator {
	return &Simulator{
		state:      s,
		integrator: integ,
	}
}

// State returns the simulated state.
func (s *Simulator) State() *state.State { return s.state }

// SetThermostat attaches a thermostat applied after every step.
func (s *Simulator) SetThermostat(t Thermostat) { s.thermostat = t }

// AddObserver registers an observer notified at every sampling interval.
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run advances the state by cfg.Steps timesteps. Observers fire at the top
// of each sampled step and once more on the final state when it falls on
// the sampling interval. The run stops early when the context is canceled
// or the state turns non-finite.
func (s *Simulator) Run(ctx context.Context, cfg RunConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}

	if p, ok := s.integrator.(Primer); ok {
		if err := p.Prime(s.state); err != nil {
			return err
		}
	}

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := s.sample(cfg); err != nil {
			return err
		}

		if err := s.integrator.Advance(s.state); err != nil {
			return &StepError{Step: s.state.Counter, Wrapped: err}
		}

		if !s.state.IsValid() {
			return &StepError{Step: s.state.Counter, Wrapped: ErrUnstable}
		}

		if s.thermostat != nil {
			if err := s.thermostat.Apply(s.state); err != nil {
				return &StepError{Step: s.state.Counter, Wrapped: err}
			}
		}
	}

	return s.sample(cfg)
}

func (s *Simulator) sample(cfg RunConfig) error {
	if cfg.SampleEvery == 0 || s.state.Counter%cfg.SampleEvery != 0 {
		return nil
	}
	for _, o := range s.observers {
		if err := o.OnSample(s.state); err != nil {
			return &StepError{Step: s.state.Counter, Wrapped: err}
		}
	}
	return nil
}
