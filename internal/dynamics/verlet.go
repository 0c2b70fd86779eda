// Package dynamics evolves a simulation state through time.
package dynamics

import (
	"errors"

	"github.com/san-kum/molsim/internal/potential"
	"github.com/san-kum/molsim/internal/state"
)

// ErrTimestep indicates a negative integration timestep.
var ErrTimestep = errors.New("dynamics: timestep must be nonnegative")

// VelocityVerlet is the classical NVE molecular dynamics stepper:
//
//	v(t+dt/2) = v(t) + dt/(2m) * f(t)
//	r(t+dt)   = r(t) + dt * v(t+dt/2)
//	v(t+dt)   = v(t+dt/2) + dt/(2m) * f(t+dt)
//
// Positions are wrapped back into the box after the drift, and the
// recomputed energies and forces are stored on the state.
type VelocityVerlet struct {
	dt  float64
	pot potential.Field
}

// NewVelocityVerlet creates a velocity Verlet integrator with timestep dt.
func NewVelocityVerlet(dt float64, pot potential.Field) (*VelocityVerlet, error) {
	vv := &VelocityVerlet{pot: pot}
	if err := vv.SetTimestep(dt); err != nil {
		return nil, err
	}
	return vv, nil
}

// Timestep returns the integration timestep.
func (vv *VelocityVerlet) Timestep() float64 { return vv.dt }

// SetTimestep sets the integration timestep.
func (vv *VelocityVerlet) SetTimestep(dt float64) error {
	if dt < 0 {
		return ErrTimestep
	}
	vv.dt = dt
	return nil
}

// Potential returns the interaction potential.
func (vv *VelocityVerlet) Potential() potential.Field { return vv.pot }

// Prime prepares a state for integration: velocities default to zero when
// unset, and forces are computed when missing so the first half-kick has
// something to work with. Running observers before the first step also
// relies on the energies and forces being present.
func (vv *VelocityVerlet) Prime(s *state.State) error {
	if s.Velocities == nil {
		s.Velocities = make([]state.Vec3, s.N())
	}
	if s.Forces == nil {
		u, f, err := vv.pot.Compute(s)
		if err != nil {
			return err
		}
		s.Energies = u
		s.Forces = f
	}
	return nil
}

// Advance takes one velocity Verlet step, advancing the state counter by
// one.
func (vv *VelocityVerlet) Advance(s *state.State) error {
	if err := vv.Prime(s); err != nil {
		return err
	}

	halfKick := vv.dt / (2 * s.Mass)

	for i := range s.Velocities {
		s.Velocities[i] = s.Velocities[i].Add(s.Forces[i].Scale(halfKick))
		s.Positions[i] = s.Positions[i].Add(s.Velocities[i].Scale(vv.dt))
	}
	s.Box.WrapAll(s.Positions, s.Images)

	u, f, err := vv.pot.Compute(s)
	if err != nil {
		return err
	}
	s.Energies = u
	s.Forces = f

	for i := range s.Velocities {
		s.Velocities[i] = s.Velocities[i].Add(s.Forces[i].Scale(halfKick))
	}

	s.Counter++
	return nil
}
