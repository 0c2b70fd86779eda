// Package analyze computes observables from a simulation state.
package analyze

import (
	"errors"

	"github.com/san-kum/molsim/internal/state"
)

// Domain errors for analysis operations.
var (
	// ErrMissingVelocities indicates a kinetic property was requested
	// from a state without velocities.
	ErrMissingVelocities = errors.New("analyze: state has no velocities")

	// ErrMissingEnergies indicates the per-particle energies are not set.
	ErrMissingEnergies = errors.New("analyze: state has no energies")

	// ErrMissingForces indicates the per-particle forces are not set.
	ErrMissingForces = errors.New("analyze: state has no forces")

	// ErrNoParticles indicates a property undefined for an empty state.
	ErrNoParticles = errors.New("analyze: state has no particles")

	// ErrReferenceMismatch indicates a reference frame whose length does
	// not match the state.
	ErrReferenceMismatch = errors.New("analyze: reference length does not match particle count")
)

// KineticEnergy returns the total kinetic energy sum(m*v.v/2).
func KineticEnergy(s *state.State) (float64, error) {
	if s.Velocities == nil {
		return 0, ErrMissingVelocities
	}
	ke := 0.0
	for _, v := range s.Velocities {
		ke += 0.5 * s.Mass * v.NormSq()
	}
	return ke, nil
}

// PotentialEnergy returns the total potential energy, the sum of the
// per-particle contributions assigned by the potential.
func PotentialEnergy(s *state.State) (float64, error) {
	if s.Energies == nil {
		return 0, ErrMissingEnergies
	}
	u := 0.0
	for _, ui := range s.Energies {
		u += ui
	}
	return u, nil
}

// Temperature returns the thermal energy kT from the equipartition
// theorem, kT = 2*Ek/(3*N). All 3N degrees of freedom are counted; no
// center-of-mass constraint is applied.
func Temperature(s *state.State) (float64, error) {
	if s.N() == 0 {
		return 0, ErrNoParticles
	}
	ke, err := KineticEnergy(s)
	if err != nil {
		return 0, err
	}
	return 2 * ke / (3 * float64(s.N())), nil
}

// Pressure returns the pressure from the virial theorem,
//
//	P = N*kT/V + sum(r.F)/(3*V)
func Pressure(s *state.State) (float64, error) {
	if s.Forces == nil {
		return 0, ErrMissingForces
	}
	kt, err := Temperature(s)
	if err != nil {
		return 0, err
	}

	virial := 0.0
	for i, r := range s.Positions {
		virial += r.Dot(s.Forces[i])
	}

	v := s.Box.Volume()
	return float64(s.N())*kt/v + virial/(3*v), nil
}

// MeanSquaredDisplacement returns the mean squared displacement of the
// unwrapped particle coordinates from a reference frame. The image
// bookkeeping done by Box.Wrap exists exactly to make this reconstruction
// possible.
func MeanSquaredDisplacement(s *state.State, ref []state.Vec3) (float64, error) {
	if s.N() == 0 {
		return 0, ErrNoParticles
	}
	if len(ref) != s.N() {
		return 0, ErrReferenceMismatch
	}

	msd := 0.0
	for i, r := range s.Unwrapped() {
		msd += r.Sub(ref[i]).NormSq()
	}
	return msd / float64(s.N()), nil
}
