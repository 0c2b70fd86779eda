package potential

import (
	"errors"
	"math"

	"github.com/san-kum/molsim/internal/state"
)

// ErrNoBox indicates a pair computation on a state without a box.
var ErrNoBox = errors.New("potential: state has no box")

// Field computes per-particle energies and forces for a whole state.
// Integrators consume this interface rather than a concrete potential.
type Field interface {
	Compute(s *state.State) ([]float64, []state.Vec3, error)
}

// Pair is a pairwise interaction evaluated on the squared distance.
type Pair interface {
	// EnergyForce returns u(r) and f(r)/r for a squared pair distance.
	EnergyForce(rsq float64) (u, fOverR float64)

	// Cutoff returns the truncation distance of the interaction.
	Cutoff() float64
}

// LennardJones is the prototypical pair potential: a steep repulsive core
// with an attractive dispersion tail,
//
//	u(r) = 4*eps*[(sig/r)^12 - (sig/r)^6]   for r <= rcut
//
// truncated to zero beyond Rcut. When Shift is set, u(Rcut) is subtracted
// inside the cutoff so the energy goes continuously to zero. Truncating and
// shifting at the minimum rcut = 2^(1/6)*sigma gives the purely repulsive
// Weeks-Chandler-Andersen form used for nearly hard spheres.
type LennardJones struct {
	Epsilon float64
	Sigma   float64
	Rcut    float64
	Shift   bool
}

// NewLennardJones creates a truncated, unshifted Lennard-Jones potential.
func NewLennardJones(epsilon, sigma, rcut float64) *LennardJones {
	return &LennardJones{Epsilon: epsilon, Sigma: sigma, Rcut: rcut}
}

// NewWCA creates the Weeks-Chandler-Andersen potential: Lennard-Jones
// truncated and shifted at its minimum.
func NewWCA(epsilon, sigma float64) *LennardJones {
	return &LennardJones{
		Epsilon: epsilon,
		Sigma:   sigma,
		Rcut:    math.Pow(2, 1.0/6.0) * sigma,
		Shift:   true,
	}
}

func (lj *LennardJones) Cutoff() float64 { return lj.Rcut }

// Compute evaluates the potential over all unique pairs of the state.
func (lj *LennardJones) Compute(s *state.State) ([]float64, []state.Vec3, error) {
	return Compute(lj, s)
}

// EnergyForce evaluates u(r) and f(r)/r at a squared pair distance.
// Working on r^2 avoids the square root entirely. A zero distance yields
// +Inf for both values.
func (lj *LennardJones) EnergyForce(rsq float64) (float64, float64) {
	if rsq > lj.Rcut*lj.Rcut {
		return 0, 0
	}
	if rsq == 0 {
		return math.Inf(1), math.Inf(1)
	}

	s2 := lj.Sigma * lj.Sigma / rsq
	s6 := s2 * s2 * s2

	u := 4 * lj.Epsilon * (s6*s6 - s6)
	fOverR := 24 * lj.Epsilon * (2*s6*s6 - s6) / rsq

	if lj.Shift {
		c2 := lj.Sigma * lj.Sigma / (lj.Rcut * lj.Rcut)
		c6 := c2 * c2 * c2
		u -= 4 * lj.Epsilon * (c6*c6 - c6)
	}

	return u, fOverR
}

// Compute evaluates a pair potential over all unique pairs in the state
// using minimum-image separations, returning the potential energy assigned
// to each particle (half per pair member) and the force on each particle.
func Compute(p Pair, s *state.State) ([]float64, []state.Vec3, error) {
	if s.Box == nil {
		return nil, nil, ErrNoBox
	}

	n := s.N()
	energies := make([]float64, n)
	forces := make([]state.Vec3, n)
	rcutsq := p.Cutoff() * p.Cutoff()

	for i := 0; i < n-1; i++ {
		ri := s.Positions[i]

		for j := i + 1; j < n; j++ {
			dr := s.Box.MinimumImage(s.Positions[j].Sub(ri))
			rsq := dr.NormSq()
			if rsq > rcutsq {
				continue
			}

			u, fOverR := p.EnergyForce(rsq)

			energies[i] += 0.5 * u
			energies[j] += 0.5 * u

			// dr points from i to j, so j feels +F and i feels -F.
			f := dr.Scale(fOverR)
			forces[j] = forces[j].Add(f)
			forces[i] = forces[i].Sub(f)
		}
	}

	return energies, forces, nil
}
