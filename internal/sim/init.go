package sim

import (
	"errors"
	"math"
	"math/rand"

	"github.com/san-kum/molsim/internal/state"
)

// ErrPlacement indicates random insertion could not place every particle.
var ErrPlacement = errors.New("sim: unable to place all particles")

// RandomInsertion fills the positions with uniform random points, rejecting
// any candidate closer than minDist (by minimum image) to an already placed
// particle. Each particle gets maxAttempts tries before the insertion is
// abandoned.
func RandomInsertion(s *state.State, rng *rand.Rand, minDist float64, maxAttempts int) error {
	minSq := minDist * minDist

	for i := 0; i < s.N(); i++ {
		placed := false

		for attempt := 0; attempt < maxAttempts && !placed; attempt++ {
			var ri state.Vec3
			for k := 0; k < 3; k++ {
				ri[k] = s.Box.L[k] * rng.Float64()
			}

			placed = true
			for j := 0; j < i; j++ {
				dr := s.Box.MinimumImage(s.Positions[j].Sub(ri))
				if dr.NormSq() < minSq {
					placed = false
					break
				}
			}

			if placed {
				s.Positions[i] = ri
			}
		}

		if !placed {
			return ErrPlacement
		}
	}

	return nil
}

// LatticePositions arranges the particles on a simple cubic lattice that
// fills the box. Deterministic, and overlap-free at any density where the
// particles fit at all.
func LatticePositions(s *state.State) {
	n := s.N()
	if n == 0 {
		return
	}

	perSide := int(math.Ceil(math.Cbrt(float64(n))))
	i := 0
	for ix := 0; ix < perSide && i < n; ix++ {
		for iy := 0; iy < perSide && i < n; iy++ {
			for iz := 0; iz < perSide && i < n; iz++ {
				s.Positions[i] = state.Vec3{
					(float64(ix) + 0.5) * s.Box.L[0] / float64(perSide),
					(float64(iy) + 0.5) * s.Box.L[1] / float64(perSide),
					(float64(iz) + 0.5) * s.Box.L[2] / float64(perSide),
				}
				i++
			}
		}
	}
}

// MaxwellBoltzmann draws velocities from the Maxwell-Boltzmann
// distribution at thermal energy kT and removes the center-of-mass drift.
func MaxwellBoltzmann(s *state.State, rng *rand.Rand, kT float64) {
	n := s.N()
	v := make([]state.Vec3, n)
	if n == 0 {
		s.Velocities = v
		return
	}

	sigma := math.Sqrt(kT / s.Mass)
	var mean state.Vec3
	for i := range v {
		for k := 0; k < 3; k++ {
			v[i][k] = sigma * rng.NormFloat64()
		}
		mean = mean.Add(v[i])
	}

	mean = mean.Scale(1 / float64(n))
	for i := range v {
		v[i] = v[i].Sub(mean)
	}

	s.Velocities = v
}
