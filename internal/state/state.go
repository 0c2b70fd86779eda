package state

// State holds the particle data of a simulation.
//
// The data are laid out as a structure of arrays: each per-particle
// property lives in its own slice. All N particles share one Box and one
// Mass. The Counter tracks the logical state of the system; in molecular
// dynamics it is the integration timestep.
//
// Positions and Images are always allocated. Velocities, Energies, and
// Forces start nil and are attached with their setters once known.
type State struct {
	n       int
	Box     *Box
	Mass    float64
	Counter int

	Positions  []Vec3
	Images     [][3]int
	Velocities []Vec3
	Energies   []float64
	Forces     []Vec3
}

// New creates a state for n particles in box with unit mass and a zeroed
// counter.
func New(n int, box *Box) (*State, error) {
	if n < 0 {
		return nil, ErrParticleCount
	}
	if box == nil {
		return nil, ErrNoBox
	}
	return &State{
		n:         n,
		Box:       box,
		Mass:      1.0,
		Positions: make([]Vec3, n),
		Images:    make([][3]int, n),
	}, nil
}

// N returns the number of particles. It is fixed at construction.
func (s *State) N() int { return s.n }

// SetMass sets the shared particle mass.
func (s *State) SetMass(m float64) error {
	if m <= 0 {
		return ErrMass
	}
	s.Mass = m
	return nil
}

// SetVelocities attaches per-particle velocities. Pass nil to clear.
func (s *State) SetVelocities(v []Vec3) error {
	if v != nil && len(v) != s.n {
		return ErrDimensionMismatch
	}
	s.Velocities = v
	return nil
}

// SetEnergies attaches per-particle potential energies. Pass nil to clear.
func (s *State) SetEnergies(u []float64) error {
	if u != nil && len(u) != s.n {
		return ErrDimensionMismatch
	}
	s.Energies = u
	return nil
}

// SetForces attaches per-particle forces. Pass nil to clear.
func (s *State) SetForces(f []Vec3) error {
	if f != nil && len(f) != s.n {
		return ErrDimensionMismatch
	}
	s.Forces = f
	return nil
}

// IsValid reports whether all positions and velocities are finite. A false
// result means the integration has gone unstable.
func (s *State) IsValid() bool {
	for _, r := range s.Positions {
		if !r.IsFinite() {
			return false
		}
	}
	for _, v := range s.Velocities {
		if !v.IsFinite() {
			return false
		}
	}
	return true
}

// Unwrapped returns the unwrapped particle coordinates r + L*image.
func (s *State) Unwrapped() []Vec3 {
	out := make([]Vec3, s.n)
	for i, r := range s.Positions {
		out[i] = s.Box.Unwrap(r, s.Images[i])
	}
	return out
}
