package sim

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/molsim/internal/state"
)

func TestRandomInsertion(t *testing.T) {
	s := testState(t, 50)
	rng := rand.New(rand.NewSource(42))

	if err := RandomInsertion(s, rng, 1.0, 100); err != nil {
		t.Fatalf("RandomInsertion failed: %v", err)
	}

	// all inside the box
	for i, r := range s.Positions {
		for k := 0; k < 3; k++ {
			if r[k] < 0 || r[k] >= s.Box.L[k] {
				t.Fatalf("particle %d outside box: %v", i, r)
			}
		}
	}

	// no overlaps by minimum image
	for i := 0; i < s.N()-1; i++ {
		for j := i + 1; j < s.N(); j++ {
			dr := s.Box.MinimumImage(s.Positions[j].Sub(s.Positions[i]))
			if dr.Norm() < 1.0 {
				t.Fatalf("particles %d and %d overlap: r=%f", i, j, dr.Norm())
			}
		}
	}
}

func TestRandomInsertionTooDense(t *testing.T) {
	// 100 particles with diameter 5 can never fit in a 10-cube.
	s := testState(t, 100)
	rng := rand.New(rand.NewSource(42))

	err := RandomInsertion(s, rng, 5.0, 10)
	if !errors.Is(err, ErrPlacement) {
		t.Errorf("expected ErrPlacement, got %v", err)
	}
}

func TestLatticePositions(t *testing.T) {
	s := testState(t, 27)
	LatticePositions(s)

	for i := 0; i < s.N()-1; i++ {
		for k := 0; k < 3; k++ {
			if s.Positions[i][k] < 0 || s.Positions[i][k] >= s.Box.L[k] {
				t.Fatalf("site %d outside box: %v", i, s.Positions[i])
			}
		}
		for j := i + 1; j < s.N(); j++ {
			dr := s.Positions[j].Sub(s.Positions[i])
			if dr.Norm() < 1e-9 {
				t.Fatalf("sites %d and %d coincide", i, j)
			}
		}
	}
}

func TestMaxwellBoltzmann(t *testing.T) {
	s := testState(t, 1000)
	rng := rand.New(rand.NewSource(7))

	kT := 1.5
	MaxwellBoltzmann(s, rng, kT)

	// center of mass at rest
	var mean state.Vec3
	for _, v := range s.Velocities {
		mean = mean.Add(v)
	}
	if mean.Norm()/float64(s.N()) > 1e-12 {
		t.Errorf("center of mass drifts: %v", mean)
	}

	// equipartition within sampling noise
	ke := 0.0
	for _, v := range s.Velocities {
		ke += 0.5 * s.Mass * v.NormSq()
	}
	measured := 2 * ke / (3 * float64(s.N()))
	if math.Abs(measured-kT)/kT > 0.1 {
		t.Errorf("expected kT near %f, got %f", kT, measured)
	}
}
