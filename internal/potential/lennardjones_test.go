package potential

import (
	"math"
	"testing"

	"github.com/san-kum/molsim/internal/state"
)

const tol = 1e-9

func approx(a, b float64) bool {
	if math.IsInf(a, 1) || math.IsInf(b, 1) {
		return math.IsInf(a, 1) && math.IsInf(b, 1)
	}
	return math.Abs(a-b) < tol
}

func TestNewLennardJones(t *testing.T) {
	lj := NewLennardJones(1.5, 0.5, 2.5)

	if lj.Epsilon != 1.5 || lj.Sigma != 0.5 || lj.Rcut != 2.5 {
		t.Errorf("unexpected parameters: %+v", lj)
	}
	if lj.Shift {
		t.Error("shift should default to false")
	}
	if lj.Cutoff() != 2.5 {
		t.Errorf("expected cutoff 2.5, got %f", lj.Cutoff())
	}
}

func TestNewWCA(t *testing.T) {
	wca := NewWCA(1.0, 1.0)

	if !approx(wca.Rcut, math.Pow(2, 1.0/6.0)) {
		t.Errorf("expected cutoff at the potential minimum, got %f", wca.Rcut)
	}
	if !wca.Shift {
		t.Error("WCA must be shifted")
	}

	// Purely repulsive: zero energy and force at the cutoff.
	u, f := wca.EnergyForce(wca.Rcut * wca.Rcut)
	if !approx(u, 0) {
		t.Errorf("expected zero energy at cutoff, got %g", u)
	}
	if math.Abs(f) > 1e-9 {
		t.Errorf("expected zero force at cutoff, got %g", f)
	}
}

func TestEnergyForce(t *testing.T) {
	lj := NewLennardJones(1.5, 0.5, 2.5)
	rmin := 0.5 * math.Pow(2, 1.0/6.0)

	tests := []struct {
		name       string
		rsq        float64
		wantU      float64
		wantFOverR float64
	}{
		{"at sigma", 0.5 * 0.5, 0.0, 24 * 1.5 / (0.5 * 0.5)},
		{"at minimum", rmin * rmin, -1.5, 0.0},
		{"beyond cutoff", 3.0 * 3.0, 0.0, 0.0},
		{"zero distance", 0.0, math.Inf(1), math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, f := lj.EnergyForce(tt.rsq)
			if !approx(u, tt.wantU) {
				t.Errorf("expected u %g, got %g", tt.wantU, u)
			}
			if !approx(f, tt.wantFOverR) {
				t.Errorf("expected f/r %g, got %g", tt.wantFOverR, f)
			}
		})
	}
}

func TestEnergyShift(t *testing.T) {
	rmin := 0.5 * math.Pow(2, 1.0/6.0)
	lj := NewLennardJones(1.5, 0.5, rmin)

	// Unshifted: the well depth survives at the cutoff.
	u, _ := lj.EnergyForce(rmin * rmin)
	if !approx(u, -1.5) {
		t.Errorf("expected -epsilon at minimum, got %g", u)
	}
	u, _ = lj.EnergyForce(1.5 * 1.5)
	if !approx(u, 0) {
		t.Errorf("expected zero beyond cutoff, got %g", u)
	}

	// Shifted: zero at the cutoff too.
	lj.Shift = true
	u, _ = lj.EnergyForce(rmin * rmin)
	if !approx(u, 0) {
		t.Errorf("expected zero at shifted cutoff, got %g", u)
	}
}

func TestCompute(t *testing.T) {
	lj := NewLennardJones(1.5, 0.5, 2.5)

	box, _ := state.NewCube(10)
	s, _ := state.New(3, box)
	s.Positions[0] = state.Vec3{0, 0, 0}
	s.Positions[1] = state.Vec3{0, 0.5, 0}
	s.Positions[2] = state.Vec3{0, 0, 9.5}

	u, f, err := Compute(lj, s)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	// Pairs at r = sigma contribute nothing; only the (1,2) pair across
	// the boundary at rsq = 0.5 carries energy.
	var usum float64
	for _, ui := range u {
		usum += ui
	}
	want := 4 * 1.5 * (math.Pow(2, -6) - math.Pow(2, -3))
	if !approx(usum, want) {
		t.Errorf("expected total energy %g, got %g", want, usum)
	}

	// Newton's third law: forces sum to zero.
	var fsum state.Vec3
	for _, fi := range f {
		fsum = fsum.Add(fi)
	}
	if fsum.Norm() > tol {
		t.Errorf("forces do not balance: %v", fsum)
	}
}

func TestComputeMinimumImage(t *testing.T) {
	lj := NewLennardJones(1.0, 1.0, 3.0)

	box, _ := state.NewCube(10)
	s, _ := state.New(2, box)
	s.Positions[0] = state.Vec3{0.5, 5, 5}
	s.Positions[1] = state.Vec3{9, 5, 5}

	u, f, err := Compute(lj, s)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	// Separation across the boundary is 1.5, not 8.5 (which would fall
	// outside the cutoff and contribute nothing).
	wantU, _ := lj.EnergyForce(1.5 * 1.5)
	if wantU == 0 {
		t.Fatal("test potential must be nonzero at the pair distance")
	}
	if !approx(u[0]+u[1], wantU) {
		t.Errorf("expected pair energy %g, got %g", wantU, u[0]+u[1])
	}

	// Attractive at this distance: particle 0 is pulled backward across
	// the boundary, toward negative x.
	if f[0][0] >= 0 {
		t.Errorf("expected attraction across the boundary, got force %v", f[0])
	}
}
