package write

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/molsim/internal/state"
)

func frameState(t *testing.T) *state.State {
	t.Helper()
	box, err := state.NewBox(state.Vec3{10, 15, 20})
	if err != nil {
		t.Fatalf("NewBox failed: %v", err)
	}
	s, err := state.New(2, box)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	s.Positions[0] = state.Vec3{1, 2, 3}
	s.Positions[1] = state.Vec3{4.5, 5, 6}
	s.Counter = 7
	return s
}

func TestXYZWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traj.xyz")

	w, err := NewXYZWriter(path, false)
	if err != nil {
		t.Fatalf("NewXYZWriter failed: %v", err)
	}

	s := frameState(t)
	if err := w.Write(s); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading trajectory: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	if lines[0] != "2" {
		t.Errorf("unexpected particle count line: %q", lines[0])
	}
	if lines[1] != `Lattice="10.000000 0.0 0.0 0.0 15.000000 0.0 0.0 0.0 20.000000" Time=7` {
		t.Errorf("unexpected lattice line: %q", lines[1])
	}
	if lines[2] != "A 1.000000 2.000000 3.000000" {
		t.Errorf("unexpected particle line: %q", lines[2])
	}
	if lines[3] != "A 4.500000 5.000000 6.000000" {
		t.Errorf("unexpected particle line: %q", lines[3])
	}
}

func TestXYZWriterAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traj.xyz")
	s := frameState(t)

	for i := 0; i < 2; i++ {
		w, err := NewXYZWriter(path, true)
		if err != nil {
			t.Fatalf("NewXYZWriter failed: %v", err)
		}
		if err := w.Write(s); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
		w.Close()
	}

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 8 {
		t.Errorf("expected 2 frames (8 lines), got %d lines", len(lines))
	}
}

func TestThermoWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thermo.csv")

	w, err := NewThermoWriter(path)
	if err != nil {
		t.Fatalf("NewThermoWriter failed: %v", err)
	}

	s := frameState(t)
	s.SetVelocities([]state.Vec3{{1, 0, 0}, {-1, 0, 0}})
	s.SetEnergies([]float64{1, -2})
	s.SetForces([]state.Vec3{{0, 0, 0}, {0, 0, 0}})

	if err := w.Write(s); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening log: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header plus one sample, got %d rows", len(rows))
	}
	if rows[0][0] != "step" || rows[0][1] != "kT" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "7" {
		t.Errorf("unexpected step column: %q", rows[1][0])
	}
}

func TestThermoWriterMissingData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thermo.csv")

	w, err := NewThermoWriter(path)
	if err != nil {
		t.Fatalf("NewThermoWriter failed: %v", err)
	}
	defer w.Close()

	s := frameState(t)
	if err := w.Write(s); err == nil {
		t.Error("expected error for state without velocities")
	}
}
