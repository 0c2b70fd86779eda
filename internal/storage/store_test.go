package storage

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/san-kum/molsim/internal/config"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	return s
}

func writeRun(t *testing.T, s *Store, summary map[string]float64) *Run {
	t.Helper()
	run, err := s.NewRun("wca")
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}

	thermo := "step,kT,pressure,kinetic,potential\n0,1.5,0.2,112.5,-10\n50,1.45,0.21,108.75,-9\n"
	if err := os.WriteFile(run.ThermoPath(), []byte(thermo), 0644); err != nil {
		t.Fatal(err)
	}

	if err := s.Finish(run, config.Default(), summary); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	return run
}

func TestNewRunPaths(t *testing.T) {
	s := newStore(t)
	run, err := s.NewRun("test")
	if err != nil {
		t.Fatalf("NewRun failed: %v", err)
	}

	if !strings.HasPrefix(run.ID, "test_") {
		t.Errorf("unexpected run id: %s", run.ID)
	}
	if !strings.HasSuffix(run.ThermoPath(), "thermo.csv") {
		t.Errorf("unexpected thermo path: %s", run.ThermoPath())
	}
	if !strings.HasSuffix(run.TrajectoryPath(), "traj.xyz") {
		t.Errorf("unexpected trajectory path: %s", run.TrajectoryPath())
	}
}

func TestFinishAndLoad(t *testing.T) {
	s := newStore(t)
	run := writeRun(t, s, map[string]float64{"kT": 1.45})

	meta, err := s.Load(run.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if meta.ID != run.ID {
		t.Errorf("expected id %s, got %s", run.ID, meta.ID)
	}
	if meta.Config == nil || meta.Config.Particles != config.Default().Particles {
		t.Error("config did not round-trip")
	}
	if meta.Summary["kT"] != 1.45 {
		t.Errorf("unexpected summary: %v", meta.Summary)
	}
}

func TestLoadMissing(t *testing.T) {
	s := newStore(t)
	if _, err := s.Load("nope"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestList(t *testing.T) {
	s := newStore(t)

	runs, err := s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}

	writeRun(t, s, nil)
	writeRun(t, s, nil)

	// unfinished runs are skipped
	if _, err := s.NewRun("partial"); err != nil {
		t.Fatal(err)
	}

	runs, err = s.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 completed runs, got %d", len(runs))
	}
}

func TestListNoDataDir(t *testing.T) {
	s := New("/nonexistent/molsim-data")
	runs, err := s.List()
	if err != nil || runs != nil {
		t.Errorf("expected empty list for missing dir, got %v, %v", runs, err)
	}
}

func TestLoadThermo(t *testing.T) {
	s := newStore(t)
	run := writeRun(t, s, nil)

	header, rows, err := s.LoadThermo(run.ID)
	if err != nil {
		t.Fatalf("LoadThermo failed: %v", err)
	}
	if header[0] != "step" || header[1] != "kT" {
		t.Errorf("unexpected header: %v", header)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(rows))
	}
	if rows[1][1] != 1.45 {
		t.Errorf("unexpected sample: %v", rows[1])
	}
}

func TestExport(t *testing.T) {
	s := newStore(t)
	run := writeRun(t, s, map[string]float64{"pressure": 0.21})

	var buf bytes.Buffer
	if err := s.Export(&buf, run.ID); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if data.ID != run.ID {
		t.Errorf("expected id %s, got %s", run.ID, data.ID)
	}
	if len(data.Samples["kT"]) != 2 || data.Samples["kT"][0] != 1.5 {
		t.Errorf("unexpected kT series: %v", data.Samples["kT"])
	}
}
