// Package storage persists simulation runs to a data directory.
//
// Each run gets its own directory holding metadata.json, the thermo.csv
// sample log, and the traj.xyz trajectory.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/molsim/internal/config"
)

const (
	metadataFile   = "metadata.json"
	thermoFile     = "thermo.csv"
	trajectoryFile = "traj.xyz"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes one stored run.
type RunMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Config    *config.Config     `json:"config"`
	Summary   map[string]float64 `json:"summary,omitempty"`
}

// Run is an open run directory that output files are written into.
type Run struct {
	ID  string
	dir string
}

// ThermoPath returns the path of the run's thermodynamic log.
func (r *Run) ThermoPath() string { return filepath.Join(r.dir, thermoFile) }

// TrajectoryPath returns the path of the run's trajectory file.
func (r *Run) TrajectoryPath() string { return filepath.Join(r.dir, trajectoryFile) }

// NewRun creates a fresh run directory named after the prefix and the
// current time.
func (s *Store) NewRun(prefix string) (*Run, error) {
	if err := s.Init(); err != nil {
		return nil, err
	}

	id := fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
	dir := filepath.Join(s.baseDir, id)
	if err := os.Mkdir(dir, 0755); err != nil {
		return nil, err
	}
	return &Run{ID: id, dir: dir}, nil
}

// Finish writes the run metadata, marking the run complete. Runs without
// metadata are ignored by List.
func (s *Store) Finish(r *Run, cfg *config.Config, summary map[string]float64) error {
	meta := RunMetadata{
		ID:        r.ID,
		Timestamp: time.Now(),
		Config:    cfg,
		Summary:   summary,
	}

	f, err := os.Create(filepath.Join(r.dir, metadataFile))
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

// Load reads the metadata of a stored run.
func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	return &meta, nil
}

// List returns the metadata of all completed runs, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.Load(e.Name())
		if err != nil {
			continue // incomplete or foreign directory
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

// LoadThermo reads the thermodynamic log of a run, returning the column
// names and the samples as rows of floats.
func (s *Store) LoadThermo(runID string) ([]string, [][]float64, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, thermoFile))
	if err != nil {
		return nil, nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("storage: run %s: %w", runID, err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("storage: run %s: empty thermo log", runID)
	}

	header := records[0]
	rows := make([][]float64, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]float64, len(rec))
		for i, field := range rec {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("storage: run %s: bad value %q: %w", runID, field, err)
			}
			row[i] = v
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}
