package write

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/san-kum/molsim/internal/analyze"
	"github.com/san-kum/molsim/internal/state"
)

// ThermoColumns is the header of a thermodynamic log.
var ThermoColumns = []string{"step", "kT", "pressure", "kinetic", "potential"}

// ThermoWriter logs thermodynamic properties of a state to a CSV file, one
// row per sample.
type ThermoWriter struct {
	f *os.File
	w *csv.Writer
}

// NewThermoWriter creates the log file and writes the header row.
func NewThermoWriter(path string) (*ThermoWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("write: opening thermo log: %w", err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(ThermoColumns); err != nil {
		f.Close()
		return nil, err
	}
	return &ThermoWriter{f: f, w: w}, nil
}

// Write samples the state and flushes one row. The state must carry
// velocities, energies, and forces.
func (t *ThermoWriter) Write(s *state.State) error {
	kt, err := analyze.Temperature(s)
	if err != nil {
		return err
	}
	p, err := analyze.Pressure(s)
	if err != nil {
		return err
	}
	ke, err := analyze.KineticEnergy(s)
	if err != nil {
		return err
	}
	pe, err := analyze.PotentialEnergy(s)
	if err != nil {
		return err
	}

	row := []string{
		strconv.Itoa(s.Counter),
		strconv.FormatFloat(kt, 'f', 6, 64),
		strconv.FormatFloat(p, 'f', 6, 64),
		strconv.FormatFloat(ke, 'f', 6, 64),
		strconv.FormatFloat(pe, 'f', 6, 64),
	}
	if err := t.w.Write(row); err != nil {
		return err
	}
	t.w.Flush()
	return t.w.Error()
}

// Close flushes and closes the log.
func (t *ThermoWriter) Close() error {
	t.w.Flush()
	if err := t.w.Error(); err != nil {
		t.f.Close()
		return err
	}
	return t.f.Close()
}
