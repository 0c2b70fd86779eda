package storage

import (
	"encoding/json"
	"io"
	"time"

	"github.com/san-kum/molsim/internal/config"
)

// ExportData is the JSON shape of an exported run: metadata plus the
// thermodynamic samples keyed by column.
type ExportData struct {
	ID        string               `json:"id"`
	Timestamp time.Time            `json:"timestamp"`
	Config    *config.Config       `json:"config"`
	Summary   map[string]float64   `json:"summary,omitempty"`
	Columns   []string             `json:"columns"`
	Samples   map[string][]float64 `json:"samples"`
}

// Export writes a stored run as indented JSON.
func (s *Store) Export(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	header, rows, err := s.LoadThermo(runID)
	if err != nil {
		return err
	}

	samples := make(map[string][]float64, len(header))
	for col, name := range header {
		series := make([]float64, len(rows))
		for i, row := range rows {
			series[i] = row[col]
		}
		samples[name] = series
	}

	data := ExportData{
		ID:        meta.ID,
		Timestamp: meta.Timestamp,
		Config:    meta.Config,
		Summary:   meta.Summary,
		Columns:   header,
		Samples:   samples,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
