// Package write saves the state of the system to files.
package write

import (
	"bufio"
	"fmt"
	"os"

	"github.com/san-kum/molsim/internal/state"
)

// XYZWriter writes a trajectory in the extended XYZ format: a sequence of
// plain-text frames, each of the form
//
//	N
//	Lattice="Lx 0 0 0 Ly 0 0 0 Lz" Time=counter
//	A x0 y0 z0
//	...
//
// Flexible but inefficient; fine for trajectories of the size this toolkit
// produces. The file handle stays open until Close.
type XYZWriter struct {
	f *os.File
	w *bufio.Writer
}

// NewXYZWriter opens path for writing. With appendMode the trajectory is
// extended instead of truncated.
func NewXYZWriter(path string, appendMode bool) (*XYZWriter, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("write: opening trajectory: %w", err)
	}
	return &XYZWriter{f: f, w: bufio.NewWriter(f)}, nil
}

// Write appends one frame and flushes it to disk. The state has no
// per-particle types yet, so every particle gets the nominal type A.
func (x *XYZWriter) Write(s *state.State) error {
	fmt.Fprintf(x.w, "%d\n", s.N())
	fmt.Fprintf(x.w, "Lattice=\"%f 0.0 0.0 0.0 %f 0.0 0.0 0.0 %f\" Time=%d\n",
		s.Box.L[0], s.Box.L[1], s.Box.L[2], s.Counter)
	for _, r := range s.Positions {
		fmt.Fprintf(x.w, "A %f %f %f\n", r[0], r[1], r[2])
	}
	return x.w.Flush()
}

// Close flushes and closes the underlying file.
func (x *XYZWriter) Close() error {
	if err := x.w.Flush(); err != nil {
		x.f.Close()
		return err
	}
	return x.f.Close()
}
