package state

import "math"

// Box is an orthorhombic simulation box with periodic boundary conditions.
//
// The box is a rectangular prism with edge lengths L = (Lx, Ly, Lz) and its
// origin at (0, 0, 0). It defines the geometry of the simulation and
// enforces the periodic boundaries through [Box.Wrap] and
// [Box.MinimumImage].
type Box struct {
	L Vec3
}

// NewBox creates an orthorhombic box with the given edge lengths.
func NewBox(l Vec3) (*Box, error) {
	for _, edge := range l {
		if edge <= 0 {
			return nil, ErrBoxSize
		}
	}
	return &Box{L: l}, nil
}

// NewCube creates a cubic box with edge length l.
func NewCube(l float64) (*Box, error) {
	return NewBox(Vec3{l, l, l})
}

// Volume returns the volume of the box.
func (b *Box) Volume() float64 {
	return b.L[0] * b.L[1] * b.L[2]
}

// Wrap maps a position back into [0, L) and returns the integer number of
// box images the position was shifted by. A particle exiting one face
// reenters through the opposite face; accumulating the returned shifts lets
// callers reconstruct unwrapped coordinates as r + L*image.
func (b *Box) Wrap(r Vec3) (Vec3, [3]int) {
	var shift [3]int
	for k := 0; k < 3; k++ {
		n := math.Floor(r[k] / b.L[k])
		r[k] -= n * b.L[k]
		shift[k] = int(n)
	}
	return r, shift
}

// WrapAll wraps every position in place, accumulating image shifts when
// images is non-nil. positions and images must have equal length.
func (b *Box) WrapAll(positions []Vec3, images [][3]int) {
	for i := range positions {
		r, shift := b.Wrap(positions[i])
		positions[i] = r
		if images != nil {
			for k := 0; k < 3; k++ {
				images[i][k] += shift[k]
			}
		}
	}
}

// MinimumImage applies the minimum image convention to a separation vector
// so that it points the shortest route between two particles across the
// periodic boundaries.
func (b *Box) MinimumImage(v Vec3) Vec3 {
	for k := 0; k < 3; k++ {
		v[k] -= math.Round(v[k]/b.L[k]) * b.L[k]
	}
	return v
}

// Unwrap reconstructs the unwrapped coordinate of a position given the
// image it occupies.
func (b *Box) Unwrap(r Vec3, image [3]int) Vec3 {
	for k := 0; k < 3; k++ {
		r[k] += float64(image[k]) * b.L[k]
	}
	return r
}
