package state

import "errors"

// Domain errors for state construction and mutation.
var (
	// ErrBoxSize indicates a box edge length that is not positive.
	ErrBoxSize = errors.New("state: box edge lengths must be positive")

	// ErrParticleCount indicates a negative particle count.
	ErrParticleCount = errors.New("state: particle count must be nonnegative")

	// ErrMass indicates a mass that is not positive.
	ErrMass = errors.New("state: mass must be positive")

	// ErrNoBox indicates a state operation that requires a box.
	ErrNoBox = errors.New("state: state has no box")

	// ErrDimensionMismatch indicates per-particle data whose length does
	// not match the particle count.
	ErrDimensionMismatch = errors.New("state: array length does not match particle count")
)
