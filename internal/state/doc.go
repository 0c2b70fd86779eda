// Package state defines the data structures describing a particle system.
//
// The two central types are:
//
//   - [Box]: orthorhombic simulation box with periodic boundary conditions
//   - [State]: structure-of-arrays particle data (positions, images,
//     velocities, energies, forces)
//
// All particle coordinates are expected to lie between 0 and the box edge
// lengths; [Box.Wrap] enforces this and tracks the periodic image each
// particle occupies so that unwrapped trajectories can be reconstructed.
package state
