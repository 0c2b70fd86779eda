// Package potential implements pair potential energy functions.
//
// A [Pair] potential is evaluated on the squared distance between two
// particle centers and reports the energy u(r) together with f(r)/r, the
// force magnitude divided by distance. Factoring out 1/r lets the force
// vector be applied to a separation without normalizing it:
//
//	F = (f(r)/r) * dr
//
// [Compute] evaluates a potential over all unique particle pairs of a
// state using minimum-image separations.
package potential
