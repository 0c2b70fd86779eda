package main

import (
	"math/rand"

	"github.com/san-kum/molsim/internal/config"
	"github.com/san-kum/molsim/internal/dynamics"
	"github.com/san-kum/molsim/internal/potential"
	"github.com/san-kum/molsim/internal/sim"
	"github.com/san-kum/molsim/internal/state"
)

// buildSystem assembles an initialized state, integrator, and optional
// thermostat from a validated config.
func buildSystem(cfg *config.Config, seed int64) (*state.State, *dynamics.VelocityVerlet, sim.Thermostat, error) {
	edges := cfg.BoxEdges()
	box, err := state.NewBox(state.Vec3{edges[0], edges[1], edges[2]})
	if err != nil {
		return nil, nil, nil, err
	}

	s, err := state.New(cfg.Particles, box)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := s.SetMass(cfg.Mass); err != nil {
		return nil, nil, nil, err
	}

	rng := rand.New(rand.NewSource(seed))

	switch cfg.Init {
	case "lattice":
		sim.LatticePositions(s)
	default:
		if err := sim.RandomInsertion(s, rng, cfg.MinDist, cfg.MaxAttempts); err != nil {
			return nil, nil, nil, err
		}
	}

	if cfg.KT > 0 {
		sim.MaxwellBoltzmann(s, rng, cfg.KT)
	}

	var pot *potential.LennardJones
	if cfg.Potential.WCA {
		pot = potential.NewWCA(cfg.Potential.Epsilon, cfg.Potential.Sigma)
	} else {
		pot = potential.NewLennardJones(cfg.Potential.Epsilon, cfg.Potential.Sigma, cfg.Potential.Rcut)
		pot.Shift = cfg.Potential.Shift
	}

	integ, err := dynamics.NewVelocityVerlet(cfg.Dt, pot)
	if err != nil {
		return nil, nil, nil, err
	}

	var thermostat sim.Thermostat
	if cfg.Thermostat {
		th, err := dynamics.NewVelocityRescale(cfg.KT)
		if err != nil {
			return nil, nil, nil, err
		}
		thermostat = th
	}

	return s, integ, thermostat, nil
}
