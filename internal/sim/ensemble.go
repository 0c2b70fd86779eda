package sim

import (
	"context"
	"sync"

	"github.com/san-kum/molsim/internal/state"
)

// Factory builds an independent simulator for one replica. Each replica
// must get its own state and integrator; the seed distinguishes replicas.
type Factory func(seed int64) (*Simulator, error)

// Ensemble runs independent replicas of a simulation in parallel,
// differing only by seed.
type Ensemble struct {
	factory   Factory
	numRuns   int
	seedStart int64
}

// NewEnsemble creates an ensemble of numRuns replicas seeded from
// seedStart upward.
func NewEnsemble(factory Factory, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{factory: factory, numRuns: numRuns, seedStart: seedStart}
}

// Run executes all replicas concurrently and returns their final states in
// replica order. The first error encountered is returned.
func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*state.State, error) {
	states := make([]*state.State, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			s, err := e.factory(e.seedStart + int64(idx))
			if err != nil {
				errs[idx] = err
				return
			}

			errs[idx] = s.Run(ctx, cfg)
			states[idx] = s.State()
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return states, nil
}
