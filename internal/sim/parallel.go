package sim

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Builder creates an independent simulator for one seed.
type Builder func(seed int64) (*Simulator, error)

// Ensemble runs one configuration over consecutive seeds, at most Limit at a
// time. Each member owns its own buffer so runs share nothing.
type Ensemble struct {
	build     Builder
	numRuns   int
	seedStart int64
	// Limit caps concurrent members; 0 runs them all at once.
	Limit int
}

func NewEnsemble(build Builder, numRuns int, seedStart int64) *Ensemble {
	return &Ensemble{build: build, numRuns: numRuns, seedStart: seedStart}
}

// Run returns results indexed by member. The first failing member cancels
// the others at their next frame boundary and its error is returned.
func (e *Ensemble) Run(ctx context.Context, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	if e.Limit > 0 {
		g.SetLimit(e.Limit)
	}

	for i := 0; i < e.numRuns; i++ {
		seed := e.seedStart + int64(i)
		g.Go(func() error {
			s, err := e.build(seed)
			if err != nil {
				return fmt.Errorf("build seed %d: %w", seed, err)
			}
			member := cfg
			member.Seed = seed
			res, err := s.Run(ctx, member)
			if err != nil {
				return fmt.Errorf("seed %d: %w", seed, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
