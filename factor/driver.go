package factor

import (
	"context"
	"errors"
	"fmt"
)

// RoundStats reports what one outer round did.
type RoundStats struct {
	Round      int     // 1-based round number (filled by Run)
	Candidates int     // fill-in positions discovered
	Threshold  float64 // removal cutoff chosen this round
	Removed    int     // entries dropped below the cutoff
	Inserted   int     // candidates grafted into freed slots
	Residual   float64 // pattern-restricted ‖A − L·Lᵀ‖_F after the sweeps
	Skipped    bool    // true when a soft failure skipped the swap
}

// RunConfig steers the outer driver loop.
//   - NumRM: entries to swap per round.
//   - Sweeps: fixed-point passes after each swap.
//   - MaxRounds: hard round cap.
//   - Tol: stop once the pattern-restricted residual norm drops below it.
type RunConfig struct {
	NumRM     int
	Sweeps    int
	MaxRounds int
	Tol       float64
}

// DefaultRunConfig returns a RunConfig with default settings:
// swap 8 per round, 3 sweeps, 25 rounds, Tol=1e-8.
func DefaultRunConfig() RunConfig {
	return RunConfig{NumRM: 8, Sweeps: 3, MaxRounds: 25, Tol: 1e-8}
}

// Round executes one full round of the dynamic factorization:
//
//	discover → evaluate → threshold → remove → insert → sweep × sweeps
//
// Soft failures (insufficient candidates, exhausted slots, non-positive
// pivots) do not abort the round and the sweeps still run. Insufficient
// candidates and exhausted slots set stats.Skipped; non-positive pivots
// are not recorded in the stats. Fatal errors propagate immediately.
func (f *Factor) Round(numRM, sweeps int) (RoundStats, error) {
	if numRM < 0 || sweeps < 0 {
		return RoundStats{}, ErrNegativeCount
	}
	var stats RoundStats

	cs := f.DiscoverCandidates()
	stats.Candidates = cs.Total()
	if err := f.EvaluateResiduals(cs); err != nil {
		return stats, err
	}

	// A store with fewer candidates than requested swaps would remove
	// entries it cannot replace; skip the swap before anything mutates.
	swap := numRM > 0
	for i := range cs.Sides {
		if cs.Sides[i].NNZ() < numRM {
			swap = false
			stats.Skipped = numRM > 0
		}
	}
	if swap {
		thr, err := f.SetThreshold(numRM)
		if err != nil {
			return stats, err
		}
		stats.Threshold = thr

		freed, err := f.RemoveBelow(thr)
		if err != nil {
			return stats, err
		}
		stats.Removed = freed.Total()

		inserted, err := f.InsertCandidates(cs, freed, numRM)
		switch {
		case errors.Is(err, ErrInsufficientCandidates),
			errors.Is(err, ErrCapacityExhausted):
			stats.Skipped = true // soft: the swap fell short, keep going
		case err != nil:
			return stats, err
		}
		stats.Inserted = inserted
	}

	for s := 0; s < sweeps; s++ {
		if err := f.Sweep(); err != nil && !errors.Is(err, ErrNonPositiveDiagonal) {
			return stats, err
		}
	}
	stats.Residual = f.ResidualNorm()
	return stats, nil
}

// Run drives rounds until the pattern-restricted residual norm drops
// below cfg.Tol, cfg.MaxRounds is exhausted, or ctx is canceled between
// rounds. It returns the per-round statistics gathered along the way.
// Kernels themselves never poll the context; cancellation lands on the
// next round boundary, where all invariants hold.
func (f *Factor) Run(ctx context.Context, cfg RunConfig) ([]RoundStats, error) {
	if cfg.MaxRounds <= 0 || cfg.Sweeps < 0 || cfg.NumRM < 0 {
		return nil, ErrNegativeCount
	}
	var history []RoundStats
	for round := 1; round <= cfg.MaxRounds; round++ {
		if err := ctx.Err(); err != nil {
			return history, err
		}

		stats, err := f.Round(cfg.NumRM, cfg.Sweeps)
		if err != nil {
			return history, err
		}
		stats.Round = round
		history = append(history, stats)

		if f.opts.Verbose {
			fmt.Printf("round %3d: cand=%d thr=%.3e rm=%d ins=%d res=%.6e\n",
				round, stats.Candidates, stats.Threshold, stats.Removed,
				stats.Inserted, stats.Residual)
		}
		if stats.Residual <= cfg.Tol {
			break
		}
	}
	return history, nil
}
