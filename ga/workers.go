package ga

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/brennigan/evocore/genome"
	"github.com/brennigan/evocore/internal/obslog"
)

// evaluateGeneration runs domain.Evaluate (or EvaluateStochastic, for a
// StochasticDomain) for every individual in pop concurrently, bounded to
// workerCount in flight at once (spec §4.5). A worker's panic is recovered
// to a score of 0.0, and a NaN or out-of-range score is clamped into
// [0, 1] (NaN to 0.0, +Inf to 1.0); both are logged rather than failing
// the barrier, and the generation always completes. Each individual's RNG is seeded
// deterministically from (generation, index) so a re-run with the same
// seed reproduces identical results even though dispatch order is not
// guaranteed.
func evaluateGeneration(ctx context.Context, domain Domain, pop *Population, workerCount int, baseSeed int64, log *obslog.Logger) {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount)

	for i := range pop.Individuals {
		idx := i
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return nil
			default:
			}

			ind := pop.Individuals[idx]
			ind.Fitness, ind.Evaluated = evaluateOne(domain, pop.Generation, idx, baseSeed, ind.Genome, log)
			return nil
		})
	}

	// errgroup.Wait's error is always nil here: evaluateOne recovers every
	// failure into a score, so no worker ever returns an error.
	_ = g.Wait()
}

// evaluateOne scores a single genome, converting a panic into 0.0 and
// clamping an invalid score via genome.ClampFitness, per spec §7's
// EvaluationError handling.
func evaluateOne(domain Domain, generation, genomeID int, baseSeed int64, g genome.Genome, log *obslog.Logger) (score float64, evaluated bool) {
	defer func() {
		if r := recover(); r != nil {
			score = 0.0
			evaluated = true
			log.LogRecovered(genomeID, &EvaluationError{GenomeID: genomeID, Cause: fmt.Errorf("panic: %v, scored 0.0", r)})
		}
	}()

	var raw float64
	if stochastic, ok := domain.(StochasticDomain); ok {
		rng := newWorkerRand(baseSeed, generation, genomeID)
		raw = stochastic.EvaluateStochastic(g, rng)
	} else {
		raw = domain.Evaluate(g)
	}

	clamped := genome.ClampFitness(raw)
	if clamped != raw {
		log.LogRecovered(genomeID, &EvaluationError{GenomeID: genomeID, Cause: fmt.Errorf("non-finite or out-of-range score %v, clamped to %v", raw, clamped)})
	}
	return clamped, true
}

// workerSeed derives a deterministic per-genome RNG seed from the
// generation and genome index, so parallel workers never share mutable
// randomness state (spec §5 "Shared resources").
func workerSeed(baseSeed int64, generation, genomeID int) int64 {
	// A simple, fast mix; collision-resistance doesn't matter here, only
	// that (generation, genomeID) always maps to the same seed.
	h := baseSeed
	h = h*6364136223846793005 + int64(generation)*1442695040888963407 + 1
	h = h*6364136223846793005 + int64(genomeID)*1442695040888963407 + 1
	return h
}

// newWorkerRand builds the deterministic RNG handed to a StochasticDomain's
// EvaluateStochastic for stochastic scoring.
func newWorkerRand(baseSeed int64, generation, genomeID int) *rand.Rand {
	return rand.New(rand.NewSource(workerSeed(baseSeed, generation, genomeID)))
}
