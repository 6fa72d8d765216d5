package ga

import (
	"math/rand"

	"github.com/brennigan/evocore/genome"
)

// Domain is the contract a problem domain implements to be evolved by the
// Controller (spec §6). A Domain is read-only once constructed: workers
// hold a shared reference to it and never mutate it.
type Domain interface {
	// GenomeSize is the fixed byte length of every genome this domain
	// evaluates.
	GenomeSize() int
	// RandomGenome produces one fresh random genome of GenomeSize bytes.
	RandomGenome(rng *rand.Rand) genome.Genome
	// Evaluate scores a genome. The result should be finite and nominally
	// in [0, 1]; the controller clamps it regardless.
	Evaluate(g genome.Genome) float64
	// PerfectFitness is the score at which the controller may stop early.
	PerfectFitness() float64
	// DisplayResult renders a genome for reporting only; it has no effect
	// on evolution.
	DisplayResult(g genome.Genome) string
}

// StochasticDomain is an optional extension of Domain for domains whose
// evaluation is itself randomized (e.g. sampling simulations). When a
// Domain also implements this interface, the worker pool calls
// EvaluateStochastic instead of Evaluate, passing an RNG seeded
// deterministically from (generation, genome index) per spec §5's shared-
// resources rule rather than letting the domain reach for a shared or
// wall-clock-seeded source.
type StochasticDomain interface {
	Domain
	EvaluateStochastic(g genome.Genome, rng *rand.Rand) float64
}
