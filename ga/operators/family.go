// Package operators provides the pluggable genome-operator families that
// back breeding in package ga. Every family shares one contract: pure
// functions over (rng, inputs) that return new byte sequences of identical
// length to their inputs. Operators never mutate their arguments in place.
package operators

import (
	"math/rand"

	"github.com/brennigan/evocore/genome"
)

// Family is the operator contract a domain selects one implementation of
// (spec §6 "Operator contract").
type Family interface {
	// Mutate returns a lightly-perturbed copy of g.
	Mutate(rng *rand.Rand, g genome.Genome) genome.Genome
	// HeavyMutate returns an aggressively-perturbed copy of g, used when
	// the Adaptive Diversity Policy escalates past the Normal tier.
	HeavyMutate(rng *rand.Rand, g genome.Genome) genome.Genome
	// Crossover recombines two parents into two children of the same
	// length, where every output byte is taken verbatim from one parent
	// or the other.
	Crossover(rng *rand.Rand, a, b genome.Genome) (genome.Genome, genome.Genome)
}

func clonedPair(a, b genome.Genome) (genome.Genome, genome.Genome) {
	return a.Clone(), b.Clone()
}
