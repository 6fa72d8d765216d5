package operators

import (
	"math/rand"

	"github.com/brennigan/evocore/genome"
)

// Byte is the plain byte-array operator family (spec §4.3): every position
// is an independent random byte, with no structural alignment constraints.
type Byte struct{}

// Mutate changes 1-3 random byte positions.
func (Byte) Mutate(rng *rand.Rand, g genome.Genome) genome.Genome {
	child := g.Clone()
	if len(child) == 0 {
		return child
	}
	n := 1 + rng.Intn(3)
	for i := 0; i < n; i++ {
		pos := rng.Intn(len(child))
		child[pos] = byte(rng.Intn(256))
	}
	return child
}

// HeavyMutate changes 20-40% of positions.
func (Byte) HeavyMutate(rng *rand.Rand, g genome.Genome) genome.Genome {
	child := g.Clone()
	if len(child) == 0 {
		return child
	}
	fraction := 0.2 + rng.Float64()*0.2
	n := int(fraction * float64(len(child)))
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		pos := rng.Intn(len(child))
		child[pos] = byte(rng.Intn(256))
	}
	return child
}

// Crossover performs a two-point byte-aligned swap, producing two children.
func (Byte) Crossover(rng *rand.Rand, a, b genome.Genome) (genome.Genome, genome.Genome) {
	c1, c2 := clonedPair(a, b)
	n := len(c1)
	if n != len(b) || n < 2 {
		return c1, c2
	}

	p1 := rng.Intn(n)
	p2 := rng.Intn(n)
	if p1 > p2 {
		p1, p2 = p2, p1
	}
	for i := p1; i < p2; i++ {
		c1[i], c2[i] = b[i], a[i]
	}
	return c1, c2
}
