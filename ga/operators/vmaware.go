package operators

import (
	"math/rand"

	"github.com/brennigan/evocore/genome"
	"github.com/brennigan/evocore/vm"
)

// VMAware mutates and recombines genomes at nucleo (3-byte instruction)
// boundaries so offspring stay valid register-machine programs under the
// given opcode-set size K.
type VMAware struct {
	OpcodeCount int
}

func (v VMAware) nucleoCount(g genome.Genome) int {
	return len(g) / vm.NucleoSize
}

// Mutate replaces one nucleo's opcode byte with a value in [0, K) and its
// two register bytes with values in [0, 4).
func (v VMAware) Mutate(rng *rand.Rand, g genome.Genome) genome.Genome {
	child := g.Clone()
	count := v.nucleoCount(child)
	if count == 0 {
		return child
	}
	v.rewriteNucleo(rng, child, rng.Intn(count))
	return child
}

// HeavyMutate rewrites 20-40% of nucleos.
func (v VMAware) HeavyMutate(rng *rand.Rand, g genome.Genome) genome.Genome {
	child := g.Clone()
	count := v.nucleoCount(child)
	if count == 0 {
		return child
	}
	fraction := 0.2 + rng.Float64()*0.2
	n := int(fraction * float64(count))
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		v.rewriteNucleo(rng, child, rng.Intn(count))
	}
	return child
}

func (v VMAware) rewriteNucleo(rng *rand.Rand, g genome.Genome, idx int) {
	base := idx * vm.NucleoSize
	g[base] = byte(rng.Intn(v.OpcodeCount))
	g[base+1] = byte(rng.Intn(vm.NumRegisters))
	g[base+2] = byte(rng.Intn(vm.NumRegisters))
}

// Crossover performs the same two-point swap as Byte.Crossover, but with
// both cut points aligned to nucleo boundaries so offspring never straddle
// an instruction.
func (v VMAware) Crossover(rng *rand.Rand, a, b genome.Genome) (genome.Genome, genome.Genome) {
	c1, c2 := clonedPair(a, b)
	count := v.nucleoCount(c1)
	if count != v.nucleoCount(b) || count < 2 {
		return c1, c2
	}

	p1 := rng.Intn(count)
	p2 := rng.Intn(count)
	if p1 > p2 {
		p1, p2 = p2, p1
	}

	start := p1 * vm.NucleoSize
	end := p2 * vm.NucleoSize
	for i := start; i < end; i++ {
		c1[i], c2[i] = b[i], a[i]
	}
	return c1, c2
}
