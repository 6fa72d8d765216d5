package operators

import (
	"math/rand"

	"github.com/brennigan/evocore/genome"
)

// NeuralNet treats a genome as a flattened weight buffer organized into
// layers that crossover must respect. LayerBoundaries lists the byte
// offsets where one layer ends and the next begins (e.g. offset 765 for a
// two-layer split); crossover only ever swaps whole layers.
type NeuralNet struct {
	LayerBoundaries []int
}

// Mutate applies small bounded deltas (+/-20) to 1-5% of bytes.
func (nn NeuralNet) Mutate(rng *rand.Rand, g genome.Genome) genome.Genome {
	child := g.Clone()
	if len(child) == 0 {
		return child
	}
	fraction := 0.01 + rng.Float64()*0.04
	n := int(fraction * float64(len(child)))
	if n < 1 {
		n = 1
	}
	for i := 0; i < n; i++ {
		pos := rng.Intn(len(child))
		child[pos] = clampDelta(child[pos], rng.Intn(41)-20)
	}
	return child
}

// HeavyMutate randomizes 10-30% of bytes outright.
func (nn NeuralNet) HeavyMutate(rng *rand.Rand, g genome.Genome) genome.Genome {
	child := g.Clone()
	if len(child) == 0 {
		return child
	}
	fraction := 0.1 + rng.Float64()*0.2
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

// Crossover swaps whole layers at the declared boundaries: each layer
// segment is independently taken from parent a or parent b.
func (nn NeuralNet) Crossover(rng *rand.Rand, a, b genome.Genome) (genome.Genome, genome.Genome) {
	c1, c2 := clonedPair(a, b)
	if len(c1) != len(b) {
		return c1, c2
	}

	boundaries := nn.LayerBoundaries
	if len(boundaries) == 0 {
		boundaries = []int{len(c1) / 2}
	}
	segments := make([]int, len(boundaries), len(boundaries)+1)
	copy(segments, boundaries)
	segments = append(segments, len(c1))

	start := 0
	for _, end := range segments {
		if end > len(c1) {
			end = len(c1)
		}
		if rng.Float64() < 0.5 {
			for i := start; i < end; i++ {
				c1[i], c2[i] = b[i], a[i]
			}
		}
		start = end
	}
	return c1, c2
}

func clampDelta(value byte, delta int) byte {
	result := int(value) + delta
	if result < 0 {
		return 0
	}
	if result > 255 {
		return 255
	}
	return byte(result)
}
