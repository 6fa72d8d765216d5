package domain

import (
	"fmt"
	"math/rand"

	"github.com/brennigan/evocore/genome"
	"github.com/brennigan/evocore/vm"
)

const powersOfTwoGenomeSize = 48

// powersOfTwoRange is how many inputs (0..9) a genome is scored against.
const powersOfTwoRange = 10

// PowersOfTwoCalculator is the reference implementation the domain checks
// evolved programs against: Compute(n) == 2^n.
type PowersOfTwoCalculator struct{}

// Compute returns 2^n.
func (PowersOfTwoCalculator) Compute(n uint64) uint64 {
	return uint64(1) << n
}

// PowersOfTwo evolves register-machine programs against the full K=12
// opcode set, which includes a native Loop instruction, so (unlike
// Fibonacci) the VM handles repetition internally in a single Run call.
type PowersOfTwo struct {
	machine    *vm.Machine
	calculator PowersOfTwoCalculator
}

// NewPowersOfTwo constructs the PowersOfTwo domain.
func NewPowersOfTwo() *PowersOfTwo {
	return &PowersOfTwo{machine: vm.New(vm.OpcodeCountFull)}
}

func (p *PowersOfTwo) GenomeSize() int { return powersOfTwoGenomeSize }

func (p *PowersOfTwo) RandomGenome(rng *rand.Rand) genome.Genome {
	return genome.Random(rng, powersOfTwoGenomeSize)
}

// Evaluate scores a genome by how closely its program reproduces
// 2^0..2^9, normalized into [0, 1]. A genome that merely echoes n (the
// identity program) scores at most 0.2, since the errors against the true
// powers of two grow quickly past n=2.
func (p *PowersOfTwo) Evaluate(g genome.Genome) float64 {
	var totalError float64
	for n := uint64(0); n < powersOfTwoRange; n++ {
		want := p.calculator.Compute(n)
		got := p.machine.Run(g, n)
		var diff float64
		if got > want {
			diff = float64(got - want)
		} else {
			diff = float64(want - got)
		}
		totalError += diff
	}
	return 1.0 / (1.0 + totalError)
}

func (p *PowersOfTwo) PerfectFitness() float64 { return 1.0 }

func (p *PowersOfTwo) DisplayResult(g genome.Genome) string {
	outputs := make([]uint64, powersOfTwoRange)
	for n := uint64(0); n < powersOfTwoRange; n++ {
		outputs[n] = p.machine.Run(g, n)
	}
	return fmt.Sprintf("powers-of-two outputs: %v", outputs)
}
