package domain

import (
	"fmt"
	"math/rand"

	"github.com/brennigan/evocore/genome"
	"github.com/brennigan/evocore/vm"
)

// fibonacciGenomeSize is 16 nucleos (48 bytes), big enough for a handful of
// arithmetic-discovery programs without being so large that evolution
// search space explodes.
const fibonacciGenomeSize = 48

// fibonacciTargets are the inputs the domain checks the evolved program
// against; the true Fibonacci sequence F(0)..F(9).
var fibonacciTargets = []uint64{0, 1, 1, 2, 3, 5, 8, 13, 21, 34}

// Fibonacci evolves register-machine programs against the K=9 opcode set
// (no native Loop; spec §4.4 "Fibonacci variant"), driving repetition by
// re-running the straight-line body n times externally.
type Fibonacci struct {
	machine *vm.Machine
}

// NewFibonacci constructs the Fibonacci domain.
func NewFibonacci() *Fibonacci {
	return &Fibonacci{machine: vm.New(vm.OpcodeCountNoLoop)}
}

func (f *Fibonacci) GenomeSize() int { return fibonacciGenomeSize }

func (f *Fibonacci) RandomGenome(rng *rand.Rand) genome.Genome {
	return genome.Random(rng, fibonacciGenomeSize)
}

// Evaluate scores a genome by how closely its program reproduces F(0)..F(9),
// normalized into [0, 1] via an inverse-error transform so a perfect match
// scores 1.0 and unboundedly wrong answers asymptote toward 0.
func (f *Fibonacci) Evaluate(g genome.Genome) float64 {
	var totalError float64
	for n, want := range fibonacciTargets {
		got := f.machine.RunRepeated(g, uint64(n), n)
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

func (f *Fibonacci) PerfectFitness() float64 { return 1.0 }

func (f *Fibonacci) DisplayResult(g genome.Genome) string {
	outputs := make([]uint64, len(fibonacciTargets))
	for n := range fibonacciTargets {
		outputs[n] = f.machine.RunRepeated(g, uint64(n), n)
	}
	return fmt.Sprintf("fibonacci outputs: %v (target %v)", outputs, fibonacciTargets)
}
