// Package reporter implements the Reporter sink the GA Controller hands
// generation results to (spec §4.1 "Reporting", §5 "Reporter operations are
// asynchronous"). Every Reporter implementation must return from Tick and
// SaveBest without blocking on I/O.
package reporter

import "github.com/brennigan/evocore/genome"

// Reporter matches ga.Reporter's shape without importing package ga, so
// reporter implementations have no dependency on the controller package.
type Reporter interface {
	Tick(generation int, best, avg float64, bestGenome genome.Genome)
	SaveBest(generation int, bestFitness float64, bestGenome genome.Genome)
}

// NoOp discards every event; useful for tests and headless runs that only
// care about the final BestEver value.
type NoOp struct{}

func (NoOp) Tick(int, float64, float64, genome.Genome) {}
func (NoOp) SaveBest(int, float64, genome.Genome)      {}
