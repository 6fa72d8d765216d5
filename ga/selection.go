package ga

import (
	"math/rand"
	"sort"
)

// TournamentSelection samples k individuals uniformly with replacement and
// returns the one with maximum fitness, breaking ties toward the
// lowest-sampled index per spec §4.3.
func TournamentSelection(pop *Population, k int, rng *rand.Rand) *Individual {
	if pop == nil || len(pop.Individuals) == 0 {
		return nil
	}
	if k > len(pop.Individuals) {
		k = len(pop.Individuals)
	}
	if k < 1 {
		k = 1
	}

	bestIdx := rng.Intn(len(pop.Individuals))
	for i := 1; i < k; i++ {
		idx := rng.Intn(len(pop.Individuals))
		candidate := pop.Individuals[idx]
		current := pop.Individuals[bestIdx]
		if candidate.Fitness > current.Fitness || (candidate.Fitness == current.Fitness && idx < bestIdx) {
			bestIdx = idx
		}
	}
	return pop.Individuals[bestIdx]
}

// SelectElite returns the top n individuals by fitness, sorted descending.
func SelectElite(pop *Population, n int) []*Individual {
	if pop == nil || len(pop.Individuals) == 0 || n < 1 {
		return nil
	}
	if n > len(pop.Individuals) {
		n = len(pop.Individuals)
	}

	sorted := make([]*Individual, len(pop.Individuals))
	copy(sorted, pop.Individuals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Fitness > sorted[j].Fitness
	})
	return sorted[:n]
}
