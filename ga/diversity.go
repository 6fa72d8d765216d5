package ga

// Tier classifies a run's stagnation level per spec §4.2. String values
// match the spec's literal tier names so they can flow straight into
// reporter output and persisted summaries.
type Tier string

const (
	TierNormal            Tier = "normal"
	TierVeryStagnant      Tier = "very-stagnant"
	TierExtremelyStagnant Tier = "extremely-stagnant"
	TierUltraStagnant     Tier = "ultra-stagnant"
)

// BreedingPlan is the pure decision record the Adaptive Diversity Policy
// produces for a given stagnation level: how much elitism to keep, and how
// aggressively to inject fresh genomes and heavy mutation into breeding.
type BreedingPlan struct {
	Tier                Tier
	ElitismCount        int
	RandomInjectionRate float64
	HeavyMutationRate   float64
	// UltraInjectionCount is the number of non-elite slots to replace with
	// fresh random genomes before the normal breeding loop, per the Ultra
	// tier's extra rule. Zero in every other tier.
	UltraInjectionCount int
}

// ClassifyStagnation is the Adaptive Diversity Policy: given the run's
// current stagnation counter and configuration, it returns the breeding
// plan for the next generation. It is pure — the same (stagnantGens,
// config) always yields the same plan.
func ClassifyStagnation(stagnantGens int, populationSize int, config *Config) BreedingPlan {
	switch {
	case stagnantGens > 1000:
		return BreedingPlan{
			Tier:                TierUltraStagnant,
			ElitismCount:        1,
			RandomInjectionRate: 0.5,
			HeavyMutationRate:   0.8,
			UltraInjectionCount: populationSize / 4,
		}
	case stagnantGens > 500:
		return BreedingPlan{
			Tier:                TierExtremelyStagnant,
			ElitismCount:        config.ElitismCount,
			RandomInjectionRate: 1.0 / 3.0,
			HeavyMutationRate:   0.7,
		}
	case stagnantGens > 100:
		return BreedingPlan{
			Tier:                TierVeryStagnant,
			ElitismCount:        config.ElitismCount,
			RandomInjectionRate: 0.2,
			HeavyMutationRate:   0.4,
		}
	default:
		return BreedingPlan{
			Tier:                TierNormal,
			ElitismCount:        config.ElitismCount,
			RandomInjectionRate: 0.05,
			HeavyMutationRate:   0.1,
		}
	}
}
