package ga

import (
	"context"
	"math/rand"
	"time"

	"github.com/brennigan/evocore/genome"
	"github.com/brennigan/evocore/ga/operators"
	"github.com/brennigan/evocore/internal/obslog"
)

// Reporter is the sink the controller hands generation results to (spec
// §6). Tick and SaveBest must never block breeding; a Reporter
// implementation that does I/O is expected to queue internally.
type Reporter interface {
	Tick(generation int, best, avg float64, bestGenome genome.Genome)
	SaveBest(generation int, bestFitness float64, bestGenome genome.Genome)
}

// Seed carries resume state into NewController: the generation number to
// resume from and the genome that was the best-known individual at that
// point (spec §4.7 "Resume").
type Seed struct {
	StartingGeneration int
	Genome             genome.Genome
}

// Controller owns all population state for one evolutionary run: the
// population, the fitness array, the generation counter, and the
// stagnation counter. It is not safe for concurrent use by multiple
// goroutines; only its internal worker pool runs concurrently, bounded by
// the Evaluating/Breeding barrier.
type Controller struct {
	config   *Config
	domain   Domain
	family   operators.Family
	reporter Reporter
	log      *obslog.Logger

	rng *rand.Rand

	population   *Population
	bestEver     *Individual
	stagnantGens int
	generation   int
	baseSeed     int64
}

// NewController builds a Controller. seed is optional; when non-nil the
// initial population resumes from seed.StartingGeneration with the rule-
// of-six mixture described in spec §4.7 instead of a fresh random
// population.
func NewController(config *Config, domain Domain, family operators.Family, reporter Reporter, log *obslog.Logger, seed *Seed) (*Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseSeed := config.RandomSeed
	if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(baseSeed))

	c := &Controller{
		config:   config,
		domain:   domain,
		family:   family,
		reporter: reporter,
		log:      log,
		rng:      rng,
		baseSeed: baseSeed,
	}

	if seed != nil {
		c.population = c.resumePopulation(seed)
		c.generation = seed.StartingGeneration
		// resumePopulation builds a bare Population (Generation defaults to
		// 0); keep it in lockstep with c.generation so the first post-resume
		// evaluation seeds workers from the resumed generation number, not 0.
		c.population.Generation = c.generation
	} else {
		c.population = c.freshPopulation()
	}

	return c, nil
}

func (c *Controller) freshPopulation() *Population {
	individuals := make([]*Individual, c.config.PopulationSize)
	for i := range individuals {
		individuals[i] = &Individual{Genome: c.domain.RandomGenome(c.rng)}
	}
	return NewPopulation(individuals)
}

// resumePopulation implements spec §4.7's rule of six: index 0 is the seed
// genome verbatim; of the remaining P-1 slots, roughly 1/6 are fully
// random, 1/6 are heavy-mutated copies of the seed, and the remaining 4/6
// are lightly-mutated copies of the seed.
func (c *Controller) resumePopulation(seed *Seed) *Population {
	p := c.config.PopulationSize
	individuals := make([]*Individual, 0, p)
	individuals = append(individuals, &Individual{Genome: seed.Genome.Clone()})

	remaining := p - 1
	numRandom := remaining / 6
	numHeavy := remaining / 6

	for i := 0; i < numRandom; i++ {
		individuals = append(individuals, &Individual{Genome: c.domain.RandomGenome(c.rng)})
	}
	for i := 0; i < numHeavy; i++ {
		individuals = append(individuals, &Individual{Genome: c.family.HeavyMutate(c.rng, seed.Genome)})
	}
	for len(individuals) < p {
		individuals = append(individuals, &Individual{Genome: c.family.Mutate(c.rng, seed.Genome)})
	}

	return NewPopulation(individuals[:p])
}

// Run evaluates and breeds generations until the termination predicate
// fires (generation limit reached, or the domain's perfect fitness is hit
// and IgnorePerfectFitness is false), emitting reporter events along the
// way. It always ends with a final Tick and SaveBest, per spec §4.1.
func (c *Controller) Run(ctx context.Context) {
	for {
		c.evaluateCurrentGeneration(ctx)

		best := c.population.Best()
		avg := c.population.AverageFitness()

		switch {
		case c.bestEver == nil:
			c.bestEver = best.Clone()
		case best.Fitness > c.bestEver.Fitness:
			c.bestEver = best.Clone()
			c.stagnantGens = 0
		default:
			c.stagnantGens++
		}

		diversity := c.population.Diversity(c.rng)
		c.log.LogGeneration(c.generation, best.Fitness, avg, diversity, c.stagnantGens)
		c.reporter.Tick(c.generation, best.Fitness, avg, best.Genome)

		interval := c.config.EffectiveSnapshotInterval()
		terminal := c.shouldTerminate(best.Fitness)
		if terminal || (interval > 0 && c.generation%interval == 0) {
			c.reporter.SaveBest(c.generation, best.Fitness, best.Genome)
		}

		if terminal {
			return
		}

		c.breed()
		c.generation++
	}
}

func (c *Controller) shouldTerminate(bestFitness float64) bool {
	if c.config.GenerationLimit != nil && c.generation >= *c.config.GenerationLimit {
		return true
	}
	if !c.config.IgnorePerfectFitness {
		target := c.domain.PerfectFitness()
		if c.config.PerfectFitnessOverride != nil {
			target = *c.config.PerfectFitnessOverride
		}
		if bestFitness >= target {
			return true
		}
	}
	return false
}

func (c *Controller) evaluateCurrentGeneration(ctx context.Context) {
	evaluateGeneration(ctx, c.domain, c.population, c.config.WorkerCount, c.baseSeed, c.log)
}

// breed produces the next generation in place: elite carry-over (the
// previous best survives verbatim at index 0), Ultra-tier fresh injection,
// and the tournament/crossover/mutation loop, per spec §4.1-§4.3.
func (c *Controller) breed() {
	plan := ClassifyStagnation(c.stagnantGens, c.config.PopulationSize, c.config)

	next := make([]*Individual, 0, c.config.PopulationSize)

	elite := SelectElite(c.population, plan.ElitismCount)
	for _, ind := range elite {
		next = append(next, ind.Clone())
	}
	// Invariant: the previous generation's absolute best appears verbatim
	// at index 0 of the next population.
	if c.bestEver != nil && len(next) > 0 {
		next[0] = c.bestEver.Clone()
	}

	for i := 0; i < plan.UltraInjectionCount && len(next) < c.config.PopulationSize; i++ {
		next = append(next, &Individual{Genome: c.domain.RandomGenome(c.rng)})
	}

	for len(next) < c.config.PopulationSize {
		if c.rng.Float64() < plan.RandomInjectionRate {
			next = append(next, &Individual{Genome: c.domain.RandomGenome(c.rng)})
			continue
		}

		a := TournamentSelection(c.population, c.config.TournamentSize, c.rng)
		b := TournamentSelection(c.population, c.config.TournamentSize, c.rng)

		var c1, c2 genome.Genome
		if c.rng.Float64() < c.config.CrossoverRate {
			c1, c2 = c.family.Crossover(c.rng, a.Genome, b.Genome)
		} else {
			c1, c2 = a.Genome.Clone(), b.Genome.Clone()
		}

		if c.rng.Float64() < plan.HeavyMutationRate {
			c1 = c.family.HeavyMutate(c.rng, c1)
		} else if c.rng.Float64() < c.config.MutationRate {
			c1 = c.family.Mutate(c.rng, c1)
		}
		next = append(next, &Individual{Genome: c1})

		if len(next) >= c.config.PopulationSize {
			break
		}

		if c.rng.Float64() < plan.HeavyMutationRate {
			c2 = c.family.HeavyMutate(c.rng, c2)
		} else if c.rng.Float64() < c.config.MutationRate {
			c2 = c.family.Mutate(c.rng, c2)
		}
		next = append(next, &Individual{Genome: c2})
	}

	c.population = NewPopulation(next[:c.config.PopulationSize])
	c.population.Generation = c.generation + 1
}

// Generation returns the controller's current generation counter.
func (c *Controller) Generation() int {
	return c.generation
}

// BestEver returns the best individual observed across the whole run.
func (c *Controller) BestEver() *Individual {
	return c.bestEver
}
