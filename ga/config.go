package ga

// Config holds the recognized options for a Controller run (spec §6). All
// fields are required unless documented otherwise.
type Config struct {
	// PopulationSize is P, the fixed number of genomes per generation. Must
	// be >= 2.
	PopulationSize int
	// TournamentSize is k for tournament selection. Must be in [2, PopulationSize].
	TournamentSize int
	// WorkerCount bounds fitness evaluation concurrency. Must be >= 1; a
	// value of 1 degenerates to strictly sequential evaluation.
	WorkerCount int
	// MutationRate is the probability an offspring receives a light
	// mutation pass, in [0, 1].
	MutationRate float64
	// CrossoverRate is the probability two selected parents are crossed
	// rather than cloned, in [0, 1].
	CrossoverRate float64
	// ElitismCount is the number of top genomes carried verbatim into the
	// next generation under the Normal and reduced-stagnation tiers. Must
	// be in [1, PopulationSize-1].
	ElitismCount int
	// GenerationLimit caps the number of generations run; nil means
	// unlimited (the controller relies on an external stop or a perfect
	// fitness match).
	GenerationLimit *int
	// SnapshotInterval is how often (in generations) the reporter's
	// SaveBest hook fires in addition to the mandatory final emission.
	// Zero selects the default of 25.
	SnapshotInterval int
	// PerfectFitnessOverride replaces the domain's own PerfectFitness()
	// when set, letting a caller relax or tighten the termination target.
	PerfectFitnessOverride *float64
	// IgnorePerfectFitness disables perfect-fitness early termination
	// entirely, running until GenerationLimit (or forever if unset).
	// Resolves spec §9's open question on whether evaluation should ever
	// stop short of a generation limit.
	IgnorePerfectFitness bool
	// RandomSeed seeds the controller's RNG. Zero selects a time-derived
	// seed (non-reproducible runs are fine for production use; tests
	// always set this explicitly).
	RandomSeed int64
}

const defaultSnapshotInterval = 25

// EffectiveSnapshotInterval returns SnapshotInterval, substituting the
// spec-mandated default of 25 when unset.
func (c *Config) EffectiveSnapshotInterval() int {
	if c.SnapshotInterval <= 0 {
		return defaultSnapshotInterval
	}
	return c.SnapshotInterval
}

// Validate checks the configuration against spec §6's constraints, returning
// the first violation found as a *ConfigError.
func (c *Config) Validate() error {
	if c.PopulationSize < 2 {
		return &ConfigError{Field: "PopulationSize", Message: "must be >= 2"}
	}
	if c.TournamentSize < 2 || c.TournamentSize > c.PopulationSize {
		return &ConfigError{Field: "TournamentSize", Message: "must be in [2, PopulationSize]"}
	}
	if c.WorkerCount < 1 {
		return &ConfigError{Field: "WorkerCount", Message: "must be >= 1"}
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return &ConfigError{Field: "MutationRate", Message: "must be in [0, 1]"}
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return &ConfigError{Field: "CrossoverRate", Message: "must be in [0, 1]"}
	}
	if c.ElitismCount < 1 || c.ElitismCount > c.PopulationSize-1 {
		return &ConfigError{Field: "ElitismCount", Message: "must be in [1, PopulationSize-1]"}
	}
	if c.GenerationLimit != nil && *c.GenerationLimit <= 0 {
		return &ConfigError{Field: "GenerationLimit", Message: "must be > 0 when set"}
	}
	return nil
}
