// Package persistence implements the generation snapshot, resume-discovery,
// and summary artifacts described in spec §4.7: a raw genome byte dump plus
// a YAML metrics sidecar per generation, written atomically via a temp file
// and rename.
package persistence

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brennigan/evocore/genome"
)

// generationWidth is the zero-padding width for generation numbers in
// filenames; at least 5 so byte-wise lexicographic ordering matches
// numeric ordering up to generation 99999.
const generationWidth = 5

// PersistenceError wraps a filesystem failure. Saving is non-fatal (log and
// continue); loading for resume treats any PersistenceError as "no prior
// state".
type PersistenceError struct {
	Op    string
	Path  string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence: %s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

// FitnessMetrics is the YAML sidecar's fitness block.
type FitnessMetrics struct {
	Best    float64 `yaml:"best"`
	Average float64 `yaml:"average"`
}

// GenomeMetrics is the YAML sidecar's genome block.
type GenomeMetrics struct {
	Size int    `yaml:"size"`
	File string `yaml:"file"`
}

// GenerationMetrics is the full gen_NNNNN.yaml document (spec §6
// "Persistence file formats").
type GenerationMetrics struct {
	Generation int            `yaml:"generation"`
	Fitness    FitnessMetrics `yaml:"fitness"`
	Genome     GenomeMetrics  `yaml:"genome"`
}

func bytesFileName(generation int) string {
	return fmt.Sprintf("gen_%0*d.bytes", generationWidth, generation)
}

func yamlFileName(generation int) string {
	return fmt.Sprintf("gen_%0*d.yaml", generationWidth, generation)
}

// atomicWrite writes data to path by first writing to path+".tmp" and
// renaming over the destination, so a reader never observes a partial
// file.
func atomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &PersistenceError{Op: "mkdir", Path: filepath.Dir(path), Cause: err}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &PersistenceError{Op: "write", Path: tmp, Cause: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &PersistenceError{Op: "rename", Path: path, Cause: err}
	}
	return nil
}

// SaveGeneration writes gen_NNNNN.bytes and gen_NNNNN.yaml under dir for the
// given generation. Saving is non-fatal: callers should log a returned
// error and continue the run rather than abort.
func SaveGeneration(dir string, generation int, g genome.Genome, best, average float64) error {
	bytesPath := filepath.Join(dir, bytesFileName(generation))
	if err := atomicWrite(bytesPath, g); err != nil {
		return err
	}

	metrics := GenerationMetrics{
		Generation: generation,
		Fitness:    FitnessMetrics{Best: best, Average: average},
		Genome:     GenomeMetrics{Size: len(g), File: bytesFileName(generation)},
	}
	data, err := yaml.Marshal(metrics)
	if err != nil {
		return &PersistenceError{Op: "marshal", Path: bytesPath, Cause: err}
	}

	yamlPath := filepath.Join(dir, yamlFileName(generation))
	return atomicWrite(yamlPath, data)
}

// FindLatestGeneration scans dir for files matching gen_*.bytes and returns
// the generation number and genome bytes of the one with the maximum
// numeric suffix. A missing directory is reported as (0, nil, nil) per
// spec §4.7 ("Missing directory -> (0, None)").
func FindLatestGeneration(dir string) (int, genome.Genome, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "gen_*.bytes"))
	if err != nil {
		return 0, nil, &PersistenceError{Op: "glob", Path: dir, Cause: err}
	}
	if len(matches) == 0 {
		return 0, nil, nil
	}

	best := -1
	var bestPath string
	for _, path := range matches {
		gen, ok := parseGenerationNumber(filepath.Base(path))
		if !ok {
			continue
		}
		if gen > best {
			best = gen
			bestPath = path
		}
	}
	if best < 0 {
		return 0, nil, nil
	}

	data, err := os.ReadFile(bestPath)
	if err != nil {
		return 0, nil, &PersistenceError{Op: "read", Path: bestPath, Cause: err}
	}
	return best, genome.Genome(data), nil
}

// ReadMetrics loads and parses gen_NNNNN.yaml for the given generation.
func ReadMetrics(dir string, generation int) (GenerationMetrics, error) {
	path := filepath.Join(dir, yamlFileName(generation))
	data, err := os.ReadFile(path)
	if err != nil {
		return GenerationMetrics{}, &PersistenceError{Op: "read", Path: path, Cause: err}
	}

	var metrics GenerationMetrics
	if err := yaml.Unmarshal(data, &metrics); err != nil {
		return GenerationMetrics{}, &PersistenceError{Op: "unmarshal", Path: path, Cause: err}
	}
	return metrics, nil
}

func parseGenerationNumber(filename string) (int, bool) {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(filename, "gen_"), ".bytes")
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ClearAll deletes every gen_*.bytes and gen_*.yaml file under dir and
// returns the count deleted.
func ClearAll(dir string) (int, error) {
	patterns := []string{"gen_*.bytes", "gen_*.yaml"}
	var count int
	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return count, &PersistenceError{Op: "glob", Path: dir, Cause: err}
		}
		for _, path := range matches {
			if err := os.Remove(path); err != nil {
				return count, &PersistenceError{Op: "remove", Path: path, Cause: err}
			}
			count++
		}
	}
	return count, nil
}

// Summary is the evolution_summary.yaml document.
type Summary struct {
	EvolutionSummary SummaryBody `yaml:"evolution_summary"`
}

// SummaryBody holds the summary's fields, matching spec §6 exactly.
type SummaryBody struct {
	TotalGenerations     int       `yaml:"total_generations"`
	PeakFitnessAchieved  float64   `yaml:"peak_fitness_achieved"`
	GenerationOfPeak     int       `yaml:"generation_of_peak"`
	CompletionTimestamp  time.Time `yaml:"completion_timestamp"`
}

// WriteSummary writes evolution_summary.yaml under dir.
func WriteSummary(dir string, totalGenerations int, peakFitness float64, generationOfPeak int, completed time.Time) error {
	summary := Summary{EvolutionSummary: SummaryBody{
		TotalGenerations:    totalGenerations,
		PeakFitnessAchieved: peakFitness,
		GenerationOfPeak:    generationOfPeak,
		CompletionTimestamp: completed,
	}}

	data, err := yaml.Marshal(summary)
	if err != nil {
		return &PersistenceError{Op: "marshal", Path: dir, Cause: err}
	}
	return atomicWrite(filepath.Join(dir, "evolution_summary.yaml"), data)
}
