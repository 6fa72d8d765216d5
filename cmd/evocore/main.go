// Command evocore runs the evolutionary engine described in spec §6's CLI
// surface: train, resume, clear, summary, test, and analyze.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brennigan/evocore/domain"
	"github.com/brennigan/evocore/ga"
	"github.com/brennigan/evocore/ga/operators"
	"github.com/brennigan/evocore/internal/obslog"
	"github.com/brennigan/evocore/persistence"
	"github.com/brennigan/evocore/reporter"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "train":
		err = runTrain(os.Args[2:])
	case "resume":
		err = runResume(os.Args[2:])
	case "clear":
		err = runClear(os.Args[2:])
	case "summary":
		err = runSummary(os.Args[2:])
	case "test":
		err = runTest(os.Args[2:])
	case "analyze":
		err = runAnalyze(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "evocore: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: evocore <train|resume|clear|summary|test|analyze> [flags]")
}

func commonFlags(fs *flag.FlagSet) (domainName, outDir *string, population, workers, elitism, tournament *int, mutationRate, crossoverRate *float64, seed *int64) {
	domainName = fs.String("domain", "fibonacci", "domain to evolve (fibonacci, powers-of-two, sentiment)")
	outDir = fs.String("out", "./evocore-run", "snapshot output directory")
	population = fs.Int("population", 100, "population size")
	workers = fs.Int("workers", 4, "fitness worker count")
	elitism = fs.Int("elitism", 2, "elitism count")
	tournament = fs.Int("tournament", 3, "tournament size")
	mutationRate = fs.Float64("mutation-rate", 0.3, "mutation rate")
	crossoverRate = fs.Float64("crossover-rate", 0.7, "crossover rate")
	seed = fs.Int64("seed", 0, "random seed (0 = time-derived)")
	return
}

func familyFor(domainName string) operators.Family {
	switch domainName {
	case "fibonacci":
		return operators.VMAware{OpcodeCount: 9}
	case "powers-of-two":
		return operators.VMAware{OpcodeCount: 12}
	case "sentiment":
		return operators.Weighted{}
	default:
		return operators.Byte{}
	}
}

func buildController(fs *flag.FlagSet, args []string, seedState *ga.Seed) (*ga.Controller, *reporter.Console, error) {
	domainName, outDir, population, workers, elitism, tournament, mutationRate, crossoverRate, seed := commonFlags(fs)
	generations := fs.Int("generations", 0, "generation limit (0 = unlimited)")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	d, err := domain.New(*domainName)
	if err != nil {
		return nil, nil, err
	}

	var limit *int
	if *generations > 0 {
		limit = generations
	}

	cfg := &ga.Config{
		PopulationSize:  *population,
		TournamentSize:  *tournament,
		WorkerCount:     *workers,
		MutationRate:    *mutationRate,
		CrossoverRate:   *crossoverRate,
		ElitismCount:    *elitism,
		GenerationLimit: limit,
		RandomSeed:      *seed,
	}

	barTotal := *generations
	if barTotal <= 0 {
		barTotal = -1 // no generation limit: indeterminate progress bar
	}
	console := reporter.NewConsole(*outDir, barTotal)
	ctrl, err := ga.NewController(cfg, d, familyFor(*domainName), console, obslog.New(true), seedState)
	if err != nil {
		console.Close()
		return nil, nil, err
	}
	return ctrl, console, nil
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)
	ctrl, console, err := buildController(fs, args, nil)
	if err != nil {
		return err
	}
	defer console.Close()

	ctrl.Run(context.Background())
	return nil
}

func runResume(args []string) error {
	fs := flag.NewFlagSet("resume", flag.ExitOnError)

	// Peek at -out before delegating to buildController, which reparses
	// the same argument list with the full common flag surface.
	peekFS := flag.NewFlagSet("resume-peek", flag.ContinueOnError)
	peekOut := peekFS.String("out", "./evocore-run", "snapshot directory to resume from")
	peekFS.SetOutput(discardWriter{})
	_ = peekFS.Parse(args)

	gen, g, err := persistence.FindLatestGeneration(*peekOut)
	if err != nil {
		// A failed load is treated as "no prior state": start fresh.
		fmt.Fprintf(os.Stderr, "evocore: %v; starting without prior state\n", err)
		g = nil
	}
	var seedState *ga.Seed
	if g != nil {
		seedState = &ga.Seed{StartingGeneration: gen + 1, Genome: g}
	}

	ctrl, console, err := buildController(fs, args, seedState)
	if err != nil {
		return err
	}
	defer console.Close()

	ctrl.Run(context.Background())
	return nil
}

func runClear(args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	outDir := fs.String("out", "./evocore-run", "snapshot directory to clear")
	if err := fs.Parse(args); err != nil {
		return err
	}

	count, err := persistence.ClearAll(*outDir)
	if err != nil {
		return err
	}
	fmt.Printf("deleted %d snapshot files\n", count)
	return nil
}

func runSummary(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	outDir := fs.String("out", "./evocore-run", "snapshot directory")
	if err := fs.Parse(args); err != nil {
		return err
	}

	gen, g, err := persistence.FindLatestGeneration(*outDir)
	if err != nil {
		return err
	}
	if g == nil {
		fmt.Println("no prior evolution state found")
		return nil
	}
	fmt.Printf("latest generation: %d (genome size %d bytes)\n", gen, len(g))
	return persistence.WriteSummary(*outDir, gen, 0, gen, time.Now())
}

func runTest(args []string) error {
	fs := flag.NewFlagSet("test", flag.ExitOnError)
	domainName := fs.String("domain", "fibonacci", "domain to sanity-check")
	if err := fs.Parse(args); err != nil {
		return err
	}

	d, err := domain.New(*domainName)
	if err != nil {
		return err
	}
	g := make([]byte, d.GenomeSize())
	fmt.Printf("%s domain: genome size %d, perfect fitness %.2f\n", *domainName, d.GenomeSize(), d.PerfectFitness())
	fmt.Println(d.DisplayResult(g))
	return nil
}

func runAnalyze(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("analyze requires a quoted text argument")
	}
	extractor := domain.NewSimpleExtractor(
		[]string{"good", "great", "excellent", "love", "happy", "wonderful"},
		[]string{"bad", "terrible", "awful", "hate", "sad", "horrible"},
	)
	features := extractor.Extract(args[0])
	fmt.Printf("features: %v\n", features)
	return nil
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
