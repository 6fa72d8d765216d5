package reporter

import (
	"fmt"

	progressbar "github.com/schollz/progressbar/v3"

	"github.com/brennigan/evocore/genome"
	"github.com/brennigan/evocore/persistence"
)

// event is an internal message handed from Tick/SaveBest to the Console's
// background goroutine, so the caller (the controller's breeding loop)
// never waits on terminal or filesystem I/O.
type event struct {
	kind       eventKind
	generation int
	best       float64
	avg        float64
	genome     genome.Genome
}

type eventKind int

const (
	eventTick eventKind = iota
	eventSaveBest
)

// Console is a Reporter that renders a live progress bar (grounded on
// tomhoffer-darwinium's executor.Loop) and persists generation snapshots
// via package persistence. It queues every event onto an internal channel
// and processes them on its own goroutine.
type Console struct {
	dir    string
	events chan event
	done   chan struct{}
}

// NewConsole starts a Console reporter that snapshots to dir and expects
// roughly totalGenerations generations (used only to size the progress
// bar; a GenerationLimit of nil callers should pass -1 for an
// indeterminate bar).
func NewConsole(dir string, totalGenerations int) *Console {
	c := &Console{
		dir:    dir,
		events: make(chan event, 64),
		done:   make(chan struct{}),
	}
	go c.run(totalGenerations)
	return c
}

func (c *Console) run(totalGenerations int) {
	defer close(c.done)

	// lastTickGen/lastTickAvg cache the most recent Tick's average fitness,
	// since SaveBest carries no average of its own (Reporter.SaveBest's
	// signature matches spec §6 exactly) but the controller always Ticks a
	// generation before deciding whether to SaveBest it.
	lastTickGen := -1
	var lastTickAvg float64

	bar := progressbar.Default(int64(totalGenerations))
	for ev := range c.events {
		switch ev.kind {
		case eventTick:
			lastTickGen, lastTickAvg = ev.generation, ev.avg
			_ = bar.Set(ev.generation)
			fmt.Printf("\rgeneration %d: best=%.4f avg=%.4f", ev.generation, ev.best, ev.avg)
		case eventSaveBest:
			avg := 0.0
			if ev.generation == lastTickGen {
				avg = lastTickAvg
			}
			if err := persistence.SaveGeneration(c.dir, ev.generation, ev.genome, ev.best, avg); err != nil {
				fmt.Printf("\nwarning: failed to save generation %d: %v\n", ev.generation, err)
			}
		}
	}
}

// Tick queues a progress update. It never blocks the caller on I/O; if the
// internal queue is full the event is dropped rather than stalling
// breeding, since ticks are purely informational.
func (c *Console) Tick(generation int, best, avg float64, bestGenome genome.Genome) {
	select {
	case c.events <- event{kind: eventTick, generation: generation, best: best, avg: avg}:
	default:
	}
}

// SaveBest queues a generation snapshot. Unlike Tick, this is never
// dropped: data loss here would break the resume guarantee.
func (c *Console) SaveBest(generation int, bestFitness float64, bestGenome genome.Genome) {
	c.events <- event{kind: eventSaveBest, generation: generation, best: bestFitness, genome: bestGenome.Clone()}
}

// Close drains any outstanding events and stops the background goroutine.
// Callers should call Close after the controller's Run returns.
func (c *Console) Close() {
	close(c.events)
	<-c.done
}
