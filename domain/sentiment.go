package domain

import (
	"fmt"
	"math/rand"

	"github.com/brennigan/evocore/classifier"
	"github.com/brennigan/evocore/genome"
)

// LabeledExample is one training example for the sentiment domain: a piece
// of text, its extracted features, and the class it should classify as.
type LabeledExample struct {
	Text     string
	Features [classifier.NumWeights]float64
	Want     classifier.Class
}

// FeatureExtractor converts raw text into the fixed-width feature vector
// the classifier consumes. Production callers supply a real tokenizer-
// backed extractor; SimpleExtractor below is a minimal stand-in used by
// tests and the bundled CLI.
type FeatureExtractor interface {
	Extract(text string) [classifier.NumWeights]float64
}

// Sentiment evolves classifier.Weights against a fixed labeled corpus,
// scoring a genome by the fraction of examples it classifies correctly
// (spec §4.6).
type Sentiment struct {
	examples []LabeledExample
}

// NewSentiment constructs the sentiment domain from a labeled training set.
func NewSentiment(examples []LabeledExample) *Sentiment {
	return &Sentiment{examples: examples}
}

func (s *Sentiment) GenomeSize() int { return classifier.NumWeights }

func (s *Sentiment) RandomGenome(rng *rand.Rand) genome.Genome {
	return genome.Random(rng, classifier.NumWeights)
}

func (s *Sentiment) Evaluate(g genome.Genome) float64 {
	if len(s.examples) == 0 {
		return 0.0
	}
	weights := classifier.NormalizeWeights(g)
	var correct int
	for _, ex := range s.examples {
		got, _, _ := classifier.Classify(weights, ex.Features)
		if got == ex.Want {
			correct++
		}
	}
	return float64(correct) / float64(len(s.examples))
}

// EvaluateStochastic scores a genome against a random minibatch of the
// training corpus rather than the whole set, so Sentiment satisfies
// ga.StochasticDomain and exercises the worker pool's seeded-rng seam
// (spec §5's deterministic-seeding rule). A minibatch of 75% of the corpus
// (minimum 1 example) keeps the score close to the full-corpus Evaluate
// while still depending on the supplied rng.
func (s *Sentiment) EvaluateStochastic(g genome.Genome, rng *rand.Rand) float64 {
	if len(s.examples) == 0 {
		return 0.0
	}
	weights := classifier.NormalizeWeights(g)

	sampleSize := (len(s.examples) * 3) / 4
	if sampleSize < 1 {
		sampleSize = 1
	}

	var correct int
	for _, idx := range rng.Perm(len(s.examples))[:sampleSize] {
		ex := s.examples[idx]
		got, _, _ := classifier.Classify(weights, ex.Features)
		if got == ex.Want {
			correct++
		}
	}
	return float64(correct) / float64(sampleSize)
}

func (s *Sentiment) PerfectFitness() float64 { return 1.0 }

func (s *Sentiment) DisplayResult(g genome.Genome) string {
	weights := classifier.NormalizeWeights(g)
	return fmt.Sprintf("sentiment weights: %v", weights)
}

// SimpleExtractor is a small bag-of-words extractor: feature 0 counts
// positive-lexicon hits, feature 1 counts negative-lexicon hits, feature 2
// counts neutral words, and features 3..49 are left at zero. It exists so
// the domain is runnable without wiring a full NLP pipeline; real corpora
// should supply their own FeatureExtractor.
type SimpleExtractor struct {
	Positive map[string]bool
	Negative map[string]bool
}

// NewSimpleExtractor builds an extractor from explicit word lists.
func NewSimpleExtractor(positive, negative []string) *SimpleExtractor {
	e := &SimpleExtractor{
		Positive: make(map[string]bool, len(positive)),
		Negative: make(map[string]bool, len(negative)),
	}
	for _, w := range positive {
		e.Positive[w] = true
	}
	for _, w := range negative {
		e.Negative[w] = true
	}
	return e
}

func (e *SimpleExtractor) Extract(text string) [classifier.NumWeights]float64 {
	var features [classifier.NumWeights]float64
	for _, word := range tokenize(text) {
		switch {
		case e.Positive[word]:
			features[0]++
		case e.Negative[word]:
			features[1]++
		default:
			features[2]++
		}
	}
	return features
}

func tokenize(text string) []string {
	var words []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			current = append(current, toLower(r))
		} else {
			flush()
		}
	}
	flush()
	return words
}

func toLower(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r - 'A' + 'a'
	}
	return r
}
