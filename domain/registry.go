package domain

import (
	"fmt"

	"github.com/brennigan/evocore/classifier"
	"github.com/brennigan/evocore/ga"
)

// Constructor builds a fresh ga.Domain instance by name.
type Constructor func() ga.Domain

// Registry maps domain names to constructors, the same preset-lookup shape
// the teacher uses for named fitness styles (evolution/fitness.StylePresets),
// generalized from a map of weight tables to a map of domain factories.
var Registry = map[string]Constructor{
	"fibonacci": func() ga.Domain { return NewFibonacci() },
	"powers-of-two": func() ga.Domain { return NewPowersOfTwo() },
	"sentiment": func() ga.Domain {
		return NewSentiment(defaultSentimentCorpus())
	},
}

// New builds the named domain, or an error if the name is unregistered.
func New(name string) (ga.Domain, error) {
	ctor, ok := Registry[name]
	if !ok {
		return nil, fmt.Errorf("domain: unknown domain %q", name)
	}
	return ctor(), nil
}

// defaultSentimentCorpus is a tiny built-in training set so the sentiment
// domain is runnable out of the box; real deployments supply their own via
// NewSentiment directly.
func defaultSentimentCorpus() []LabeledExample {
	extractor := NewSimpleExtractor(
		[]string{"good", "great", "excellent", "love", "happy", "wonderful"},
		[]string{"bad", "terrible", "awful", "hate", "sad", "horrible"},
	)
	samples := []struct {
		text string
		want classifier.Class
	}{
		{"this is a great and wonderful day", classifier.Positive},
		{"i love this so much", classifier.Positive},
		{"absolutely excellent work", classifier.Positive},
		{"this is terrible and awful", classifier.Negative},
		{"i hate this horrible outcome", classifier.Negative},
		{"such a sad and bad result", classifier.Negative},
	}

	examples := make([]LabeledExample, len(samples))
	for i, s := range samples {
		examples[i] = LabeledExample{
			Text:     s.text,
			Features: extractor.Extract(s.text),
			Want:     s.want,
		}
	}
	return examples
}
