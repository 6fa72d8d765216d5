package genome

import (
	"math"
	"math/rand"
	"testing"
)

func TestCloneIsIndependent(t *testing.T) {
	g := Genome{1, 2, 3}
	clone := g.Clone()
	clone[0] = 99
	if g[0] == 99 {
		t.Fatalf("Clone shared backing array with original")
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Genome
		want bool
	}{
		{"identical", Genome{1, 2, 3}, Genome{1, 2, 3}, true},
		{"different length", Genome{1, 2}, Genome{1, 2, 3}, false},
		{"different bytes", Genome{1, 2, 3}, Genome{1, 2, 4}, false},
		{"both empty", Genome{}, Genome{}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Equal(c.a, c.b); got != c.want {
				t.Fatalf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestHammingDistance(t *testing.T) {
	a := Genome{0, 0, 0, 0}
	b := Genome{1, 0, 1, 0}
	if got := HammingDistance(a, a); got != 0.0 {
		t.Fatalf("distance to self = %v, want 0", got)
	}
	if got := HammingDistance(a, b); got != 0.5 {
		t.Fatalf("distance = %v, want 0.5", got)
	}
	if got := HammingDistance(Genome{1}, Genome{1, 2}); got != 1.0 {
		t.Fatalf("mismatched length distance = %v, want 1.0", got)
	}
}

func TestRandomProducesRequestedLength(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := Random(rng, 48)
	if len(g) != 48 {
		t.Fatalf("len(Random) = %d, want 48", len(g))
	}
}

func TestClampFitness(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0.5, 0.5},
		{-1.0, 0.0},
		{2.0, 1.0},
		{math.NaN(), 0.0},
	}
	for _, c := range cases {
		if got := ClampFitness(c.in); got != c.want && !(isNaN(c.in) && got == 0.0) {
			t.Fatalf("ClampFitness(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func isNaN(f float64) bool { return f != f }
