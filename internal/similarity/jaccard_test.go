package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{
			name: "identical non-empty sets score 1",
			a:    "the quick brown fox",
			b:    "the quick brown fox",
			want: 1.0,
		},
		{
			name: "disjoint sets score 0",
			a:    "alpha beta",
			b:    "gamma delta",
			want: 0.0,
		},
		{
			name: "partial overlap",
			a:    "the cat sat on the mat",
			b:    "the cat sat on the rug",
			// tokens {the cat sat on mat} vs {the cat sat on rug}: 4/6
			want: 4.0 / 6.0,
		},
		{
			name: "both empty score 0 by convention",
			a:    "",
			b:    "",
			want: 0.0,
		},
		{
			name: "one empty scores 0",
			a:    "something",
			b:    "",
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Jaccard(Normalize(tt.a), Normalize(tt.b))
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestJaccardSymmetryAndRange(t *testing.T) {
	samples := []string{
		"",
		"one",
		"one two three",
		"two three four five",
		"completely different words here",
		"the cat sat on the mat",
	}

	for _, sa := range samples {
		for _, sb := range samples {
			a, b := Normalize(sa), Normalize(sb)

			ab := Jaccard(a, b)
			ba := Jaccard(b, a)

			assert.Equal(t, ab, ba, "score must be symmetric for %q vs %q", sa, sb)
			assert.GreaterOrEqual(t, ab, 0.0)
			assert.LessOrEqual(t, ab, 1.0)
		}
	}
}

func TestJaccardSelfSimilarity(t *testing.T) {
	for _, s := range []string{"hello world", "a b c d e", "", "..."} {
		set := Normalize(s)

		want := 1.0
		if len(set) == 0 {
			want = 0.0
		}
		assert.Equal(t, want, Jaccard(set, set), "input %q", s)
	}
}
