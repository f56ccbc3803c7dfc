// internal/crosswalk/tfidf_test.go
package crosswalk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitVectorSpace(t *testing.T) {
	texts := []string{
		"fatherhood education classes strengthen parenting skills",
		"case management services coordinate family support",
	}

	space, err := fitVectorSpace(texts, DefaultMaxFeatures)

	require.NoError(t, err)
	assert.NotEmpty(t, space.vocab)
	assert.Len(t, space.idf, len(space.vocab))
}

func TestFitVectorSpace_EmptyCorpus(t *testing.T) {
	_, err := fitVectorSpace(nil, DefaultMaxFeatures)

	assert.Error(t, err)
}

func TestFitVectorSpace_FeatureCap(t *testing.T) {
	texts := []string{
		"alpha bravo charlie delta echo foxtrot golf hotel india juliet",
		"kilo lima mike november oscar papa quebec romeo sierra tango",
	}

	space, err := fitVectorSpace(texts, 5)

	require.NoError(t, err)
	assert.Len(t, space.vocab, 5)
}

func TestFitVectorSpace_Deterministic(t *testing.T) {
	texts := []string{
		"reentry services reduce recidivism through employment",
		"financial literacy builds economic stability",
	}

	a, err := fitVectorSpace(texts, 10)
	require.NoError(t, err)
	b, err := fitVectorSpace(texts, 10)
	require.NoError(t, err)

	assert.Equal(t, a.vocab, b.vocab)
	assert.Equal(t, a.idf, b.idf)
}

func TestCosine_IdenticalTexts(t *testing.T) {
	text := "wraparound case management removes barriers for families"
	space, err := fitVectorSpace([]string{text, "unrelated corpus filler text"}, DefaultMaxFeatures)
	require.NoError(t, err)

	sim := space.cosine(text, text)

	assert.InDelta(t, 1.0, sim, 1e-9)
}

func TestCosine_DisjointTexts(t *testing.T) {
	space, err := fitVectorSpace([]string{
		"fatherhood classes parenting skills",
		"banking credit budgeting management",
	}, DefaultMaxFeatures)
	require.NoError(t, err)

	sim := space.cosine("fatherhood classes parenting", "banking credit budgeting")

	assert.InDelta(t, 0.0, sim, 1e-9)
}

func TestJaccard(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "alpha bravo", b: "alpha bravo", want: 1.0},
		{name: "disjoint", a: "alpha bravo", b: "charlie delta", want: 0.0},
		{name: "half overlap", a: "alpha bravo", b: "alpha charlie", want: 1.0 / 3.0},
		{name: "empty side", a: "", b: "alpha", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, jaccard(tt.a, tt.b), 1e-9)
		})
	}
}

func TestNgrams(t *testing.T) {
	terms := ngrams([]string{"alpha", "bravo", "charlie"})

	assert.Contains(t, terms, "alpha")
	assert.Contains(t, terms, "alpha bravo")
	assert.Contains(t, terms, "bravo charlie")
	assert.Len(t, terms, 5)
}
