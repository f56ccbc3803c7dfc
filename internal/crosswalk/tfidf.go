// internal/crosswalk/tfidf.go
package crosswalk

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/bbalet/stopwords"
	prose "github.com/jdkato/prose/v2"
)

// vectorSpace is a TF-IDF model over unigrams and bigrams, fitted once
// from corpus text and read-only afterwards.
type vectorSpace struct {
	vocab map[string]int
	idf   []float64
}

// tokenize lowercases, strips English stop-words, and splits into word
// tokens. Falls back to whitespace splitting if NLP tokenization fails.
func tokenize(text string) []string {
	cleaned := stopwords.CleanString(text, "en", false)

	doc, err := prose.NewDocument(cleaned, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return fieldsLower(cleaned)
	}

	var tokens []string
	for _, tok := range doc.Tokens() {
		word := strings.ToLower(strings.TrimSpace(tok.Text))
		if word != "" && hasLetterOrDigit(word) {
			tokens = append(tokens, word)
		}
	}
	if len(tokens) == 0 {
		return fieldsLower(cleaned)
	}
	return tokens
}

func fieldsLower(text string) []string {
	var tokens []string
	for _, f := range strings.Fields(text) {
		word := strings.ToLower(f)
		if hasLetterOrDigit(word) {
			tokens = append(tokens, word)
		}
	}
	return tokens
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return true
		}
	}
	return false
}

// ngrams expands tokens into unigrams plus adjacent bigrams.
func ngrams(tokens []string) []string {
	terms := make([]string, 0, len(tokens)*2)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// fitVectorSpace builds the vocabulary and smoothed IDF weights from the
// corpus documents. When the vocabulary exceeds maxFeatures, the terms
// with the highest document frequency are kept, ties broken
// lexicographically for determinism.
func fitVectorSpace(texts []string, maxFeatures int) (*vectorSpace, error) {
	if len(texts) == 0 {
		return nil, errors.New("no corpus text to fit")
	}

	df := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]bool)
		for _, term := range ngrams(tokenize(text)) {
			if !seen[term] {
				seen[term] = true
				df[term]++
			}
		}
	}
	if len(df) == 0 {
		return nil, errors.New("corpus text produced no terms")
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	space := &vectorSpace{
		vocab: make(map[string]int, len(terms)),
		idf:   make([]float64, len(terms)),
	}
	n := float64(len(texts))
	for i, term := range terms {
		space.vocab[term] = i
		space.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return space, nil
}

// vector returns the l2-normalized sparse TF-IDF vector for a text.
func (v *vectorSpace) vector(text string) map[int]float64 {
	counts := make(map[int]float64)
	for _, term := range ngrams(tokenize(text)) {
		if idx, ok := v.vocab[term]; ok {
			counts[idx]++
		}
	}

	var norm float64
	for idx := range counts {
		counts[idx] *= v.idf[idx]
		norm += counts[idx] * counts[idx]
	}
	if norm == 0 {
		return counts
	}
	norm = math.Sqrt(norm)
	for idx := range counts {
		counts[idx] /= norm
	}
	return counts
}

// cosine computes cosine similarity of two texts within the fitted space.
func (v *vectorSpace) cosine(a, b string) float64 {
	va := v.vector(a)
	vb := v.vector(b)
	if len(va) == 0 || len(vb) == 0 {
		return 0.0
	}

	var dot float64
	for idx, w := range va {
		if wb, ok := vb[idx]; ok {
			dot += w * wb
		}
	}
	if dot > 1.0 {
		dot = 1.0
	}
	return dot
}

// jaccard is the deterministic token-overlap fallback used when the
// vector space could not be fitted.
func jaccard(a, b string) float64 {
	setA := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(a)) {
		setA[tok] = true
	}
	setB := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(b)) {
		setB[tok] = true
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0.0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}
