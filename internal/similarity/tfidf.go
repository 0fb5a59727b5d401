package similarity

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// tokenPattern matches runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// TermCounts maps terms to their raw occurrence count in a text.
type TermCounts map[string]int

// Tokenize lowercases text and splits it into word tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Count tokenizes text and counts each term.
func Count(text string) TermCounts {
	counts := make(TermCounts)
	for _, tok := range Tokenize(text) {
		counts[tok]++
	}
	return counts
}

// Similarity returns the TF-IDF cosine similarity of a and b.
func Similarity(a, b string) float64 {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return 0
	}
	return Cosine(Count(a), Count(b))
}

// Cosine returns the TF-IDF cosine similarity of two term count sets,
// with the inverse document frequency fitted over the pair.
func Cosine(a, b TermCounts) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	vocab := make([]string, 0, len(a)+len(b))
	for term := range a {
		vocab = append(vocab, term)
	}
	for term := range b {
		if _, ok := a[term]; !ok {
			vocab = append(vocab, term)
		}
	}
	sort.Strings(vocab)

	const n = 2.0
	va := make([]float64, len(vocab))
	vb := make([]float64, len(vocab))
	for i, term := range vocab {
		ca, cb := a[term], b[term]
		df := 0.0
		if ca > 0 {
			df++
		}
		if cb > 0 {
			df++
		}
		idf := math.Log((1+n)/(1+df)) + 1
		va[i] = float64(ca) * idf
		vb[i] = float64(cb) * idf
	}

	na, nb := floats.Norm(va, 2), floats.Norm(vb, 2)
	if na == 0 || nb == 0 {
		return 0
	}
	return clamp(floats.Dot(va, vb) / (na * nb))
}

func clamp(x float64) float64 {
	switch {
	case math.IsNaN(x) || x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
