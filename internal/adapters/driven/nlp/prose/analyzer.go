// Package prose implements driven.LanguageAnalyzer with the jdkato/prose
// English pipeline: sentence segmentation, part-of-speech tagging and named
// entity recognition. Noun phrases are chunked from the tag sequence.
package prose

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jdkato/prose/v2"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
)

// DefaultMaxRunes is the longest text analysed. Longer texts are rejected so
// feature derivation falls back to its degraded path.
const DefaultMaxRunes = 1_000_000

// Ensure Analyzer implements the interface.
var _ driven.LanguageAnalyzer = (*Analyzer)(nil)

// Analyzer runs the prose pipeline.
type Analyzer struct {
	maxRunes int
}

// New creates an analyzer. A maxRunes of zero selects DefaultMaxRunes.
func New(maxRunes int) *Analyzer {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxRunes
	}
	return &Analyzer{maxRunes: maxRunes}
}

// Analyze segments text and extracts entities and noun phrases.
func (a *Analyzer) Analyze(ctx context.Context, text string) (analysis *domain.Analysis, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n := utf8.RuneCountInString(text); n > a.maxRunes {
		return nil, fmt.Errorf("%w: text has %d characters, limit is %d", domain.ErrAnalyzerUnavailable, n, a.maxRunes)
	}

	// The tagger and entity model can panic on pathological input.
	defer func() {
		if r := recover(); r != nil {
			analysis, err = nil, fmt.Errorf("%w: %v", domain.ErrAnalyzerUnavailable, r)
		}
	}()

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAnalyzerUnavailable, err)
	}

	analysis = &domain.Analysis{
		Sentences:   make([]string, 0, len(doc.Sentences())),
		Entities:    make([]string, 0, len(doc.Entities())),
		NounPhrases: NounPhrases(doc.Tokens()),
	}
	for _, s := range doc.Sentences() {
		if s := strings.TrimSpace(s.Text); s != "" {
			analysis.Sentences = append(analysis.Sentences, s)
		}
	}
	for _, e := range doc.Entities() {
		analysis.Entities = append(analysis.Entities, e.Text)
	}
	return analysis, nil
}

// NounPhrases groups maximal runs of adjectives and nouns that end in a
// noun. Determiners and other tags break a phrase.
func NounPhrases(tokens []prose.Token) []string {
	phrases := []string{}
	var run []prose.Token

	flush := func() {
		// Trailing adjectives are not part of the phrase.
		for len(run) > 0 && !isNoun(run[len(run)-1].Tag) {
			run = run[:len(run)-1]
		}
		if len(run) > 0 {
			words := make([]string, len(run))
			for i, t := range run {
				words[i] = t.Text
			}
			phrases = append(phrases, strings.Join(words, " "))
		}
		run = run[:0]
	}

	for _, t := range tokens {
		if isNoun(t.Tag) || isAdjective(t.Tag) {
			run = append(run, t)
			continue
		}
		flush()
	}
	flush()
	return phrases
}

func isNoun(tag string) bool {
	return strings.HasPrefix(tag, "NN")
}

func isAdjective(tag string) bool {
	return strings.HasPrefix(tag, "JJ")
}
