package features

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/logger"
)

const (
	// fallbackSummaryRunes is the prefix length used when no sentences are available.
	fallbackSummaryRunes = 500

	// minKeywordRunes is the length a keyword must exceed.
	minKeywordRunes = 2
)

// Options configures feature derivation.
type Options struct {
	// SummarySentences is the sentence count at or below which every sentence is kept.
	SummarySentences int

	// MaxKeywords caps the keyword set.
	MaxKeywords int

	// Timeout bounds language analysis of one text. When it expires the
	// degraded summary is used.
	Timeout time.Duration
}

// DefaultOptions returns the default derivation options.
func DefaultOptions() Options {
	return Options{
		SummarySentences: domain.DefaultSummarySentences,
		MaxKeywords:      domain.DefaultMaxKeywords,
		Timeout:          domain.DefaultExtractionTimeout,
	}
}

// Ensure Extractor implements the interface.
var _ driven.FeatureDeriver = (*Extractor)(nil)

// Extractor derives features from raw text.
type Extractor struct {
	analyzer driven.LanguageAnalyzer
	opts     Options
}

// New creates a feature extractor. A nil analyzer selects the degraded path.
func New(analyzer driven.LanguageAnalyzer, opts Options) *Extractor {
	if opts.SummarySentences < 1 {
		opts.SummarySentences = domain.DefaultSummarySentences
	}
	if opts.MaxKeywords < 1 {
		opts.MaxKeywords = domain.DefaultMaxKeywords
	}
	if opts.Timeout <= 0 {
		opts.Timeout = domain.DefaultExtractionTimeout
	}
	return &Extractor{analyzer: analyzer, opts: opts}
}

// Derive computes summary, keywords and word count for rawText.
func (e *Extractor) Derive(ctx context.Context, rawText string) domain.ProcessingResult {
	result := domain.ProcessingResult{
		RawText:   rawText,
		WordCount: domain.CountWords(rawText),
		Keywords:  []string{},
	}

	ctx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	analysis, err := e.analyze(ctx, rawText)
	if err != nil {
		logger.Warn("Feature derivation degraded: %v", err)
		result.Summary = FallbackSummary(rawText)
		return result
	}

	result.Summary = Summarize(analysis.Sentences, e.opts.SummarySentences)
	if result.Summary == "" {
		result.Summary = FallbackSummary(rawText)
	}
	result.Keywords = Keywords(analysis, e.opts.MaxKeywords)
	return result
}

func (e *Extractor) analyze(ctx context.Context, text string) (*domain.Analysis, error) {
	if e.analyzer == nil {
		return nil, domain.ErrAnalyzerUnavailable
	}
	type outcome struct {
		analysis *domain.Analysis
		err      error
	}

	// Buffered so an analyzer that ignores ctx can finish after the deadline.
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- outcome{err: fmt.Errorf("%w: %v", domain.ErrAnalyzerUnavailable, p)}
			}
		}()
		a, err := e.analyzer.Analyze(ctx, text)
		done <- outcome{analysis: a, err: err}
	}()

	var analysis *domain.Analysis
	select {
	case res := <-done:
		if res.err != nil {
			return nil, res.err
		}
		analysis = res.analysis
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if analysis == nil {
		return nil, domain.ErrAnalyzerUnavailable
	}
	return analysis, nil
}

// Summarize selects sentences for an extractive summary.
// Up to limit sentences are all kept; beyond that the first, middle and
// last sentences are joined.
func Summarize(sentences []string, limit int) string {
	cleaned := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if s = strings.TrimSpace(s); s != "" {
			cleaned = append(cleaned, s)
		}
	}

	n := len(cleaned)
	if n <= limit {
		return strings.Join(cleaned, " ")
	}

	picked := []int{0}
	if n > 2 {
		picked = append(picked, n/2)
	}
	picked = append(picked, n-1)

	parts := make([]string, 0, len(picked))
	seen := make(map[int]bool, len(picked))
	for _, i := range picked {
		if seen[i] {
			continue
		}
		seen[i] = true
		parts = append(parts, cleaned[i])
	}
	return strings.Join(parts, " ")
}

// FallbackSummary returns the first 500 characters of text, with an
// ellipsis when the text is longer.
func FallbackSummary(text string) string {
	if utf8.RuneCountInString(text) <= fallbackSummaryRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:fallbackSummaryRunes]) + "..."
}

// Keywords collects entities followed by noun phrases, dropping short and
// duplicate candidates, capped at limit.
func Keywords(analysis *domain.Analysis, limit int) []string {
	keywords := make([]string, 0, limit)
	if analysis == nil {
		return keywords
	}

	seen := make(map[string]bool)
	candidates := make([]string, 0, len(analysis.Entities)+len(analysis.NounPhrases))
	candidates = append(candidates, analysis.Entities...)
	candidates = append(candidates, analysis.NounPhrases...)

	for _, c := range candidates {
		if len(keywords) >= limit {
			break
		}
		c = strings.TrimSpace(c)
		if utf8.RuneCountInString(c) <= minKeywordRunes || seen[c] {
			continue
		}
		seen[c] = true
		keywords = append(keywords, c)
	}
	return keywords
}
