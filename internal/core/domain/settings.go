package domain

import (
	"fmt"
	"time"
)

// Settings defaults.
const (
	DefaultCorpusDir         = "sample-documents"
	DefaultHTTPAddr          = ":8080"
	DefaultExtractionTimeout = 2 * time.Minute
	DefaultSummarySentences  = 3
	DefaultMaxKeywords       = 10
	DefaultMaxFileSize       = 16 * 1024 * 1024
	DefaultAntiwordPath      = "antiword"
)

// Weights are the per-field contributions to the overall score.
type Weights struct {
	Title   float64
	Summary float64
	Content float64
}

// DefaultWeights favours the summary over title and full text.
func DefaultWeights() Weights {
	return Weights{Title: 0.3, Summary: 0.4, Content: 0.3}
}

// Validate rejects negative weights.
func (w Weights) Validate() error {
	if w.Title < 0 || w.Summary < 0 || w.Content < 0 {
		return fmt.Errorf("%w: weights must be non-negative", ErrInvalidInput)
	}
	return nil
}

// AppSettings holds all application settings.
type AppSettings struct {
	// CorpusDir is the flat folder scanned for documents.
	CorpusDir string

	// DataDir holds the database and other state. Empty means the config adapter default.
	DataDir string

	// HTTPAddr is the listen address of the HTTP server.
	HTTPAddr string

	// ProcessingInterval is how often the corpus is processed.
	ProcessingInterval time.Duration

	// CleanupInterval is how often inactive devices are cleaned up.
	CleanupInterval time.Duration

	// DeviceRetention is how long a device may stay unseen.
	DeviceRetention time.Duration

	// ExtractionTimeout bounds text extraction of a single file.
	ExtractionTimeout time.Duration

	// MaxFileSize is the largest file, in bytes, that is extracted. Zero disables the limit.
	MaxFileSize int64

	// SearchThreshold is the default minimum overall score for search.
	SearchThreshold float64

	// SimilarThreshold is the default minimum score for similar documents.
	SimilarThreshold float64

	// Weights combine per-field scores.
	Weights Weights

	// SummarySentences is the sentence count at or below which the whole text is the summary.
	SummarySentences int

	// MaxKeywords caps the keyword set.
	MaxKeywords int

	// AntiwordPath is the legacy .doc converter binary.
	AntiwordPath string

	// SchedulerEnabled starts background jobs with the server.
	SchedulerEnabled bool
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		CorpusDir:          DefaultCorpusDir,
		HTTPAddr:           DefaultHTTPAddr,
		ProcessingInterval: DefaultProcessingInterval,
		CleanupInterval:    DefaultCleanupInterval,
		DeviceRetention:    DefaultDeviceRetention,
		ExtractionTimeout:  DefaultExtractionTimeout,
		MaxFileSize:        DefaultMaxFileSize,
		SearchThreshold:    DefaultSearchThreshold,
		SimilarThreshold:   DefaultSimilarThreshold,
		Weights:            DefaultWeights(),
		SummarySentences:   DefaultSummarySentences,
		MaxKeywords:        DefaultMaxKeywords,
		AntiwordPath:       DefaultAntiwordPath,
		SchedulerEnabled:   true,
	}
}

// Validate checks durations are positive and thresholds lie in [0,1].
func (s AppSettings) Validate() error {
	if s.CorpusDir == "" {
		return fmt.Errorf("%w: corpus_dir is required", ErrInvalidInput)
	}
	durations := []struct {
		name string
		d    time.Duration
	}{
		{"processing_interval", s.ProcessingInterval},
		{"cleanup_interval", s.CleanupInterval},
		{"device_retention", s.DeviceRetention},
		{"extraction_timeout", s.ExtractionTimeout},
	}
	for _, d := range durations {
		if d.d <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidInput, d.name)
		}
	}
	if err := ValidateThreshold(s.SearchThreshold); err != nil {
		return fmt.Errorf("search_threshold: %w", err)
	}
	if err := ValidateThreshold(s.SimilarThreshold); err != nil {
		return fmt.Errorf("similar_threshold: %w", err)
	}
	if err := s.Weights.Validate(); err != nil {
		return err
	}
	if s.SummarySentences < 1 {
		return fmt.Errorf("%w: summary_sentences must be at least 1", ErrInvalidInput)
	}
	if s.MaxKeywords < 1 {
		return fmt.Errorf("%w: max_keywords must be at least 1", ErrInvalidInput)
	}
	if s.MaxFileSize < 0 {
		return fmt.Errorf("%w: max_file_size must not be negative", ErrInvalidInput)
	}
	return nil
}

// SchedulerConfig derives the scheduler configuration from the settings.
func (s AppSettings) SchedulerConfig() SchedulerConfig {
	cfg := DefaultSchedulerConfig()
	cfg.Enabled = s.SchedulerEnabled
	cfg.CorpusDir = s.CorpusDir
	cfg.DeviceRetention = s.DeviceRetention
	cfg.TaskConfigs[TaskIDDocumentProcessing] = TaskConfig{Enabled: true, Interval: s.ProcessingInterval}
	cfg.TaskConfigs[TaskIDDeviceCleanup] = TaskConfig{Enabled: true, Interval: s.CleanupInterval}
	return cfg
}

// ValidateThreshold returns ErrInvalidInput unless t lies in [0,1].
func ValidateThreshold(t float64) error {
	if t < 0 || t > 1 {
		return fmt.Errorf("%w: threshold %.2f outside [0,1]", ErrInvalidInput, t)
	}
	return nil
}
