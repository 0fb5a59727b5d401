package file

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/custodia-labs/juris/internal/core/domain"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "JURIS"

// envOverlay mirrors the overridable settings. Nil fields were not set.
type envOverlay struct {
	CorpusDir          *string        `envconfig:"CORPUS_DIR"`
	DataDir            *string        `envconfig:"DATA_DIR"`
	HTTPAddr           *string        `envconfig:"HTTP_ADDR"`
	ProcessingInterval *time.Duration `envconfig:"PROCESSING_INTERVAL"`
	CleanupInterval    *time.Duration `envconfig:"CLEANUP_INTERVAL"`
	DeviceRetention    *time.Duration `envconfig:"DEVICE_RETENTION"`
	ExtractionTimeout  *time.Duration `envconfig:"EXTRACTION_TIMEOUT"`
	MaxFileSize        *int64         `envconfig:"MAX_FILE_SIZE"`
	SearchThreshold    *float64       `envconfig:"SEARCH_THRESHOLD"`
	SimilarThreshold   *float64       `envconfig:"SIMILAR_THRESHOLD"`
	WeightTitle        *float64       `envconfig:"WEIGHT_TITLE"`
	WeightSummary      *float64       `envconfig:"WEIGHT_SUMMARY"`
	WeightContent      *float64       `envconfig:"WEIGHT_CONTENT"`
	SummarySentences   *int           `envconfig:"SUMMARY_SENTENCES"`
	MaxKeywords        *int           `envconfig:"MAX_KEYWORDS"`
	AntiwordPath       *string        `envconfig:"ANTIWORD_PATH"`
	SchedulerEnabled   *bool          `envconfig:"SCHEDULER_ENABLED"`
}

// LoadDotEnv loads variables from the given .env files that exist.
// Variables already present in the environment are not overridden.
func LoadDotEnv(paths ...string) error {
	var existing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings with JURIS_* environment variables.
func ApplyEnv(settings *domain.AppSettings) error {
	var o envOverlay
	if err := envconfig.Process(EnvPrefix, &o); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	setString(&settings.CorpusDir, o.CorpusDir)
	setString(&settings.DataDir, o.DataDir)
	setString(&settings.HTTPAddr, o.HTTPAddr)
	setString(&settings.AntiwordPath, o.AntiwordPath)
	setDuration(&settings.ProcessingInterval, o.ProcessingInterval)
	setDuration(&settings.CleanupInterval, o.CleanupInterval)
	setDuration(&settings.DeviceRetention, o.DeviceRetention)
	setDuration(&settings.ExtractionTimeout, o.ExtractionTimeout)
	setFloat(&settings.SearchThreshold, o.SearchThreshold)
	setFloat(&settings.SimilarThreshold, o.SimilarThreshold)
	setFloat(&settings.Weights.Title, o.WeightTitle)
	setFloat(&settings.Weights.Summary, o.WeightSummary)
	setFloat(&settings.Weights.Content, o.WeightContent)
	setInt(&settings.SummarySentences, o.SummarySentences)
	setInt(&settings.MaxKeywords, o.MaxKeywords)
	if o.MaxFileSize != nil {
		settings.MaxFileSize = *o.MaxFileSize
	}
	if o.SchedulerEnabled != nil {
		settings.SchedulerEnabled = *o.SchedulerEnabled
	}

	return settings.Validate()
}

func setString(dst, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst, src *time.Duration) {
	if src != nil {
		*dst = *src
	}
}

func setFloat(dst, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst, src *int) {
	if src != nil {
		*dst = *src
	}
}
