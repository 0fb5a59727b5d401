package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
	"github.com/custodia-labs/juris/internal/logger"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyCorpusDir          = "corpus_dir"
	keyDataDir            = "data_dir"
	keyHTTPAddr           = "http_addr"
	keyProcessingInterval = "processing_interval"
	keyCleanupInterval    = "cleanup_interval"
	keyDeviceRetention    = "device_retention"
	keyExtractionTimeout  = "extraction_timeout"
	keyMaxFileSize        = "max_file_size"
	keySearchThreshold    = "search_threshold"
	keySimilarThreshold   = "similar_threshold"
	keyWeightTitle        = "weights.title"
	keyWeightSummary      = "weights.summary"
	keyWeightContent      = "weights.content"
	keySummarySentences   = "summary_sentences"
	keyMaxKeywords        = "max_keywords"
	keyAntiwordPath       = "antiword_path"
	keySchedulerEnabled   = "scheduler.enabled"
)

// settingField binds a config key to a field of AppSettings.
// ptr is one of *string, *time.Duration, *float64, *int, *int64 or *bool.
type settingField struct {
	key string
	ptr any
}

// settingFields lists every persisted setting in display order.
func settingFields(s *domain.AppSettings) []settingField {
	return []settingField{
		{keyCorpusDir, &s.CorpusDir},
		{keyDataDir, &s.DataDir},
		{keyHTTPAddr, &s.HTTPAddr},
		{keyProcessingInterval, &s.ProcessingInterval},
		{keyCleanupInterval, &s.CleanupInterval},
		{keyDeviceRetention, &s.DeviceRetention},
		{keyExtractionTimeout, &s.ExtractionTimeout},
		{keyMaxFileSize, &s.MaxFileSize},
		{keySearchThreshold, &s.SearchThreshold},
		{keySimilarThreshold, &s.SimilarThreshold},
		{keyWeightTitle, &s.Weights.Title},
		{keyWeightSummary, &s.Weights.Summary},
		{keyWeightContent, &s.Weights.Content},
		{keySummarySentences, &s.SummarySentences},
		{keyMaxKeywords, &s.MaxKeywords},
		{keyAntiwordPath, &s.AntiwordPath},
		{keySchedulerEnabled, &s.SchedulerEnabled},
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Keys that are missing or
// hold a value of the wrong type keep their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	settings := domain.DefaultAppSettings()
	for _, f := range settingFields(&settings) {
		s.load(f)
	}
	return &settings, nil
}

// Unknown returns stored keys that no setting recognises, typically typos
// in a hand-edited config file.
func (s *SettingsService) Unknown() []string {
	known := make(map[string]bool)
	for _, k := range s.Keys() {
		known[k] = true
	}
	var unknown []string
	for _, k := range s.configStore.Keys() {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	return unknown
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	values := make(map[string]any)
	for _, f := range settingFields(settings) {
		values[f.key] = storedValue(f.ptr)
	}
	if err := s.configStore.Update(values); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Set parses value for a single key, validates the result and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var field *settingField
	for _, f := range settingFields(settings) {
		if f.key == key {
			field = &f
			break
		}
	}
	if field == nil {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := parseInto(field.ptr, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := s.configStore.Set(key, storedValue(field.ptr)); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys returns the recognised setting keys.
func (s *SettingsService) Keys() []string {
	var settings domain.AppSettings
	fields := settingFields(&settings)
	keys := make([]string, len(fields))
	for i, f := range fields {
		keys[i] = f.key
	}
	return keys
}

// load overwrites the field with the stored value when it has a usable type.
// Mistyped values are logged and skipped.
func (s *SettingsService) load(f settingField) {
	raw, ok := s.configStore.Get(f.key)
	if !ok {
		return
	}
	if !coerce(f.ptr, raw) {
		logger.Warn("Ignoring setting %s: unusable value %v (%T)", f.key, raw, raw)
	}
}

// coerce assigns raw to the field behind ptr. Numbers may arrive as int64
// or float64 and durations as strings.
func coerce(ptr, raw any) bool {
	switch p := ptr.(type) {
	case *string:
		v, ok := raw.(string)
		if ok && v != "" {
			*p = v
		}
		return ok
	case *time.Duration:
		str, ok := raw.(string)
		if !ok {
			return false
		}
		d, err := time.ParseDuration(str)
		if err != nil {
			return false
		}
		*p = d
	case *float64:
		v, ok := number(raw)
		if !ok {
			return false
		}
		*p = v
	case *int:
		v, ok := number(raw)
		if !ok {
			return false
		}
		*p = int(v)
	case *int64:
		v, ok := number(raw)
		if !ok {
			return false
		}
		*p = int64(v)
	case *bool:
		v, ok := raw.(bool)
		if !ok {
			return false
		}
		*p = v
	default:
		return false
	}
	return true
}

func number(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

// parseInto parses value into the field pointed to by ptr.
func parseInto(ptr any, value string) error {
	switch p := ptr.(type) {
	case *string:
		*p = value
	case *time.Duration:
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*p = d
	case *float64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		*p = v
	case *int:
		v, err := strconv.Atoi(value)
		if err != nil {
			return err
		}
		*p = v
	case *int64:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		*p = v
	case *bool:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		*p = v
	default:
		return fmt.Errorf("unsupported setting type %T", ptr)
	}
	return nil
}

// storedValue converts a field to the value written to the config store.
func storedValue(ptr any) any {
	switch p := ptr.(type) {
	case *string:
		return *p
	case *time.Duration:
		return p.String()
	case *float64:
		return *p
	case *int:
		return int64(*p)
	case *int64:
		return *p
	case *bool:
		return *p
	default:
		return nil
	}
}
