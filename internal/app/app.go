// Package app assembles the juris services from configuration.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/custodia-labs/juris/internal/adapters/driven/config/file"
	"github.com/custodia-labs/juris/internal/adapters/driven/metrics"
	"github.com/custodia-labs/juris/internal/adapters/driven/nlp/prose"
	"github.com/custodia-labs/juris/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/juris/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/juris/internal/adapters/driving/cli"
	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/core/services"
	"github.com/custodia-labs/juris/internal/extractors"
	"github.com/custodia-labs/juris/internal/extractors/msdoc"
	"github.com/custodia-labs/juris/internal/features"
	"github.com/custodia-labs/juris/internal/logger"
)

// dotEnvFile is read from the working directory and the config directory.
const dotEnvFile = ".env"

// stores groups the persistence backends.
type stores struct {
	documents driven.DocumentStore
	devices   driven.DeviceStore
	scheduler driven.SchedulerStore
	ping      func(ctx context.Context) error
	close     func() error
}

// Bootstrap builds every service for opts. It satisfies cli.Bootstrap.
func Bootstrap(_ context.Context, opts cli.Options) (*cli.Services, func() error, error) {
	envFiles := []string{dotEnvFile}
	if opts.ConfigDir != "" {
		envFiles = append(envFiles, filepath.Join(opts.ConfigDir, dotEnvFile))
	}
	if err := file.LoadDotEnv(envFiles...); err != nil {
		return nil, nil, err
	}

	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := Settings(settingsService)
	if err != nil {
		return nil, nil, err
	}

	st, err := openStores(opts, settings)
	if err != nil {
		return nil, nil, err
	}

	m := metrics.New()

	converter := msdoc.Detect(settings.AntiwordPath)
	if err := converter.Available(); err != nil {
		logger.Debug("Legacy .doc extraction disabled: %v", err)
	}
	registry := extractors.NewDefaultRegistry(converter, settings.ExtractionTimeout)

	deriver := features.New(prose.New(0), features.Options{
		SummarySentences: settings.SummarySentences,
		MaxKeywords:      settings.MaxKeywords,
		Timeout:          settings.ExtractionTimeout,
	})

	corpus := services.NewCorpusService(st.documents, registry, deriver, m, settings.MaxFileSize)
	search := services.NewSearchService(st.documents, settings.Weights,
		settings.SearchThreshold, settings.SimilarThreshold, m)
	documents := services.NewDocumentService(st.documents, corpus)
	scheduler := services.NewScheduler(settings.SchedulerConfig(), st.scheduler, corpus, st.devices, m)

	logger.L().Debug("services ready",
		zap.String("corpus_dir", settings.CorpusDir),
		zap.Bool("memory", opts.Memory))

	return &cli.Services{
		Corpus:    corpus,
		Search:    search,
		Documents: documents,
		Scheduler: scheduler,
		Settings:  settingsService,
		Metrics:   m.Handler(),
		Health:    st.ping,
	}, st.close, nil
}

// Settings loads the persisted settings with JURIS_* overrides applied.
func Settings(svc *services.SettingsService) (*domain.AppSettings, error) {
	settings, err := svc.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	if err := file.ApplyEnv(settings); err != nil {
		return nil, err
	}
	// Invalid settings still load so 'juris settings' can repair them.
	if err := settings.Validate(); err != nil {
		logger.Warn("Invalid settings: %v", err)
	}
	return settings, nil
}

// DataDir resolves where the database lives. An explicit setting wins,
// then a data folder next to the config file, then the store default.
func DataDir(opts cli.Options, settings *domain.AppSettings) string {
	switch {
	case settings.DataDir != "":
		return settings.DataDir
	case opts.ConfigDir != "":
		return filepath.Join(opts.ConfigDir, "data")
	default:
		return ""
	}
}

func openStores(opts cli.Options, settings *domain.AppSettings) (*stores, error) {
	if opts.Memory {
		return &stores{
			documents: memory.NewDocumentStore(),
			devices:   memory.NewDeviceStore(),
			scheduler: memory.NewSchedulerStore(),
			ping:      func(context.Context) error { return nil },
			close:     func() error { return nil },
		}, nil
	}

	store, err := sqlite.NewStore(DataDir(opts, settings))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	logger.Debug("Using database %s", store.Path())

	return &stores{
		documents: store.DocumentStore(),
		devices:   store.DeviceStore(),
		scheduler: store.SchedulerStore(),
		ping:      store.Ping,
		close:     store.Close,
	}, nil
}
