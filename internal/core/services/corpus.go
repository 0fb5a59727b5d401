package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
	"github.com/custodia-labs/juris/internal/logger"
)

// Ensure CorpusService implements the interface.
var _ driving.CorpusProcessor = (*CorpusService)(nil)

// CorpusService turns files in a flat corpus folder into processed documents.
// Each file is its own unit of work: a failure is counted and the run moves on.
type CorpusService struct {
	docStore  driven.DocumentStore
	extractor driven.TextExtractor
	deriver   driven.FeatureDeriver
	metrics   driven.Metrics
	maxSize   int64

	newID func() string
	now   func() time.Time
}

// NewCorpusService creates a corpus processor.
// A maxSize of zero disables the file size limit.
func NewCorpusService(
	docStore driven.DocumentStore,
	extractor driven.TextExtractor,
	deriver driven.FeatureDeriver,
	metrics driven.Metrics,
	maxSize int64,
) *CorpusService {
	if metrics == nil {
		metrics = driven.NopMetrics{}
	}
	return &CorpusService{
		docStore:  docStore,
		extractor: extractor,
		deriver:   deriver,
		metrics:   metrics,
		maxSize:   maxSize,
		newID:     uuid.NewString,
		now:       time.Now,
	}
}

// ProcessAll processes every regular file directly inside folder, in filename order.
func (s *CorpusService) ProcessAll(ctx context.Context, folder string, opts domain.ProcessOptions) (domain.ProcessingReport, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return domain.ProcessingReport{}, fmt.Errorf("%w: %s: %v", domain.ErrFolderUnavailable, folder, err)
	}

	report := domain.ProcessingReport{StartedAt: s.now()}
	logger.Info("Processing corpus %s (%d entries)", folder, len(entries))

	// os.ReadDir returns entries sorted by filename.
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			report.EndedAt = s.now()
			s.metrics.ObserveProcessingRun(report)
			return report, err
		}

		path := filepath.Join(folder, entry.Name())
		info, ok := regularFile(path, entry)
		if !ok {
			continue
		}

		_, skipped, err := s.process(ctx, path, info, opts.Force)
		switch {
		case err != nil:
			report.Errors++
			report.Failures = append(report.Failures, domain.FileFailure{Filename: entry.Name(), Error: err.Error()})
			logger.L().Warn("document failed", zap.String("file", entry.Name()), zap.Error(err))
		case skipped:
			report.Skipped++
			logger.Debug("Skipping %s: already processed", entry.Name())
		default:
			report.Processed++
			logger.Debug("Processed %s", entry.Name())
		}
	}

	report.EndedAt = s.now()
	s.metrics.ObserveProcessingRun(report)
	logger.L().Info("corpus processed",
		zap.String("folder", folder),
		zap.Int("processed", report.Processed),
		zap.Int("errors", report.Errors),
		zap.Int("skipped", report.Skipped),
		zap.Duration("duration", report.Duration()))
	return report, nil
}

// ProcessFile processes a single file. Without force an already processed
// document is returned unchanged.
func (s *CorpusService) ProcessFile(ctx context.Context, path string, force bool) (*domain.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, err
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", domain.ErrInvalidInput, path)
	}

	doc, _, err := s.process(ctx, path, info, force)
	return doc, err
}

// process runs the pipeline for one file: lookup or create, extract, derive, persist.
func (s *CorpusService) process(ctx context.Context, path string, info fs.FileInfo, force bool) (*domain.Document, bool, error) {
	filename := filepath.Base(path)

	doc, err := s.docStore.GetByFilename(ctx, filename)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		doc = &domain.Document{
			ID:       s.newID(),
			Filename: filename,
			FilePath: path,
			Kind:     s.extractor.Detect(path),
			Size:     info.Size(),
		}
		if err := s.docStore.SaveDocument(ctx, doc); err != nil {
			return nil, false, fmt.Errorf("creating document: %w", err)
		}
	case err != nil:
		return nil, false, fmt.Errorf("looking up document: %w", err)
	case doc.Processed && !force:
		return doc, true, nil
	default:
		kind := s.extractor.Detect(path)
		if doc.FilePath != path || doc.Size != info.Size() || doc.Kind != kind {
			doc.FilePath, doc.Size, doc.Kind = path, info.Size(), kind
			if err := s.docStore.SaveDocument(ctx, doc); err != nil {
				return nil, false, fmt.Errorf("updating document: %w", err)
			}
		}
	}

	if s.maxSize > 0 && info.Size() > s.maxSize {
		return doc, false, fmt.Errorf("%w: file is %d bytes, limit is %d", domain.ErrExtractionFailed, info.Size(), s.maxSize)
	}

	text, err := s.extractor.Extract(ctx, path, doc.Kind)
	if err != nil {
		return doc, false, err
	}

	result := s.deriver.Derive(ctx, text)
	// Derive degrades on cancellation; a stopped run must not store that.
	if err := ctx.Err(); err != nil {
		return doc, false, err
	}
	content := result.ToContent(doc.ID, s.now().UTC())
	if err := s.docStore.CompleteProcessing(ctx, &content); err != nil {
		return doc, false, fmt.Errorf("saving content: %w", err)
	}

	doc.Processed = true
	doc.Content = &content
	return doc, false, nil
}

// regularFile reports whether the entry is a regular file, following symlinks.
func regularFile(path string, entry fs.DirEntry) (fs.FileInfo, bool) {
	if entry.Type().IsRegular() {
		info, err := entry.Info()
		return info, err == nil
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return nil, false
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, false
	}
	return info, true
}
