package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/custodia-labs/juris/internal/core/domain"
	"github.com/custodia-labs/juris/internal/core/ports/driven"
	"github.com/custodia-labs/juris/internal/core/ports/driving"
	"github.com/custodia-labs/juris/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// Scheduler runs corpus processing and device cleanup on fixed intervals.
// A task never overlaps itself: timer fires and manual triggers share one
// in-flight guard per task. Different tasks may run concurrently.
type Scheduler struct {
	config    domain.SchedulerConfig
	store     driven.SchedulerStore
	processor driving.CorpusProcessor
	devices   driven.DeviceStore
	metrics   driven.Metrics
	now       func() time.Time

	mu      sync.Mutex
	running bool
	cron    *cron.Cron

	guardMu  sync.Mutex
	inFlight map[string]bool
}

// NewScheduler creates a scheduler with configuration.
// devices may be nil, in which case the cleanup task does nothing.
func NewScheduler(
	config domain.SchedulerConfig,
	store driven.SchedulerStore,
	processor driving.CorpusProcessor,
	devices driven.DeviceStore,
	metrics driven.Metrics,
) *Scheduler {
	if metrics == nil {
		metrics = driven.NopMetrics{}
	}
	if config.HistoryLimit <= 0 {
		config.HistoryLimit = domain.DefaultHistoryLimit
	}
	if config.DeviceRetention <= 0 {
		config.DeviceRetention = domain.DefaultDeviceRetention
	}
	return &Scheduler{
		config:    config,
		store:     store,
		processor: processor,
		devices:   devices,
		metrics:   metrics,
		now:       time.Now,
		inFlight:  make(map[string]bool),
	}
}

// Start registers the enabled tasks and starts the timers. It returns
// immediately; tasks run until Stop. Overdue tasks run once right away.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return nil
	}
	if !s.config.Enabled {
		logger.Info("scheduler: disabled")
		return nil
	}

	c := cron.New(
		cron.WithLogger(logger.CronLogger{}),
		cron.WithChain(cron.Recover(logger.CronLogger{}), cron.SkipIfStillRunning(logger.CronLogger{})),
	)

	for _, id := range []string{domain.TaskIDDocumentProcessing, domain.TaskIDDeviceCleanup} {
		cfg := s.config.GetTaskConfig(id)
		if !cfg.Enabled || cfg.Interval <= 0 {
			continue
		}
		task, err := s.ensureTask(ctx, id, cfg)
		if err != nil {
			return fmt.Errorf("initialising task %s: %w", id, err)
		}

		taskID := id
		c.Schedule(newResumeSchedule(task.NextRun, cfg.Interval), cron.FuncJob(func() {
			s.runTask(ctx, taskID)
		}))
		logger.L().Info("scheduler: task registered",
			zap.String("task", id),
			zap.Duration("interval", cfg.Interval),
			zap.Time("next_run", task.NextRun))
	}

	c.Start()
	s.cron = c
	s.running = true
	return nil
}

// Stop halts the timers and waits for in-flight tasks to finish.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	c := s.cron
	s.cron = nil
	s.running = false
	s.mu.Unlock()

	<-c.Stop().Done()
	logger.Info("scheduler: stopped")
	return nil
}

// IsRunning reports whether the scheduler has been started.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// TriggerDocumentProcessing runs the processing task now, synchronously.
func (s *Scheduler) TriggerDocumentProcessing(ctx context.Context) (domain.ProcessingReport, error) {
	if !s.acquire(domain.TaskIDDocumentProcessing) {
		return domain.ProcessingReport{}, domain.ErrProcessingInProgress
	}
	defer s.release(domain.TaskIDDocumentProcessing)

	started := s.now()
	report, err := s.processDocuments(ctx)
	s.finishTask(ctx, domain.TaskIDDocumentProcessing, domain.TriggerManual, started, report.Processed, report.Errors, err)
	return report, err
}

// Tasks returns the persisted state of every scheduled task.
func (s *Scheduler) Tasks(ctx context.Context) ([]domain.ScheduledTask, error) {
	return s.store.ListTasks(ctx)
}

// History returns recent results for a task, most recent first.
func (s *Scheduler) History(ctx context.Context, taskID string, limit int) ([]domain.TaskResult, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.History(ctx, taskID, limit)
}

// ensureTask creates or updates a task in the store.
func (s *Scheduler) ensureTask(ctx context.Context, id string, cfg domain.TaskConfig) (*domain.ScheduledTask, error) {
	task, err := s.store.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if task == nil {
		task = &domain.ScheduledTask{
			ID:       id,
			Name:     domain.TaskName(id),
			Interval: cfg.Interval,
			Enabled:  cfg.Enabled,
			NextRun:  now.Add(cfg.Interval),
		}
	} else {
		if task.Interval != cfg.Interval {
			task.Interval = cfg.Interval
			task.NextRun = now.Add(cfg.Interval)
		}
		task.Enabled = cfg.Enabled
	}

	if err := s.store.SaveTask(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// runTask executes a task on a timer fire unless it is already in flight.
func (s *Scheduler) runTask(ctx context.Context, taskID string) {
	if !s.acquire(taskID) {
		logger.Debug("scheduler: %s still running, skipping", taskID)
		return
	}
	defer s.release(taskID)

	started := s.now()
	switch taskID {
	case domain.TaskIDDocumentProcessing:
		report, err := s.processDocuments(ctx)
		s.finishTask(ctx, taskID, domain.TriggerScheduled, started, report.Processed, report.Errors, err)
	case domain.TaskIDDeviceCleanup:
		n, err := s.cleanupDevices(ctx)
		s.finishTask(ctx, taskID, domain.TriggerScheduled, started, n, 0, err)
	default:
		logger.Warn("scheduler: unknown task ID: %s", taskID)
	}
}

// processDocuments runs the corpus processor over the configured folder.
func (s *Scheduler) processDocuments(ctx context.Context) (domain.ProcessingReport, error) {
	if s.processor == nil {
		return domain.ProcessingReport{}, nil
	}
	report, err := s.processor.ProcessAll(ctx, s.config.CorpusDir, domain.ProcessOptions{})
	if err != nil {
		logger.L().Warn("scheduler: document processing did not run",
			zap.String("folder", s.config.CorpusDir), zap.Error(err))
		return report, err
	}
	logger.L().Info("scheduler: document processing finished",
		zap.Int("processed", report.Processed),
		zap.Int("errors", report.Errors),
		zap.Int("skipped", report.Skipped),
		zap.Duration("duration", report.Duration()))
	return report, nil
}

// cleanupDevices deactivates devices not seen within the retention window.
func (s *Scheduler) cleanupDevices(ctx context.Context) (int, error) {
	if s.devices == nil {
		return 0, nil
	}
	cutoff := s.now().Add(-s.config.DeviceRetention)
	n, err := s.devices.DeactivateInactive(ctx, cutoff)
	if err != nil {
		logger.L().Error("scheduler: device cleanup failed", zap.Error(err))
		return 0, err
	}
	s.metrics.AddDevicesDeactivated(n)
	logger.L().Info("scheduler: device cleanup finished",
		zap.Int("deactivated", n), zap.Time("cutoff", cutoff))
	return n, nil
}

// finishTask persists task state and records the result.
func (s *Scheduler) finishTask(ctx context.Context, taskID string, trigger domain.Trigger, started time.Time, processed, failed int, runErr error) {
	// Bookkeeping outlives a cancelled run so the outcome is still recorded.
	ctx = context.WithoutCancel(ctx)
	ended := s.now()

	result := &domain.TaskResult{
		TaskID:         taskID,
		StartedAt:      started,
		EndedAt:        ended,
		Success:        runErr == nil,
		ItemsProcessed: processed,
		ItemsFailed:    failed,
		Trigger:        trigger,
	}
	if runErr != nil {
		result.Error = runErr.Error()
	}

	task, err := s.store.GetTask(ctx, taskID)
	if err != nil {
		logger.Warn("scheduler: failed to load task %s: %v", taskID, err)
	}
	if task == nil {
		cfg := s.config.GetTaskConfig(taskID)
		task = &domain.ScheduledTask{ID: taskID, Name: domain.TaskName(taskID), Interval: cfg.Interval, Enabled: cfg.Enabled}
	}
	task.LastRun = started
	if task.Interval > 0 {
		task.NextRun = ended.Add(task.Interval)
	}
	if runErr != nil {
		task.LastError = runErr.Error()
	} else {
		task.LastError = ""
		task.LastSuccess = ended
	}

	if err := s.store.SaveTask(ctx, task); err != nil {
		logger.Warn("scheduler: failed to save task %s: %v", taskID, err)
	}
	if err := s.store.RecordResult(ctx, result, s.config.HistoryLimit); err != nil {
		logger.Warn("scheduler: failed to record result for %s: %v", taskID, err)
	}
}

func (s *Scheduler) acquire(taskID string) bool {
	s.guardMu.Lock()
	defer s.guardMu.Unlock()
	if s.inFlight[taskID] {
		return false
	}
	s.inFlight[taskID] = true
	return true
}

func (s *Scheduler) release(taskID string) {
	s.guardMu.Lock()
	defer s.guardMu.Unlock()
	delete(s.inFlight, taskID)
}

// resumeSchedule fires first at a persisted next run time, or immediately
// if that time has passed, then every interval.
type resumeSchedule struct {
	first time.Time
	every cron.ConstantDelaySchedule
	used  bool
}

func newResumeSchedule(first time.Time, interval time.Duration) *resumeSchedule {
	return &resumeSchedule{first: first, every: cron.Every(interval)}
}

// Next implements cron.Schedule. The cron runner calls it from a single goroutine.
func (r *resumeSchedule) Next(t time.Time) time.Time {
	if r.used {
		return r.every.Next(t)
	}
	r.used = true
	if r.first.IsZero() || !r.first.After(t) {
		return t
	}
	return r.first
}
