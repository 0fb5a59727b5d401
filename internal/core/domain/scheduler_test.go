package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSchedulerConfig(t *testing.T) {
	config := DefaultSchedulerConfig()

	assert.True(t, config.Enabled)
	assert.NotNil(t, config.TaskConfigs)
	assert.Len(t, config.TaskConfigs, 2)
	assert.Equal(t, 30*24*time.Hour, config.DeviceRetention)
	assert.Equal(t, 100, config.HistoryLimit)

	// Document processing runs daily
	docCfg := config.TaskConfigs[TaskIDDocumentProcessing]
	assert.True(t, docCfg.Enabled)
	assert.Equal(t, 24*time.Hour, docCfg.Interval)

	// Device cleanup runs weekly
	cleanupCfg := config.TaskConfigs[TaskIDDeviceCleanup]
	assert.True(t, cleanupCfg.Enabled)
	assert.Equal(t, 7*24*time.Hour, cleanupCfg.Interval)
}

func TestSchedulerConfig_GetTaskConfig(t *testing.T) {
	config := DefaultSchedulerConfig()

	docCfg := config.GetTaskConfig(TaskIDDocumentProcessing)
	assert.True(t, docCfg.Enabled)
	assert.Equal(t, 24*time.Hour, docCfg.Interval)

	unknownCfg := config.GetTaskConfig("unknown-task")
	assert.False(t, unknownCfg.Enabled)
	assert.Equal(t, time.Duration(0), unknownCfg.Interval)
}

func TestSchedulerConfig_GetTaskConfig_NilMap(t *testing.T) {
	config := SchedulerConfig{
		Enabled:     true,
		TaskConfigs: nil,
	}

	cfg := config.GetTaskConfig("any-task")
	assert.False(t, cfg.Enabled)
	assert.Equal(t, time.Duration(0), cfg.Interval)
}

func TestTaskConstants(t *testing.T) {
	assert.Equal(t, "document-processing", TaskIDDocumentProcessing)
	assert.Equal(t, "device-cleanup", TaskIDDeviceCleanup)
}

func TestTaskName(t *testing.T) {
	assert.Equal(t, "Document Processing", TaskName(TaskIDDocumentProcessing))
	assert.Equal(t, "Device Cleanup", TaskName(TaskIDDeviceCleanup))
	assert.Equal(t, "custom", TaskName("custom"))
}

func TestTaskResult_Failed(t *testing.T) {
	now := time.Now()
	result := TaskResult{
		TaskID:         TaskIDDocumentProcessing,
		StartedAt:      now.Add(-5 * time.Minute),
		EndedAt:        now,
		Success:        false,
		Error:          "corpus folder unavailable",
		ItemsProcessed: 0,
		ItemsFailed:    0,
	}

	assert.False(t, result.Success)
	assert.Equal(t, "corpus folder unavailable", result.Error)
}
