package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_EmptyDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "juris")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, ConfigFile), store.Path())
	assert.Empty(t, store.Keys())
	assert.DirExists(t, dir)
	assert.NoFileExists(t, store.Path())
}

func TestNewConfigStore_ReadsNestedTables(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
corpus_dir = "/srv/contracts"
max_keywords = 12

[weights]
title = 0.2
content = 1

[scheduler]
enabled = false
`)

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"corpus_dir", "max_keywords", "scheduler.enabled", "weights.content", "weights.title"}, store.Keys())

	v, ok := store.Get("corpus_dir")
	assert.True(t, ok)
	assert.Equal(t, "/srv/contracts", v)

	v, _ = store.Get("max_keywords")
	assert.Equal(t, int64(12), v)
	v, _ = store.Get("weights.title")
	assert.Equal(t, 0.2, v)
	v, _ = store.Get("weights.content")
	assert.Equal(t, int64(1), v)
	v, _ = store.Get("scheduler.enabled")
	assert.Equal(t, false, v)

	_, ok = store.Get("weights")
	assert.False(t, ok)
}

func TestNewConfigStore_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "corpus_dir = \n[[[")

	_, err := NewConfigStore(dir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), ConfigFile)
}

func TestConfigStore_SetWritesTables(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("weights.summary", 0.5))
	require.NoError(t, store.Set("processing_interval", "12h0m0s"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[weights]")
	assert.NotContains(t, string(data), `"weights.summary"`)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	v, ok := reopened.Get("weights.summary")
	assert.True(t, ok)
	assert.Equal(t, 0.5, v)
	v, _ = reopened.Get("processing_interval")
	assert.Equal(t, "12h0m0s", v)
}

func TestConfigStore_UpdateKeepsExistingKeys(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "antiword_path = \"/usr/bin/antiword\"\n")
	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	err = store.Update(map[string]any{
		"search_threshold":  0.15,
		"scheduler.enabled": true,
		"max_file_size":     int64(1 << 20),
	})
	require.NoError(t, err)

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"antiword_path", "max_file_size", "scheduler.enabled", "search_threshold"}, reopened.Keys())
	v, _ := reopened.Get("max_file_size")
	assert.Equal(t, int64(1<<20), v)
}

func TestConfigStore_UpdateConflict(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("weights", 1.0))

	err = store.Set("weights.title", 0.3)

	require.Error(t, err)
	_, ok := store.Get("weights.title")
	assert.False(t, ok, "failed write must not change the store")
}

func TestNest(t *testing.T) {
	tree, err := nest(map[string]any{
		"a":     1,
		"b.c":   2,
		"b.d.e": 3,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"a": 1,
		"b": map[string]any{
			"c": 2,
			"d": map[string]any{"e": 3},
		},
	}, tree)

	_, err = nest(map[string]any{"a.b": 1, "a.b.c": 2})
	assert.Error(t, err)
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0600))
}
