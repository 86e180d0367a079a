package internal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnolang/xuan/internal/types"
)

func sampleIssues(filename string) []tt.Issue {
	return []tt.Issue{
		{
			Rule:     "empty-block",
			Filename: filename,
			Message:  "empty do block",
			Start:    tt.Position{Filename: filename, Line: 1, Column: 1},
			End:      tt.Position{Filename: filename, Offset: 4, Line: 1, Column: 5},
			Severity: tt.SeverityWarning,
		},
	}
}

func TestCache(t *testing.T) {
	t.Parallel()

	tmpDir := createTempDir(t, "cache-test")
	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)

	t.Run("NotFound", func(t *testing.T) {
		_, found := cache.Get(filepath.Join(tmpDir, "nonexistent.xuan"))
		assert.False(t, found)
	})

	t.Run("SetAndGet", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "main.xuan")
		writeFile(t, filename, "do {}\n")

		issues := sampleIssues(filename)
		require.NoError(t, cache.Set(filename, issues))

		loaded, found := cache.Get(filename)
		assert.True(t, found)
		assert.Equal(t, issues, loaded)
	})

	t.Run("FileModified", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "modified.xuan")
		writeFile(t, filename, "do {}\n")
		require.NoError(t, cache.Set(filename, sampleIssues(filename)))

		writeFile(t, filename, "do {\n1\n}\n")

		_, found := cache.Get(filename)
		assert.False(t, found)
	})

	t.Run("ModTimeChanged", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "touched.xuan")
		writeFile(t, filename, "do {}\n")
		require.NoError(t, cache.Set(filename, sampleIssues(filename)))

		later := time.Now().Add(time.Hour)
		require.NoError(t, os.Chtimes(filename, later, later))

		_, found := cache.Get(filename)
		assert.False(t, found)
	})

	t.Run("InvalidateAll", func(t *testing.T) {
		filename := filepath.Join(tmpDir, "invalidate.xuan")
		writeFile(t, filename, "do {}\n")
		require.NoError(t, cache.Set(filename, sampleIssues(filename)))

		cache.InvalidateAll()

		_, found := cache.Get(filename)
		assert.False(t, found)
	})
}

func TestCachePersistence(t *testing.T) {
	t.Parallel()

	tmpDir := createTempDir(t, "cache-persist")
	cacheDir := filepath.Join(tmpDir, "cache")
	filename := filepath.Join(tmpDir, "main.xuan")
	writeFile(t, filename, "do {}\n")

	cache, err := NewCache(cacheDir)
	require.NoError(t, err)
	issues := sampleIssues(filename)
	require.NoError(t, cache.Set(filename, issues))

	reloaded, err := NewCache(cacheDir)
	require.NoError(t, err)

	loaded, found := reloaded.Get(filename)
	require.True(t, found)
	assert.Equal(t, issues, loaded)
}

func TestCacheMaxAge(t *testing.T) {
	t.Parallel()

	tmpDir := createTempDir(t, "cache-age")
	filename := filepath.Join(tmpDir, "main.xuan")
	writeFile(t, filename, "do {}\n")

	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)
	cache.SetMaxAge(time.Millisecond)
	require.NoError(t, cache.Set(filename, sampleIssues(filename)))

	time.Sleep(5 * time.Millisecond)

	_, found := cache.Get(filename)
	assert.False(t, found)
}

func TestCacheDependencies(t *testing.T) {
	t.Parallel()

	tmpDir := createTempDir(t, "cache-deps")
	filename := filepath.Join(tmpDir, "main.xuan")
	config := filepath.Join(tmpDir, ".xuan.yaml")
	writeFile(t, filename, "do {}\n")
	writeFile(t, config, "name: xuan\n")

	cache, err := NewCache(filepath.Join(tmpDir, "cache"))
	require.NoError(t, err)
	require.NoError(t, cache.AddDependency(config))
	require.NoError(t, cache.Set(filename, sampleIssues(filename)))

	_, found := cache.Get(filename)
	require.True(t, found)

	writeFile(t, config, "name: xuan\nrules:\n  empty-block:\n    severity: OFF\n")

	_, found = cache.Get(filename)
	assert.False(t, found)

	assert.Error(t, cache.AddDependency(filepath.Join(tmpDir, "missing.yaml")))
}

func TestCacheDependenciesAcrossRuns(t *testing.T) {
	t.Parallel()

	tmpDir := createTempDir(t, "cache-deps-runs")
	filename := filepath.Join(tmpDir, "main.xuan")
	config := filepath.Join(tmpDir, ".xuan.yaml")
	cacheDir := filepath.Join(tmpDir, "cache")
	writeFile(t, filename, "do {}\n")
	writeFile(t, config, "name: xuan\n")

	first, err := NewCache(cacheDir)
	require.NoError(t, err)
	require.NoError(t, first.AddDependency(config))
	require.NoError(t, first.Set(filename, sampleIssues(filename)))

	// unchanged configuration keeps the entries of the previous run
	same, err := NewCache(cacheDir)
	require.NoError(t, err)
	require.NoError(t, same.AddDependency(config))
	_, found := same.Get(filename)
	require.True(t, found)

	writeFile(t, config, "name: xuan\nrules:\n  empty-block:\n    severity: OFF\n")

	second, err := NewCache(cacheDir)
	require.NoError(t, err)
	require.NoError(t, second.AddDependency(config))
	_, found = second.Get(filename)
	assert.False(t, found)

	// the dropped entries stay dropped on disk
	third, err := NewCache(cacheDir)
	require.NoError(t, err)
	_, found = third.Get(filename)
	assert.False(t, found)
}

func TestCacheDependencyAddedLater(t *testing.T) {
	t.Parallel()

	tmpDir := createTempDir(t, "cache-deps-later")
	filename := filepath.Join(tmpDir, "main.xuan")
	config := filepath.Join(tmpDir, ".xuan.yaml")
	cacheDir := filepath.Join(tmpDir, "cache")
	writeFile(t, filename, "do {}\n")
	writeFile(t, config, "name: xuan\n")

	first, err := NewCache(cacheDir)
	require.NoError(t, err)
	require.NoError(t, first.Set(filename, sampleIssues(filename)))

	second, err := NewCache(cacheDir)
	require.NoError(t, err)
	require.NoError(t, second.AddDependency(config))
	_, found := second.Get(filename)
	assert.False(t, found)
}
