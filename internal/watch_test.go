package internal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	tt "github.com/gnolang/xuan/internal/types"
)

type report struct {
	filename string
	issues   []tt.Issue
}

func TestWatcher(t *testing.T) {
	t.Parallel()

	dir := createTempDir(t, "watch")
	engine, err := NewEngine(dir, nil)
	require.NoError(t, err)

	reports := make(chan report, 16)
	w, err := NewWatcher(engine, zap.NewNop(), []string{dir}, func(filename string, issues []tt.Issue) {
		reports <- report{filename, issues}
	})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	assert.Error(t, w.Start())

	writeFile(t, filepath.Join(dir, "notes.txt"), "do {}\n")
	main := filepath.Join(dir, "main.xuan")
	writeFile(t, main, "do {}\n")

	select {
	case r := <-reports:
		assert.Equal(t, main, r.filename)
		require.NotEmpty(t, r.issues)
		assert.Equal(t, "empty-block", r.issues[0].Rule)
	case <-time.After(5 * time.Second):
		t.Fatal("no report for the written file")
	}

	require.NoError(t, w.Stop())
	assert.Error(t, w.Stop())
}

func TestHasSourceExtension(t *testing.T) {
	t.Parallel()

	assert.True(t, HasSourceExtension("a/b.xuan"))
	assert.False(t, HasSourceExtension("a/b.go"))
	assert.False(t, HasSourceExtension("xuan"))
}
