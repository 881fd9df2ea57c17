package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T) *Watcher {
	t.Helper()
	w, err := New(20 * time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	go w.Run(ctx)
	t.Cleanup(func() {
		cancel()
		w.Close()
	})
	return w
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.csv")
	require.NoError(t, os.WriteFile(path, []byte("question,answer1\n"), 0o644))

	var reloads atomic.Int32
	w := startWatcher(t)
	require.NoError(t, w.Add(path, ReloaderFunc(func() error {
		reloads.Add(1)
		return nil
	})))

	// Act: несколько записей подряд схлопываются в одну перезагрузку
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte("question,answer1\nq,a\n"), 0o644))
	}

	// Assert
	assert.Eventually(t, func() bool { return reloads.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_ReloadsOnAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trivia.csv")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	var reloads atomic.Int32
	w := startWatcher(t)
	require.NoError(t, w.Add(path, ReloaderFunc(func() error {
		reloads.Add(1)
		return nil
	})))

	tmp := filepath.Join(dir, ".trivia.csv.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("new"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	assert.Eventually(t, func() bool { return reloads.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "questions.csv")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	var reloads atomic.Int32
	w := startWatcher(t)
	require.NoError(t, w.Add(path, ReloaderFunc(func() error {
		reloads.Add(1)
		return nil
	})))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.csv"), []byte("x"), 0o644))
	time.Sleep(150 * time.Millisecond)

	assert.Equal(t, int32(0), reloads.Load())
}
