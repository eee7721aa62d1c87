package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, path string, calls *atomic.Int32) {
	t.Helper()
	w, err := NewRegistryWatcher(path, func(context.Context) error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)
	w.WithDebounce(150 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})
	// give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)
}

func TestRegistryWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: a\n"), 0o600))

	var calls atomic.Int32
	startWatcher(t, path, &calls)

	for i := range 3 {
		require.NoError(t, os.WriteFile(path, []byte("title: "+string(rune('b'+i))+"\n"), 0o600))
	}

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(400 * time.Millisecond)
	require.Equal(t, int32(1), calls.Load())
}

func TestRegistryWatcherSeesAtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: a\n"), 0o600))

	var calls atomic.Int32
	startWatcher(t, path, &calls)

	tmp := path + ".tmp"
	require.NoError(t, os.WriteFile(tmp, []byte("title: b\n"), 0o600))
	require.NoError(t, os.Rename(tmp, path))

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestRegistryWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slides.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: a\n"), 0o600))

	var calls atomic.Int32
	startWatcher(t, path, &calls)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "slides.qmd"), []byte("x"), 0o600))
	time.Sleep(500 * time.Millisecond)
	require.Zero(t, calls.Load())
}
