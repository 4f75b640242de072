package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func startWatcher(t *testing.T, cfg Config) (*Watcher, *atomic.Int32, context.CancelFunc, chan error) {
	t.Helper()

	w, err := New(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	var fired atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func() { fired.Add(1) })
	}()

	return w, &fired, cancel, done
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Dir: dir, Paths: []string{"."}, Debounce: 100 * time.Millisecond}
	_, fired, cancel, done := startWatcher(t, cfg)

	// A burst of writes inside one debounce window triggers one rebuild.
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.go"), []byte("package a\n"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return fired.Load() >= 1 },
		3*time.Second, 10*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_SkipSuppressesEvents(t *testing.T) {
	// fsnotify reports resolved paths, so the fixture dir must be resolved
	// too for the Skip equality check.
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	out := filepath.Join(dir, "context.md")
	cfg := Config{
		Dir:      dir,
		Paths:    []string{"."},
		Debounce: 50 * time.Millisecond,
		Skip:     func(path string) bool { return path == out },
	}
	_, fired, cancel, done := startWatcher(t, cfg)

	require.NoError(t, os.WriteFile(out, []byte("./\n"), 0o644))

	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_AbsolutePathInput(t *testing.T) {
	wd := t.TempDir()
	outside := t.TempDir()

	// An absolute watch path is used as-is, not rebased onto Dir.
	cfg := Config{Dir: wd, Paths: []string{outside}, Debounce: 50 * time.Millisecond}
	_, fired, cancel, done := startWatcher(t, cfg)

	require.NoError(t, os.WriteFile(filepath.Join(outside, "a.go"), []byte("package a\n"), 0o644))

	require.Eventually(t, func() bool { return fired.Load() >= 1 },
		3*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_WatchesCreatedDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Dir: dir, Paths: []string{"."}, Debounce: 50 * time.Millisecond}
	_, fired, cancel, done := startWatcher(t, cfg)

	sub := filepath.Join(dir, "newpkg")
	require.NoError(t, os.Mkdir(sub, 0o755))

	// The mkdir itself fires; wait out its debounce window first.
	require.Eventually(t, func() bool { return fired.Load() >= 1 },
		3*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(sub, "f.go"), []byte("package newpkg\n"), 0o644))
	require.Eventually(t, func() bool { return fired.Load() >= 2 },
		3*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatcher_RunReturnsOnCancel(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{Dir: dir, Paths: []string{"."}}
	_, _, cancel, done := startWatcher(t, cfg)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
