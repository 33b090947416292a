package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/printcal/internal/watcher"
)

func newWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{
		Path:     path,
		Debounce: 50 * time.Millisecond,
	})
	require.NoError(t, err, "failed to create watcher")
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err, "failed to start watcher")
	return onChange
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "printcal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: {}"), 0o644))

	onChange := newWatcher(t, path)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("# %d", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "printcal.yaml")
	other := filepath.Join(dir, "state.json")
	require.NoError(t, os.WriteFile(path, []byte("ui: {}"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("{}"), 0o644))

	onChange := newWatcher(t, path)

	require.NoError(t, os.WriteFile(other, []byte(`{"notes":{}}`), 0o644))

	select {
	case <-onChange:
		t.Fatal("should not notify for unrelated files")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_AtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "printcal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: {}"), 0o644))

	onChange := newWatcher(t, path)

	tmp := filepath.Join(dir, ".printcal.yaml.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("ui:\n  show_counts: false\n"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	select {
	case <-onChange:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected notification for replaced file")
	}
}

func TestWatcher_Stop(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "printcal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui: {}"), 0o644))

	w, err := watcher.New(watcher.Config{Path: path, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	_, err = w.Start()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, w.Stop(), "Stop returned error")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestWaitCmd(t *testing.T) {
	require.Nil(t, watcher.WaitCmd(nil))

	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	msg := watcher.WaitCmd(ch)()
	require.IsType(t, watcher.ChangedMsg{}, msg)

	close(ch)
	require.Nil(t, watcher.WaitCmd(ch)())
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/tmp/printcal.yaml")

	assert.Equal(t, "/tmp/printcal.yaml", cfg.Path)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
}
