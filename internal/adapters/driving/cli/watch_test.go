package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIngestEvent(t *testing.T) {
	dir := t.TempDir()
	visible := filepath.Join(dir, "contrat.txt")
	require.NoError(t, os.WriteFile(visible, []byte("texte"), 0o600))
	hidden := filepath.Join(dir, ".contrat.txt.swp")
	require.NoError(t, os.WriteFile(hidden, []byte("swap"), 0o600))

	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{
			name:     "create of a regular file",
			event:    fsnotify.Event{Name: visible, Op: fsnotify.Create},
			expected: true,
		},
		{
			name:     "write to a regular file",
			event:    fsnotify.Event{Name: visible, Op: fsnotify.Write},
			expected: true,
		},
		{
			name:     "remove is ignored",
			event:    fsnotify.Event{Name: visible, Op: fsnotify.Remove},
			expected: false,
		},
		{
			name:     "chmod is ignored",
			event:    fsnotify.Event{Name: visible, Op: fsnotify.Chmod},
			expected: false,
		},
		{
			name:     "hidden file is ignored",
			event:    fsnotify.Event{Name: hidden, Op: fsnotify.Create},
			expected: false,
		},
		{
			name:     "directory is ignored",
			event:    fsnotify.Event{Name: dir, Op: fsnotify.Create},
			expected: false,
		},
		{
			name:     "vanished file is ignored",
			event:    fsnotify.Event{Name: filepath.Join(dir, "gone.txt"), Op: fsnotify.Create},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shouldIngestEvent(tt.event))
		})
	}
}

func TestDebouncer_CoalescesBursts(t *testing.T) {
	var mu sync.Mutex
	fired := make(map[string]int)

	d := newDebouncer(20*time.Millisecond, func(key string) {
		mu.Lock()
		fired[key]++
		mu.Unlock()
	})
	defer d.Stop()

	// A burst of triggers on the same key fires once.
	d.Trigger("a.txt")
	d.Trigger("a.txt")
	d.Trigger("a.txt")
	d.Trigger("b.txt")

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fired["a.txt"] == 1 && fired["b.txt"] == 1
	}, time.Second, 5*time.Millisecond)

	// A later trigger fires again.
	d.Trigger("a.txt")
	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return fired["a.txt"] == 2
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	var mu sync.Mutex
	count := 0

	d := newDebouncer(50*time.Millisecond, func(string) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	d.Trigger("a.txt")
	d.Stop()

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 0, count)
}

func TestWatchCmd_RejectsNonDirectory(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	path := writeTempFile(t, "fichier.txt", "texte")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"watch", "-t", "t1", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}
