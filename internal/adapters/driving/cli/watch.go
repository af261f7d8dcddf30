package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/avocatech/juricite/internal/core/domain"
	"github.com/avocatech/juricite/internal/logger"
)

// watchDebounce is how long a file must be quiet before it is
// ingested. Editors and file copies produce bursts of write events;
// ingesting on the first one would index a half-written file.
const watchDebounce = 500 * time.Millisecond

var (
	watchTenant string
	watchCase   string
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Auto-ingest documents dropped into a directory",
	Long: `Watches a directory and ingests every document created or
modified in it under the given tenant. Hidden files and
subdirectories are ignored. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchTenant, "tenant", "t", "", "tenant (law firm) identifier")
	watchCmd.Flags().StringVarP(&watchCase, "case", "c", "", "case file identifier")
	_ = watchCmd.MarkFlagRequired("tenant")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	dir := args[0]
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	cmd.Printf("Watching %s for tenant %s. Press Ctrl+C to stop.\n", dir, watchTenant)

	debouncer := newDebouncer(watchDebounce, func(path string) {
		ingestWatchedFile(cmd.Context(), cmd, path)
	})
	defer debouncer.Stop()

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !shouldIngestEvent(event) {
				continue
			}
			debouncer.Trigger(event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// shouldIngestEvent reports whether a filesystem event warrants
// ingestion: creates and writes of visible regular files.
func shouldIngestEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Write) {
		return false
	}
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	info, err := os.Stat(event.Name)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

func ingestWatchedFile(ctx context.Context, cmd *cobra.Command, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("reading %s: %v", path, err)
		return
	}

	raw := &domain.RawDocument{
		TenantID: watchTenant,
		CaseID:   watchCase,
		URI:      path,
		MIMEType: detectMIME(path, ""),
		Content:  content,
	}

	result, err := ingestService.Ingest(ctx, raw)
	if err != nil {
		logger.Warn("ingesting %s: %v", path, err)
		return
	}
	cmd.Printf("Indexed %s (%d chunks) as %s\n", path, result.ChunkCount, result.DocumentID)
}

// debouncer coalesces bursts of triggers per key, firing fn once per
// key after the quiet period.
type debouncer struct {
	mu     sync.Mutex
	delay  time.Duration
	timers map[string]*time.Timer
	fn     func(string)
}

func newDebouncer(delay time.Duration, fn func(string)) *debouncer {
	return &debouncer{
		delay:  delay,
		timers: make(map[string]*time.Timer),
		fn:     fn,
	}
}

// Trigger schedules fn for the key, resetting the quiet period if a
// timer is already pending.
func (d *debouncer) Trigger(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.timers[key]; ok {
		timer.Reset(d.delay)
		return
	}
	d.timers[key] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		d.fn(key)
	})
}

// Stop cancels all pending timers.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, timer := range d.timers {
		timer.Stop()
		delete(d.timers, key)
	}
}
