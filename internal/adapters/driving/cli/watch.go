package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/hanbit-labs/newsrank-cli/internal/core/domain"
	"github.com/hanbit-labs/newsrank-cli/internal/core/ports/driving"
	"github.com/hanbit-labs/newsrank-cli/internal/logger"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the raw directory and run the pipeline on new exports",
	Long: `Watches the collector drop directory for new raw tables. When a file
named after a window token (YYYYMMDD-YYYYMMDD.csv) appears, the full
pipeline runs over that window. Files still being written are picked up
once they settle. Stop with Ctrl-C.`,
	RunE: runWatch,
}

var flagWatchSettle time.Duration

func init() {
	watchCmd.Flags().DurationVar(&flagWatchSettle, "settle", 2*time.Second, "quiet period before a new file is processed")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if pipelineService == nil {
		return errors.New("pipeline service not configured")
	}
	if rawWatchDir == "" {
		return errors.New("raw directory not configured")
	}

	if err := os.MkdirAll(rawWatchDir, 0o755); err != nil {
		return fmt.Errorf("creating raw directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(rawWatchDir); err != nil {
		return fmt.Errorf("watching %s: %w", rawWatchDir, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	runner := newWatchRunner(pipelineService, flagWatchSettle, cmd.OutOrStdout())
	defer runner.stop()

	cmd.Printf("Watching %s for raw tables...\n", rawWatchDir)

	for {
		select {
		case <-ctx.Done():
			cmd.Println("Watch stopped.")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Write) {
				runner.notify(ctx, event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// watchRunner debounces file events per window token and triggers a
// pipeline run once a file stops changing.
type watchRunner struct {
	pipeline driving.PipelineService
	settle   time.Duration
	out      io.Writer

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func newWatchRunner(pipeline driving.PipelineService, settle time.Duration, out io.Writer) *watchRunner {
	return &watchRunner{
		pipeline: pipeline,
		settle:   settle,
		out:      out,
		timers:   make(map[string]*time.Timer),
	}
}

// notify registers activity on a file. Names that are not window-token
// CSVs are ignored.
func (r *watchRunner) notify(ctx context.Context, name string) {
	base := filepath.Base(name)
	token, ok := strings.CutSuffix(base, ".csv")
	if !ok {
		return
	}
	window, err := domain.ParseWindow(token)
	if err != nil {
		logger.Debug("Ignoring %s: %v", base, err)
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if timer, exists := r.timers[token]; exists {
		timer.Reset(r.settle)
		return
	}
	r.timers[token] = time.AfterFunc(r.settle, func() {
		r.mu.Lock()
		delete(r.timers, token)
		r.mu.Unlock()
		r.run(ctx, window)
	})
}

func (r *watchRunner) run(ctx context.Context, window domain.Window) {
	if ctx.Err() != nil {
		return
	}
	fmt.Fprintf(r.out, "New table for window %s, running pipeline...\n", window.Token())
	if _, err := r.pipeline.RunWindow(ctx, window); err != nil {
		fmt.Fprintf(r.out, "Window %s failed: %v\n", window.Token(), err)
		return
	}
	fmt.Fprintf(r.out, "Window %s completed.\n", window.Token())
}

// stop cancels any pending debounce timers.
func (r *watchRunner) stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, timer := range r.timers {
		timer.Stop()
		delete(r.timers, token)
	}
}
