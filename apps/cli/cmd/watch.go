package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

// watchBodyFile re-sends the request after every change to the body file
// until ctx is cancelled. Reruns are sequential.
func watchBodyFile(ctx context.Context, cmd *cobra.Command, ex *exchanger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return reportError(cmd, exitWith(ExitConfigError, fmt.Errorf("failed to create file watcher: %w", err)))
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of writing it.
	target, err := filepath.Abs(ex.settings.bodyFile)
	if err != nil {
		return reportError(cmd, exitWith(ExitUsageError, err))
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return reportError(cmd, exitWith(ExitConfigError, fmt.Errorf("failed to watch %s: %w", target, err)))
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "\nWatching %s for changes... (press Ctrl+C to stop)\n\n", ex.settings.bodyFile)

	debounce := time.NewTimer(WatchDebounceDelay)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isBodyFileEvent(event, target) {
				continue
			}
			debounce.Reset(WatchDebounceDelay)

		case <-debounce.C:
			fmt.Fprintf(out, "\nFile changed: %s\nRe-sending request...\n\n", ex.settings.bodyFile)
			ex.run(ctx)
			fmt.Fprintf(out, "\nWatching for changes... (press Ctrl+C to stop)\n")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			ex.formatter.FormatError(fmt.Errorf("watcher error: %w", err))
		}
	}
}

func isBodyFileEvent(event fsnotify.Event, target string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == target
}
