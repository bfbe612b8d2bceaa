package main

import (
	"context"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Watch a .env file and sync changes into the keychain",
	Long: "Re-import FILE into the keychain whenever it changes. Runs until\n" +
		"interrupted.",
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cctx, err := newContext("watch")
	if err != nil {
		return err
	}
	defer cctx.Close()

	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}

	// Import once up front so the keychain reflects the file before the
	// first change event.
	if err := importFile(cctx, path); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return watchFile(ctx, cctx, path)
}

// watchFile watches the file's directory rather than the file itself, so
// editors that rename-and-replace do not silently detach the watch. It
// blocks until the context is cancelled.
func watchFile(ctx context.Context, cctx *cmdContext, path string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	logger := slog.Default()
	logger.Info("watching for changes", "file", path, "env", cctx.env)

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != path {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("file changed", "file", event.Name, "op", event.Op)

			// Debounce: reset timer on each event
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(watchDebounce, func() {
				if err := importFile(cctx, path); err != nil {
					logger.Error("re-import failed", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", "error", err)
		}
	}
}
