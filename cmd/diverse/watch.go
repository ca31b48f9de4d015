package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/4thel00z/diverse/internal"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

func NewWatchCmd(selectUC *internal.SelectUseCase) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Re-run selection when a vectors file changes",
		Long:  `Watch a JSON/JSONL vectors file and re-run selection whenever it changes. Useful for tuning the saturation threshold against a live corpus dump.`,
		Args:  cobra.ExactArgs(1),
		RunE:  makeWatchRunner(selectUC),
	}

	cmd.Flags().IntP("k", "k", 0, "Number of items to select (0 = automatic)")
	cmd.Flags().Float64("ratio", 0, "Saturation gain ratio for automatic sizing")
	cmd.Flags().Int("window", 0, "Saturation window for automatic sizing")
	cmd.Flags().Duration("debounce", 500*time.Millisecond, "Debounce window for batching changes")
	return cmd
}

func makeWatchRunner(selectUC *internal.SelectUseCase) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		file := args[0]
		k, _ := cmd.Flags().GetInt("k")
		ratio, _ := cmd.Flags().GetFloat64("ratio")
		window, _ := cmd.Flags().GetInt("window")
		debounce, _ := cmd.Flags().GetDuration("debounce")
		scopeHint, _ := cmd.Flags().GetString("scope")
		asJSON, _ := cmd.Flags().GetBool("json")

		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("stat %s: %w", file, err)
		}

		run := func() {
			vectors, err := internal.LoadVectors(file)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "load vectors: %v\n", err)
				return
			}
			out, err := selectUC.Execute(cmd.Context(), selectInputFrom(vectors, k, scopeHint, ratio, window))
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "select: %v\n", err)
				return
			}
			if err := writeSelection(cmd, out, false, asJSON); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "write selection: %v\n", err)
			}
		}

		run()

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("create watcher: %w", err)
		}
		defer watcher.Close()

		// Watch the directory: editors often replace the file on save.
		if err := watcher.Add(filepath.Dir(file)); err != nil {
			return fmt.Errorf("add watch dir: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes...\n", file)

		timer := time.NewTimer(0)
		if !timer.Stop() {
			<-timer.C
		}
		pending := false

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if shouldIgnoreEvent(event, file) {
					continue
				}
				if !pending {
					timer.Reset(debounce)
					pending = true
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
			case <-timer.C:
				pending = false
				run()
			}
		}
	}
}

func shouldIgnoreEvent(event fsnotify.Event, file string) bool {
	if filepath.Clean(event.Name) != filepath.Clean(file) {
		return true
	}

	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return true
	}

	return false
}
