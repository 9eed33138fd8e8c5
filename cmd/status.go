package cmd

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/deepwork-cli/dwt/internal/session"
)

var statusWatch bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session status",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := session.NewStateStore()
		if err != nil {
			return err
		}

		if err := printStatus(cmd, store); err != nil {
			return err
		}
		if !statusWatch {
			return nil
		}
		return watchStatus(cmd, store)
	},
}

// printStatus is a read-only query: it never mutates the stored state, so
// asking twice in a row reports the same thing.
func printStatus(cmd *cobra.Command, store session.StateStore) error {
	st, err := store.Load()
	if err != nil {
		return err
	}

	now := time.Now()
	switch st.Status {
	case session.StatusRunning:
		cmd.Println("Session RUNNING")
		cmd.Printf("Started: %s\n", st.StartedAt.Format("15:04:05"))
		cmd.Printf("Elapsed: %s\n", session.FormatClock(st.Elapsed(now)))
		cmd.Printf("Remaining: %s\n", session.FormatClock(st.Remaining(now)))
		cmd.Println("Use 'stop' to pause or end")
	case session.StatusPaused:
		cmd.Println("Session PAUSED")
		cmd.Printf("Elapsed: %s\n", session.FormatClock(st.AccumulatedSeconds))
		cmd.Printf("Remaining: %s\n", session.FormatClock(st.Remaining(now)))
		cmd.Println("Use 'continue' to resume")
	default:
		cmd.Println("No active deep work session")
	}
	return nil
}

// watchStatus re-renders the status whenever the state record or the work
// log changes on disk. Blocks until interrupted.
func watchStatus(cmd *cobra.Command, store session.StateStore) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch directories, not files: the atomic rename on save replaces the
	// file, which would drop a file-level watch.
	statePath := store.Path()
	logPath, _ := filepath.Abs(cfg.WorkLogPath)
	dirs := map[string]struct{}{
		filepath.Dir(statePath): {},
		filepath.Dir(logPath):   {},
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return err
		}
	}

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Name != statePath && ev.Name != logPath {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			cmd.Println("---")
			if err := printStatus(cmd, store); err != nil {
				return err
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func init() {
	statusCmd.Flags().BoolVar(&statusWatch, "watch", false, "Keep running and re-print on state changes")
	rootCmd.AddCommand(statusCmd)
}
