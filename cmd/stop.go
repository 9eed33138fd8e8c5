package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/deepwork-cli/dwt/internal/session"
	"github.com/deepwork-cli/dwt/internal/worklog"
)

var (
	stopPause bool
	stopEnd   bool
)

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Pause the running session or end it and log the time",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := session.NewStateStore()
		if err != nil {
			return err
		}
		st, err := store.Load()
		if err != nil {
			return err
		}

		switch st.Status {
		case session.StatusPaused:
			return fmt.Errorf("session is already paused (use 'continue' to resume)")
		case session.StatusIdle:
			return fmt.Errorf("%w to stop", session.ErrNoSession)
		}

		end, err := chooseStopAction()
		if err != nil {
			return err
		}

		now := time.Now()
		if !end {
			st.Pause(now)
			if err := store.Save(st); err != nil {
				return err
			}
			focusEnd()
			cmd.Printf("Session paused at %s. Use 'continue' to resume.\n",
				session.FormatClock(st.AccumulatedSeconds))
			return nil
		}

		elapsed := st.Elapsed(now)
		entry := worklog.NewEntry(now, elapsed, st.Done(now))
		if err := worklog.NewStore(cfg.WorkLogPath).Append(entry); err != nil {
			return err
		}
		if err := store.Delete(); err != nil {
			return err
		}
		focusEnd()

		if entry.Completed {
			cmd.Printf("Session ended: %s logged, target reached.\n", session.FormatClock(elapsed))
		} else {
			cmd.Printf("Session ended early: %s logged.\n", session.FormatClock(elapsed))
		}
		return nil
	},
}

// chooseStopAction resolves pause-vs-end from the flags, or interactively
// when on a terminal. Non-interactive callers without a flag get a pause, the
// non-destructive choice.
func chooseStopAction() (end bool, err error) {
	switch {
	case stopEnd:
		return true, nil
	case stopPause:
		return false, nil
	}
	if !term.IsTerminal(os.Stdin.Fd()) {
		return false, nil
	}

	choice := "pause"
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Stop the running session").
				Options(
					huh.NewOption("Pause — keep the clock, resume later", "pause"),
					huh.NewOption("End — log the session now", "end"),
				).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("stop cancelled: %w", err)
	}
	return choice == "end", nil
}

func init() {
	stopCmd.Flags().BoolVar(&stopPause, "pause", false, "Pause without prompting")
	stopCmd.Flags().BoolVar(&stopEnd, "end", false, "End and log without prompting")
	stopCmd.MarkFlagsMutuallyExclusive("pause", "end")
	rootCmd.AddCommand(stopCmd)
}
