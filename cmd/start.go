package cmd

import (
	"os"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/deepwork-cli/dwt/internal/focus"
	"github.com/deepwork-cli/dwt/internal/session"
	"github.com/deepwork-cli/dwt/internal/timer"
	"github.com/deepwork-cli/dwt/internal/worklog"
)

// Overridable in tests so command runs don't shell out to the focus toggle.
var (
	focusBegin = focus.Begin
	focusEnd   = focus.End
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Begin a new deep work session",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := session.NewStateStore()
		if err != nil {
			return err
		}
		st, err := store.Load()
		if err != nil {
			return err
		}

		now := time.Now()
		if err := st.Start(now); err != nil {
			return err
		}
		if err := store.Save(st); err != nil {
			return err
		}

		// Best effort: a failed focus toggle warns but never blocks the timer.
		focusBegin()

		cmd.Printf("Deep work session started at %s (%s on the clock)\n",
			now.Format("15:04:05"), session.FormatClock(st.TargetSeconds))

		if !term.IsTerminal(os.Stdin.Fd()) {
			// Non-interactive callers get the durable Running state and exit;
			// the countdown only runs on a real terminal.
			return nil
		}
		return runCountdown(cmd, st, store)
	},
}

// runCountdown drives the interactive loop for a running session and reports
// how it exited. Shared by start and continue.
func runCountdown(cmd *cobra.Command, st *session.State, store session.StateStore) error {
	outcome, err := timer.Run(st, store, worklog.NewStore(cfg.WorkLogPath))
	if err != nil {
		return err
	}
	switch outcome {
	case timer.OutcomeCompleted:
		cmd.Println("Session complete. Great work!")
	case timer.OutcomeEnded:
		cmd.Println("Session ended and logged.")
	case timer.OutcomePaused:
		cmd.Println("Session paused. Use 'continue' to resume.")
	case timer.OutcomeDiscarded:
		cmd.Println("Session quit. No time logged.")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(startCmd)
}
