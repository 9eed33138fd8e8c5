package cmd

import (
	"os"
	"time"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/deepwork-cli/dwt/internal/session"
)

var continueCmd = &cobra.Command{
	Use:   "continue",
	Short: "Resume a paused deep work session",
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
		if err := st.Resume(now); err != nil {
			return err
		}
		if err := store.Save(st); err != nil {
			return err
		}

		focusBegin()

		cmd.Printf("Resuming session, %s remaining\n", session.FormatClock(st.Remaining(now)))

		if !term.IsTerminal(os.Stdin.Fd()) {
			return nil
		}
		return runCountdown(cmd, st, store)
	},
}

func init() {
	rootCmd.AddCommand(continueCmd)
}
