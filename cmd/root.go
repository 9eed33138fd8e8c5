package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/deepwork-cli/dwt/internal/calendar"
	"github.com/deepwork-cli/dwt/internal/config"
	"github.com/deepwork-cli/dwt/internal/stats"
	"github.com/deepwork-cli/dwt/internal/worklog"
)

// cfg holds the merged configuration, populated in PersistentPreRunE.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "dwt",
	Short: "Track deep work sessions and see them as a contribution calendar",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A malformed config file degrades to defaults with a warning; it
		// should never block the timer.
		global, err := config.LoadGlobal()
		if err != nil {
			var pe *config.ParseError
			if !errors.As(err, &pe) {
				return fmt.Errorf("loading global config: %w", err)
			}
			fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", pe)
		}
		project, err := config.LoadProject()
		if err != nil {
			var pe *config.ParseError
			if !errors.As(err, &pe) {
				return fmt.Errorf("loading project config: %w", err)
			}
			fmt.Fprintf(os.Stderr, "warning: %v, ignoring\n", pe)
		}
		cfg = config.Merge(global, project)
		return nil
	},
	// Running dwt with no subcommand shows the activity dashboard: heatmap,
	// this week's progress and the streak stats. Read-only.
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := worklog.NewStore(cfg.WorkLogPath).LoadAll()
		if err != nil {
			return err
		}
		today := time.Now()
		summary := stats.Summarize(entries, cfg.DailyGoalMinutes, today)

		cmd.Println(calendar.Heatmap(summary.DailyTotals, cfg.DailyGoalMinutes, cfg.HeatmapWeeks, today))
		cmd.Println(calendar.WeekProgress(summary.DailyTotals, cfg.DailyGoalMinutes, today))
		cmd.Println(calendar.StatsBlock(summary, cfg.DailyGoalMinutes))
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure. Cobra has
// already printed the error by then.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
