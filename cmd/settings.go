package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/deepwork-cli/dwt/internal/config"
)

var settingsGoal int

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change the daily goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("goal") {
			return setGoal(cmd, settingsGoal)
		}

		cmd.Printf("Current daily goal: %s\n", describeGoal(cfg.DailyGoalMinutes))

		if !term.IsTerminal(os.Stdin.Fd()) {
			return nil
		}

		value := strconv.Itoa(cfg.DailyGoalMinutes)
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Daily goal (minutes, 0 for vacation mode)").
					Placeholder("240").
					Value(&value).
					Validate(validateGoal),
			),
		)
		if err := form.Run(); err != nil {
			return fmt.Errorf("settings cancelled: %w", err)
		}

		goal, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("invalid goal: %w", err)
		}
		return setGoal(cmd, goal)
	},
}

func setGoal(cmd *cobra.Command, goal int) error {
	if goal < 0 {
		return fmt.Errorf("daily goal cannot be negative")
	}
	if err := config.SaveGlobalGoal(goal); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	cfg.DailyGoalMinutes = goal
	cmd.Printf("Daily goal set to %s\n", describeGoal(goal))
	return nil
}

func describeGoal(minutes int) string {
	if minutes == 0 {
		return "0 minutes (vacation mode)"
	}
	return fmt.Sprintf("%d minutes", minutes)
}

func validateGoal(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("enter a whole number of minutes")
	}
	if n < 0 {
		return fmt.Errorf("goal cannot be negative")
	}
	return nil
}

func init() {
	settingsCmd.Flags().IntVar(&settingsGoal, "goal", 0, "Set the daily goal in minutes without prompting")
	rootCmd.AddCommand(settingsCmd)
}
