package calendar

import (
	"fmt"
	"strings"

	"github.com/deepwork-cli/dwt/internal/stats"
)

// StatsBlock renders the streak and trailing-average lines shown under the
// heatmap.
func StatsBlock(s stats.Summary, goalMinutes int) string {
	var sb strings.Builder
	sb.WriteString(headingStyle.Render("Statistics"))
	sb.WriteString("\n")

	streak := fmt.Sprintf("Current streak: %d day(s)", s.Streak)
	if s.LongestStreak > s.Streak {
		streak += dimStyle.Render(fmt.Sprintf("  (longest: %d)", s.LongestStreak))
	}
	sb.WriteString(streak)
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Last 7 days: %s", hours(s.WeekSeconds)))
	if goalMinutes > 0 {
		sb.WriteString(fmt.Sprintf(" / %s", hours(goalMinutes*60*7)))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("30-day average: %s/day\n", hours(s.Avg30Seconds)))
	sb.WriteString(fmt.Sprintf("Active days this year: %d\n", s.ActiveDaysThisYear))
	return sb.String()
}
