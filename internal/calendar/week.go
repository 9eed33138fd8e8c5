package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/deepwork-cli/dwt/internal/stats"
)

const weekBarWidth = 20

// WeekProgress renders a per-day progress bar for the current Monday-Sunday
// week, marking today, plus a week total against the weekly goal.
func WeekProgress(totals map[string]int, goalMinutes int, today time.Time) string {
	start := weekStart(today)
	goalSecs := goalMinutes * 60
	todayKey := stats.DayKey(today)

	var sb strings.Builder
	sb.WriteString(headingStyle.Render("This Week's Progress"))
	sb.WriteString("\n")

	weekSecs := 0
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		secs := totals[stats.DayKey(day)]
		weekSecs += secs

		bar := progressBar(secs, goalSecs, weekBarWidth)
		line := fmt.Sprintf("%s %s │%s│ %s", day.Format("Mon"), day.Format("01/02"), bar, hours(secs))
		if goalSecs > 0 {
			line += fmt.Sprintf(" / %s", hours(goalSecs))
		}
		if stats.DayKey(day) == todayKey {
			line += dimStyle.Render("  ← today")
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	if goalSecs <= 0 {
		sb.WriteString(headingStyle.Render("Vacation mode: no weekly goal"))
	} else {
		weekGoal := goalSecs * 7
		pct := float64(weekSecs) / float64(weekGoal) * 100
		sb.WriteString(headingStyle.Render(
			fmt.Sprintf("Week total: %s / %s (%.0f%%)", hours(weekSecs), hours(weekGoal), pct)))
	}
	sb.WriteString("\n")
	return sb.String()
}

// progressBar renders filled/empty cells for secs against goalSecs, clamped
// to the bar width. With no goal the bar scales against four hours so
// vacation-mode activity still shows.
func progressBar(secs, goalSecs, width int) string {
	scale := goalSecs
	if scale <= 0 {
		scale = 4 * 3600
	}
	filled := secs * width / scale
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	empty := dimStyle.Render(strings.Repeat("░", width-filled))
	if filled == 0 {
		return empty
	}
	return tierStyle(secs, goalSecs/60).Render(strings.Repeat("█", filled)) + empty
}

// hours formats seconds as a decimal hour count, e.g. "2.5h".
func hours(secs int) string {
	return fmt.Sprintf("%.1fh", float64(secs)/3600)
}
