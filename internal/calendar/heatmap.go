// Package calendar projects aggregated daily totals onto terminal
// visualizations: a GitHub-style contribution heatmap, the current week's
// progress bars and a short stats block. All renderers are pure string
// projections of the summary; they never touch stored data.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/deepwork-cli/dwt/internal/stats"
)

// ── Styles ────────────

var (
	headingStyle = lipgloss.NewStyle().Bold(true)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	emptyCellStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	// Intensity tiers: under half the goal, under the goal, goal met.
	tierLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
	tierMidStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("40"))
	tierFullStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
)

const (
	cellFilled = "██"
	cellEmpty  = "··"

	// gutter holds the Mon/Wed/Fri row labels.
	gutterWidth = 5
)

// Heatmap renders the trailing `weeks` weeks of activity ending at the week
// containing today, one column per week, Monday through Sunday top to
// bottom. Identical totals and goal always produce an identical grid.
func Heatmap(totals map[string]int, goalMinutes, weeks int, today time.Time) string {
	if weeks < 1 {
		weeks = 1
	}
	gridStart := weekStart(today.AddDate(0, 0, -7*(weeks-1)))

	var sb strings.Builder
	sb.WriteString(headingStyle.Render(fmt.Sprintf("Contribution Graph (last %d weeks)", weeks)))
	sb.WriteString("\n")
	sb.WriteString(monthHeader(gridStart, weeks))
	sb.WriteString("\n")

	dayLabels := map[int]string{0: "Mon", 2: "Wed", 4: "Fri"}
	todayKey := stats.DayKey(today)

	for row := 0; row < 7; row++ {
		if label, ok := dayLabels[row]; ok {
			sb.WriteString(fmt.Sprintf("%*s  ", gutterWidth-2, label))
		} else {
			sb.WriteString(strings.Repeat(" ", gutterWidth))
		}
		for week := 0; week < weeks; week++ {
			day := gridStart.AddDate(0, 0, 7*week+row)
			sb.WriteString(cell(totals, goalMinutes, day, todayKey))
			if week < weeks-1 {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", gutterWidth))
	sb.WriteString(dimStyle.Render("Less "))
	sb.WriteString(tierLowStyle.Render("█ "))
	sb.WriteString(tierMidStyle.Render("█ "))
	sb.WriteString(tierFullStyle.Render("█ "))
	sb.WriteString(dimStyle.Render("More"))
	sb.WriteString("\n")
	return sb.String()
}

// cell picks the glyph and tier for one day. Days after today render as
// background; a day's tier is its total thresholded against the goal.
func cell(totals map[string]int, goalMinutes int, day time.Time, todayKey string) string {
	key := stats.DayKey(day)
	if key > todayKey {
		return emptyCellStyle.Render(cellEmpty)
	}
	secs := totals[key]
	if secs == 0 {
		return emptyCellStyle.Render(cellEmpty)
	}
	return tierStyle(secs, goalMinutes).Render(cellFilled)
}

// tierStyle buckets a day's seconds against the goal: <50%, <100%, ≥100%.
// In vacation mode (goal 0) any activity renders at the lowest tier.
func tierStyle(secs, goalMinutes int) lipgloss.Style {
	goalSecs := goalMinutes * 60
	if goalSecs <= 0 {
		return tierLowStyle
	}
	switch {
	case secs >= goalSecs:
		return tierFullStyle
	case secs*2 >= goalSecs:
		return tierMidStyle
	default:
		return tierLowStyle
	}
}

// monthHeader lays month names over the week columns they span.
func monthHeader(gridStart time.Time, weeks int) string {
	// Column layout: each week is 2 chars plus a 1-char gap, no gap after
	// the last column.
	type span struct {
		name       string
		start, end int
	}
	var spans []span
	for week := 0; week < weeks; week++ {
		name := gridStart.AddDate(0, 0, 7*week).Format("Jan")
		if len(spans) == 0 || spans[len(spans)-1].name != name {
			spans = append(spans, span{name: name, start: week, end: week})
		} else {
			spans[len(spans)-1].end = week
		}
	}

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", gutterWidth))
	for i, sp := range spans {
		width := (sp.end-sp.start+1)*3 - 1
		if i < len(spans)-1 {
			width++ // absorb the gap before the next month
		}
		name := sp.name
		if len(name) > width {
			name = strings.Repeat(" ", width)
		}
		pad := width - len(name)
		sb.WriteString(name)
		sb.WriteString(strings.Repeat(" ", pad))
	}
	return strings.TrimRight(sb.String(), " ")
}

// weekStart returns the Monday of the week containing t, at midnight local.
func weekStart(t time.Time) time.Time {
	weekday := int(t.Weekday()+6) % 7 // Monday = 0
	t = t.AddDate(0, 0, -weekday)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
