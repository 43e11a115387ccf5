package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// DayLabel names date relative to now: "Today", "Tomorrow", "Yesterday",
// or the weekday and date.
func DayLabel(date, now time.Time) string {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	ref := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	switch int(day.Sub(ref).Hours() / 24) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	case -1:
		return "Yesterday"
	}
	return date.Format("Monday")
}

// DueIn describes how far due is from now in whole days, colored by urgency.
func DueIn(due, now time.Time) string {
	diff := due.Sub(now)
	if diff < 0 {
		return StyleRed.Render(fmt.Sprintf("%dd late", int(-diff.Hours()/24)+1))
	}
	days := int(diff.Hours() / 24)
	text := "due today"
	if days > 0 {
		text = fmt.Sprintf("due in %dd", days)
	}
	if days <= 1 {
		return StyleYellow.Render(text)
	}
	return StyleFg.Render(text)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

func orDash(s string) string {
	if s == "" {
		return Dim("--")
	}
	return s
}
