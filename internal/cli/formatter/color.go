package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// KindBadge labels a plan item's kind in its timeline color.
func KindBadge(kind domain.PlanItemKind) string {
	switch kind {
	case domain.KindTask:
		return StyleBlue.Render("TASK")
	case domain.KindMeeting:
		return StylePurple.Render("MEETING")
	case domain.KindReception:
		return StyleYellow.Render("RECEPTION")
	default:
		return StyleDim.Render(strings.ToUpper(string(kind)))
	}
}

func TaskStatusPill(status domain.TaskStatus) string {
	switch status {
	case domain.TaskPending:
		return StyleBlue.Render("○ Pending")
	case domain.TaskInProgress:
		return StyleGreen.Render("● In Progress")
	case domain.TaskCompleted:
		return StyleDim.Render("✔ Done")
	case domain.TaskCancelled:
		return StyleDim.Render("✖ Cancelled")
	default:
		return StyleDim.Render(string(status))
	}
}

func ReceptionStatusPill(status domain.ReceptionStatus) string {
	switch status {
	case domain.ReceptionWaiting:
		return StyleYellow.Render("○ Waiting")
	case domain.ReceptionPresent:
		return StyleGreen.Render("● Present")
	case domain.ReceptionAbsent:
		return StyleRed.Render("✖ Absent")
	default:
		return StyleDim.Render(string(status))
	}
}

// AssignmentPill shows the derived status, noting when it differs from
// the stored one.
func AssignmentPill(persisted, effective domain.AssignmentStatus) string {
	var pill string
	switch effective {
	case domain.AssignmentPending:
		pill = StyleBlue.Render("task pending")
	case domain.AssignmentCompleted:
		pill = StyleDim.Render("task done")
	case domain.AssignmentOverdue:
		pill = StyleRed.Render("task overdue")
	default:
		return ""
	}
	if persisted != effective {
		pill += Dim(fmt.Sprintf(" (stored %s)", persisted))
	}
	return pill
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
