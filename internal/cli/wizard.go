package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// dayplanHuhTheme styles forms with the same palette as the timeline. The
// reception form accents in yellow like reception rows do.
func dayplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	accent := lipgloss.NewStyle().Foreground(formatter.ColorYellow)

	t.Focused.Title = accent.Bold(true)
	t.Focused.SelectSelector = accent
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorYellow).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = accent
	t.Focused.TextInput.Prompt = accent
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// wizardReception creates a huh form that picks an employee from the
// directory and a reception time. It returns nil when the directory is empty.
func wizardReception(ctx context.Context, a *App, in *app.ReceptionInput) *huh.Form {
	employees, err := a.Employees.List(ctx)
	if err != nil || len(employees) == 0 {
		return nil
	}

	options := make([]huh.Option[string], 0, len(employees))
	for _, e := range employees {
		label := e.Name
		if e.Position != "" {
			label = fmt.Sprintf("%s, %s", e.Name, e.Position)
		}
		options = append(options, huh.NewOption(label, e.ID))
	}
	if in.ScheduledTime == "" {
		in.ScheduledTime = domain.DefaultReceptionTime
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Who is coming?").
				Options(options...).
				Value(&in.EmployeeID),
			huh.NewInput().
				Title("At what time?").
				Placeholder("HH:MM").
				Validate(validateClock).
				Value(&in.ScheduledTime),
		),
	).WithTheme(dayplanHuhTheme()).WithShowHelp(false)
}

func validateClock(s string) error {
	_, err := domain.ParseClock(s)
	return err
}
