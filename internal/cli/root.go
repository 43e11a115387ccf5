package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/alexanderramin/dayplan/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	DailyPlan  app.DailyPlanUseCase
	Schedule   service.ScheduleService
	Meetings   service.MeetingService
	Receptions service.ReceptionService
	Employees  service.EmployeeService
	Jobs       service.JobsService

	// Location resolves "today" and YYYY-MM-DD arguments. Nil means local time.
	Location *time.Location
	// Now is the clock used for relative dates and display. Nil means time.Now.
	Now func() time.Time

	ReminderLeadDays int

	// IsInteractive reports whether stdin is a terminal that can host forms.
	IsInteractive func() bool
}

func (a *App) location() *time.Location {
	if a.Location == nil {
		return time.Local
	}
	return a.Location
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now().In(a.location())
	}
	return a.Now().In(a.location())
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// resolveDate accepts YYYY-MM-DD, "today" or "tomorrow". Empty means today.
func (a *App) resolveDate(s string) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return domain.DayStart(a.now()), nil
	case "tomorrow":
		return domain.DayStart(a.now()).AddDate(0, 0, 1), nil
	}
	return domain.ParseDate(s, a.location())
}

// dateFlagSet is shared by every command that targets one day.
func dateFlagSet(target *string) *pflag.FlagSet {
	fs := pflag.NewFlagSet("date", pflag.ContinueOnError)
	fs.StringVarP(target, "date", "d", "today", "Day to act on (YYYY-MM-DD, today, tomorrow)")
	return fs
}

// NewRootCmd creates the top-level "dayplan" command and registers all
// subcommands against a.
func NewRootCmd(a *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "dayplan",
		Short:         "Daily plan for a manager: tasks, meetings and receptions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(a),
		newTaskCmd(a),
		newMeetingCmd(a),
		newReceptionCmd(a),
		newEmployeeCmd(a),
		newJobsCmd(a),
	)

	return root
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}

func writeln(cmd *cobra.Command, s string) {
	fmt.Fprintln(cmd.OutOrStdout(), s)
}
