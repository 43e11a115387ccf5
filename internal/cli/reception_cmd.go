package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/spf13/cobra"
)

func newReceptionCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reception",
		Short: "Book and track employee receptions",
	}

	cmd.AddCommand(
		newReceptionAddCmd(a),
		newReceptionListCmd(a),
		newReceptionPresentCmd(a),
		newReceptionAbsentCmd(a),
		newReceptionTaskDoneCmd(a),
	)

	return cmd
}

func newReceptionAddCmd(a *App) *cobra.Command {
	var dateFlag string
	var interactive bool
	var in app.ReceptionInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book an employee for a reception slot",
		Long: `Book an employee for a reception slot. Booking the same employee again
on the same day moves their existing entry instead of adding a second one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if interactive {
				if !a.interactive() {
					return fmt.Errorf("--interactive needs a terminal")
				}
				form := wizardReception(cmd.Context(), a, &in)
				if form == nil {
					return fmt.Errorf("no employees to book; add one with 'employee add'")
				}
				if err := form.Run(); err != nil {
					return err
				}
			}
			if in.EmployeeID == "" {
				return fmt.Errorf("--employee is required")
			}

			date, err := a.resolveDate(dateFlag)
			if err != nil {
				return err
			}
			res, err := a.DailyPlan.SaveDailyPlan(cmd.Context(), receptionBatch(date, in))
			if err != nil {
				return err
			}
			if res.HasErrors() {
				printf(cmd, "%s", formatter.FormatSaveResult(res))
				return nil
			}
			printf(cmd, "Booked %s on %s at %s\n", in.EmployeeID, domain.FormatDate(date),
				domain.CoalesceStr(in.ScheduledTime, domain.DefaultReceptionTime))
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	cmd.Flags().StringVarP(&in.EmployeeID, "employee", "e", "", "Employee ID")
	cmd.Flags().StringVar(&in.ScheduledTime, "time", "", "Reception time (HH:MM)")
	cmd.Flags().StringVar(&in.Name, "name", "", "Visitor name (defaults to the directory entry)")
	cmd.Flags().StringVar(&in.Position, "position", "", "Visitor position")
	cmd.Flags().StringVar(&in.Department, "department", "", "Visitor department")
	cmd.Flags().StringVar(&in.Phone, "phone", "", "Contact phone")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Pick the employee and time in a form")

	return cmd
}

func receptionBatch(date time.Time, in app.ReceptionInput) app.SaveDailyPlanRequest {
	return app.SaveDailyPlanRequest{
		Date:    domain.FormatDate(date),
		Upserts: []app.PlanItemInput{app.NewReceptionInput(in)},
	}
}

func newReceptionListCmd(a *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the reception queue for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.resolveDate(dateFlag)
			if err != nil {
				return err
			}
			day, err := a.Receptions.Get(cmd.Context(), date)
			if err != nil {
				return err
			}
			if len(day.Entries) == 0 {
				writeln(cmd, formatter.Dim("No receptions."))
				return nil
			}
			now := a.now()
			for i := range day.Entries {
				writeln(cmd, formatter.FormatReceptionEntry(&day.Entries[i], now))
			}
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	return cmd
}

func newReceptionPresentCmd(a *App) *cobra.Command {
	var dateFlag, task string
	var deadlineDays int

	cmd := &cobra.Command{
		Use:   "present <entry-or-employee-id>",
		Short: "Mark a visitor as arrived, optionally handing out a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.resolveDate(dateFlag)
			if err != nil {
				return err
			}
			var assignment *domain.TaskAssignment
			if task != "" {
				assignment = &domain.TaskAssignment{Description: task, DeadlineDays: deadlineDays}
			}
			e, err := a.Receptions.MarkPresent(cmd.Context(), date, args[0], assignment)
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatReceptionEntry(e, a.now()))
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	cmd.Flags().StringVar(&task, "task", "", "Task to hand out")
	cmd.Flags().IntVar(&deadlineDays, "deadline-days", 1, "Days until the task is due")

	return cmd
}

func newReceptionAbsentCmd(a *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "absent <entry-or-employee-id>",
		Short: "Mark a waiting visitor as a no-show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.resolveDate(dateFlag)
			if err != nil {
				return err
			}
			e, err := a.Receptions.MarkAbsent(cmd.Context(), date, args[0])
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatReceptionEntry(e, a.now()))
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	return cmd
}

func newReceptionTaskDoneCmd(a *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "task-done <entry-or-employee-id>",
		Short: "Record that a handed-out task was completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.resolveDate(dateFlag)
			if err != nil {
				return err
			}
			e, err := a.Receptions.CompleteTask(cmd.Context(), date, args[0])
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatReceptionEntry(e, a.now()))
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	return cmd
}
