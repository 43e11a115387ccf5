package cli

import (
	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/spf13/cobra"
)

func newTaskCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage the day's own tasks",
	}

	cmd.AddCommand(
		newTaskAddCmd(a),
		newTaskUpdateCmd(a),
		newTaskStatusCmd(a),
		newTaskRemoveCmd(a),
	)

	return cmd
}

func taskInputFlags(cmd *cobra.Command, in *app.TaskInput, priority *string) {
	cmd.Flags().StringVar(&in.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&in.Description, "description", "", "Task description")
	cmd.Flags().StringVar(&in.StartTime, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&in.EndTime, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(priority, "priority", "", "Priority (low, normal, high, urgent)")
}

func newTaskAddCmd(a *App) *cobra.Command {
	var dateFlag, priority string
	var in app.TaskInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task to a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.resolveDate(dateFlag)
			if err != nil {
				return err
			}
			in.Priority = domain.TaskPriority(priority)
			t, err := a.Schedule.AddTask(cmd.Context(), date, in)
			if err != nil {
				return err
			}
			printf(cmd, "Added task %s %s–%s (%s)\n", formatter.Bold(t.Title), t.StartTime, t.EndTime, t.ID)
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	taskInputFlags(cmd, &in, &priority)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newTaskUpdateCmd(a *App) *cobra.Command {
	var dateFlag, priority string
	var in app.TaskInput

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Change fields of an existing task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.resolveDate(dateFlag)
			if err != nil {
				return err
			}
			in.ID = args[0]
			in.Priority = domain.TaskPriority(priority)
			t, err := a.Schedule.UpdateTask(cmd.Context(), date, in)
			if err != nil {
				return err
			}
			printf(cmd, "Updated task %s %s–%s\n", formatter.Bold(t.Title), t.StartTime, t.EndTime)
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	taskInputFlags(cmd, &in, &priority)

	return cmd
}

func newTaskStatusCmd(a *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "status <task-id> <pending|in-progress|completed|cancelled>",
		Short: "Move a task through its lifecycle",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.resolveDate(dateFlag)
			if err != nil {
				return err
			}
			t, err := a.Schedule.SetTaskStatus(cmd.Context(), date, args[0], domain.TaskStatus(args[1]))
			if err != nil {
				return err
			}
			printf(cmd, "%s  %s\n", formatter.Bold(t.Title), formatter.TaskStatusPill(t.Status))
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	return cmd
}

func newTaskRemoveCmd(a *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "remove <task-id>",
		Short: "Remove a task from a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.resolveDate(dateFlag)
			if err != nil {
				return err
			}
			if err := a.Schedule.DeleteTask(cmd.Context(), date, args[0]); err != nil {
				return err
			}
			printf(cmd, "Removed task %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	return cmd
}
