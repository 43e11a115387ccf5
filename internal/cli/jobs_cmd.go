package cli

import (
	"github.com/spf13/cobra"
)

// Jobs are meant to be run from cron; both are safe to repeat.
func newJobsCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Maintenance jobs for reception tasks",
	}

	cmd.AddCommand(
		newJobsOverdueCmd(a),
		newJobsRemindCmd(a),
	)

	return cmd
}

func newJobsOverdueCmd(a *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "overdue",
		Short: "Persist the overdue status of late reception tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.resolveDate(dateFlag)
			if err != nil {
				return err
			}
			n, err := a.Jobs.SweepOverdue(cmd.Context(), date)
			if err != nil {
				return err
			}
			printf(cmd, "Marked %d tasks overdue\n", n)
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	return cmd
}

func newJobsRemindCmd(a *App) *cobra.Command {
	var dateFlag string
	var leadDays int

	cmd := &cobra.Command{
		Use:   "remind",
		Short: "Remind employees about reception tasks that are nearly due",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.resolveDate(dateFlag)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("lead-days") {
				leadDays = a.ReminderLeadDays
			}
			n, err := a.Jobs.SendTaskReminders(cmd.Context(), date, leadDays)
			if err != nil {
				return err
			}
			printf(cmd, "Sent %d reminders\n", n)
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	cmd.Flags().IntVar(&leadDays, "lead-days", 0, "Remind about tasks due within this many days (default from config)")

	return cmd
}
