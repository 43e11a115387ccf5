package cli

import (
	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/spf13/cobra"
)

func newMeetingCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meeting",
		Short: "Manage meetings and their participants",
	}

	cmd.AddCommand(
		newMeetingAddCmd(a),
		newMeetingUpdateCmd(a),
		newMeetingRemoveCmd(a),
		newMeetingListCmd(a),
	)

	return cmd
}

func meetingInputFlags(cmd *cobra.Command, in *app.MeetingInput) {
	cmd.Flags().StringVar(&in.Name, "name", "", "Meeting name")
	cmd.Flags().StringVar(&in.Description, "description", "", "Agenda or notes")
	cmd.Flags().StringVar(&in.Time, "time", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&in.Location, "location", "", "Room or link")
	cmd.Flags().StringSliceVarP(&in.Participants, "participants", "p", nil, "Participant employee IDs")
}

func newMeetingAddCmd(a *App) *cobra.Command {
	var dateFlag string
	var in app.MeetingInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Schedule a meeting and notify its participants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.resolveDate(dateFlag)
			if err != nil {
				return err
			}
			m, err := a.Meetings.Create(cmd.Context(), date, in)
			if err != nil {
				return err
			}
			printf(cmd, "Scheduled %s on %s at %s (%s)\n",
				formatter.Bold(m.Name), domain.FormatDate(m.Date), m.Time, m.ID)
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	meetingInputFlags(cmd, &in)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func newMeetingUpdateCmd(a *App) *cobra.Command {
	var dateFlag string
	var in app.MeetingInput

	cmd := &cobra.Command{
		Use:   "update <meeting-id>",
		Short: "Edit or move a meeting",
		Long:  "Edit or move a meeting. Without --date the meeting stays on its current day.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			in.ID = args[0]

			current, err := a.Meetings.Get(ctx, in.ID)
			if err != nil {
				return err
			}
			date := current.Date
			if cmd.Flags().Changed("date") {
				if date, err = a.resolveDate(dateFlag); err != nil {
					return err
				}
			}

			m, err := a.Meetings.Update(ctx, date, in)
			if err != nil {
				return err
			}
			printf(cmd, "Updated %s on %s at %s\n", formatter.Bold(m.Name), domain.FormatDate(m.Date), m.Time)
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	meetingInputFlags(cmd, &in)

	return cmd
}

func newMeetingRemoveCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <meeting-id>",
		Short: "Cancel a meeting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Meetings.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printf(cmd, "Removed meeting %s\n", args[0])
			return nil
		},
	}
}

func newMeetingListCmd(a *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the meetings on a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.resolveDate(dateFlag)
			if err != nil {
				return err
			}
			meetings, err := a.Meetings.ListByDate(cmd.Context(), date)
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatMeetings(meetings))
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	return cmd
}
