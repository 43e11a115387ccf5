package cli

import (
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/spf13/cobra"
)

func newEmployeeCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage the employee directory",
	}

	cmd.AddCommand(
		newEmployeeAddCmd(a),
		newEmployeeListCmd(a),
		newEmployeeHistoryCmd(a),
	)

	return cmd
}

func newEmployeeAddCmd(a *App) *cobra.Command {
	var e domain.Employee

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an employee to the directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Employees.Create(cmd.Context(), &e); err != nil {
				return err
			}
			printf(cmd, "Added %s (%s)\n", formatter.Bold(e.Name), e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&e.ID, "id", "", "Employee ID (generated when empty)")
	cmd.Flags().StringVar(&e.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&e.Position, "position", "", "Position")
	cmd.Flags().StringVar(&e.Department, "department", "", "Department")
	cmd.Flags().StringVar(&e.Phone, "phone", "", "Phone")
	cmd.Flags().Int64Var(&e.TelegramChatID, "telegram-chat", 0, "Telegram chat ID for notifications")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newEmployeeListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := a.Employees.List(cmd.Context())
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatEmployees(employees))
			return nil
		},
	}
}

func newEmployeeHistoryCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history <employee-id>",
		Short: "Show an employee's meetings and receptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.Employees.Get(ctx, args[0])
			if err != nil {
				return err
			}
			meetings, err := a.Employees.MeetingHistory(ctx, e.ID)
			if err != nil {
				return err
			}
			receptions, err := a.Employees.ReceptionHistory(ctx, e.ID)
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatHistory(e, meetings, receptions))
			return nil
		},
	}
}
