package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/dayplan/internal/app"
	"github.com/alexanderramin/dayplan/internal/cli/formatter"
	"github.com/alexanderramin/dayplan/internal/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newPlanCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show or batch-edit the daily plan",
	}

	cmd.AddCommand(
		newPlanShowCmd(a),
		newPlanSaveCmd(a),
	)

	return cmd
}

func newPlanShowCmd(a *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the merged timeline for a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := a.resolveDate(dateFlag)
			if err != nil {
				return err
			}
			plan, err := a.DailyPlan.GetDailyPlan(cmd.Context(), date)
			if err != nil {
				return err
			}
			writeln(cmd, formatter.FormatDailyPlan(plan, a.now()))
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	return cmd
}

func newPlanSaveCmd(a *App) *cobra.Command {
	var dateFlag, file string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Apply a YAML batch of upserts and deletes to a day",
		Long: `Apply a YAML batch of upserts and deletes to a day.

The file holds "date", "upsert" (items tagged with kind: task, meeting or
reception) and "delete" (kind and id pairs). Use --file - to read stdin.
Items that fail are reported as warnings; the rest of the batch is kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readSaveRequest(cmd, file)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("date") || req.Date == "" {
				date, err := a.resolveDate(dateFlag)
				if err != nil {
					return err
				}
				req.Date = domain.FormatDate(date)
			}

			res, err := a.DailyPlan.SaveDailyPlan(cmd.Context(), *req)
			if err != nil {
				return err
			}
			printf(cmd, "%s", formatter.FormatSaveResult(res))
			return nil
		},
	}

	cmd.Flags().AddFlagSet(dateFlagSet(&dateFlag))
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML batch file (- for stdin)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readSaveRequest(cmd *cobra.Command, path string) (*app.SaveDailyPlanRequest, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading batch: %w", err)
	}

	var req app.SaveDailyPlanRequest
	if err := yaml.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("parsing batch: %w", err)
	}
	return &req, nil
}
