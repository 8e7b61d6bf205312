package cli

import (
	"context"
	"fmt"

	"github.com/bside-ms/bside-nexus-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Workday and range reports",
	}

	cmd.AddCommand(newReportDayCmd(app), newReportRangeCmd(app))
	return cmd
}

func newReportDayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "day [DATE]",
		Short: "Show the computed stats for one workday",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day := ""
			if len(args) > 0 {
				day = args[0]
			}
			day = dayOrToday(app, day)

			_, stats, err := app.Entries.ListDay(context.Background(), app.Config.UserID, day)
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatDayStats(day, stats))
			return nil
		},
	}
}

func newReportRangeCmd(app *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "range",
		Short: "List aggregated daily records in a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, err := app.Aggregation.ListRecords(context.Background(), app.Config.UserID, from, to)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Println("No records found. Run \"worktime aggregate\" first.")
				return nil
			}

			headers := []string{"DAY", "WORK H", "BREAK H", "STATUS"}
			rows := make([][]string, 0, len(records))
			for _, r := range records {
				rows = append(rows, formatter.FormatRecordRow(r))
			}

			fmt.Print(formatter.RenderBox("Records", formatter.RenderTable(headers, rows)))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Range end (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
