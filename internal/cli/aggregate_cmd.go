package cli

import (
	"context"
	"fmt"

	"github.com/bside-ms/bside-nexus-sub000/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAggregateCmd(app *App) *cobra.Command {
	var day, to, contract string

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Recompute the daily summary for a day or range",
		Long: "Recomputes and upserts the daily summary rows. Safe to re-run at any\n" +
			"time; each run fully replaces the derived values for its day.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			day = dayOrToday(app, day)

			if to == "" {
				record, err := app.Aggregation.AggregateDay(ctx, app.Config.UserID, contract, day)
				if err != nil {
					return err
				}
				fmt.Printf("%s %s: %.2f h worked, %.2f h break\n",
					formatter.StyleGreen.Render("✔"), record.Day,
					record.TotalWorkHours, record.TotalBreakHours)
				if record.HasErrors {
					fmt.Printf("  %s %s\n", formatter.StyleRed.Render("issues:"), record.ErrorDetails)
				}
				return nil
			}

			stop := formatter.StartSpinner(fmt.Sprintf("Aggregating %s .. %s", day, to))
			records, err := app.Aggregation.AggregateRange(ctx, app.Config.UserID, contract, day, to)
			stop()
			if err != nil {
				return err
			}

			flagged := 0
			for _, r := range records {
				if r.HasErrors {
					flagged++
				}
			}
			fmt.Printf("%s Aggregated %d days (%d with issues)\n",
				formatter.StyleGreen.Render("✔"), len(records), flagged)
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Day to aggregate (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&to, "to", "", "Backfill every day up to this date")
	cmd.Flags().StringVar(&contract, "contract", "", "Contract scope")

	return cmd
}
