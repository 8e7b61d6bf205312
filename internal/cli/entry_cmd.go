package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/cli/formatter"
	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
	"github.com/bside-ms/bside-nexus-sub000/internal/worktime"
	"github.com/spf13/cobra"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Inspect and correct raw punches",
	}

	cmd.AddCommand(
		newEntryListCmd(app),
		newEntryRemoveCmd(app),
		newEntrySettleCmd(app),
	)

	return cmd
}

func newEntryListCmd(app *App) *cobra.Command {
	var dayFlag string
	var showDeleted bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List punches attributed to a workday",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			day := dayOrToday(app, dayFlag)

			var entries []*domain.TimeLogEntry
			var err error
			if showDeleted {
				entries, err = app.Entries.ListDeleted(ctx, app.Config.UserID, day)
			} else {
				entries, _, err = app.Entries.ListDay(ctx, app.Config.UserID, day)
			}
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("No entries found.")
				return nil
			}

			headers := []string{"ID", "TYPE", "TIME", "COMMENT"}
			if showDeleted {
				headers = append(headers, "DELETED BY", "REASON")
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				row := []string{
					formatter.TruncID(e.ID),
					formatter.EntryTypeBadge(e.EntryType),
					worktime.ToLocalTimeStr(&e.LoggedAt, app.Location),
					formatter.Dim(e.Comment),
				}
				if showDeleted {
					row = append(row, e.DeletedBy, formatter.Dim(e.DeletionReason))
				}
				rows = append(rows, row)
			}

			fmt.Print(formatter.RenderBox("Entries "+day, formatter.RenderTable(headers, rows)))
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "Workday (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&showDeleted, "deleted", false, "Show soft-deleted entries instead")

	return cmd
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Soft-delete a punch and recompute its workday",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Entries.Delete(context.Background(), args[0], app.Config.UserID, reason); err != nil {
				return err
			}
			fmt.Printf("Removed entry %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Why the entry is being removed")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

func newEntrySettleCmd(app *App) *cobra.Command {
	var dayFlag string

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Freeze a workday's punches against deletion",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := dayOrToday(app, dayFlag)
			count, err := app.Entries.SettleDay(context.Background(), app.Config.UserID, day)
			if err != nil {
				return err
			}
			fmt.Printf("Settled %d entries for %s\n", count, day)
			return nil
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "Workday (YYYY-MM-DD, default today)")

	return cmd
}

// dayOrToday resolves an optional day flag to today's civil date.
func dayOrToday(app *App, day string) string {
	if day != "" {
		return day
	}
	return time.Now().In(app.Location).Format(worktime.DateLayout)
}
