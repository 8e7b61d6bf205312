package cli

import (
	"context"
	"fmt"

	"github.com/bside-ms/bside-nexus-sub000/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Live view of today's running workday",
		RunE: func(cmd *cobra.Command, args []string) error {
			day := dayOrToday(app, "")

			// Without a terminal there is nothing to animate; print once.
			if !app.interactive() {
				_, stats, err := app.Entries.ListDay(context.Background(), app.Config.UserID, day)
				if err != nil {
					return err
				}
				fmt.Print(formatter.FormatDayStats(day, stats))
				return nil
			}

			model := newStatusModel(app, day)
			if _, err := tea.NewProgram(model).Run(); err != nil {
				return fmt.Errorf("running status view: %w", err)
			}
			return nil
		},
	}
}
