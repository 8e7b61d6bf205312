package cli

import (
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/config"
	"github.com/bside-ms/bside-nexus-sub000/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Entries     service.EntryService
	Aggregation service.AggregationService
	Import      service.ImportService
	Config      config.Config
	Location    *time.Location

	// IsInteractive reports whether stdin is a terminal; interactive
	// commands may prompt, non-interactive ones must not.
	IsInteractive func() bool
}

// interactive is safe against an unwired IsInteractive.
func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "worktime" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "worktime",
		Short: "Workday time tracking with statutory break checks",
	}

	root.AddCommand(
		newClockCmd(app),
		newEntryCmd(app),
		newReportCmd(app),
		newAggregateCmd(app),
		newImportCmd(app),
		newStatusCmd(app),
	)

	return root
}
