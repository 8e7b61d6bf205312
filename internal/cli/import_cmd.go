package cli

import (
	"context"
	"fmt"

	"github.com/bside-ms/bside-nexus-sub000/internal/cli/formatter"
	"github.com/bside-ms/bside-nexus-sub000/internal/importer"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import punches from a JSON export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := importer.LoadImportSchema(args[0])
			if err != nil {
				return err
			}
			if schema.UserID == "" {
				schema.UserID = app.Config.UserID
			}

			if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
				fmt.Println(formatter.StyleRed.Render(fmt.Sprintf("%d problems in %s:", len(errs), args[0])))
				for _, e := range errs {
					fmt.Printf("  • %v\n", e)
				}
				return fmt.Errorf("import aborted")
			}

			if dryRun {
				fmt.Printf("%s %d entries would be imported for %s\n",
					formatter.StyleGreen.Render("✔"), len(schema.Entries), schema.UserID)
				return nil
			}

			summary, err := app.Import.Import(context.Background(), schema)
			if err != nil {
				return err
			}

			fmt.Printf("%s Imported %d entries, recomputed %d workdays\n",
				formatter.StyleGreen.Render("✔"), summary.EntriesCreated, len(summary.DaysRecomputed))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate only, write nothing")

	return cmd
}
