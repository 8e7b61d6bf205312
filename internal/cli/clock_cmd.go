package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/cli/formatter"
	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
	"github.com/bside-ms/bside-nexus-sub000/internal/service"
	"github.com/bside-ms/bside-nexus-sub000/internal/worktime"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newClockCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clock",
		Short: "Record work punches",
	}

	cmd.AddCommand(
		newPunchCmd(app, "in", "Clock in for work", domain.EntryStart),
		newPunchCmd(app, "break", "Start a break", domain.EntryPause),
		newPunchCmd(app, "resume", "Resume work after a break", domain.EntryPauseEnd),
		newClockOutCmd(app),
	)

	return cmd
}

// newPunchCmd builds the shared command shape for in/break/resume. Clock-out
// has its own command because of the compliance confirmation flow.
func newPunchCmd(app *App, use, short string, typ domain.EntryType) *cobra.Command {
	var atFlag, comment, contract string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildBookingRequest(app, typ, atFlag, comment, contract)
			if err != nil {
				return err
			}
			result, err := app.Entries.Book(context.Background(), req)
			if err != nil {
				return err
			}
			printBooked(app, result)
			return nil
		},
	}

	addPunchFlags(cmd.Flags(), &atFlag, &comment, &contract)
	return cmd
}

func newClockOutCmd(app *App) *cobra.Command {
	var atFlag, comment, contract string
	var force bool

	cmd := &cobra.Command{
		Use:   "out",
		Short: "Clock out, verifying the statutory break",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			req, err := buildBookingRequest(app, domain.EntryStop, atFlag, comment, contract)
			if err != nil {
				return err
			}
			req.Force = force

			result, err := app.Entries.Book(ctx, req)
			if errors.Is(err, service.ErrBreakWarning) {
				confirmed, confirmErr := confirmForce(app, result.Verdict)
				if confirmErr != nil {
					return confirmErr
				}
				if !confirmed {
					return err
				}
				req.Force = true
				result, err = app.Entries.Book(ctx, req)
			}
			if err != nil {
				return err
			}

			printBooked(app, result)
			if result.Record != nil {
				fmt.Printf("  %s %.2f h worked, %.2f h break\n",
					formatter.Bold("Day total:"), result.Record.TotalWorkHours, result.Record.TotalBreakHours)
			}
			if !result.Verdict.Valid {
				fmt.Printf("  %s %s\n", formatter.StyleYellow.Render("overridden:"), result.Verdict.Warning)
			}
			return nil
		},
	}

	addPunchFlags(cmd.Flags(), &atFlag, &comment, &contract)
	cmd.Flags().BoolVar(&force, "force", false, "Clock out despite a break warning")
	return cmd
}

func addPunchFlags(fs *pflag.FlagSet, at, comment, contract *string) {
	fs.StringVar(at, "at", "", "Punch time (HH:MM or RFC3339, default now)")
	fs.StringVar(comment, "comment", "", "Optional comment")
	fs.StringVar(contract, "contract", "", "Contract the punch belongs to")
}

func buildBookingRequest(app *App, typ domain.EntryType, atFlag, comment, contract string) (service.BookingRequest, error) {
	req := service.BookingRequest{
		UserID:     app.Config.UserID,
		ContractID: contract,
		EntryType:  typ,
		Comment:    comment,
	}
	if atFlag != "" {
		policy := worktime.Policy{FutureGrace: app.Config.FutureGrace(), PastGrace: app.Config.PastGrace()}
		at, err := policy.ParseAndValidate(atFlag, time.Now(), app.Location)
		if err != nil {
			return req, err
		}
		req.At = &at
	}
	return req, nil
}

// confirmForce offers an interactive override for a failing break check.
// In a non-interactive run the warning stays an error.
func confirmForce(app *App, verdict worktime.Verdict) (bool, error) {
	if !app.interactive() {
		return false, nil
	}

	fmt.Printf("  %s %s\n", formatter.StyleYellow.Render("⚠"), verdict.Warning)

	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clock out anyway?").
				Description("The entry will be recorded with the break shortfall noted.").
				Value(&confirmed),
		),
	).WithShowHelp(false)
	if err := form.Run(); err != nil {
		return false, fmt.Errorf("running confirmation: %w", err)
	}
	return confirmed, nil
}

func printBooked(app *App, result *service.BookingResult) {
	e := result.Entry
	fmt.Printf("%s %s at %s (%s)\n",
		formatter.StyleGreen.Render("✔"),
		formatter.EntryTypeBadge(e.EntryType),
		worktime.ToLocalTimeStr(&e.LoggedAt, app.Location),
		formatter.TruncID(e.ID))
}
