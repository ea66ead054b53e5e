package cli

import (
	"fmt"

	"github.com/alexanderramin/clockwork/internal/cli/formatter"
	"github.com/alexanderramin/clockwork/internal/service"
	"github.com/spf13/cobra"
)

func newClockInCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:     "clockin CATEGORY ACTIVITY TASK",
		Aliases: []string{"in"},
		Short:   "Start a session",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && app.interactive() {
				return nil
			}
			return cobra.ExactArgs(3)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.ClockInRequest{Notes: notes}
			if len(args) == 3 {
				req.Category, req.Activity, req.Task = args[0], args[1], args[2]
			} else if err := app.prompter().ClockIn(&req, app.Config.Categories); err != nil {
				return err
			}

			s, err := app.Clock.ClockIn(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClockIn(s, app.now().Location()))
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Notes recorded at clock-in")
	return cmd
}

func newClockOutCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:     "clockout ACTIVITY",
		Aliases: []string{"out"},
		Short:   "Close the running session for an activity",
		Long: `Close the running session for ACTIVITY.

On an interactive terminal ACTIVITY may be left off. With several sessions
running you pick one from a list; with exactly one you are asked to confirm
before it is closed.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && app.interactive() {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var activity string
			if len(args) == 1 {
				activity = args[0]
			} else {
				open, err := app.Clock.Open(ctx)
				if err != nil {
					return err
				}
				if len(open) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Not clocked in.")
					return nil
				}
				if activity, err = app.prompter().ClockOut(open); err != nil {
					return err
				}
			}

			s, err := app.Clock.ClockOut(ctx, service.ClockOutRequest{Activity: activity, Notes: notes})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatClockOut(s, app.now().Location()))
			return nil
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Notes appended at clock-out")
	return cmd
}
