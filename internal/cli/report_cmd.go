package cli

import (
	"fmt"

	"github.com/alexanderramin/clockwork/internal/aggregate"
	"github.com/alexanderramin/clockwork/internal/cli/formatter"
	"github.com/alexanderramin/clockwork/internal/daterange"
	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/export"
	"github.com/alexanderramin/clockwork/internal/service"
	"github.com/spf13/cobra"
)

const rangeArgs = "[d|w|m|y | START [END]]"

func newClockLogCmd(app *App) *cobra.Command {
	var category string
	var sessions bool

	cmd := &cobra.Command{
		Use:     "clocklog " + rangeArgs,
		Aliases: []string{"log"},
		Short:   "Show day-by-day totals, or raw sessions with --sessions",
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, rng, err := app.resolveRange(args)
			if err != nil {
				return err
			}
			req := service.ReportRequest{Range: rng, Category: category}
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, reportTitle("Time log", spec, category))
			if sessions {
				list, err := app.Reports.Sessions(cmd.Context(), req)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatSessions(list, app.Config.TimeFormat))
				return nil
			}

			days, err := app.Reports.Daily(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatWeeks(aggregate.Weeks(days)))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only include this category")
	cmd.Flags().BoolVar(&sessions, "sessions", false, "List individual sessions instead of daily totals")
	return cmd
}

func newClockSumCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "clocksum " + rangeArgs,
		Aliases: []string{"sum"},
		Short:   "Summarize time by category, activity and task",
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, rng, err := app.resolveRange(args)
			if err != nil {
				return err
			}
			rows, err := app.Reports.Summarize(cmd.Context(), service.ReportRequest{
				Range:    rng,
				Category: category,
				GroupBy:  domain.GroupByTask,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, reportTitle("Summary", spec, category))
			fmt.Fprint(out, formatter.FormatSummaryTree(aggregate.Nest(rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only include this category")
	return cmd
}

func newClockVisCmd(app *App) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:     "clockvis " + rangeArgs,
		Aliases: []string{"vis"},
		Short:   "Chart time by category, or by activity within --category",
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			spec, rng, err := app.resolveRange(args)
			if err != nil {
				return err
			}
			by := domain.GroupByCategory
			if category != "" {
				by = domain.GroupByActivity
			}
			rows, err := app.Reports.Summarize(cmd.Context(), service.ReportRequest{
				Range:    rng,
				Category: category,
				GroupBy:  by,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, formatter.NoActivities)
				return nil
			}
			slices := export.ChartSlices(rows, by, app.Config.Colors)
			title := fmt.Sprintf("Time by %s (%s)", by, spec.Label())
			if category != "" {
				title = fmt.Sprintf("%s: time by activity (%s)", category, spec.Label())
			}
			fmt.Fprint(out, formatter.FormatChart(title, slices, app.Config.Visualization.ChartWidth))
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Chart activities within this category")
	return cmd
}

func reportTitle(name string, spec daterange.Spec, category string) string {
	title := fmt.Sprintf("%s (%s)", name, spec.Label())
	if category != "" {
		title += " for " + category
	}
	return formatter.Header(title) + "\n"
}
