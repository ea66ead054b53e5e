package cli

import (
	"fmt"

	"github.com/alexanderramin/clockwork/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show database statistics and running sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			stats, err := app.Reports.Stats(ctx)
			if err != nil {
				return err
			}
			open, err := app.Clock.Open(ctx)
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(formatter.StatusView{
				DBPath:     app.DBPath,
				Records:    stats.Records,
				Open:       stats.Open,
				Categories: stats.Categories,
				Activities: stats.Activities,
				First:      stats.First,
				Latest:     stats.Latest,
				Indexes:    stats.Indexes,
				Running:    open,
				Now:        app.now(),
				TimeFormat: app.Config.TimeFormat,
			}))
			return nil
		},
	}
}
