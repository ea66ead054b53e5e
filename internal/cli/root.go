package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/clockwork/internal/config"
	"github.com/alexanderramin/clockwork/internal/daterange"
	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings every command runs against.
type App struct {
	Clock   service.ClockService
	Reports service.ReportService
	Config  config.Config
	DBPath  string

	// Now is the reporting clock. Defaults to time.Now.
	Now func() time.Time

	// IsInteractive gates the clock-in/clock-out prompts and the dashboard.
	IsInteractive func() bool

	// Prompt collects missing clock-in/clock-out arguments. Defaults to huh
	// forms.
	Prompt Prompter

	// LogLevel is raised to Info by --verbose so use-case events reach the
	// log handler.
	LogLevel *slog.LevelVar
}

// QuietLevel keeps use-case logging silent until --verbose lowers it.
const QuietLevel = slog.LevelError + 4

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) prompter() Prompter {
	if a.Prompt != nil {
		return a.Prompt
	}
	return huhPrompter{}
}

// resolveRange parses positional range arguments, falling back to the
// configured default code, and anchors them on the reporting clock.
func (a *App) resolveRange(args []string) (daterange.Spec, domain.TimeRange, error) {
	spec, err := daterange.Parse(args, a.Config.RangeCode())
	if err != nil {
		return daterange.Spec{}, domain.TimeRange{}, err
	}
	rng, err := spec.Resolve(a.now())
	if err != nil {
		return daterange.Spec{}, domain.TimeRange{}, err
	}
	return spec, rng, nil
}

// NewRootCmd creates the top-level "clockwork" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "clockwork",
		Short:         "Clock in, clock out, and report where the time went",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if app.LogLevel != nil && (verbose || app.Config.Log) {
				app.LogLevel.Set(slog.LevelInfo)
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every engine call to stderr")

	root.AddCommand(
		newClockInCmd(app),
		newClockOutCmd(app),
		newClockLogCmd(app),
		newClockSumCmd(app),
		newClockVisCmd(app),
		newClockCSVCmd(app),
		newStatusCmd(app),
		newDashboardCmd(app),
	)

	return root
}
