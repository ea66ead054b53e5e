package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/clockwork/internal/daterange"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newDashboardCmd(app *App) *cobra.Command {
	var rangeCode codeFlag
	var category string
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive insights dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("dashboard needs an interactive terminal")
			}
			code := app.Config.RangeCode()
			if rangeCode != "" {
				code = daterange.Code(rangeCode)
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var changes <-chan struct{}
			if !noWatch && app.DBPath != "" && app.DBPath != ":memory:" {
				ch, err := watchStore(ctx, app.DBPath)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "live reload disabled: %v\n", err)
				} else {
					changes = ch
				}
			}

			model := newDashboardModel(app, daterange.FromCode(code), category, changes)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
			_, err := p.Run()
			if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("running dashboard: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().Var(&rangeCode, "range", "Initial range: d, w, m or y (default from config)")
	cmd.Flags().StringVar(&category, "category", "", "Only include this category")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when the database changes")
	return cmd
}

// codeFlag is a period code validated when the flag is parsed.
type codeFlag daterange.Code

var _ pflag.Value = (*codeFlag)(nil)

func (f *codeFlag) String() string { return string(*f) }

func (f *codeFlag) Set(s string) error {
	c, err := daterange.ParseCode(s)
	if err != nil {
		return err
	}
	*f = codeFlag(c)
	return nil
}

func (f *codeFlag) Type() string { return "d|w|m|y" }
