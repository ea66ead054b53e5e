package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/clockwork/internal/cli/formatter"
	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// Prompter fills in arguments the user left off on an interactive terminal.
type Prompter interface {
	// ClockIn completes req in place.
	ClockIn(req *service.ClockInRequest, categories []string) error
	// ClockOut picks one of the open sessions and returns its activity.
	ClockOut(open []*domain.Session) (string, error)
}

// errPromptAborted is returned when the user cancels a form.
var errPromptAborted = errors.New("prompt aborted")

type huhPrompter struct{}

func (huhPrompter) ClockIn(req *service.ClockInRequest, categories []string) error {
	var category huh.Field
	if len(categories) > 0 {
		opts := make([]huh.Option[string], 0, len(categories))
		for _, c := range categories {
			opts = append(opts, huh.NewOption(c, c))
		}
		category = huh.NewSelect[string]().
			Title("Category").
			Options(opts...).
			Value(&req.Category)
	} else {
		category = requiredInput("Category", "Work", &req.Category)
	}

	form := huh.NewForm(
		huh.NewGroup(
			category,
			requiredInput("Activity", "coding", &req.Activity),
			requiredInput("Task", "api", &req.Task),
			huh.NewInput().Title("Notes").Placeholder("optional").Value(&req.Notes),
		),
	).WithTheme(clockworkHuhTheme()).WithShowHelp(false)

	return runForm(form)
}

func (huhPrompter) ClockOut(open []*domain.Session) (string, error) {
	if len(open) == 1 {
		return confirmClockOut(open[0])
	}
	opts := make([]huh.Option[string], 0, len(open))
	for _, s := range open {
		label := s.Activity + " " + formatter.Dim("("+s.Category+"/"+s.Task+")")
		opts = append(opts, huh.NewOption(label, s.Activity))
	}

	var activity string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Clock out of").
				Options(opts...).
				Value(&activity),
		),
	).WithTheme(clockworkHuhTheme()).WithShowHelp(false)

	if err := runForm(form); err != nil {
		return "", err
	}
	return activity, nil
}

// confirmClockOut asks before closing the only running session.
func confirmClockOut(s *domain.Session) (string, error) {
	ok := true
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clock out of " + s.Activity + "?").
				Description(s.Category + "/" + s.Task).
				Affirmative("Yes").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(clockworkHuhTheme()).WithShowHelp(false)

	if err := runForm(form); err != nil {
		return "", err
	}
	if !ok {
		return "", errPromptAborted
	}
	return s.Activity, nil
}

func requiredInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New(strings.ToLower(title) + " is required")
			}
			return nil
		})
}

func runForm(form *huh.Form) error {
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errPromptAborted
		}
		return err
	}
	return nil
}

// clockworkHuhTheme styles huh forms with the formatter palette.
func clockworkHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}
