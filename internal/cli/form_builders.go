package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/brieflist/internal/cli/formatter"
	"github.com/alexanderramin/brieflist/internal/export"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// brieflistHuhTheme returns a huh theme in the formatter palette.
func brieflistHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused: green accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func requiredText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// companyNameForm asks for the company to research.
func companyNameForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Company").
				Placeholder("Enter company name").
				Value(value).
				Validate(requiredText("Company name")),
		),
	).WithTheme(brieflistHuhTheme()).WithShowHelp(false)
}

// exportForm asks where and how to write a report. dest and format hold
// the defaults on entry.
func exportForm(dest, format *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Destination").
				Description("Directory or s3://bucket/prefix").
				Value(dest).
				Validate(requiredText("Destination")),
			huh.NewSelect[string]().
				Title("Format").
				Options(
					huh.NewOption("Markdown", string(export.FormatMarkdown)),
					huh.NewOption("HTML", string(export.FormatHTML)),
				).
				Value(format),
		),
	).WithTheme(brieflistHuhTheme()).WithShowHelp(false)
}
