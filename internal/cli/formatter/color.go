package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/brieflist/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Brand green and navy on a neutral grey.
var (
	ColorGreen  = lipgloss.Color("#009845")
	ColorNavy   = lipgloss.Color("#044462")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#ebdbb2"}
	ColorHeader = lipgloss.AdaptiveColor{Light: "#044462", Dark: "#83a598"}
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleDone   = lipgloss.NewStyle().Foreground(ColorDim).Strikethrough(true)
)

// AvailabilityBadge returns a colored data availability marker such as
// "● PUBLIC".
func AvailabilityBadge(a domain.DataAvailability) string {
	switch a {
	case domain.AvailabilityPublic:
		return StyleGreen.Render("● PUBLIC")
	case domain.AvailabilityLimited:
		return StyleYellow.Render("● LIMITED")
	case domain.AvailabilityPrivate:
		return StyleRed.Render("● PRIVATE")
	default:
		return StyleDim.Render("● UNKNOWN")
	}
}

// Header renders an upper-cased section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}

// ErrorLine renders an inline error message.
func ErrorLine(err error) string {
	if err == nil {
		return ""
	}
	return StyleRed.Render("✗ " + err.Error())
}
