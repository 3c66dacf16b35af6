package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBar renders a horizontal bar of width cells filled to ratio.
// A non-zero ratio always shows at least one filled cell.
func RenderBar(ratio float64, width int, style lipgloss.Style) string {
	ratio = min(max(ratio, 0), 1)
	width = max(width, 2)

	filled := int(ratio*float64(width) + 0.5)
	if ratio > 0 && filled == 0 {
		filled = 1
	}
	filled = min(filled, width)

	return style.Render(strings.Repeat(filledBlock, filled)) + StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
}
