package colour

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const defaultWidth = 8

var (
	black = RGB{}
	white = RGB{R: 255, G: 255, B: 255}
)

// Preview returns a terminal swatch for a colour.
// Width specifies how many characters wide the colour block should be.
func Preview(c RGB, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Render(strings.Repeat(" ", width))
}

// PreviewWithText returns a swatch with text centred over it. The text colour
// is whichever of black or white contrasts better with the background.
func PreviewWithText(c RGB, text string, width int) string {
	if width <= 0 {
		width = defaultWidth
	}

	fg := white
	if ContrastRatio(c, black) > ContrastRatio(c, white) {
		fg = black
	}

	if len(text) > width {
		text = text[:width]
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.Hex())).
		Foreground(lipgloss.Color(fg.Hex())).
		Width(width).
		Align(lipgloss.Center).
		Render(text)
}

// FormatWithLabel formats a colour with a label and preview.
func FormatWithLabel(c RGB, label string, width int) string {
	return fmt.Sprintf("%s  %-20s %s", Preview(c, width), label, c.Hex())
}
