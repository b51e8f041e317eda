package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeleveling/internal/ui/theme"
)

// TitleArt is the block-letter app title. TitleCompact replaces it on
// narrow terminals.
const TitleArt = `╔═╗╔═╗╔╦╗╔═╗  ╦  ╔═╗╦  ╦╔═╗╦  ╦╔╗╔╔═╗
║  ║ ║ ║║║╣   ║  ║╣ ╚╗╔╝║╣ ║  ║║║║║ ╦
╚═╝╚═╝═╩╝╚═╝  ╩═╝╚═╝ ╚╝ ╚═╝╩═╝╩╝╚╝╚═╝`

const TitleCompact = "C O D E · L E V E L I N G"

// ContentWidth returns the uniform inner width used for all arcade sections.
// All boxes are rendered at this width so they visually align.
func ContentWidth(frameWidth int) int {
	// Leave room for cabinet border (2) + inner padding (4)
	w := frameWidth - 6
	if w > 60 {
		w = 60
	}
	if w < 20 {
		w = 20
	}
	return w
}

// CabinetFrame wraps content in a double-border cabinet frame,
// centering vertically and horizontally within the given dimensions.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).
		Height(height - 2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// ArcadeButton renders a styled button matching the home menu style.
func ArcadeButton(label string, selected bool, width int) string {
	if selected {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ArcadeYellow).
			Padding(0, 1).
			Render("▸ " + label)
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Render(label)
}
