package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeleveling/internal/progress"
	"github.com/abhisek/codeleveling/internal/ui/components"
	"github.com/abhisek/codeleveling/internal/ui/theme"
)

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	title := components.TitleArt
	if compact {
		title = components.TitleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

// renderStatsBar renders level, quest and daily counters in a bordered box
// matching content width.
func renderStatsBar(d dashboard, cw int, compact bool) string {
	levelStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	questStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dailyStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			levelStyle.Render(fmt.Sprintf("Lv%d", d.stats.Level)),
			questStyle.Render(fmt.Sprintf("★%d/%d", d.questsDone, d.questsTotal)),
			dailyStyle.Render(fmt.Sprintf("✓%d/%d", d.dailyDone, d.dailyTotal)),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			levelStyle.Render(fmt.Sprintf("LEVEL %d", d.stats.Level)),
			questStyle.Render(fmt.Sprintf("★ %d/%d QUESTS", d.questsDone, d.questsTotal)),
			dailyStyle.Render(fmt.Sprintf("✓ %d/%d TODAY", d.dailyDone, d.dailyTotal)),
		)
	}

	into := progress.XPIntoLevel(d.stats.TotalXP)
	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d XP", into, progress.XPPerLevel),
		float64(into)/float64(progress.XPPerLevel),
		false,
		cw-6,
	)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats + "\n" + bar.View())
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int) string {
	var buttons []string
	for i, label := range items {
		buttons = append(buttons, components.ArcadeButton(label, i == selected, buttonWidth))
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int) string {
	var lines []string
	for i, label := range items {
		var line string
		if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

func renderError(err error, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("Could not load progress: " + err.Error())
}
