package welcome

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeleveling/internal/progress"
	"github.com/abhisek/codeleveling/internal/ui/components"
	"github.com/abhisek/codeleveling/internal/ui/theme"
)

var sparkleFrames = []string{"★", "✦", "✧"}

func (w *WelcomeScreen) View(width, height int) string {
	titleStyle := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	title := components.TitleArt
	if width < 44 {
		title = components.TitleCompact
	}

	sections := []string{titleStyle.Render(title), "", w.renderCard(width)}

	hint := "press any key to continue"
	if w.counting() && w.err == nil {
		hint = "press any key to skip"
	}
	sections = append(sections, "", lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render(hint))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

func (w *WelcomeScreen) renderCard(width int) string {
	name := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Welcome, " + w.sess.User.Username)

	var lines []string
	switch {
	case w.err != nil:
		lines = []string{name, "", theme.Incorrect.Render("could not load progress: " + w.err.Error())}
	case w.card == nil:
		lines = []string{name, "", lipgloss.NewStyle().Foreground(theme.TextDim).Render("loading...")}
	default:
		lines = w.cardLines(name, width)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ArcadeCyan).
		Padding(1, 3).
		Render(strings.Join(lines, "\n"))
}

func (w *WelcomeScreen) cardLines(name string, width int) []string {
	c := w.card
	level := progress.ComputeLevel(w.shownXP)
	sparkle := lipgloss.NewStyle().Foreground(theme.Accent).Render(sparkleFrames[w.ticks%len(sparkleFrames)])

	levelLine := fmt.Sprintf("%s %s   %s",
		sparkle,
		lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(fmt.Sprintf("LEVEL %d", level)),
		theme.XPBadge.Render(fmt.Sprintf("%d XP", w.shownXP)),
	)

	into := progress.XPIntoLevel(w.shownXP)
	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d", into, progress.XPPerLevel),
		float64(into)/float64(progress.XPPerLevel),
		false,
		min(40, max(10, width-20)),
	)

	next := "Every quest completed. Try the daily tasks!"
	if c.nextQuest != "" {
		next = "Next quest: " + c.nextQuest
	}

	return []string{
		name,
		"",
		levelLine,
		bar.View(),
		"",
		fmt.Sprintf("%d/%d quests completed", c.questsDone, c.questsTotal),
		lipgloss.NewStyle().Foreground(theme.Secondary).Render(next),
	}
}
