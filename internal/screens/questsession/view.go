package questsession

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeleveling/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	var body string
	switch {
	case s.errMsg != "":
		body = theme.Incorrect.Render("Something went wrong: "+s.errMsg) + "\n\n" +
			theme.Hint.Render("Press any key to go back")
	case s.phase == phaseLoading:
		body = theme.Hint.Render("Loading quest...")
	case s.phase == phaseLesson:
		body = s.renderLesson(width)
	case s.phase == phaseQuestion, s.phase == phaseSubmitting:
		body = s.choice.View()
	case s.phase == phaseFeedback:
		body = s.choice.View() + "\n" + s.renderFeedback()
	case s.phase == phaseDone:
		body = s.renderDone()
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 4).
		Render(s.renderInfo(width-8) + "\n\n" + body)
}

func (s *SessionScreen) renderInfo(width int) string {
	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("Topic: " + s.quest.Topic)
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Difficulty %d  %s %d solved", s.quest.Difficulty,
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"), s.answered))

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right); pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0)))
	return line + "\n" + rule
}

func (s *SessionScreen) renderLesson(width int) string {
	lesson := theme.Card.Width(max(width-8, 20)).Render(theme.Body.Render(s.lesson))
	return lesson + "\n\n" + s.start.View()
}

func (s *SessionScreen) renderFeedback() string {
	r := s.result
	if r == nil {
		return ""
	}
	if r.Err != nil {
		return theme.Incorrect.Render("Your answer could not be saved. Try again.")
	}

	var b strings.Builder
	switch {
	case !r.Result.Correct:
		b.WriteString(theme.Incorrect.Render("✗ Not quite. This question will come back."))
	case r.Result.XPAwarded > 0:
		b.WriteString(theme.Correct.Render(fmt.Sprintf("✓ Correct! +%d XP", r.Result.XPAwarded)))
	default:
		b.WriteString(theme.Correct.Render("✓ Correct! Already mastered, no XP this time."))
	}
	if r.Result.QuestCompleted {
		b.WriteString("\n")
		b.WriteString(theme.XPBadge.Render("★ Quest completed!"))
	}
	if r.Result.LeveledUp {
		b.WriteString("\n")
		b.WriteString(theme.XPBadge.Render(fmt.Sprintf("▲ Level %d reached!", r.Result.Stats.Level)))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press Enter to continue"))
	return b.String()
}

func (s *SessionScreen) renderDone() string {
	return theme.Title.Render("★ All questions answered ★") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("You have mastered every question in %q.", s.quest.Title)) + "\n\n" +
		theme.Hint.Render("Press Enter to go back")
}
