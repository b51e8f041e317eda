// Package leaderboard renders the ranked users.
package leaderboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeleveling/internal/leaderboard"
	"github.com/abhisek/codeleveling/internal/screen"
	"github.com/abhisek/codeleveling/internal/ui/theme"
)

type rankedMsg struct {
	entries []leaderboard.Entry
	err     error
}

// LeaderboardScreen shows the top users by score.
type LeaderboardScreen struct {
	sess    *screen.Session
	entries []leaderboard.Entry
	loaded  bool
	err     error
}

var _ screen.Screen = (*LeaderboardScreen)(nil)

// New creates a LeaderboardScreen.
func New(sess *screen.Session) *LeaderboardScreen {
	return &LeaderboardScreen{sess: sess}
}

func (l *LeaderboardScreen) Init() tea.Cmd {
	ranker := l.sess.Ranker
	return func() tea.Msg {
		entries, err := ranker.Rank(context.Background(), leaderboard.DefaultLimit)
		return rankedMsg{entries: entries, err: err}
	}
}

func (l *LeaderboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(rankedMsg); ok {
		l.loaded = true
		l.entries, l.err = msg.entries, msg.err
	}
	return l, nil
}

func (l *LeaderboardScreen) View(width, height int) string {
	style := lipgloss.NewStyle().Width(width).Height(height).Padding(1, 4)
	switch {
	case l.err != nil:
		return style.Foreground(theme.Error).Render("Could not load leaderboard: " + l.err.Error())
	case !l.loaded:
		return style.Foreground(theme.TextDim).Render("Ranking...")
	case len(l.entries) == 0:
		return style.Foreground(theme.TextDim).Render("No users yet.")
	}

	var b strings.Builder
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%4s  %-32s  %8s  %8s", "Rank", "User", "XP", "Score")))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", 58)))
	b.WriteString("\n")
	for _, e := range l.entries {
		line := fmt.Sprintf("%4d  %-32s  %8d  %8.1f", e.Rank, e.Username, e.TotalXP, e.Score)
		switch {
		case e.UserID == l.sess.User.ID:
			b.WriteString(theme.Selected.Render(line))
		case e.Rank <= 3:
			b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render(line))
		default:
			b.WriteString(theme.Body.Render(line))
		}
		b.WriteString("\n")
	}
	return style.Render(b.String())
}

func (l *LeaderboardScreen) Title() string {
	return "Leaderboard"
}
