// Package quests renders the quest list for the acting user.
package quests

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeleveling/internal/router"
	"github.com/abhisek/codeleveling/internal/screen"
	"github.com/abhisek/codeleveling/internal/screens/questsession"
	"github.com/abhisek/codeleveling/internal/store"
	"github.com/abhisek/codeleveling/internal/ui/components"
	"github.com/abhisek/codeleveling/internal/ui/layout"
	"github.com/abhisek/codeleveling/internal/ui/theme"
)

type questsLoadedMsg struct {
	views []store.QuestView
	err   error
}

// QuestsScreen lists quests with their status. Locked quests cannot be
// opened.
type QuestsScreen struct {
	sess   *screen.Session
	views  []store.QuestView
	menu   components.Menu
	loaded bool
	err    error
}

var (
	_ screen.Screen          = (*QuestsScreen)(nil)
	_ screen.Resumer         = (*QuestsScreen)(nil)
	_ screen.KeyHintProvider = (*QuestsScreen)(nil)
)

// New creates a QuestsScreen.
func New(sess *screen.Session) *QuestsScreen {
	return &QuestsScreen{sess: sess}
}

func (s *QuestsScreen) Init() tea.Cmd {
	return s.load()
}

// Resume reloads progress after a quest session closes.
func (s *QuestsScreen) Resume() tea.Cmd {
	return s.load()
}

func (s *QuestsScreen) load() tea.Cmd {
	sess := s.sess
	return func() tea.Msg {
		views, err := sess.Catalog.ListQuests(context.Background(), sess.User.ID)
		return questsLoadedMsg{views: views, err: err}
	}
}

func (s *QuestsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(questsLoadedMsg); ok {
		s.loaded = true
		s.err = msg.err
		if msg.err == nil {
			s.setViews(msg.views)
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *QuestsScreen) setViews(views []store.QuestView) {
	prev := s.menu.Selected
	s.views = views

	items := make([]components.MenuItem, 0, len(views))
	for _, v := range views {
		v := v
		items = append(items, components.MenuItem{
			Label:    questLabel(v),
			Disabled: v.Status == store.StatusLocked,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: questsession.New(s.sess, v.Quest)}
				}
			},
		})
	}
	s.menu = components.NewMenu(items)
	if prev > 0 && prev < len(items) && !items[prev].Disabled {
		s.menu.Selected = prev
	}
}

func questLabel(v store.QuestView) string {
	var mark string
	switch v.Status {
	case store.StatusCompleted:
		mark = "✓"
	case store.StatusUnlocked:
		mark = "▶"
	default:
		mark = "🔒"
	}
	label := fmt.Sprintf("%s %-32s %-20s %s", mark, v.Title, v.Topic, strings.Repeat("◆", v.Difficulty))
	if v.BestScore > 0 {
		label += fmt.Sprintf("  best %d", v.BestScore)
	}
	return label
}

func (s *QuestsScreen) View(width, height int) string {
	style := lipgloss.NewStyle().Width(width).Height(height).Padding(1, 4)
	switch {
	case s.err != nil:
		return style.Foreground(theme.Error).Render("Could not load quests: " + s.err.Error())
	case !s.loaded:
		return style.Foreground(theme.TextDim).Render("Loading quests...")
	case len(s.views) == 0:
		return style.Foreground(theme.TextDim).Render("No quests yet. Import a catalog with `codeleveling catalog import`.")
	}
	return style.Render(s.menu.View())
}

func (s *QuestsScreen) Title() string {
	return "Quests"
}

func (s *QuestsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Start quest"},
		{Key: "Esc", Description: "Back"},
	}
}
