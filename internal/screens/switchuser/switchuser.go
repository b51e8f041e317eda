// Package switchuser lets the player pick or create the acting user.
package switchuser

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/codeleveling/internal/notify"
	"github.com/abhisek/codeleveling/internal/screen"
	"github.com/abhisek/codeleveling/internal/store"
	"github.com/abhisek/codeleveling/internal/ui/components"
	"github.com/abhisek/codeleveling/internal/ui/layout"
	"github.com/abhisek/codeleveling/internal/ui/theme"
)

// maxUsername mirrors the username length limit.
const maxUsername = 32

type usersLoadedMsg struct {
	users []store.User
	err   error
}

type switchFailedMsg struct {
	event notify.Event
	err   error
}

// SwitchUserScreen shows known users and a name input.
type SwitchUserScreen struct {
	sess  *screen.Session
	input components.TextInput
	users []store.User
	err   error
}

var (
	_ screen.Screen          = (*SwitchUserScreen)(nil)
	_ screen.KeyHintProvider = (*SwitchUserScreen)(nil)
)

// New creates a SwitchUserScreen.
func New(sess *screen.Session) *SwitchUserScreen {
	return &SwitchUserScreen{
		sess:  sess,
		input: components.NewTextInput("Username", maxUsername),
	}
}

func (s *SwitchUserScreen) Init() tea.Cmd {
	return tea.Batch(s.input.Init(), s.loadUsers())
}

func (s *SwitchUserScreen) loadUsers() tea.Cmd {
	dir := s.sess.Users
	return func() tea.Msg {
		list, err := dir.List(context.Background())
		return usersLoadedMsg{users: list, err: err}
	}
}

func (s *SwitchUserScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case usersLoadedMsg:
		s.users, s.err = msg.users, msg.err
		return s, nil

	case switchFailedMsg:
		s.err = msg.err
		s.input.Submit(false)
		return s, screen.Status([]notify.Event{msg.event}, nil)

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s, s.submit(s.input.Value())
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SwitchUserScreen) submit(name string) tea.Cmd {
	dir := s.sess.Users
	return func() tea.Msg {
		u, ev, err := dir.Switch(context.Background(), name)
		if err != nil {
			return switchFailedMsg{event: ev, err: err}
		}
		return screen.UserChangedMsg{User: u, Event: ev}
	}
}

func (s *SwitchUserScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(theme.Body.Render("Current user: "))
	b.WriteString(theme.Selected.Render(s.sess.User.Username))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("Switch to: ") + s.input.View())
	b.WriteString("\n\n")

	if len(s.users) > 0 {
		b.WriteString(theme.Hint.Render("Known users"))
		b.WriteString("\n")
		for _, u := range s.users {
			if u.ID == s.sess.User.ID {
				b.WriteString(theme.Selected.Render("  ▸ " + u.Username))
			} else {
				b.WriteString(theme.Unselected.Render("    " + u.Username))
			}
			b.WriteString("\n")
		}
	}
	if s.err != nil {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.err.Error()))
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 4).
		Render(b.String())
}

func (s *SwitchUserScreen) Title() string {
	return "Switch User"
}

func (s *SwitchUserScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Switch"},
		{Key: "Esc", Description: "Back"},
	}
}
