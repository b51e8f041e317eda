package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeleveling/internal/catalog"
	"github.com/abhisek/codeleveling/internal/daily"
	"github.com/abhisek/codeleveling/internal/leaderboard"
	"github.com/abhisek/codeleveling/internal/notify"
	"github.com/abhisek/codeleveling/internal/progress"
	"github.com/abhisek/codeleveling/internal/store"
	"github.com/abhisek/codeleveling/internal/ui/layout"
	"github.com/abhisek/codeleveling/internal/users"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is an optional interface for screens that reload when they
// become active again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// Session carries the services and the acting user shared by all screens.
type Session struct {
	Catalog *catalog.Service
	Engine  *progress.Engine
	Daily   *daily.Tracker
	Ranker  *leaderboard.Ranker
	Users   *users.Directory

	User store.User
}

// StatusMsg reports operation outcomes to the app frame. Stats, when set,
// replaces the header's XP and level.
type StatusMsg struct {
	Events []notify.Event
	Stats  *store.UserStats
}

// UserChangedMsg is sent after the acting user was switched.
type UserChangedMsg struct {
	User  store.User
	Event notify.Event
}

// Status returns a command emitting a StatusMsg.
func Status(events []notify.Event, stats *store.UserStats) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Events: events, Stats: stats}
	}
}
