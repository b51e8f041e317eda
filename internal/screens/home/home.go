package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeleveling/internal/router"
	"github.com/abhisek/codeleveling/internal/screen"
	dailyscreen "github.com/abhisek/codeleveling/internal/screens/daily"
	leaderscreen "github.com/abhisek/codeleveling/internal/screens/leaderboard"
	"github.com/abhisek/codeleveling/internal/screens/quests"
	"github.com/abhisek/codeleveling/internal/screens/switchuser"
	"github.com/abhisek/codeleveling/internal/store"
	"github.com/abhisek/codeleveling/internal/ui/components"
	"github.com/abhisek/codeleveling/internal/ui/layout"
)

// dashboard is the summary shown above the menu.
type dashboard struct {
	stats       store.UserStats
	questsDone  int
	questsTotal int
	dailyDone   int
	dailyTotal  int
}

// dashboardMsg carries a freshly loaded dashboard.
type dashboardMsg struct {
	data dashboard
	err  error
}

// HomeScreen is the main home screen of the application.
type HomeScreen struct {
	sess       *screen.Session
	menu       components.Menu
	menuLabels []string
	data       dashboard
	err        error
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

// New creates a new HomeScreen for the session's user.
func New(sess *screen.Session) *HomeScreen {
	menuLabels := []string{"QUESTS", "DAILY TASKS", "LEADERBOARD", "SWITCH USER", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd { return pushScreen(quests.New(sess)) }},
		{Label: menuLabels[1], Action: func() tea.Cmd { return pushScreen(dailyscreen.New(sess)) }},
		{Label: menuLabels[2], Action: func() tea.Cmd { return pushScreen(leaderscreen.New(sess)) }},
		{Label: menuLabels[3], Action: func() tea.Cmd { return pushScreen(switchuser.New(sess)) }},
		{Label: menuLabels[4], Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{
		sess:       sess,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		data:       dashboard{stats: store.UserStats{Level: 1}},
	}
}

func pushScreen(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.load()
}

// Resume reloads the dashboard after a sub-screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.load()
}

func (h *HomeScreen) load() tea.Cmd {
	sess := h.sess
	return func() tea.Msg {
		ctx := context.Background()
		var d dashboard

		stats, err := sess.Engine.Stats(ctx, sess.User.ID)
		if err != nil {
			return dashboardMsg{err: err}
		}
		d.stats = stats

		views, err := sess.Catalog.ListQuests(ctx, sess.User.ID)
		if err != nil {
			return dashboardMsg{err: err}
		}
		d.questsTotal = len(views)
		for _, v := range views {
			if v.Status == store.StatusCompleted {
				d.questsDone++
			}
		}

		tasks, err := sess.Daily.ListTasks(ctx, sess.User.ID)
		if err != nil {
			return dashboardMsg{err: err}
		}
		d.dailyTotal = len(tasks)
		for _, t := range tasks {
			if t.CompletedToday {
				d.dailyDone++
			}
		}
		return dashboardMsg{data: d}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(dashboardMsg); ok {
		h.err = msg.err
		if msg.err != nil {
			return h, nil
		}
		h.data = msg.data
		stats := msg.data.stats
		return h, screen.Status(nil, &stats)
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) || layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	sections = append(sections, renderStatsBar(h.data, cw, compact))
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}
	if h.err != nil {
		sections = append(sections, renderError(h.err, cw))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
