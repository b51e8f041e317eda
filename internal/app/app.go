package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/codeleveling/internal/notify"
	"github.com/abhisek/codeleveling/internal/router"
	"github.com/abhisek/codeleveling/internal/screen"
	"github.com/abhisek/codeleveling/internal/screens/home"
	"github.com/abhisek/codeleveling/internal/screens/welcome"
	"github.com/abhisek/codeleveling/internal/store"
	"github.com/abhisek/codeleveling/internal/ui/layout"
)

// Options carries the services and the starting user.
type Options struct {
	Session *screen.Session
	Log     zerolog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	sess   *screen.Session
	log    zerolog.Logger

	stats        store.UserStats
	toast        string
	toastFailure bool

	width  int
	height int
}

// newAppModel creates a new AppModel starting on the welcome splash.
func newAppModel(opts Options) AppModel {
	sess := opts.Session
	splash := welcome.New(sess, func() screen.Screen {
		return home.New(sess)
	})
	return AppModel{
		router: router.New(splash),
		sess:   opts.Session,
		log:    opts.Log.With().Str("component", "tui").Logger(),
		stats:  store.UserStats{UserID: opts.Session.User.ID, Level: 1},
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.StatusMsg:
		m.applyStatus(msg)
		return m, nil

	case screen.UserChangedMsg:
		m.sess.User = msg.User
		m.stats = store.UserStats{UserID: msg.User.ID, Level: 1}
		m.setToast([]notify.Event{msg.Event})
		m.log.Info().Str("user", msg.User.Username).Msg("acting user changed")
		return m, m.router.Reset(home.New(m.sess))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m *AppModel) applyStatus(msg screen.StatusMsg) {
	if msg.Stats != nil && msg.Stats.UserID == m.sess.User.ID {
		m.stats = *msg.Stats
	}
	if len(msg.Events) > 0 {
		m.setToast(msg.Events)
	}
}

func (m *AppModel) setToast(events []notify.Event) {
	m.toast = notify.Headline(events)
	m.toastFailure = false
	for _, ev := range events {
		if ev.Failure() {
			m.toastFailure = true
			break
		}
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.sess.User.Username, m.stats.Level, m.stats.TotalXP, m.width) +
		"\n" + layout.RenderToast(m.toast, m.toastFailure, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
