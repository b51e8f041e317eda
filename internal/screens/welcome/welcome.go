// Package welcome renders the splash card shown when the TUI starts: the
// user's level, an XP count-up and the quest to play next.
package welcome

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeleveling/internal/router"
	"github.com/abhisek/codeleveling/internal/screen"
	"github.com/abhisek/codeleveling/internal/store"
)

const (
	tickInterval = 60 * time.Millisecond

	// countSteps is how many ticks the XP counter takes to reach the total.
	countSteps = 20
)

// card is what the splash shows about the user.
type card struct {
	stats       store.UserStats
	nextQuest   string
	questsDone  int
	questsTotal int
}

type cardMsg struct {
	card card
	err  error
}

type tickMsg time.Time

// WelcomeScreen greets the acting user and hands over to the screen built
// by next on the first key press.
type WelcomeScreen struct {
	sess *screen.Session
	next func() screen.Screen

	card    *card
	err     error
	shownXP int
	ticks   int
	left    bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates the splash for the session's user.
func New(sess *screen.Session, next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{sess: sess, next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(w.load(), tick())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) load() tea.Cmd {
	sess := w.sess
	return func() tea.Msg {
		ctx := context.Background()
		stats, err := sess.Engine.Stats(ctx, sess.User.ID)
		if err != nil {
			return cardMsg{err: err}
		}
		views, err := sess.Catalog.ListQuests(ctx, sess.User.ID)
		if err != nil {
			return cardMsg{err: err}
		}

		c := card{stats: stats, questsTotal: len(views)}
		for _, v := range views {
			switch {
			case v.Status == store.StatusCompleted:
				c.questsDone++
			case v.Status == store.StatusUnlocked && c.nextQuest == "":
				c.nextQuest = v.Title
			}
		}
		return cardMsg{card: c}
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case cardMsg:
		if msg.err != nil {
			w.err = msg.err
			return w, nil
		}
		w.card = &msg.card
		return w, nil

	case tickMsg:
		w.ticks++
		if w.card == nil {
			if w.err != nil {
				return w, nil
			}
			return w, tick()
		}
		total := w.card.stats.TotalXP
		step := max(1, total/countSteps)
		w.shownXP = min(total, w.shownXP+step)
		if w.shownXP >= total {
			return w, nil
		}
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.leave()
	}
	return w, nil
}

// counting reports whether the XP counter is still running.
func (w *WelcomeScreen) counting() bool {
	return w.card == nil || w.shownXP < w.card.stats.TotalXP
}

func (w *WelcomeScreen) leave() tea.Cmd {
	if w.left {
		return nil
	}
	w.left = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}
