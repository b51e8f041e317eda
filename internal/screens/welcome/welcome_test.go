package welcome

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeleveling/internal/router"
	"github.com/abhisek/codeleveling/internal/screen"
	"github.com/abhisek/codeleveling/internal/screen/screentest"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "home" }
func (s *stubScreen) Title() string                          { return "Home" }

func newTestWelcome(t *testing.T, sess *screen.Session) (*WelcomeScreen, *int) {
	t.Helper()
	callCount := 0
	w := New(sess, func() screen.Screen {
		callCount++
		return &stubScreen{}
	})
	w.Update(w.load()())
	if w.err != nil {
		t.Fatalf("load card: %v", w.err)
	}
	return w, &callCount
}

func sendTicks(w *WelcomeScreen, n int) tea.Cmd {
	var cmd tea.Cmd
	for i := 0; i < n; i++ {
		_, cmd = w.Update(tickMsg(time.Now()))
	}
	return cmd
}

func TestCardShowsFirstQuestForNewUser(t *testing.T) {
	w, _ := newTestWelcome(t, screentest.NewSession(t, "ada"))

	if w.card.nextQuest != "Arrays I: Basics" {
		t.Errorf("next quest = %q, want the first quest", w.card.nextQuest)
	}
	if w.card.questsDone != 0 || w.card.questsTotal != 3 {
		t.Errorf("quests = %d/%d, want 0/3", w.card.questsDone, w.card.questsTotal)
	}
	view := w.View(100, 40)
	if !strings.Contains(view, "Welcome, ada") {
		t.Error("view should greet the user")
	}
	if !strings.Contains(view, "Next quest: Arrays I: Basics") {
		t.Error("view should name the next quest")
	}
}

func TestCardReflectsProgress(t *testing.T) {
	sess := screentest.NewSession(t, "ada")
	if _, err := sess.Engine.CompleteQuest(context.Background(), sess.User.ID, 1, 250, 90); err != nil {
		t.Fatalf("complete quest: %v", err)
	}
	w, _ := newTestWelcome(t, sess)

	if w.card.nextQuest != "Pointers I: Addresses" {
		t.Errorf("next quest = %q, want the unlocked successor", w.card.nextQuest)
	}
	if w.card.stats.TotalXP != 250 || w.card.questsDone != 1 {
		t.Errorf("card = %+v, want 250 XP and one quest done", *w.card)
	}
}

func TestXPCounterStopsAtTotal(t *testing.T) {
	sess := screentest.NewSession(t, "ada")
	if _, err := sess.Engine.CompleteQuest(context.Background(), sess.User.ID, 1, 250, 90); err != nil {
		t.Fatalf("complete quest: %v", err)
	}
	w, _ := newTestWelcome(t, sess)

	if cmd := sendTicks(w, 1); cmd == nil {
		t.Fatal("counter should keep ticking below the total")
	}
	if w.shownXP <= 0 || w.shownXP >= 250 {
		t.Errorf("shown XP after one tick = %d, want between 0 and 250", w.shownXP)
	}

	if cmd := sendTicks(w, countSteps+5); cmd != nil {
		t.Error("ticking should stop once the total is reached")
	}
	if w.shownXP != 250 {
		t.Errorf("shown XP = %d, want 250", w.shownXP)
	}
	if !strings.Contains(w.View(100, 40), "LEVEL 2") {
		t.Error("view should show level 2 once the counter finishes")
	}
}

func TestZeroXPStopsTicking(t *testing.T) {
	w, _ := newTestWelcome(t, screentest.NewSession(t, "ada"))

	if cmd := sendTicks(w, 1); cmd != nil {
		t.Error("nothing to count for a fresh user")
	}
}

func TestTicksContinueUntilLoaded(t *testing.T) {
	w := New(screentest.NewSession(t, "ada"), func() screen.Screen { return &stubScreen{} })

	if cmd := sendTicks(w, 3); cmd == nil {
		t.Error("ticks should continue while the card is loading")
	}
	if !strings.Contains(w.View(100, 40), "loading") {
		t.Error("view should show loading before the card arrives")
	}
}

func TestKeypressSkipsMidCount(t *testing.T) {
	sess := screentest.NewSession(t, "ada")
	if _, err := sess.Engine.CompleteQuest(context.Background(), sess.User.ID, 1, 400, 90); err != nil {
		t.Fatalf("complete quest: %v", err)
	}
	w, callCount := newTestWelcome(t, sess)
	sendTicks(w, 2)

	_, cmd := w.Update(tea.KeyPressMsg{Code: ' '})
	if cmd == nil {
		t.Fatal("keypress during the count should leave the splash")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if msg.Screen == nil {
		t.Error("replace screen should not be nil")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called once, got %d", *callCount)
	}
}

func TestLeaveOnlyOnce(t *testing.T) {
	w, callCount := newTestWelcome(t, screentest.NewSession(t, "ada"))

	w.Update(tea.KeyPressMsg{Code: 'a'})
	_, cmd := w.Update(tea.KeyPressMsg{Code: 'b'})
	if cmd != nil {
		t.Error("second keypress should not produce a command")
	}
	if *callCount != 1 {
		t.Errorf("factory should be called exactly once, got %d", *callCount)
	}
}

func TestTitleEmpty(t *testing.T) {
	w := New(screentest.NewSession(t, "ada"), func() screen.Screen { return &stubScreen{} })
	if w.Title() != "" {
		t.Errorf("expected empty title, got %q", w.Title())
	}
}
