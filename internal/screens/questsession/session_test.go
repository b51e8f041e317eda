package questsession

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeleveling/internal/notify"
	"github.com/abhisek/codeleveling/internal/router"
	"github.com/abhisek/codeleveling/internal/screen"
	"github.com/abhisek/codeleveling/internal/screen/screentest"
	"github.com/abhisek/codeleveling/internal/store"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func firstQuest(t *testing.T, sess *screen.Session) store.Quest {
	t.Helper()
	views, err := sess.Catalog.ListQuests(context.Background(), sess.User.ID)
	if err != nil {
		t.Fatalf("list quests: %v", err)
	}
	if len(views) == 0 {
		t.Fatal("expected seeded quests")
	}
	return views[0].Quest
}

// started returns a session screen past loading and the lesson.
func started(t *testing.T) (*SessionScreen, *screen.Session) {
	t.Helper()
	sess := screentest.NewSession(t, "ada")
	s := New(sess, firstQuest(t, sess))
	s.Update(s.Init()())
	if s.phase != phaseLesson {
		t.Fatalf("expected lesson phase, got %d", s.phase)
	}
	s.Update(specialKey(tea.KeyEnter))
	if s.phase != phaseQuestion {
		t.Fatalf("expected question phase, got %d", s.phase)
	}
	return s, sess
}

// answer presses the digit for choice and feeds the recorded result back.
func answer(t *testing.T, s *SessionScreen, digit rune) screen.StatusMsg {
	t.Helper()
	_, cmd := s.Update(keyPress(digit))
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	if s.phase != phaseSubmitting {
		t.Fatalf("expected submitting phase, got %d", s.phase)
	}
	_, cmd = s.Update(cmd())
	if cmd == nil {
		t.Fatal("expected status command")
	}
	status, ok := cmd().(screen.StatusMsg)
	if !ok {
		t.Fatal("expected StatusMsg")
	}
	return status
}

// next presses Enter on feedback and feeds the next question back.
func next(t *testing.T, s *SessionScreen) {
	t.Helper()
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected load command")
	}
	s.Update(cmd())
}

func TestLessonShownBeforeQuestions(t *testing.T) {
	sess := screentest.NewSession(t, "ada")
	s := New(sess, firstQuest(t, sess))
	s.Update(s.Init()())

	view := s.View(100, 30)
	if !strings.Contains(view, "contiguously") {
		t.Errorf("expected lesson text in view, got:\n%s", view)
	}
	if s.Title() != "Arrays I: Basics" {
		t.Errorf("unexpected title %q", s.Title())
	}
}

func TestCorrectAnswersCompleteQuest(t *testing.T) {
	s, sess := started(t)

	if s.question.ID != 1 {
		t.Fatalf("expected question 1, got %d", s.question.ID)
	}
	status := answer(t, s, '1')
	if status.Stats == nil || status.Stats.TotalXP != 20 {
		t.Fatalf("expected 20 XP after first answer, got %+v", status.Stats)
	}
	if !notify.Has(status.Events, notify.AnswerCorrect) {
		t.Error("expected AnswerCorrect event")
	}

	next(t, s)
	if s.question == nil || s.question.ID != 2 {
		t.Fatalf("expected question 2, got %+v", s.question)
	}
	status = answer(t, s, '2')
	if !s.result.Result.QuestCompleted {
		t.Error("expected quest to complete after last correct answer")
	}
	if !notify.Has(status.Events, notify.QuestCompleted) {
		t.Error("expected QuestCompleted event")
	}

	next(t, s)
	if s.phase != phaseDone {
		t.Fatalf("expected done phase, got %d", s.phase)
	}
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}

	p, err := sess.Catalog.ListQuests(context.Background(), sess.User.ID)
	if err != nil {
		t.Fatalf("list quests: %v", err)
	}
	if p[0].Status != store.StatusCompleted || p[1].Status != store.StatusUnlocked {
		t.Errorf("expected quest 1 completed and 2 unlocked, got %s and %s", p[0].Status, p[1].Status)
	}
}

func TestIncorrectAnswerRepeatsQuestion(t *testing.T) {
	s, _ := started(t)

	status := answer(t, s, '2')
	if s.result.Result.Correct {
		t.Fatal("expected incorrect answer")
	}
	if !notify.Has(status.Events, notify.AnswerIncorrect) {
		t.Error("expected AnswerIncorrect event")
	}
	if !strings.Contains(s.View(100, 30), "Not quite") {
		t.Error("expected incorrect feedback in view")
	}

	next(t, s)
	if s.phase != phaseQuestion || s.question.ID != 1 {
		t.Errorf("expected question 1 again, got phase %d question %+v", s.phase, s.question)
	}
}

func TestKeysIgnoredWhileSubmitting(t *testing.T) {
	s, _ := started(t)

	s.Update(keyPress('1'))
	_, cmd := s.Update(keyPress('1'))
	if cmd != nil {
		t.Error("expected no second submit while the first is in flight")
	}
}
