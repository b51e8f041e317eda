// Package questsession runs one quest: its lesson, then its questions
// until each has been answered correctly.
package questsession

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/codeleveling/internal/router"
	"github.com/abhisek/codeleveling/internal/screen"
	"github.com/abhisek/codeleveling/internal/store"
	"github.com/abhisek/codeleveling/internal/ui/components"
	"github.com/abhisek/codeleveling/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phaseLesson
	phaseQuestion
	phaseSubmitting
	phaseFeedback
	phaseDone
)

// SessionScreen implements screen.Screen for one quest.
type SessionScreen struct {
	sess  *screen.Session
	quest store.Quest

	phase    phase
	lesson   string
	start    components.Button
	question *store.Question
	choice   components.MultiChoice
	result   *answerResultMsg
	answered int
	errMsg   string
}

var (
	_ screen.Screen          = (*SessionScreen)(nil)
	_ screen.KeyHintProvider = (*SessionScreen)(nil)
)

// New creates a SessionScreen for quest.
func New(sess *screen.Session, quest store.Quest) *SessionScreen {
	s := &SessionScreen{sess: sess, quest: quest}
	s.start = components.NewButton("Start questions", true, func() tea.Cmd {
		s.showQuestion()
		return nil
	})
	return s
}

func (s *SessionScreen) Init() tea.Cmd {
	sess, questID := s.sess, s.quest.ID
	return func() tea.Msg {
		ctx := context.Background()
		lesson, err := sess.Catalog.Lesson(ctx, questID)
		if err != nil {
			return sessionLoadedMsg{Err: err}
		}
		q, err := sess.Catalog.NextQuestion(ctx, sess.User.ID, questID)
		return sessionLoadedMsg{Lesson: lesson, Question: q, Err: err}
	}
}

func (s *SessionScreen) Title() string {
	return s.quest.Title
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseLesson:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start questions"},
			{Key: "Esc", Description: "Back"},
		}
	case phaseQuestion:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "Leave quest"},
		}
	case phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
	case phaseDone:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Back to quests"},
		}
	}
	return nil
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionLoadedMsg:
		return s.handleLoaded(msg)

	case questionLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.question = msg.Question
		s.showQuestion()
		return s, nil

	case answerResultMsg:
		return s.handleAnswer(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SessionScreen) handleLoaded(msg sessionLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.lesson = msg.Lesson
	s.question = msg.Question
	if s.lesson != "" {
		s.phase = phaseLesson
		return s, nil
	}
	s.showQuestion()
	return s, nil
}

// showQuestion moves to the current question, or to the done phase when
// none is left.
func (s *SessionScreen) showQuestion() {
	if s.question == nil {
		s.phase = phaseDone
		return
	}
	s.choice = components.NewMultiChoice(s.question.Prompt, s.question.Choices, s.question.CorrectIndex)
	s.result = nil
	s.phase = phaseQuestion
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, popScreen
	}

	switch s.phase {
	case phaseLesson:
		var cmd tea.Cmd
		s.start, cmd = s.start.Update(msg)
		return s, cmd

	case phaseQuestion:
		s.choice, _ = s.choice.Update(msg)
		if s.choice.Submitted {
			s.phase = phaseSubmitting
			return s, s.submit(s.question.ID, s.choice.ChosenIndex)
		}
		return s, nil

	case phaseFeedback:
		if msg.String() == "enter" {
			return s, s.loadNext()
		}

	case phaseDone:
		if msg.String() == "enter" {
			return s, popScreen
		}
	}
	return s, nil
}

func (s *SessionScreen) submit(questionID, choice int) tea.Cmd {
	sess := s.sess
	return func() tea.Msg {
		res, err := sess.Engine.SubmitAnswer(context.Background(), sess.User.ID, questionID, choice)
		return answerResultMsg{Result: res, Err: err}
	}
}

func (s *SessionScreen) handleAnswer(msg answerResultMsg) (screen.Screen, tea.Cmd) {
	s.result = &msg
	s.phase = phaseFeedback
	if msg.Err != nil {
		return s, screen.Status(msg.Result.Events, nil)
	}
	if msg.Result.Correct {
		s.answered++
	}
	stats := msg.Result.Stats
	return s, screen.Status(msg.Result.Events, &stats)
}

func (s *SessionScreen) loadNext() tea.Cmd {
	sess, questID := s.sess, s.quest.ID
	return func() tea.Msg {
		q, err := sess.Catalog.NextQuestion(context.Background(), sess.User.ID, questID)
		return questionLoadedMsg{Question: q, Err: err}
	}
}

func popScreen() tea.Msg {
	return router.PopScreenMsg{}
}
