package questsession

import (
	"github.com/abhisek/codeleveling/internal/progress"
	"github.com/abhisek/codeleveling/internal/store"
)

// sessionLoadedMsg is sent when the lesson and first question are loaded.
type sessionLoadedMsg struct {
	Lesson   string
	Question *store.Question
	Err      error
}

// questionLoadedMsg is sent when the next unanswered question is loaded.
// A nil Question means every question is answered.
type questionLoadedMsg struct {
	Question *store.Question
	Err      error
}

// answerResultMsg is sent once an answer has been recorded.
type answerResultMsg struct {
	Result progress.AnswerResult
	Err    error
}
