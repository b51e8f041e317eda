// Package notify defines the outcome events returned by learning
// operations and their user-facing text.
package notify

import "fmt"

// Kind identifies an operation outcome.
type Kind string

const (
	QuestCompleted        Kind = "quest_completed"
	LevelUp               Kind = "level_up"
	ProgressSaveFailed    Kind = "progress_save_failed"
	StatsUpdateFailed     Kind = "stats_update_failed"
	QuestionNotFound      Kind = "question_not_found"
	AttemptSaveFailed     Kind = "attempt_save_failed"
	AnswerCorrect         Kind = "answer_correct"
	AnswerIncorrect       Kind = "answer_incorrect"
	AlreadyMastered       Kind = "already_mastered"
	DailyCompleted        Kind = "daily_completed"
	AlreadyCompletedToday Kind = "already_completed_today"
	TaskNotFound          Kind = "task_not_found"
	CompletionSaveFailed  Kind = "completion_save_failed"
	UserSwitched          Kind = "user_switched"
	UserSwitchFailed      Kind = "user_switch_failed"
)

// Failure reports whether the kind represents a persistence or lookup
// failure rather than a normal outcome.
func (k Kind) Failure() bool {
	switch k {
	case ProgressSaveFailed, StatsUpdateFailed, AttemptSaveFailed,
		CompletionSaveFailed, UserSwitchFailed, QuestionNotFound, TaskNotFound:
		return true
	default:
		return false
	}
}

// Event is one outcome. XP is the amount awarded, Level the level after
// the operation, Subject a free-form name such as a username.
type Event struct {
	Kind    Kind
	XP      int
	Level   int
	Subject string
}

// Failure reports whether the event should be styled as an error.
func (e Event) Failure() bool {
	return e.Kind.Failure()
}

// Message returns the toast text for the event.
func (e Event) Message() string {
	switch e.Kind {
	case ProgressSaveFailed:
		return "DB error: failed to save progress"
	case StatsUpdateFailed:
		return "DB error: failed to update XP"
	case LevelUp:
		return "Level up!"
	case QuestCompleted:
		return "Quest completed +XP"
	case QuestionNotFound:
		return "Question not found"
	case AttemptSaveFailed:
		return "DB error saving attempt"
	case AlreadyMastered:
		return "Correct (already mastered). No XP awarded."
	case AnswerCorrect:
		return fmt.Sprintf("Correct! +%d XP", e.XP)
	case AnswerIncorrect:
		return "Not quite. Try again."
	case AlreadyCompletedToday:
		return "Daily already completed today."
	case TaskNotFound:
		return "Daily task not found"
	case CompletionSaveFailed:
		return "Failed to save daily completion"
	case DailyCompleted:
		return fmt.Sprintf("Daily complete +%d XP", e.XP)
	case UserSwitched:
		return fmt.Sprintf("Switched user: %s", e.Subject)
	case UserSwitchFailed:
		return "Failed to switch user"
	default:
		return string(e.Kind)
	}
}

// Has reports whether events contains an event of kind k.
func Has(events []Event, k Kind) bool {
	for _, e := range events {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// Headline picks the single message a toast line should show. A level-up
// folds into the correct-answer and daily messages the way they read in
// the UI; otherwise the last event wins.
func Headline(events []Event) string {
	if len(events) == 0 {
		return ""
	}
	leveled := Has(events, LevelUp)
	for _, e := range events {
		switch {
		case e.Kind == AnswerCorrect && leveled:
			return "Correct! Level up!"
		case e.Kind == DailyCompleted && leveled:
			return "Daily complete + Level up!"
		}
	}
	if leveled {
		return Event{Kind: LevelUp}.Message()
	}
	return events[len(events)-1].Message()
}
