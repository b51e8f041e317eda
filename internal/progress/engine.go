// Package progress owns XP accrual, leveling, quest completion and
// unlocking.
package progress

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/codeleveling/internal/notify"
	"github.com/abhisek/codeleveling/internal/store"
)

// Sentinel errors wrapped by failed operations.
var (
	ErrProgressSave = errors.New("save progress")
	ErrStatsUpdate  = errors.New("update stats")
	ErrAttemptSave  = errors.New("save attempt")
)

// MasteryScore is the score recorded when a quest completes because every
// question was answered correctly.
const MasteryScore = 100

// CompleteResult is the outcome of CompleteQuest.
type CompleteResult struct {
	Events []notify.Event
	Stats  store.UserStats

	// UnlockedQuestID is the successor that moved from locked to
	// unlocked, or 0.
	UnlockedQuestID int
	LeveledUp       bool
}

// AnswerResult is the outcome of SubmitAnswer.
type AnswerResult struct {
	Events []notify.Event
	Stats  store.UserStats

	Found          bool
	Correct        bool
	XPAwarded      int
	QuestCompleted bool
	LeveledUp      bool
}

// Engine runs progress operations against a store, one transaction each.
type Engine struct {
	repo store.Repo
	log  zerolog.Logger

	// Now is the clock used for timestamps.
	Now func() time.Time
}

// NewEngine creates an Engine.
func NewEngine(repo store.Repo, log zerolog.Logger) *Engine {
	return &Engine{
		repo: repo,
		log:  log.With().Str("component", "progress").Logger(),
		Now:  time.Now,
	}
}

// Stats returns the user's aggregate.
func (e *Engine) Stats(ctx context.Context, userID string) (store.UserStats, error) {
	return e.repo.Stats(ctx, userID)
}

// CompleteQuest records a completion with the given XP and score, unlocks
// the next quest and updates stats.
func (e *Engine) CompleteQuest(ctx context.Context, userID string, questID, xpEarned, score int) (CompleteResult, error) {
	var res CompleteResult
	err := e.repo.InTx(ctx, func(tx store.Repo) error {
		var err error
		res, err = e.completeQuest(ctx, tx, userID, questID, xpEarned, score)
		return err
	})
	if err != nil {
		kind := failureKind(err, notify.ProgressSaveFailed)
		e.log.Error().Err(err).Str("user", userID).Int("quest", questID).Msg("complete quest failed")
		return CompleteResult{Events: []notify.Event{{Kind: kind}}}, err
	}
	return res, nil
}

func (e *Engine) completeQuest(ctx context.Context, tx store.Repo, userID string, questID, xpEarned, score int) (CompleteResult, error) {
	var res CompleteResult
	now := e.Now()

	if err := tx.CompleteProgress(ctx, userID, questID, score, now); err != nil {
		return res, fmt.Errorf("%w: %w", ErrProgressSave, err)
	}

	next, ok, err := tx.NextQuestID(ctx, questID)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrProgressSave, err)
	}
	if ok {
		unlocked, err := tx.UnlockQuest(ctx, userID, next)
		if err != nil {
			return res, fmt.Errorf("%w: %w", ErrProgressSave, err)
		}
		if unlocked {
			res.UnlockedQuestID = next
		}
	}

	stats, err := tx.Stats(ctx, userID)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrStatsUpdate, err)
	}
	stats, leveled := ApplyXP(stats, xpEarned, now)
	if err := tx.SaveStats(ctx, stats); err != nil {
		return res, fmt.Errorf("%w: %w", ErrStatsUpdate, err)
	}

	res.Stats = stats
	res.LeveledUp = leveled
	res.Events = append(res.Events, notify.Event{Kind: notify.QuestCompleted, XP: xpEarned, Level: stats.Level})
	if leveled {
		res.Events = append(res.Events, notify.Event{Kind: notify.LevelUp, Level: stats.Level})
		e.log.Info().Str("user", userID).Int("level", stats.Level).Msg("level up")
	}
	e.log.Debug().
		Str("user", userID).
		Int("quest", questID).
		Int("xp", xpEarned).
		Int("score", score).
		Int("unlocked", res.UnlockedQuestID).
		Msg("quest completed")
	return res, nil
}

// SubmitAnswer records an answer to a question. A first correct answer
// earns the question's XP; answering every question of a quest correctly
// completes it.
func (e *Engine) SubmitAnswer(ctx context.Context, userID string, questionID, answerIndex int) (AnswerResult, error) {
	var res AnswerResult
	err := e.repo.InTx(ctx, func(tx store.Repo) error {
		var err error
		res, err = e.submitAnswer(ctx, tx, userID, questionID, answerIndex)
		return err
	})
	if err != nil {
		kind := failureKind(err, notify.AttemptSaveFailed)
		e.log.Error().Err(err).Str("user", userID).Int("question", questionID).Msg("submit answer failed")
		return AnswerResult{Found: true, Events: []notify.Event{{Kind: kind}}}, err
	}
	return res, nil
}

func (e *Engine) submitAnswer(ctx context.Context, tx store.Repo, userID string, questionID, answerIndex int) (AnswerResult, error) {
	var res AnswerResult

	q, err := tx.Question(ctx, questionID)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrAttemptSave, err)
	}
	if q == nil {
		e.log.Debug().Int("question", questionID).Msg("question not found")
		res.Events = []notify.Event{{Kind: notify.QuestionNotFound}}
		return res, nil
	}
	res.Found = true
	res.Correct = q.CorrectIndex >= 0 && answerIndex == q.CorrectIndex

	already := false
	if res.Correct {
		already, err = tx.HasCorrectAttempt(ctx, userID, questionID)
		if err != nil {
			return res, fmt.Errorf("%w: %w", ErrAttemptSave, err)
		}
	}

	now := e.Now()
	attempt := store.Attempt{
		UserID:        userID,
		QuestionID:    questionID,
		Timestamp:     now,
		Correct:       res.Correct,
		SelectedIndex: answerIndex,
	}
	if err := tx.AppendAttempt(ctx, attempt); err != nil {
		return res, fmt.Errorf("%w: %w", ErrAttemptSave, err)
	}

	if !res.Correct {
		res.Events = []notify.Event{{Kind: notify.AnswerIncorrect}}
		return res, nil
	}

	if already {
		res.Events = append(res.Events, notify.Event{Kind: notify.AlreadyMastered})
	} else {
		stats, err := tx.Stats(ctx, userID)
		if err != nil {
			return res, fmt.Errorf("%w: %w", ErrStatsUpdate, err)
		}
		stats, leveled := ApplyXP(stats, q.XPValue, now)
		if err := tx.SaveStats(ctx, stats); err != nil {
			return res, fmt.Errorf("%w: %w", ErrStatsUpdate, err)
		}
		res.Stats = stats
		res.XPAwarded = q.XPValue
		res.LeveledUp = leveled
		res.Events = append(res.Events, notify.Event{Kind: notify.AnswerCorrect, XP: q.XPValue, Level: stats.Level})
		if leveled {
			res.Events = append(res.Events, notify.Event{Kind: notify.LevelUp, Level: stats.Level})
			e.log.Info().Str("user", userID).Int("level", stats.Level).Msg("level up")
		}
	}

	remaining, err := tx.UnansweredCount(ctx, userID, q.QuestID)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrProgressSave, err)
	}
	if remaining == 0 {
		done, err := e.completeQuest(ctx, tx, userID, q.QuestID, 0, MasteryScore)
		if err != nil {
			return res, err
		}
		res.QuestCompleted = true
		res.Stats = done.Stats
		res.Events = append(res.Events, done.Events...)
	}

	if res.Stats.UserID == "" {
		stats, err := tx.Stats(ctx, userID)
		if err != nil {
			return res, fmt.Errorf("%w: %w", ErrStatsUpdate, err)
		}
		res.Stats = stats
	}
	return res, nil
}

// failureKind maps a wrapped sentinel to its notification kind.
func failureKind(err error, fallback notify.Kind) notify.Kind {
	switch {
	case errors.Is(err, ErrStatsUpdate):
		return notify.StatsUpdateFailed
	case errors.Is(err, ErrAttemptSave):
		return notify.AttemptSaveFailed
	case errors.Is(err, ErrProgressSave):
		return notify.ProgressSaveFailed
	default:
		return fallback
	}
}
