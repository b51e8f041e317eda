// Package daily tracks once-per-day task completions.
package daily

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/codeleveling/internal/notify"
	"github.com/abhisek/codeleveling/internal/progress"
	"github.com/abhisek/codeleveling/internal/store"
)

// ErrCompletionSave wraps a failed completion insert.
var ErrCompletionSave = errors.New("save daily completion")

// Result is the outcome of CompleteTask.
type Result struct {
	Events    []notify.Event
	Stats     store.UserStats
	Completed bool
	XPAwarded int
	LeveledUp bool
}

// Tracker records daily completions. Days are UTC calendar dates of Now.
type Tracker struct {
	repo store.Repo
	log  zerolog.Logger

	Now func() time.Time
}

// NewTracker creates a Tracker.
func NewTracker(repo store.Repo, log zerolog.Logger) *Tracker {
	return &Tracker{
		repo: repo,
		log:  log.With().Str("component", "daily").Logger(),
		Now:  time.Now,
	}
}

// Today returns the current day key.
func (t *Tracker) Today() string {
	return t.Now().UTC().Format(store.DayFormat)
}

// ListTasks returns active tasks ordered by id with today's completion flag.
func (t *Tracker) ListTasks(ctx context.Context, userID string) ([]store.TaskView, error) {
	return t.repo.TaskViews(ctx, userID, t.Today())
}

// CompleteTask records today's completion of a task and awards its XP.
func (t *Tracker) CompleteTask(ctx context.Context, userID string, taskID int) (Result, error) {
	var res Result
	err := t.repo.InTx(ctx, func(tx store.Repo) error {
		var err error
		res, err = t.complete(ctx, tx, userID, taskID)
		return err
	})
	if err != nil {
		kind := notify.CompletionSaveFailed
		if errors.Is(err, progress.ErrStatsUpdate) {
			kind = notify.StatsUpdateFailed
		}
		t.log.Error().Err(err).Str("user", userID).Int("task", taskID).Msg("complete daily task failed")
		return Result{Events: []notify.Event{{Kind: kind}}}, err
	}
	return res, nil
}

func (t *Tracker) complete(ctx context.Context, tx store.Repo, userID string, taskID int) (Result, error) {
	var res Result
	now := t.Now()
	day := now.UTC().Format(store.DayFormat)

	done, err := tx.CompletedOn(ctx, userID, taskID, day)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrCompletionSave, err)
	}
	if done {
		res.Events = []notify.Event{{Kind: notify.AlreadyCompletedToday}}
		return res, nil
	}

	task, err := tx.DailyTask(ctx, taskID)
	if err != nil {
		return res, fmt.Errorf("%w: %w", ErrCompletionSave, err)
	}
	if task == nil || !task.Active {
		res.Events = []notify.Event{{Kind: notify.TaskNotFound}}
		return res, nil
	}

	if err := tx.InsertCompletion(ctx, userID, taskID, day, now); err != nil {
		return res, fmt.Errorf("%w: %w", ErrCompletionSave, err)
	}

	stats, err := tx.Stats(ctx, userID)
	if err != nil {
		return res, fmt.Errorf("%w: %w", progress.ErrStatsUpdate, err)
	}
	stats, leveled := progress.ApplyXP(stats, task.XPValue, now)
	if err := tx.SaveStats(ctx, stats); err != nil {
		return res, fmt.Errorf("%w: %w", progress.ErrStatsUpdate, err)
	}

	res.Completed = true
	res.Stats = stats
	res.XPAwarded = task.XPValue
	res.LeveledUp = leveled
	res.Events = append(res.Events, notify.Event{Kind: notify.DailyCompleted, XP: task.XPValue, Level: stats.Level})
	if leveled {
		res.Events = append(res.Events, notify.Event{Kind: notify.LevelUp, Level: stats.Level})
	}
	t.log.Debug().Str("user", userID).Int("task", taskID).Str("day", day).Msg("daily task completed")
	return res, nil
}
