package daily_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/codeleveling/internal/catalog"
	"github.com/abhisek/codeleveling/internal/daily"
	"github.com/abhisek/codeleveling/internal/notify"
	"github.com/abhisek/codeleveling/internal/progress"
	"github.com/abhisek/codeleveling/internal/store"
	"github.com/abhisek/codeleveling/internal/store/storetest"
	"github.com/abhisek/codeleveling/internal/users"
)

func setup(t *testing.T, now *time.Time) (store.Repo, *daily.Tracker, string) {
	t.Helper()
	ctx := context.Background()
	repo := storetest.Open(t).Repo()

	doc, err := catalog.Default()
	require.NoError(t, err)
	_, err = catalog.NewService(repo, zerolog.Nop()).Seed(ctx, doc)
	require.NoError(t, err)

	u, err := users.NewDirectory(repo, zerolog.Nop()).Ensure(ctx, "ada")
	require.NoError(t, err)

	tr := daily.NewTracker(repo, zerolog.Nop())
	tr.Now = func() time.Time { return *now }
	return repo, tr, u.ID
}

func TestCompleteTaskOncePerDay(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	repo, tr, userID := setup(t, &now)
	ctx := context.Background()

	res, err := tr.CompleteTask(ctx, userID, 1)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, 15, res.XPAwarded)
	assert.Equal(t, "Daily complete +15 XP", notify.Headline(res.Events))

	again, err := tr.CompleteTask(ctx, userID, 1)
	require.NoError(t, err)
	assert.False(t, again.Completed)
	require.Len(t, again.Events, 1)
	assert.Equal(t, notify.AlreadyCompletedToday, again.Events[0].Kind)

	stats, err := repo.Stats(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 15, stats.TotalXP)

	// A new UTC day opens the task again.
	now = now.Add(20 * time.Hour)
	res, err = tr.CompleteTask(ctx, userID, 1)
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, 30, res.Stats.TotalXP)
}

func TestCompleteTaskNotFound(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	repo, tr, userID := setup(t, &now)
	ctx := context.Background()

	res, err := tr.CompleteTask(ctx, userID, 42)
	require.NoError(t, err)
	assert.Equal(t, notify.TaskNotFound, res.Events[0].Kind)

	require.NoError(t, repo.UpsertDailyTask(ctx, store.DailyTask{ID: 2, Title: "off", XPValue: 20, Active: false}))
	res, err = tr.CompleteTask(ctx, userID, 2)
	require.NoError(t, err)
	assert.Equal(t, notify.TaskNotFound, res.Events[0].Kind)
	assert.False(t, res.Completed)
}

func TestCompleteTaskLevelUp(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	repo, tr, userID := setup(t, &now)
	ctx := context.Background()

	require.NoError(t, repo.SaveStats(ctx, store.UserStats{UserID: userID, TotalXP: 190, Level: 1}))
	res, err := tr.CompleteTask(ctx, userID, 2)
	require.NoError(t, err)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 2, res.Stats.Level)
	assert.Equal(t, "Daily complete + Level up!", notify.Headline(res.Events))
}

func TestListTasks(t *testing.T) {
	now := time.Date(2026, 6, 1, 23, 59, 0, 0, time.UTC)
	_, tr, userID := setup(t, &now)
	ctx := context.Background()

	_, err := tr.CompleteTask(ctx, userID, 3)
	require.NoError(t, err)

	tasks, err := tr.ListTasks(ctx, userID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, []bool{false, false, true}, []bool{tasks[0].CompletedToday, tasks[1].CompletedToday, tasks[2].CompletedToday})
	assert.Equal(t, "2026-06-01", tr.Today())

	now = now.Add(2 * time.Minute)
	tasks, err = tr.ListTasks(ctx, userID)
	require.NoError(t, err)
	assert.False(t, tasks[2].CompletedToday)
}

type failingStats struct {
	store.Repo
}

func (r failingStats) InTx(ctx context.Context, fn func(store.Repo) error) error {
	return r.Repo.InTx(ctx, func(tx store.Repo) error { return fn(failingStats{tx}) })
}

func (failingStats) SaveStats(context.Context, store.UserStats) error {
	return assert.AnError
}

func TestCompleteTaskStatsFailureRollsBack(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	repo, _, userID := setup(t, &now)
	ctx := context.Background()

	tr := daily.NewTracker(failingStats{repo}, zerolog.Nop())
	tr.Now = func() time.Time { return now }

	res, err := tr.CompleteTask(ctx, userID, 1)
	assert.ErrorIs(t, err, progress.ErrStatsUpdate)
	assert.Equal(t, notify.StatsUpdateFailed, res.Events[0].Kind)

	done, err := repo.CompletedOn(ctx, userID, 1, "2026-06-01")
	require.NoError(t, err)
	assert.False(t, done)
}
