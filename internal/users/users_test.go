package users

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/codeleveling/internal/notify"
	"github.com/abhisek/codeleveling/internal/store"
	"github.com/abhisek/codeleveling/internal/store/storetest"
)

func newDirectory(t *testing.T) (store.Repo, *Directory) {
	t.Helper()
	repo := storetest.Open(t).Repo()
	ctx := context.Background()
	for i := 1; i <= 3; i++ {
		require.NoError(t, repo.UpsertQuest(ctx, store.Quest{ID: i, Title: "q", Topic: "t", Difficulty: 1}))
	}
	return repo, NewDirectory(repo, zerolog.Nop())
}

func TestNormalizeUsername(t *testing.T) {
	name, err := NormalizeUsername("  ada  ")
	require.NoError(t, err)
	assert.Equal(t, "ada", name)

	for _, bad := range []string{"", "   ", strings.Repeat("x", 33), "tab\there"} {
		_, err := NormalizeUsername(bad)
		assert.ErrorIs(t, err, ErrInvalidUsername, "name %q", bad)
	}

	_, err = NormalizeUsername(strings.Repeat("é", 32))
	assert.NoError(t, err)
}

func TestEnsureCreatesOnce(t *testing.T) {
	repo, dir := newDirectory(t)
	ctx := context.Background()

	first, err := dir.Ensure(ctx, "ada")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	second, err := dir.Ensure(ctx, " ada ")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	list, err := dir.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	stats, err := repo.Stats(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalXP)
	assert.Equal(t, 1, stats.Level)

	views, err := repo.QuestViews(ctx, first.ID)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, store.StatusUnlocked, views[0].Status)
	assert.Equal(t, store.StatusLocked, views[1].Status)
}

func TestEnsureOpensOnlyTheCompletedQuestsSuccessor(t *testing.T) {
	repo, dir := newDirectory(t)
	ctx := context.Background()

	u, err := dir.Ensure(ctx, "ada")
	require.NoError(t, err)
	require.NoError(t, repo.CompleteProgress(ctx, u.ID, 1, 100, time.Now()))

	_, err = dir.Ensure(ctx, "ada")
	require.NoError(t, err)
	views, err := repo.QuestViews(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, store.StatusCompleted, views[0].Status)
	assert.Equal(t, store.StatusUnlocked, views[1].Status)
	assert.Equal(t, store.StatusLocked, views[2].Status)
}

func TestCurrentDefaultsToLocalUser(t *testing.T) {
	_, dir := newDirectory(t)

	u, err := dir.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultUsername, u.Username)
}

func TestSwitch(t *testing.T) {
	_, dir := newDirectory(t)
	ctx := context.Background()

	u, ev, err := dir.Switch(ctx, "grace")
	require.NoError(t, err)
	assert.Equal(t, "grace", u.Username)
	assert.Equal(t, notify.UserSwitched, ev.Kind)
	assert.Equal(t, "Switched user: grace", ev.Message())

	cur, err := dir.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, u.ID, cur.ID)

	_, ev, err = dir.Switch(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidUsername)
	assert.Equal(t, notify.UserSwitchFailed, ev.Kind)
	assert.Equal(t, "Failed to switch user", ev.Message())

	name, err := dir.CurrentName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "grace", name)
}

func TestListOrdersCaseInsensitively(t *testing.T) {
	_, dir := newDirectory(t)
	ctx := context.Background()
	for _, n := range []string{"zed", "Bea", "amy"} {
		_, err := dir.Ensure(ctx, n)
		require.NoError(t, err)
	}

	list, err := dir.List(ctx)
	require.NoError(t, err)
	var names []string
	for _, u := range list {
		names = append(names, u.Username)
	}
	assert.Equal(t, []string{"amy", "Bea", "zed"}, names)
}
