package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/codeleveling/internal/catalog"
	"github.com/abhisek/codeleveling/internal/store"
	"github.com/abhisek/codeleveling/internal/store/storetest"
)

func seeded(t *testing.T) (store.Repo, *catalog.Service) {
	t.Helper()
	repo := storetest.Open(t).Repo()
	svc := catalog.NewService(repo, zerolog.Nop())
	doc, err := catalog.Default()
	require.NoError(t, err)
	res, err := svc.Seed(context.Background(), doc)
	require.NoError(t, err)
	require.True(t, res.Applied)
	return repo, svc
}

func addUser(t *testing.T, repo store.Repo, id string) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, repo.CreateUser(ctx, store.User{ID: id, Username: id, CreatedAt: time.Now()}))
	require.NoError(t, repo.EnsureStats(ctx, id, time.Now()))
	require.NoError(t, repo.InitProgress(ctx, id))
}

func TestSeedIsVersionGated(t *testing.T) {
	repo, svc := seeded(t)
	ctx := context.Background()

	doc, err := catalog.Default()
	require.NoError(t, err)
	again, err := svc.Seed(ctx, doc)
	require.NoError(t, err)
	assert.False(t, again.Applied)
	assert.Equal(t, "1.0.0", again.Previous)

	quests, err := repo.Quests(ctx)
	require.NoError(t, err)
	assert.Len(t, quests, 3)

	forced, err := svc.Import(ctx, doc)
	require.NoError(t, err)
	assert.True(t, forced.Applied)
	assert.Equal(t, 3, forced.Quests)
	assert.Equal(t, 6, forced.Questions)
	assert.Equal(t, 3, forced.Tasks)

	quests, err = repo.Quests(ctx)
	require.NoError(t, err)
	assert.Len(t, quests, 3)

	v, err := svc.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", v)
}

func TestSeedNewerVersionAddsProgressRows(t *testing.T) {
	repo, svc := seeded(t)
	ctx := context.Background()
	addUser(t, repo, "u1")

	doc, err := catalog.Default()
	require.NoError(t, err)
	doc.Version = "1.1.0"
	doc.Quests = append(doc.Quests, catalog.QuestDoc{
		ID: 4, Title: "Sorting I", Topic: "sorting", Difficulty: 3,
		Questions: []catalog.QuestionDoc{{ID: 7, Prompt: "p", Choices: []string{"a", "b"}, CorrectIndex: 0}},
	})

	res, err := svc.Seed(ctx, doc)
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.Equal(t, 1, res.Users)

	p, err := repo.Progress(ctx, "u1", 4)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, store.StatusLocked, p.Status)

	// The user's first quest stays the only unlocked one.
	views, err := svc.ListQuests(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, views, 4)
	assert.Equal(t, store.StatusUnlocked, views[0].Status)
}

func TestNextQuestionAndLesson(t *testing.T) {
	repo, svc := seeded(t)
	ctx := context.Background()
	addUser(t, repo, "u1")

	q, err := svc.NextQuestion(ctx, "u1", 1)
	require.NoError(t, err)
	require.NotNil(t, q)
	assert.Equal(t, 1, q.ID)
	assert.Equal(t, []string{"0", "1", "Depends on array size", "-1"}, q.Choices)
	assert.Equal(t, 0, q.CorrectIndex)

	for _, id := range []int{1, 2} {
		require.NoError(t, repo.AppendAttempt(ctx, store.Attempt{UserID: "u1", QuestionID: id, Timestamp: time.Now(), Correct: true}))
	}
	q, err = svc.NextQuestion(ctx, "u1", 1)
	require.NoError(t, err)
	assert.Nil(t, q)

	lesson, err := svc.Lesson(ctx, 2)
	require.NoError(t, err)
	assert.Contains(t, lesson, "Pointers")

	lesson, err = svc.Lesson(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, lesson)

	questions, err := svc.Questions(ctx, 3)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestListQuestsWithoutProgress(t *testing.T) {
	_, svc := seeded(t)

	views, err := svc.ListQuests(context.Background(), "nobody")
	require.NoError(t, err)
	require.Len(t, views, 3)
	for i, v := range views {
		assert.Equal(t, i+1, v.ID)
		assert.Equal(t, store.StatusLocked, v.Status)
		assert.Zero(t, v.BestScore)
	}
}

func TestSeedUnlocksQuestAfterCompletedPredecessor(t *testing.T) {
	repo, svc := seeded(t)
	ctx := context.Background()
	addUser(t, repo, "u1")
	for id := 1; id <= 3; id++ {
		require.NoError(t, repo.CompleteProgress(ctx, "u1", id, 100, time.Now()))
	}

	doc, err := catalog.Default()
	require.NoError(t, err)
	doc.Version = "1.2.0"
	doc.Quests = append(doc.Quests, catalog.QuestDoc{
		ID: 4, Title: "Graphs I", Questions: []catalog.QuestionDoc{{ID: 7, Prompt: "p", Choices: []string{"a", "b"}, CorrectIndex: 1}},
	})
	res, err := svc.Seed(ctx, doc)
	require.NoError(t, err)
	require.True(t, res.Applied)

	p, err := repo.Progress(ctx, "u1", 4)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, store.StatusUnlocked, p.Status)

	// A user who has not reached quest 3 keeps quest 4 locked.
	addUser(t, repo, "u2")
	p, err = repo.Progress(ctx, "u2", 4)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, store.StatusLocked, p.Status)
}
