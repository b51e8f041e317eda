package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	doc, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", doc.Version)
	require.Len(t, doc.Quests, 3)
	assert.Equal(t, 6, doc.QuestionCount())
	assert.Len(t, doc.DailyTasks, 3)

	assert.Equal(t, "Arrays I: Basics", doc.Quests[0].Title)
	assert.Equal(t, "arrays", doc.Quests[0].Topic)
	assert.Equal(t, 20, *doc.Quests[0].Questions[0].XP)
	assert.Equal(t, 25, *doc.Quests[0].Questions[1].XP)
	assert.NotEmpty(t, doc.Quests[2].Lesson)

	for _, task := range doc.DailyTasks {
		require.NotNil(t, task.Active)
		assert.True(t, *task.Active)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	doc, err := Load(strings.NewReader(`{
		"version": "0.2.0",
		"quests": [{
			"id": 7,
			"title": "Linked Lists: Nodes",
			"questions": [{"id": 70, "prompt": "p", "choices": ["a", "b"], "correct_index": 1}]
		}],
		"daily_tasks": [{"id": 1, "title": "Read"}]
	}`))
	require.NoError(t, err)

	q := doc.Quests[0]
	assert.Equal(t, "linked-lists-nodes", q.Topic)
	assert.Equal(t, DefaultDifficulty, q.Difficulty)
	assert.Equal(t, DefaultXP, *q.Questions[0].XP)
	assert.Equal(t, DefaultXP, *doc.DailyTasks[0].XP)
	assert.True(t, *doc.DailyTasks[0].Active)
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	tests := map[string]string{
		"missing quests":  `{"version": "1.0.0"}`,
		"empty title":     `{"version": "1.0.0", "quests": [{"id": 1, "title": "", "questions": []}]}`,
		"too few choices": `{"version": "1.0.0", "quests": [{"id": 1, "title": "t", "questions": [{"id": 1, "prompt": "p", "choices": ["a"], "correct_index": 0}]}]}`,
		"string id":       `{"version": "1.0.0", "quests": [{"id": "one", "title": "t", "questions": []}]}`,
		"negative index":  `{"version": "1.0.0", "quests": [{"id": 1, "title": "t", "questions": [{"id": 1, "prompt": "p", "choices": ["a", "b"], "correct_index": -1}]}]}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(raw))
			var verr *ValidationError
			assert.True(t, errors.As(err, &verr), "want ValidationError, got %v", err)
		})
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, err := Load(strings.NewReader(`{"version":`))
	require.Error(t, err)
	var verr *ValidationError
	assert.False(t, errors.As(err, &verr))
}

func TestValidateSemanticChecks(t *testing.T) {
	doc := &Document{
		Version: "not-a-version",
		Quests: []QuestDoc{
			{ID: 1, Title: "A", Questions: []QuestionDoc{
				{ID: 1, Prompt: "p", Choices: []string{"a", "b"}, CorrectIndex: 2},
			}},
			{ID: 1, Title: "B", Questions: []QuestionDoc{
				{ID: 1, Prompt: "p", Choices: []string{"a", "b"}, CorrectIndex: 0},
			}},
		},
		DailyTasks: []TaskDoc{{ID: 4, Title: "x"}, {ID: 4, Title: "y"}},
	}

	err := Validate(doc)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	joined := strings.Join(verr.Problems, "\n")
	assert.Contains(t, joined, "not semver")
	assert.Contains(t, joined, "duplicate quest id 1")
	assert.Contains(t, joined, "duplicate question id 1")
	assert.Contains(t, joined, "correct index 2 out of range")
	assert.Contains(t, joined, "duplicate daily task id 4")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, defaultCatalog, 0o644))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, doc.Quests, 3)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestCanonicalVersion(t *testing.T) {
	assert.Equal(t, "v1.2.3", CanonicalVersion("1.2.3"))
	assert.Equal(t, "v1.2.3", CanonicalVersion("v1.2.3"))
	assert.Equal(t, "v1.0.0", CanonicalVersion("1"))
	assert.Empty(t, CanonicalVersion("latest"))
}
