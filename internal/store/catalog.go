package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// Catalog rows are keyed by their document ids, so re-importing a catalog
// overwrites content in place and leaves user rows untouched.

func (r *repo) UpsertQuest(ctx context.Context, q Quest) error {
	ins := sqlite.Insert(tableQuests).
		Columns("id", "title", "topic", "difficulty").
		Values(q.ID, q.Title, q.Topic, q.Difficulty).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		)
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("upsert quest %d: %w", q.ID, err)
	}
	return nil
}

func (r *repo) UpsertLesson(ctx context.Context, questID int, body string) error {
	ins := sqlite.Insert(tableLessons).
		Columns("quest_id", "body").
		Values(questID, body).
		OnConflict(
			entsql.ConflictColumns("quest_id"),
			entsql.ResolveWithNewValues(),
		)
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("upsert lesson %d: %w", questID, err)
	}
	return nil
}

func (r *repo) UpsertQuestion(ctx context.Context, q Question) error {
	typ := q.Type
	if typ == "" {
		typ = QuestionTypeMCQ
	}
	ins := sqlite.Insert(tableQuestions).
		Columns(questionColumns...).
		Values(q.ID, q.QuestID, typ, q.Prompt, EncodeChoices(q.Choices), EncodeAnswer(q.CorrectIndex), q.XPValue).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		)
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("upsert question %d: %w", q.ID, err)
	}
	return nil
}

func (r *repo) UpsertDailyTask(ctx context.Context, t DailyTask) error {
	ins := sqlite.Insert(tableDailyTasks).
		Columns("id", "title", "xp_value", "active").
		Values(t.ID, t.Title, t.XPValue, t.Active).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWithNewValues(),
		)
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("upsert daily task %d: %w", t.ID, err)
	}
	return nil
}
