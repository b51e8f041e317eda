package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *repo) Quests(ctx context.Context) ([]Quest, error) {
	sel := sqlite.Select("id", "title", "topic", "difficulty").
		From(entsql.Table(tableQuests)).
		OrderBy("id")

	rows, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query quests: %w", err)
	}
	defer rows.Close()

	var quests []Quest
	for rows.Next() {
		var q Quest
		if err := rows.Scan(&q.ID, &q.Title, &q.Topic, &q.Difficulty); err != nil {
			return nil, fmt.Errorf("scan quest: %w", err)
		}
		quests = append(quests, q)
	}
	return quests, rows.Err()
}

func (r *repo) QuestViews(ctx context.Context, userID string) ([]QuestView, error) {
	q := entsql.Table(tableQuests).As("q")
	p := entsql.Table(tableQuestProgress).As("p")
	sel := sqlite.Select(
		q.C("id"), q.C("title"), q.C("topic"), q.C("difficulty"),
		"COALESCE("+p.C("status")+", 'locked')",
		"COALESCE("+p.C("best_score")+", 0)",
	).
		From(q).
		LeftJoin(p).
		OnP(entsql.And(
			entsql.ColumnsEQ(q.C("id"), p.C("quest_id")),
			entsql.EQ(p.C("user_id"), userID),
		)).
		OrderBy(q.C("id"))

	rows, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query quest views: %w", err)
	}
	defer rows.Close()

	var views []QuestView
	for rows.Next() {
		var (
			v      QuestView
			status string
		)
		if err := rows.Scan(&v.ID, &v.Title, &v.Topic, &v.Difficulty, &status, &v.BestScore); err != nil {
			return nil, fmt.Errorf("scan quest view: %w", err)
		}
		v.Status = QuestStatus(status)
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *repo) Progress(ctx context.Context, userID string, questID int) (*QuestProgress, error) {
	sel := sqlite.Select("status", "best_score", "last_attempt").
		From(entsql.Table(tableQuestProgress)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("quest_id", questID),
		))

	var (
		status string
		last   sql.NullTime
	)
	p := QuestProgress{UserID: userID, QuestID: questID}
	err := r.queryRow(ctx, sel).Scan(&status, &p.BestScore, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	p.Status = QuestStatus(status)
	p.LastAttempt = nullTime(last)
	return &p, nil
}

func (r *repo) CompleteProgress(ctx context.Context, userID string, questID, score int, at time.Time) error {
	ins := sqlite.Insert(tableQuestProgress).
		Columns("user_id", "quest_id", "status", "best_score", "last_attempt").
		Values(userID, questID, string(StatusCompleted), score, at.UTC()).
		OnConflict(
			entsql.ConflictColumns("user_id", "quest_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("status")
				u.SetExcluded("last_attempt")
				u.Set("best_score", entsql.Expr("MAX(`quest_progress`.`best_score`, excluded.`best_score`)"))
			}),
		)
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (r *repo) NextQuestID(ctx context.Context, questID int) (int, bool, error) {
	sel := sqlite.Select("id").
		From(entsql.Table(tableQuests)).
		Where(entsql.GT("id", questID)).
		OrderBy("id").
		Limit(1)

	var id int
	err := r.queryRow(ctx, sel).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query next quest: %w", err)
	}
	return id, true, nil
}

func (r *repo) UnlockQuest(ctx context.Context, userID string, questID int) (bool, error) {
	cur, err := r.Progress(ctx, userID, questID)
	if err != nil {
		return false, err
	}

	switch {
	case cur == nil:
		ins := sqlite.Insert(tableQuestProgress).
			Columns("user_id", "quest_id", "status", "best_score").
			Values(userID, questID, string(StatusUnlocked), 0)
		if _, err := r.exec(ctx, ins); err != nil {
			return false, fmt.Errorf("insert unlocked progress: %w", err)
		}
		return true, nil
	case cur.Status == StatusLocked:
		upd := sqlite.Update(tableQuestProgress).
			Set("status", string(StatusUnlocked)).
			Where(entsql.And(
				entsql.EQ("user_id", userID),
				entsql.EQ("quest_id", questID),
				entsql.EQ("status", string(StatusLocked)),
			))
		if _, err := r.exec(ctx, upd); err != nil {
			return false, fmt.Errorf("unlock progress: %w", err)
		}
		return true, nil
	default:
		return false, nil
	}
}

func (r *repo) Lesson(ctx context.Context, questID int) (string, error) {
	sel := sqlite.Select("body").
		From(entsql.Table(tableLessons)).
		Where(entsql.EQ("quest_id", questID))

	var body string
	err := r.queryRow(ctx, sel).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query lesson: %w", err)
	}
	return body, nil
}
