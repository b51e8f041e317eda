package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// DayFormat is the layout of daily completion days.
const DayFormat = "2006-01-02"

func (r *repo) DailyTask(ctx context.Context, id int) (*DailyTask, error) {
	sel := sqlite.Select("id", "title", "xp_value", "active").
		From(entsql.Table(tableDailyTasks)).
		Where(entsql.EQ("id", id))

	var t DailyTask
	err := r.queryRow(ctx, sel).Scan(&t.ID, &t.Title, &t.XPValue, &t.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query daily task: %w", err)
	}
	return &t, nil
}

func (r *repo) TaskViews(ctx context.Context, userID, day string) ([]TaskView, error) {
	t := entsql.Table(tableDailyTasks).As("t")
	c := entsql.Table(tableDailyCompletions).As("c")
	// The completion key is (user, task, day), so the join adds at most
	// one row per task.
	sel := sqlite.Select(
		t.C("id"), t.C("title"), t.C("xp_value"), t.C("active"),
		c.C("task_id")+" IS NOT NULL",
	).
		From(t).
		LeftJoin(c).
		OnP(entsql.And(
			entsql.ColumnsEQ(c.C("task_id"), t.C("id")),
			entsql.EQ(c.C("user_id"), userID),
			entsql.EQ(c.C("day"), day),
		)).
		Where(entsql.EQ(t.C("active"), true)).
		OrderBy(t.C("id"))

	rows, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query task views: %w", err)
	}
	defer rows.Close()

	var views []TaskView
	for rows.Next() {
		var v TaskView
		if err := rows.Scan(&v.ID, &v.Title, &v.XPValue, &v.Active, &v.CompletedToday); err != nil {
			return nil, fmt.Errorf("scan task view: %w", err)
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *repo) CompletedOn(ctx context.Context, userID string, taskID int, day string) (bool, error) {
	sel := sqlite.Select(entsql.Count("*")).
		From(entsql.Table(tableDailyCompletions)).
		Where(entsql.And(
			entsql.EQ("user_id", userID),
			entsql.EQ("task_id", taskID),
			entsql.EQ("day", day),
		))

	var n int
	if err := r.queryRow(ctx, sel).Scan(&n); err != nil {
		return false, fmt.Errorf("count completions: %w", err)
	}
	return n > 0, nil
}

func (r *repo) InsertCompletion(ctx context.Context, userID string, taskID int, day string, at time.Time) error {
	ins := sqlite.Insert(tableDailyCompletions).
		Columns("user_id", "task_id", "day", "completed_at").
		Values(userID, taskID, day, at.UTC())
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("insert completion: %w", err)
	}
	return nil
}
