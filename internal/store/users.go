package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *repo) CreateUser(ctx context.Context, u User) error {
	ins := sqlite.Insert(tableUsers).
		Columns("id", "username", "created_at").
		Values(u.ID, u.Username, u.CreatedAt.UTC()).
		OnConflict(
			entsql.ConflictColumns("username"),
			entsql.DoNothing(),
		)
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *repo) UserByName(ctx context.Context, username string) (*User, error) {
	sel := sqlite.Select("id", "username", "created_at").
		From(entsql.Table(tableUsers)).
		Where(entsql.EQ("username", username))

	var u User
	err := r.queryRow(ctx, sel).Scan(&u.ID, &u.Username, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (r *repo) ListUsers(ctx context.Context) ([]User, error) {
	sel := sqlite.Select("id", "username", "created_at").
		From(entsql.Table(tableUsers)).
		OrderExpr(entsql.Expr("`username` COLLATE NOCASE")).
		OrderBy("id")

	rows, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Username, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *repo) InitProgress(ctx context.Context, userID string) error {
	quests, err := r.Quests(ctx)
	if err != nil {
		return err
	}
	for _, q := range quests {
		ins := sqlite.Insert(tableQuestProgress).
			Columns("user_id", "quest_id", "status", "best_score").
			Values(userID, q.ID, string(StatusLocked), 0).
			OnConflict(
				entsql.ConflictColumns("user_id", "quest_id"),
				entsql.DoNothing(),
			)
		if _, err := r.exec(ctx, ins); err != nil {
			return fmt.Errorf("init progress for quest %d: %w", q.ID, err)
		}
	}
	if len(quests) == 0 {
		return nil
	}

	views, err := r.QuestViews(ctx, userID)
	if err != nil {
		return err
	}
	open := false
	for i, v := range views {
		if v.Status != StatusLocked {
			open = true
			continue
		}
		// Quests added after the user finished their predecessor.
		if i > 0 && views[i-1].Status == StatusCompleted {
			if _, err := r.UnlockQuest(ctx, userID, v.ID); err != nil {
				return err
			}
			open = true
		}
	}
	if open {
		return nil
	}
	// Quests() is ordered by id, so the first entry is the entry point.
	if _, err := r.UnlockQuest(ctx, userID, quests[0].ID); err != nil {
		return err
	}
	return nil
}
