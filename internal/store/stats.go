package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *repo) EnsureStats(ctx context.Context, userID string, at time.Time) error {
	ins := sqlite.Insert(tableUserStats).
		Columns("user_id", "total_xp", "level", "last_active").
		Values(userID, 0, 1, at.UTC()).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.DoNothing(),
		)
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("insert stats: %w", err)
	}
	return nil
}

func (r *repo) Stats(ctx context.Context, userID string) (UserStats, error) {
	sel := sqlite.Select("total_xp", "level", "last_active").
		From(entsql.Table(tableUserStats)).
		Where(entsql.EQ("user_id", userID))

	stats := UserStats{UserID: userID, Level: 1}
	var last sql.NullTime
	err := r.queryRow(ctx, sel).Scan(&stats.TotalXP, &stats.Level, &last)
	if errors.Is(err, sql.ErrNoRows) {
		return stats, nil
	}
	if err != nil {
		return UserStats{}, fmt.Errorf("query stats: %w", err)
	}
	stats.LastActive = nullTime(last)
	return stats, nil
}

func (r *repo) SaveStats(ctx context.Context, stats UserStats) error {
	var last any
	if stats.LastActive != nil {
		last = stats.LastActive.UTC()
	}
	ins := sqlite.Insert(tableUserStats).
		Columns("user_id", "total_xp", "level", "last_active").
		Values(stats.UserID, stats.TotalXP, stats.Level, last).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWithNewValues(),
		)
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("save stats: %w", err)
	}
	return nil
}
