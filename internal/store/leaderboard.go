package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *repo) RankRows(ctx context.Context) ([]RankRow, error) {
	u := entsql.Table(tableUsers).As("u")
	s := entsql.Table(tableUserStats).As("s")
	sel := sqlite.Select(
		u.C("id"), u.C("username"),
		"COALESCE("+s.C("total_xp")+", 0)",
		s.C("last_active"),
	).
		From(u).
		LeftJoin(s).
		On(u.C("id"), s.C("user_id")).
		OrderBy(u.C("id"))

	rows, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query rank rows: %w", err)
	}
	defer rows.Close()

	var out []RankRow
	for rows.Next() {
		var (
			row  RankRow
			last sql.NullTime
		)
		if err := rows.Scan(&row.UserID, &row.Username, &row.TotalXP, &last); err != nil {
			return nil, fmt.Errorf("scan rank row: %w", err)
		}
		row.LastActive = nullTime(last)
		out = append(out, row)
	}
	return out, rows.Err()
}
