package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// Well-known settings keys.
const (
	SettingCatalogVersion = "catalog_version"
	SettingCurrentUser    = "current_user"
)

func (r *repo) Setting(ctx context.Context, key string) (string, bool, error) {
	sel := sqlite.Select("value").
		From(entsql.Table(tableSettings)).
		Where(entsql.EQ("key", key))

	var v string
	err := r.queryRow(ctx, sel).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query setting %s: %w", key, err)
	}
	return v, true, nil
}

func (r *repo) SetSetting(ctx context.Context, key, value string) error {
	ins := sqlite.Insert(tableSettings).
		Columns("key", "value").
		Values(key, value).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		)
	if _, err := r.exec(ctx, ins); err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}
