package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
)

func getOne[T any](ctx context.Context, db DBTX, op, sql string, args ...any) (T, error) {
	rows, _ := db.Query(ctx, sql, args...)
	v, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
	return v, classify(op, err)
}

func list[T any](ctx context.Context, db DBTX, op, sql string, args ...any) ([]T, error) {
	rows, _ := db.Query(ctx, sql, args...)
	v, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, classify(op, err)
	}
	return v, nil
}

// execOne runs a statement that must touch exactly one row.
func execOne(ctx context.Context, db DBTX, op, sql string, args ...any) error {
	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return classify(op, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
