// Package repository holds the Postgres queries behind every resource.
//
// Queries wraps any DBTX (a pool, a connection or a transaction), so the
// same methods run inside db.WithTx:
//
//	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//	    sub, err := repository.New(tx).CreateSubscriber(ctx, params)
//	    ...
//	})
package repository

import (
	"context"
	"embed"
	"io/fs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx pgx.Tx) *Queries {
	return &Queries{db: tx}
}

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the goose migrations, rooted at the migrations directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}
