// Package bunstore is the durable company/contact store, backed by SQLite
// through the bun query builder.
package bunstore

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// Open opens (or creates) the SQLite database at path and ensures the
// schema exists. Use ":memory:" for an ephemeral database.
func Open(path string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "[bunstore.Open] sql.Open")
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := createTables(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func createTables(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*companyRecord)(nil),
		(*contactRecord)(nil),
	}
	for _, model := range models {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return errors.Wrap(err, "[bunstore.createTables] create table")
		}
	}
	return nil
}
