// Package repository holds the storage primitives shared by the per-entity repositories.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/Additional-Code/storefront/internal/database"
)

// ErrNotFound is returned when no row matches the requested primary key.
var ErrNotFound = errors.New("record not found")

// InsertAndReload inserts model and reloads it by primary key on the same session, so the
// caller observes the row exactly as stored, generated id included.
func InsertAndReload[T any](ctx context.Context, db *bun.DB, model *T) error {
	if model == nil {
		return errors.New("nil model")
	}
	return database.WithSession(ctx, db, func(ctx context.Context, s database.Session) error {
		if _, err := s.NewInsert().Model(model).Exec(ctx); err != nil {
			return err
		}
		return s.NewSelect().Model(model).WherePK().Scan(ctx)
	})
}

// FindByID loads the row whose id equals id.
func FindByID[T any](ctx context.Context, db *bun.DB, id int64) (*T, error) {
	model := new(T)
	err := database.WithSession(ctx, db, func(ctx context.Context, s database.Session) error {
		return s.NewSelect().Model(model).Where("id = ?", id).Scan(ctx)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return model, nil
}
