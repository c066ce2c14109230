package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/tgpaginator/core/bootstrap"
	"github.com/m3rciful/tgpaginator/core/logger"
)

// Seeder inserts the built-in lists and products, keeping existing rows.
func Seeder() bootstrap.Seeder {
	return bootstrap.SeederFunc(func(ctx context.Context, storage bootstrap.Storage) error {
		db, ok := storage.(*sqlx.DB)
		if !ok || db == nil {
			return fmt.Errorf("catalog seed: unsupported storage %T", storage)
		}
		return Seed(ctx, db, DefaultLists(), DefaultProducts())
	})
}

// Seed upserts lists and products in one transaction.
func Seed(ctx context.Context, db *sqlx.DB, lists []List, products []Product) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("catalog seed: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if len(lists) > 0 {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO product_lists (id, title) VALUES (:id, :title) ON CONFLICT (id) DO NOTHING`, lists); err != nil {
			return fmt.Errorf("catalog seed lists: %w", err)
		}
	}
	if len(products) > 0 {
		if _, err := tx.NamedExecContext(ctx,
			`INSERT INTO products (id, list_id, name, price, description)
			 VALUES (:id, :list_id, :name, :price, :description)
			 ON CONFLICT (id) DO NOTHING`, products); err != nil {
			return fmt.Errorf("catalog seed products: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("catalog seed: %w", err)
	}
	logger.LogEvent(ctx, logger.SEED, slog.LevelInfo, "catalog",
		slog.String("status", "ok"),
		slog.Int("lists", len(lists)),
		slog.Int("count", len(products)),
	)
	return nil
}
