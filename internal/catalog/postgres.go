package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/tgpaginator/core/logger"
)

// PostgresStore reads the catalog from the product_lists and products tables.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore wraps an open connection.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Lists(ctx context.Context) ([]List, error) {
	var lists []List
	if err := s.db.SelectContext(ctx, &lists, `SELECT id, title FROM product_lists ORDER BY id`); err != nil {
		return nil, s.fail(ctx, "lists", err)
	}
	return lists, nil
}

func (s *PostgresStore) List(ctx context.Context, id int) (List, error) {
	var l List
	err := s.db.GetContext(ctx, &l, `SELECT id, title FROM product_lists WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return List{}, ErrListNotFound
	}
	if err != nil {
		return List{}, s.fail(ctx, "list", err)
	}
	return l, nil
}

func (s *PostgresStore) Products(ctx context.Context, listID int) ([]Product, error) {
	if _, err := s.List(ctx, listID); err != nil {
		return nil, err
	}
	var products []Product
	err := s.db.SelectContext(ctx, &products,
		`SELECT id, list_id, name, price, description FROM products WHERE list_id = $1 ORDER BY id`, listID)
	if err != nil {
		return nil, s.fail(ctx, "products", err)
	}
	return products, nil
}

func (s *PostgresStore) Product(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := s.db.GetContext(ctx, &p,
		`SELECT id, list_id, name, price, description FROM products WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, ErrProductNotFound
	}
	if err != nil {
		return Product{}, s.fail(ctx, "product", err)
	}
	return p, nil
}

func (s *PostgresStore) fail(ctx context.Context, op string, err error) error {
	logger.LogEvent(ctx, logger.SVCCatalog, slog.LevelError, "store.query",
		slog.String("status", "fail"),
		slog.String("op", op),
		slog.String("err", err.Error()),
	)
	return fmt.Errorf("catalog %s: %w", op, err)
}
