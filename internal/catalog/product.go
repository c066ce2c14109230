// Package catalog is a demo product catalog browsed through inline
// keyboard paginators.
package catalog

import (
	"context"
	"errors"
	"strconv"
)

var (
	// ErrProductNotFound is returned for an unknown product id.
	ErrProductNotFound = errors.New("catalog: product not found")
	// ErrListNotFound is returned for an unknown list id.
	ErrListNotFound = errors.New("catalog: list not found")
)

// List groups products shown together, e.g. stationery.
type List struct {
	ID    int    `db:"id"`
	Title string `db:"title"`
}

// Product is a catalog entry. Price is in whole roubles.
type Product struct {
	ID          int64   `db:"id"`
	ListID      int     `db:"list_id"`
	Name        string  `db:"name"`
	Price       int64   `db:"price"`
	Description *string `db:"description"`
}

// PriceLabel renders the price for buttons and rows.
func (p Product) PriceLabel() string {
	if p.Price == 0 {
		return "free"
	}
	return strconv.FormatInt(p.Price, 10) + " rub."
}

// Store reads the catalog.
type Store interface {
	Lists(ctx context.Context) ([]List, error)
	List(ctx context.Context, id int) (List, error)
	Products(ctx context.Context, listID int) ([]Product, error)
	Product(ctx context.Context, id int64) (Product, error)
}
