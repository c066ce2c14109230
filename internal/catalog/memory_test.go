package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLists(t *testing.T) {
	s := NewDefaultMemoryStore()
	lists, err := s.Lists(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultLists(), lists)
}

func TestMemoryStoreProductsByList(t *testing.T) {
	s := NewDefaultMemoryStore()
	ctx := context.Background()

	stationery, err := s.Products(ctx, ListStationery)
	require.NoError(t, err)
	require.Len(t, stationery, 15)
	assert.Equal(t, "Pencil", stationery[0].Name)
	assert.Equal(t, "Paper Clips", stationery[14].Name)

	textbooks, err := s.Products(ctx, ListTextbooks)
	require.NoError(t, err)
	assert.Len(t, textbooks, 10)

	_, err = s.Products(ctx, 99)
	assert.ErrorIs(t, err, ErrListNotFound)
}

func TestMemoryStoreProduct(t *testing.T) {
	s := NewDefaultMemoryStore()
	p, err := s.Product(context.Background(), 23)
	require.NoError(t, err)
	assert.Equal(t, "Computer Science Textbook", p.Name)
	assert.Equal(t, "3500 rub.", p.PriceLabel())

	_, err = s.Product(context.Background(), 1000)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestPriceLabelFree(t *testing.T) {
	assert.Equal(t, "free", Product{Price: 0}.PriceLabel())
}
