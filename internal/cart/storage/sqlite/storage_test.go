package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront-cart/internal/cart/domain"
)

func openTemp(t *testing.T) *Storage {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cart.db"), "cart-1")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	items := []domain.LineItem{{
		ProductID: "p-1",
		Name:      "Basic Tee",
		UnitPrice: decimal.NewFromInt(10000),
		Color:     "black",
		Size:      "M",
		Quantity:  2,
	}}
	require.NoError(t, s.Save(ctx, items))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "p-1", loaded[0].ProductID)
	require.Equal(t, 2, loaded[0].Quantity)
	require.True(t, loaded[0].UnitPrice.Equal(decimal.NewFromInt(10000)))
}

func TestLoadMissingRowIsEmptyCart(t *testing.T) {
	s := openTemp(t)

	items, err := s.Load(context.Background())
	require.NoError(t, err)
	require.Nil(t, items)
}

func TestSaveReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	require.NoError(t, s.Save(ctx, []domain.LineItem{
		{ProductID: "p-1", UnitPrice: decimal.NewFromInt(100), Quantity: 1},
		{ProductID: "p-2", UnitPrice: decimal.NewFromInt(200), Quantity: 1},
	}))
	require.NoError(t, s.Save(ctx, []domain.LineItem{
		{ProductID: "p-2", UnitPrice: decimal.NewFromInt(200), Quantity: 5},
	}))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, "p-2", loaded[0].ProductID)
	require.Equal(t, 5, loaded[0].Quantity)
}

func TestLoadCorruptPayloadIsAnError(t *testing.T) {
	ctx := context.Background()
	s := openTemp(t)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cart_state (cart_id, payload, updated_at) VALUES (?, ?, ?)`,
		"cart-1", "{not json", "2026-01-01T00:00:00Z")
	require.NoError(t, err)

	_, err = s.Load(ctx)
	require.Error(t, err)
}
