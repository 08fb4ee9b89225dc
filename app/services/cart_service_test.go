package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
)

func newCartFixture() (*services.CartService, *memProducts) {
	products := newMemProducts()
	products.add(models.Product{
		ID:    "prod-saree",
		Name:  "Silk Saree",
		Price: 19.99,
		Variants: []models.Variant{
			{SKU: "SAR-RED", Stock: 5},
			{SKU: "SAR-GLD", Stock: 2},
		},
	})
	return services.NewCartService(newMemCarts(), products), products
}

func TestCartLazyCreate(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	cart, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotEmpty(t, cart.ID)
	require.Empty(t, cart.Items)

	// Second read returns the same cart, not a new one.
	again, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, cart.ID, again.ID)
}

func TestCartAddItemMergesSameLine(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "prod-saree", "SAR-RED", 2)
	require.NoError(t, err)

	cart, err := svc.AddItem(ctx, "u1", "prod-saree", "SAR-RED", 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 3, cart.Items[0].Quantity)

	// A different variant of the same product is its own line.
	cart, err = svc.AddItem(ctx, "u1", "prod-saree", "SAR-GLD", 1)
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
}

func TestCartAddItemStockCeiling(t *testing.T) {
	svc, products := newCartFixture()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "prod-saree", "SAR-RED", 4)
	require.NoError(t, err)

	// 4 already held + 2 more exceeds the 5 in stock.
	_, err = svc.AddItem(ctx, "u1", "prod-saree", "SAR-RED", 2)
	require.ErrorIs(t, err, services.ErrInsufficientStock)

	_, err = svc.AddItem(ctx, "u1", "prod-saree", "SAR-RED", 0)
	require.ErrorIs(t, err, services.ErrInsufficientStock)

	// Carting never moves stock.
	require.Equal(t, 5, products.stock("prod-saree", "SAR-RED"))
}

func TestCartAddItemUnknownRefs(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "prod-ghost", "SAR-RED", 1)
	require.ErrorIs(t, err, services.ErrProductNotFound)

	_, err = svc.AddItem(ctx, "u1", "prod-saree", "SAR-XXL", 1)
	require.ErrorIs(t, err, services.ErrVariantNotFound)
}

func TestCartUpdateItem(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "prod-saree", "SAR-RED", 1)
	require.NoError(t, err)

	cart, err := svc.UpdateItem(ctx, "u1", "prod-saree", "SAR-RED", 5)
	require.NoError(t, err)
	require.Equal(t, 5, cart.Items[0].Quantity)

	_, err = svc.UpdateItem(ctx, "u1", "prod-saree", "SAR-RED", 6)
	require.ErrorIs(t, err, services.ErrInsufficientStock)

	_, err = svc.UpdateItem(ctx, "u1", "prod-saree", "SAR-GLD", 1)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestCartRemoveAndClear(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", "prod-saree", "SAR-RED", 1)
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "u1", "prod-saree", "SAR-GLD", 1)
	require.NoError(t, err)

	cart, err := svc.RemoveItem(ctx, "u1", "prod-saree", "SAR-RED")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	require.Equal(t, "SAR-GLD", cart.Items[0].VariantID)

	_, err = svc.RemoveItem(ctx, "u1", "prod-saree", "SAR-RED")
	require.ErrorIs(t, err, services.ErrNotFound)

	cart, err = svc.Clear(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, cart.Items)

	// Clearing keeps the cart itself around.
	again, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, cart.ID, again.ID)
}
