package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
)

type orderFixture struct {
	orders   *memOrders
	carts    *memCarts
	products *memProducts
	svc      *services.OrderService
}

// newOrderFixture seeds two products and a cart for user "u1" holding
// 2× saree (19.99) and 1× kurta (34.50).
func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	products := newMemProducts()
	saree := products.add(models.Product{
		Name:  "Silk Saree",
		Price: 19.99,
		Variants: []models.Variant{
			{SKU: "SAR-RED", Size: "Free", Color: "Red", Stock: 10},
		},
	})
	kurta := products.add(models.Product{
		Name:  "Cotton Kurta",
		Price: 34.50,
		Variants: []models.Variant{
			{SKU: "KUR-M", Size: "M", Color: "White", Stock: 5},
		},
	})

	carts := newMemCarts()
	cart := &models.Cart{UserID: "u1", Items: []models.CartItem{
		{ProductID: saree.ID, VariantID: "SAR-RED", Quantity: 2},
		{ProductID: kurta.ID, VariantID: "KUR-M", Quantity: 1},
	}}
	require.NoError(t, carts.Create(context.Background(), cart))

	orders := newMemOrders()
	return &orderFixture{
		orders:   orders,
		carts:    carts,
		products: products,
		svc:      services.NewOrderService(orders, carts, products, nil),
	}
}

func shipTo() models.Address {
	return models.Address{Address: "12 MG Road", City: "Varanasi", ZipCode: "221001"}
}

// ─── Create ───────────────────────────────────────────────────────────────────

func TestOrderCreateComputesAmountServerSide(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, "u1", shipTo(), "COD")
	require.NoError(t, err)

	// 2×19.99 + 1×34.50, regardless of anything the client sent.
	require.Equal(t, 74.48, order.Payment.Amount)
	require.Equal(t, order.Total(), order.Payment.Amount)
	require.Equal(t, models.StatusPending, order.Status)
	require.Equal(t, "COD", order.Payment.Method)
	require.NotEmpty(t, order.Payment.TransactionID)
	require.Len(t, order.Items, 2)

	// Prices are snapshots of the product at order time.
	require.Equal(t, 19.99, order.Items[0].Price)
	require.Equal(t, 34.50, order.Items[1].Price)
}

func TestOrderCreateConsumesStockAndEmptiesCart(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, "u1", shipTo(), "PayPal")
	require.NoError(t, err)

	require.Equal(t, 8, f.products.stock(order.Items[0].ProductID, "SAR-RED"))
	require.Equal(t, 4, f.products.stock(order.Items[1].ProductID, "KUR-M"))

	cart, err := f.carts.FindByUser(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, cart.Items)
}

func TestOrderCreateRejectsUnknownPaymentMethod(t *testing.T) {
	f := newOrderFixture(t)

	_, err := f.svc.Create(context.Background(), "u1", shipTo(), "Barter")
	require.Error(t, err)
	require.Empty(t, f.products.decrements)
}

func TestOrderCreateEmptyCart(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	// No cart at all.
	_, err := f.svc.Create(ctx, "u2", shipTo(), "COD")
	require.ErrorIs(t, err, services.ErrEmptyCart)

	// Cart exists but holds nothing.
	cart, err := f.carts.FindByUser(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, f.carts.ReplaceItems(ctx, cart.ID, nil))
	_, err = f.svc.Create(ctx, "u1", shipTo(), "COD")
	require.ErrorIs(t, err, services.ErrEmptyCart)
}

func TestOrderCreateInsufficientStock(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	cart, err := f.carts.FindByUser(ctx, "u1")
	require.NoError(t, err)
	sareeID := cart.Items[0].ProductID
	kurtaID := cart.Items[1].ProductID

	items := []models.CartItem{{ProductID: sareeID, VariantID: "SAR-RED", Quantity: 11}}
	require.NoError(t, f.carts.ReplaceItems(ctx, cart.ID, items))

	_, err = f.svc.Create(ctx, "u1", shipTo(), "COD")
	require.ErrorIs(t, err, services.ErrInsufficientStock)

	// Nothing moved, nothing persisted.
	require.Equal(t, 10, f.products.stock(sareeID, "SAR-RED"))
	require.Equal(t, 5, f.products.stock(kurtaID, "KUR-M"))
	require.Empty(t, f.orders.orders)
}

func TestOrderCreateCompensatesPartialDecrement(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	cart, err := f.carts.FindByUser(ctx, "u1")
	require.NoError(t, err)
	sareeID := cart.Items[0].ProductID
	kurtaID := cart.Items[1].ProductID

	// First line decrements fine, second line's conditional write fails.
	f.products.decrementErr["KUR-M"] = services.ErrInsufficientStock

	_, err = f.svc.Create(ctx, "u1", shipTo(), "COD")
	require.ErrorIs(t, err, services.ErrInsufficientStock)

	require.Equal(t, []string{"SAR-RED"}, f.products.decrements)
	require.Equal(t, []string{"SAR-RED"}, f.products.increments)
	require.Equal(t, 10, f.products.stock(sareeID, "SAR-RED"))
	require.Equal(t, 5, f.products.stock(kurtaID, "KUR-M"))
	require.Empty(t, f.orders.orders)
}

func TestOrderCreateCompensatesWhenPersistFails(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	boom := errors.New("write concern error")
	f.orders.createErr = boom

	_, err := f.svc.Create(ctx, "u1", shipTo(), "COD")
	require.ErrorIs(t, err, boom)

	// Both decrements rolled back, cart untouched.
	require.Len(t, f.products.increments, 2)
	cart, err := f.carts.FindByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
}

// ─── Status transitions ───────────────────────────────────────────────────────

func TestOrderUpdateStatus(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, "u1", shipTo(), "COD")
	require.NoError(t, err)

	updated, err := f.svc.UpdateStatus(ctx, order.ID, "Shipped")
	require.NoError(t, err)
	require.Equal(t, models.StatusShipped, updated.Status)

	_, err = f.svc.UpdateStatus(ctx, order.ID, "Teleported")
	require.ErrorIs(t, err, services.ErrInvalidStatus)

	_, err = f.svc.UpdateStatus(ctx, "order-999", "Shipped")
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestOrderCancelRestoresStockExactlyOnce(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, "u1", shipTo(), "COD")
	require.NoError(t, err)
	sareeID := order.Items[0].ProductID
	kurtaID := order.Items[1].ProductID
	require.Equal(t, 8, f.products.stock(sareeID, "SAR-RED"))

	cancelled, err := f.svc.UpdateStatus(ctx, order.ID, "Cancelled")
	require.NoError(t, err)
	require.Equal(t, models.StatusCancelled, cancelled.Status)
	require.Equal(t, 10, f.products.stock(sareeID, "SAR-RED"))
	require.Equal(t, 5, f.products.stock(kurtaID, "KUR-M"))

	// A second cancel must not restore again.
	_, err = f.svc.UpdateStatus(ctx, order.ID, "Cancelled")
	require.ErrorIs(t, err, services.ErrAlreadyCancelled)
	require.Equal(t, 10, f.products.stock(sareeID, "SAR-RED"))

	// Nor may a cancelled order move anywhere else.
	_, err = f.svc.UpdateStatus(ctx, order.ID, "Processing")
	require.ErrorIs(t, err, services.ErrAlreadyCancelled)
}

func TestOrderCancelRestoresNothingWhenPersistFails(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, "u1", shipTo(), "COD")
	require.NoError(t, err)
	sareeID := order.Items[0].ProductID

	boom := errors.New("write concern error")
	f.orders.updStatusErr = boom

	_, err = f.svc.UpdateStatus(ctx, order.ID, "Cancelled")
	require.ErrorIs(t, err, boom)

	// The failed persist must not have restored any stock.
	require.Empty(t, f.products.increments)
	require.Equal(t, 8, f.products.stock(sareeID, "SAR-RED"))

	// A retry after the store recovers restores exactly once.
	f.orders.updStatusErr = nil
	_, err = f.svc.UpdateStatus(ctx, order.ID, "Cancelled")
	require.NoError(t, err)
	require.Equal(t, 10, f.products.stock(sareeID, "SAR-RED"))
	require.Len(t, f.products.increments, 2)
}

// ─── Reads ────────────────────────────────────────────────────────────────────

func TestOrderGetForUserOwnership(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, "u1", shipTo(), "COD")
	require.NoError(t, err)

	got, err := f.svc.GetForUser(ctx, order.ID, "u1", false)
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)

	// Another customer sees not-found, not forbidden.
	_, err = f.svc.GetForUser(ctx, order.ID, "u2", false)
	require.ErrorIs(t, err, services.ErrNotFound)

	// Admins read anyone's order.
	got, err = f.svc.GetForUser(ctx, order.ID, "admin-1", true)
	require.NoError(t, err)
	require.Equal(t, order.ID, got.ID)
}

func TestOrderListAllRevenueExcludesCancelled(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	first, err := f.svc.Create(ctx, "u1", shipTo(), "COD")
	require.NoError(t, err)

	// Refill the cart for a second order, then cancel the first.
	items := []models.CartItem{{ProductID: first.Items[0].ProductID, VariantID: "SAR-RED", Quantity: 1}}
	cart, err := f.carts.FindByUser(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, f.carts.ReplaceItems(ctx, cart.ID, items))
	second, err := f.svc.Create(ctx, "u1", shipTo(), "COD")
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(ctx, first.ID, "Cancelled")
	require.NoError(t, err)

	list, err := f.svc.ListAll(ctx, services.OrderFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(2), list.Total)
	require.Equal(t, second.Payment.Amount, list.Revenue)

	_, err = f.svc.ListAll(ctx, services.OrderFilter{Status: "Lost"})
	require.ErrorIs(t, err, services.ErrInvalidStatus)

	stats, err := f.svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), stats.TotalOrders)
	require.Equal(t, second.Payment.Amount, stats.TotalRevenue)
	require.Equal(t, int64(1), stats.StatusCounts["Cancelled"])
}

func TestOrderListForUser(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	order, err := f.svc.Create(ctx, "u1", shipTo(), "COD")
	require.NoError(t, err)

	orders, total, err := f.svc.ListForUser(ctx, "u1", 1, 20, "")
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Equal(t, order.ID, orders[0].ID)

	orders, total, err = f.svc.ListForUser(ctx, "u2", 1, 20, "")
	require.NoError(t, err)
	require.Zero(t, total)
	require.NotNil(t, orders)

	_, _, err = f.svc.ListForUser(ctx, "u1", 1, 20, "Mislaid")
	require.ErrorIs(t, err, services.ErrInvalidStatus)
}
