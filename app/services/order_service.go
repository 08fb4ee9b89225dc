package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/metrics"
	"github.com/shashiranjanraj/vastra/pkg/ws"
)

// OrderService converts carts into immutable orders and manages the
// order lifecycle. Checkout is all-or-nothing: stock moves through
// atomic conditional decrements and any failure after a partial
// decrement is compensated before the error is returned.
type OrderService struct {
	orders   OrderRepo
	carts    CartRepo
	products ProductRepo
	feed     *ws.Hub // admin live feed, optional
}

func NewOrderService(orders OrderRepo, carts CartRepo, products ProductRepo, feed *ws.Hub) *OrderService {
	return &OrderService{orders: orders, carts: carts, products: products, feed: feed}
}

// decremented tracks a stock movement so it can be compensated.
type decremented struct {
	productID string
	sku       string
	qty       int
}

// Create places an order from the user's cart.
//
// The client-submitted payment amount is ignored; payment.amount is
// always the server-computed total. On success the cart is emptied and
// every consumed variant's stock is reduced by the ordered quantity.
// On any failure no stock mutation survives.
func (s *OrderService) Create(ctx context.Context, userID string, shipping models.Address, paymentMethod string) (*models.Order, error) {
	if !models.ValidPaymentMethod(paymentMethod) {
		return nil, fmt.Errorf("unknown payment method %q", paymentMethod)
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrEmptyCart
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var (
		items   []models.OrderItem
		total   float64
		applied []decremented
	)

	for _, line := range cart.Items {
		product, err := s.products.FindByID(ctx, line.ProductID)
		if err != nil {
			if err == ErrNotFound {
				err = ErrProductNotFound
			}
			return nil, s.compensate(ctx, applied, err)
		}

		variant := product.FindVariant(line.VariantID)
		if variant == nil {
			return nil, s.compensate(ctx, applied, ErrVariantNotFound)
		}
		if variant.Stock < line.Quantity {
			return nil, s.compensate(ctx, applied,
				fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name))
		}

		// The conditional decrement is the authoritative stock check:
		// a concurrent checkout that raced past the read above fails here.
		if err := s.products.DecrementStock(ctx, product.ID, variant.SKU, line.Quantity); err != nil {
			if err == ErrInsufficientStock {
				err = fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
			}
			return nil, s.compensate(ctx, applied, err)
		}
		applied = append(applied, decremented{productID: product.ID, sku: variant.SKU, qty: line.Quantity})

		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			Price:     product.Price,
		})
		total += product.Price * float64(line.Quantity)
	}

	order := &models.Order{
		UserID:          userID,
		Items:           items,
		ShippingAddress: shipping,
		Payment: models.Payment{
			Method:        paymentMethod,
			Amount:        models.Round2(total),
			TransactionID: newTransactionID(),
		},
		Status: models.StatusPending,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, s.compensate(ctx, applied, err)
	}

	if err := s.carts.ReplaceItems(ctx, cart.ID, nil); err != nil {
		// The order exists and stock is consumed; an undelivered cart
		// clear is recoverable, not worth failing the checkout.
		logger.WithCtx(ctx).Error("order: cart clear failed",
			"order_id", order.ID, "cart_id", cart.ID, "error", err)
	}

	metrics.OrdersCreated.Inc()
	metrics.OrderRevenue.Add(order.Payment.Amount)
	s.broadcast("order.created", order)

	return order, nil
}

// compensate restores every already-applied decrement, then returns
// cause so callers can hand it straight back.
func (s *OrderService) compensate(ctx context.Context, applied []decremented, cause error) error {
	for _, d := range applied {
		if err := s.products.IncrementStock(ctx, d.productID, d.sku, d.qty); err != nil {
			logger.WithCtx(ctx).Error("order: stock compensation failed",
				"product_id", d.productID, "sku", d.sku, "qty", d.qty, "error", err)
		}
	}
	return cause
}

// UpdateStatus moves an order to a new status. Moving to Cancelled
// restores each line's stock; a cancelled order cannot be cancelled
// again, so the restore happens exactly once.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*models.Order, error) {
	if !models.ValidStatus(status) {
		return nil, ErrInvalidStatus
	}
	target := models.OrderStatus(status)

	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == models.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}

	// Persist the transition first: once Cancelled is durable a retry is
	// rejected above, so the restore below runs at most once.
	if err := s.orders.UpdateStatus(ctx, id, target); err != nil {
		return nil, err
	}
	order.Status = target

	if target == models.StatusCancelled {
		for _, it := range order.Items {
			if err := s.products.IncrementStock(ctx, it.ProductID, it.VariantID, it.Quantity); err != nil {
				logger.WithCtx(ctx).Error("order: stock restore failed",
					"order_id", order.ID, "product_id", it.ProductID, "error", err)
			}
		}
		metrics.OrdersCancelled.Inc()
	}
	s.broadcast("order.status", order)
	return order, nil
}

// GetForUser returns an order only when it belongs to userID. Admins
// pass isAdmin to read any order.
func (s *OrderService) GetForUser(ctx context.Context, id, userID string, isAdmin bool) (*models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, ErrNotFound
	}
	return order, nil
}

func (s *OrderService) ListForUser(ctx context.Context, userID string, page, limit int, status string) ([]models.Order, int64, error) {
	if status != "" && !models.ValidStatus(status) {
		return nil, 0, ErrInvalidStatus
	}
	orders, total, err := s.orders.ListByUser(ctx, userID, page, limit, status)
	if err != nil {
		return nil, 0, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, total, nil
}

// AdminList is the admin order listing with the revenue total over the
// filtered set.
type AdminList struct {
	Orders  []models.Order `json:"orders"`
	Total   int64          `json:"total"`
	Revenue float64        `json:"revenue"`
}

func (s *OrderService) ListAll(ctx context.Context, f OrderFilter) (*AdminList, error) {
	if f.Status != "" && !models.ValidStatus(f.Status) {
		return nil, ErrInvalidStatus
	}
	orders, total, revenue, err := s.orders.ListAll(ctx, f)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return &AdminList{Orders: orders, Total: total, Revenue: revenue}, nil
}

func (s *OrderService) Stats(ctx context.Context) (*OrderStats, error) {
	return s.orders.Stats(ctx)
}

// broadcast pushes an event onto the admin websocket feed.
func (s *OrderService) broadcast(event string, order *models.Order) {
	if s.feed == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"event": event,
		"order": order,
	})
	if err != nil {
		return
	}
	select {
	case s.feed.Broadcast <- payload:
	default:
		// Feed backlogged; dashboards refetch anyway.
	}
}

// newTransactionID produces a unique "TXN_"-prefixed id.
func newTransactionID() string {
	b := make([]byte, 12)
	rand.Read(b) //nolint:errcheck
	return "TXN_" + hex.EncodeToString(b)
}
