package services

import (
	"context"

	"github.com/shashiranjanraj/vastra/app/models"
)

// CartService manages the per-user cart. None of its operations touch
// variant stock; stock only moves at order time.
type CartService struct {
	carts    CartRepo
	products ProductRepo
}

func NewCartService(carts CartRepo, products ProductRepo) *CartService {
	return &CartService{carts: carts, products: products}
}

// Get returns the user's cart, creating an empty one on first access.
func (s *CartService) Get(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	if err := s.carts.Create(ctx, cart); err != nil {
		if err == ErrDuplicate {
			// Lost a create race; read the winner.
			return s.carts.FindByUser(ctx, userID)
		}
		return nil, err
	}
	return cart, nil
}

// AddItem validates the product/variant and merges quantity into any
// existing (product, variant) line.
func (s *CartService) AddItem(ctx context.Context, userID, productID, variantID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInsufficientStock
	}

	cart, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	variant, err := s.findVariant(ctx, productID, variantID)
	if err != nil {
		return nil, err
	}

	items := append([]models.CartItem(nil), cart.Items...)
	newQty := quantity
	if i := cart.FindItem(productID, variantID); i >= 0 {
		newQty += items[i].Quantity
	}
	if newQty > variant.Stock {
		return nil, ErrInsufficientStock
	}

	if i := cart.FindItem(productID, variantID); i >= 0 {
		items[i].Quantity = newQty
	} else {
		items = append(items, models.CartItem{
			ProductID: productID,
			VariantID: variantID,
			Quantity:  quantity,
		})
	}

	if err := s.carts.ReplaceItems(ctx, cart.ID, items); err != nil {
		return nil, err
	}
	cart.Items = items
	return cart, nil
}

// UpdateItem sets an existing line's quantity, re-checked against stock.
func (s *CartService) UpdateItem(ctx context.Context, userID, productID, variantID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, ErrInsufficientStock
	}

	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.FindItem(productID, variantID)
	if i < 0 {
		return nil, ErrNotFound
	}

	variant, err := s.findVariant(ctx, productID, variantID)
	if err != nil {
		return nil, err
	}
	if quantity > variant.Stock {
		return nil, ErrInsufficientStock
	}

	items := append([]models.CartItem(nil), cart.Items...)
	items[i].Quantity = quantity
	if err := s.carts.ReplaceItems(ctx, cart.ID, items); err != nil {
		return nil, err
	}
	cart.Items = items
	return cart, nil
}

// RemoveItem deletes a single line from the cart.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID, variantID string) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	i := cart.FindItem(productID, variantID)
	if i < 0 {
		return nil, ErrNotFound
	}

	items := append([]models.CartItem(nil), cart.Items[:i]...)
	items = append(items, cart.Items[i+1:]...)
	if err := s.carts.ReplaceItems(ctx, cart.ID, items); err != nil {
		return nil, err
	}
	cart.Items = items
	return cart, nil
}

// Clear empties the cart without deleting it.
func (s *CartService) Clear(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.carts.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.carts.ReplaceItems(ctx, cart.ID, nil); err != nil {
		return nil, err
	}
	cart.Items = []models.CartItem{}
	return cart, nil
}

func (s *CartService) findVariant(ctx context.Context, productID, variantID string) (*models.Variant, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	variant := product.FindVariant(variantID)
	if variant == nil {
		return nil, ErrVariantNotFound
	}
	return variant, nil
}
