package models

import "time"

// CartItem is one line in a cart. VariantID carries the variant's SKU.
// A cart holds at most one line per (product, variant) pair.
type CartItem struct {
	ProductID string `bson:"product_id" json:"product_id"`
	VariantID string `bson:"variant_id" json:"variant_id"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

// Cart is the per-user mutable line-item list. One cart per user,
// created lazily on first access and emptied (not deleted) on checkout.
type Cart struct {
	ID        string     `bson:"_id,omitempty" json:"id"`
	UserID    string     `bson:"user_id" json:"user_id"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

// FindItem returns the index of the line matching (productID, variantID),
// or -1 when absent.
func (c *Cart) FindItem(productID, variantID string) int {
	for i, it := range c.Items {
		if it.ProductID == productID && it.VariantID == variantID {
			return i
		}
	}
	return -1
}
