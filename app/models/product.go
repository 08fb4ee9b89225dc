package models

import (
	"math"
	"time"
)

// Round2 rounds a money amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Variant is a purchasable SKU of a product with its own stock count.
type Variant struct {
	SKU   string `bson:"sku" json:"sku"`
	Size  string `bson:"size" json:"size"`
	Color string `bson:"color" json:"color"`
	Stock int    `bson:"stock" json:"stock"`
}

// Image is a stored product image.
type Image struct {
	URL       string `bson:"url" json:"url"`
	IsPrimary bool   `bson:"is_primary" json:"is_primary"`
}

// Review is a customer review embedded on the product.
type Review struct {
	UserID    string    `bson:"user_id" json:"user_id"`
	Rating    int       `bson:"rating" json:"rating"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Product is a catalog entry. Stock lives per-variant, not per-product.
type Product struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	Price       float64   `bson:"price" json:"price"`
	Categories  []string  `bson:"categories" json:"categories"`
	Variants    []Variant `bson:"variants" json:"variants"`
	Images      []Image   `bson:"images" json:"images"`
	Reviews     []Review  `bson:"reviews" json:"reviews"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

// FindVariant returns the variant with the given SKU, or nil.
func (p *Product) FindVariant(sku string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].SKU == sku {
			return &p.Variants[i]
		}
	}
	return nil
}
