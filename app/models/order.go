package models

import "time"

// OrderStatus is the closed set of order states.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// ValidStatus reports whether s names a known order status.
func ValidStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethods is the accepted set of payment method names.
var PaymentMethods = []string{"Credit Card", "COD", "PayPal", "Bank Transfer"}

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	for _, pm := range PaymentMethods {
		if pm == m {
			return true
		}
	}
	return false
}

// OrderItem is a point-in-time snapshot of a purchased line.
// Price is copied from the product at order time and never updated.
type OrderItem struct {
	ProductID string  `bson:"product_id" json:"product_id"`
	VariantID string  `bson:"variant_id" json:"variant_id"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
}

// Payment holds the payment descriptor. Amount is always the
// server-computed order total.
type Payment struct {
	Method        string  `bson:"method" json:"method"`
	Amount        float64 `bson:"amount" json:"amount"`
	TransactionID string  `bson:"transaction_id" json:"transaction_id"`
}

// Order is an immutable purchase record. Status is the only field
// that changes after creation.
type Order struct {
	ID              string      `bson:"_id,omitempty" json:"id"`
	UserID          string      `bson:"user_id" json:"user_id"`
	Items           []OrderItem `bson:"items" json:"items"`
	ShippingAddress Address     `bson:"shipping_address" json:"shipping_address"`
	Payment         Payment     `bson:"payment" json:"payment"`
	Status          OrderStatus `bson:"status" json:"status"`
	CreatedAt       time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time   `bson:"updated_at" json:"updated_at"`
}

// Total computes the sum of price*quantity across items, rounded to cents.
func (o *Order) Total() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return Round2(sum)
}
