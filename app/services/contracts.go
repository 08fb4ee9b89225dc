package services

import (
	"context"
	"time"

	"github.com/shashiranjanraj/vastra/app/models"
)

// Repository contracts consumed by the service layer. The Mongo
// implementations live in app/repositories; tests supply in-memory fakes.

// UserRepo persists account records.
type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// ExistsOther reports whether any user other than excludeID already
	// uses the given email or username. excludeID may be empty.
	ExistsOther(ctx context.Context, email, username, excludeID string) (bool, error)
}

// CategoryRepo persists the category tree.
type CategoryRepo interface {
	Create(ctx context.Context, c *models.Category) error
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Category, error)
	List(ctx context.Context, f CategoryFilter) ([]models.Category, error)
	HasChildren(ctx context.Context, id string) (bool, error)
	// ExistsOther reports whether any category other than excludeID
	// already uses the given name or slug.
	ExistsOther(ctx context.Context, name, slug, excludeID string) (bool, error)
}

// CategoryFilter narrows category listings.
type CategoryFilter struct {
	ParentID *string // nil: any; empty string: roots only
	IsActive *bool
}

// ProductRepo persists catalog entries and owns the stock primitives.
type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.Product, error)
	List(ctx context.Context, f ProductFilter) ([]models.Product, int64, error)
	// DecrementStock atomically decrements the variant's stock by qty
	// only if the current stock covers it. Returns ErrInsufficientStock
	// when the conditional write matches no document.
	DecrementStock(ctx context.Context, productID, sku string, qty int) error
	// IncrementStock adds qty back onto the variant's stock.
	IncrementStock(ctx context.Context, productID, sku string, qty int) error
	AddImage(ctx context.Context, productID string, img models.Image) error
	AddReview(ctx context.Context, productID string, review models.Review) error
}

// ProductFilter narrows and pages product listings.
type ProductFilter struct {
	Page     int
	Limit    int
	Search   string // free-text over name+description
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// CartRepo persists per-user carts.
type CartRepo interface {
	FindByUser(ctx context.Context, userID string) (*models.Cart, error)
	Create(ctx context.Context, cart *models.Cart) error
	ReplaceItems(ctx context.Context, cartID string, items []models.CartItem) error
}

// OrderRepo persists immutable orders.
type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string, page, limit int, status string) ([]models.Order, int64, error)
	ListAll(ctx context.Context, f OrderFilter) ([]models.Order, int64, float64, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) error
	Stats(ctx context.Context) (*OrderStats, error)
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Page   int
	Limit  int
	Status string
	From   *time.Time
	To     *time.Time
	// SortDesc sorts by creation time, newest first, when true.
	SortDesc bool
}

// OrderStats is the admin aggregate view over all orders.
type OrderStats struct {
	TotalOrders       int64            `json:"total_orders"`
	TotalRevenue      float64          `json:"total_revenue"`
	AverageOrderValue float64          `json:"average_order_value"`
	StatusCounts      map[string]int64 `json:"status_counts"`
}

// OTPRepo persists one-time verification codes.
type OTPRepo interface {
	Create(ctx context.Context, otp *models.OTP) error
	LatestByEmail(ctx context.Context, email string) (*models.OTP, error)
	DeleteByEmail(ctx context.Context, email string) error
}
