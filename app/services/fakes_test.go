package services_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
)

// In-memory repository fakes backing the service tests.

// ─── users ────────────────────────────────────────────────────────────────────

type memUsers struct {
	seq   int
	users map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{users: map[string]*models.User{}}
}

func (m *memUsers) nextID() string {
	m.seq++
	return fmt.Sprintf("user-%d", m.seq)
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	for _, existing := range m.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return services.ErrDuplicate
		}
	}
	u.ID = m.nextID()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) Update(_ context.Context, u *models.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return services.ErrNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memUsers) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, services.ErrNotFound
}

func (m *memUsers) ExistsOther(_ context.Context, email, username, excludeID string) (bool, error) {
	for id, u := range m.users {
		if id == excludeID {
			continue
		}
		if u.Email == email || u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// ─── categories ───────────────────────────────────────────────────────────────

type memCategories struct {
	seq        int
	categories map[string]*models.Category
}

func newMemCategories() *memCategories {
	return &memCategories{categories: map[string]*models.Category{}}
}

func (m *memCategories) Create(_ context.Context, c *models.Category) error {
	m.seq++
	c.ID = fmt.Sprintf("cat-%d", m.seq)
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *memCategories) Update(_ context.Context, c *models.Category) error {
	if _, ok := m.categories[c.ID]; !ok {
		return services.ErrNotFound
	}
	cp := *c
	m.categories[c.ID] = &cp
	return nil
}

func (m *memCategories) Delete(_ context.Context, id string) error {
	if _, ok := m.categories[id]; !ok {
		return services.ErrNotFound
	}
	delete(m.categories, id)
	return nil
}

func (m *memCategories) FindByID(_ context.Context, id string) (*models.Category, error) {
	c, ok := m.categories[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memCategories) List(_ context.Context, f services.CategoryFilter) ([]models.Category, error) {
	var out []models.Category
	for _, c := range m.categories {
		if f.ParentID != nil && c.ParentID != *f.ParentID {
			continue
		}
		if f.IsActive != nil && c.IsActive != *f.IsActive {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memCategories) HasChildren(_ context.Context, id string) (bool, error) {
	for _, c := range m.categories {
		if c.ParentID == id {
			return true, nil
		}
	}
	return false, nil
}

func (m *memCategories) ExistsOther(_ context.Context, name, slug, excludeID string) (bool, error) {
	for id, c := range m.categories {
		if id == excludeID {
			continue
		}
		if c.Name == name || c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// ─── products ─────────────────────────────────────────────────────────────────

type memProducts struct {
	seq      int
	products map[string]*models.Product
	// decrementErr, when set, fails DecrementStock for the given SKU.
	decrementErr map[string]error
	decrements   []string // sku order of successful decrements
	increments   []string // sku order of restores
}

func newMemProducts() *memProducts {
	return &memProducts{
		products:     map[string]*models.Product{},
		decrementErr: map[string]error{},
	}
}

func (m *memProducts) add(p models.Product) *models.Product {
	m.seq++
	if p.ID == "" {
		p.ID = fmt.Sprintf("prod-%d", m.seq)
	}
	cp := p
	m.products[p.ID] = &cp
	return &cp
}

func (m *memProducts) stock(productID, sku string) int {
	p := m.products[productID]
	if p == nil {
		return -1
	}
	v := p.FindVariant(sku)
	if v == nil {
		return -1
	}
	return v.Stock
}

func (m *memProducts) Create(_ context.Context, p *models.Product) error {
	*p = *m.add(*p)
	return nil
}

func (m *memProducts) Update(_ context.Context, p *models.Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return services.ErrNotFound
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *memProducts) Delete(_ context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return services.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *memProducts) FindByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	cp := *p
	cp.Variants = append([]models.Variant(nil), p.Variants...)
	return &cp, nil
}

func (m *memProducts) List(_ context.Context, f services.ProductFilter) ([]models.Product, int64, error) {
	var out []models.Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (m *memProducts) DecrementStock(_ context.Context, productID, sku string, qty int) error {
	if err := m.decrementErr[sku]; err != nil {
		return err
	}
	p, ok := m.products[productID]
	if !ok {
		return services.ErrInsufficientStock
	}
	v := p.FindVariant(sku)
	if v == nil || v.Stock < qty {
		return services.ErrInsufficientStock
	}
	v.Stock -= qty
	m.decrements = append(m.decrements, sku)
	return nil
}

func (m *memProducts) IncrementStock(_ context.Context, productID, sku string, qty int) error {
	p, ok := m.products[productID]
	if !ok {
		return services.ErrNotFound
	}
	v := p.FindVariant(sku)
	if v == nil {
		return services.ErrNotFound
	}
	v.Stock += qty
	m.increments = append(m.increments, sku)
	return nil
}

func (m *memProducts) AddImage(_ context.Context, productID string, img models.Image) error {
	p, ok := m.products[productID]
	if !ok {
		return services.ErrNotFound
	}
	p.Images = append(p.Images, img)
	return nil
}

func (m *memProducts) AddReview(_ context.Context, productID string, review models.Review) error {
	p, ok := m.products[productID]
	if !ok {
		return services.ErrNotFound
	}
	p.Reviews = append(p.Reviews, review)
	return nil
}

// ─── carts ────────────────────────────────────────────────────────────────────

type memCarts struct {
	seq   int
	carts map[string]*models.Cart // keyed by cart id
}

func newMemCarts() *memCarts {
	return &memCarts{carts: map[string]*models.Cart{}}
}

func (m *memCarts) FindByUser(_ context.Context, userID string) (*models.Cart, error) {
	for _, c := range m.carts {
		if c.UserID == userID {
			cp := *c
			cp.Items = append([]models.CartItem(nil), c.Items...)
			return &cp, nil
		}
	}
	return nil, services.ErrNotFound
}

func (m *memCarts) Create(_ context.Context, cart *models.Cart) error {
	for _, c := range m.carts {
		if c.UserID == cart.UserID {
			return services.ErrDuplicate
		}
	}
	m.seq++
	cart.ID = fmt.Sprintf("cart-%d", m.seq)
	cp := *cart
	m.carts[cart.ID] = &cp
	return nil
}

func (m *memCarts) ReplaceItems(_ context.Context, cartID string, items []models.CartItem) error {
	c, ok := m.carts[cartID]
	if !ok {
		return services.ErrNotFound
	}
	if items == nil {
		items = []models.CartItem{}
	}
	c.Items = append([]models.CartItem(nil), items...)
	return nil
}

// ─── orders ───────────────────────────────────────────────────────────────────

type memOrders struct {
	seq          int
	orders       map[string]*models.Order
	createErr    error // when set, Create fails
	updStatusErr error // when set, UpdateStatus fails
}

func newMemOrders() *memOrders {
	return &memOrders{orders: map[string]*models.Order{}}
}

func (m *memOrders) Create(_ context.Context, o *models.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.seq++
	o.ID = fmt.Sprintf("order-%d", m.seq)
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *memOrders) FindByID(_ context.Context, id string) (*models.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) ListByUser(_ context.Context, userID string, page, limit int, status string) ([]models.Order, int64, error) {
	var out []models.Order
	for _, o := range m.orders {
		if o.UserID != userID {
			continue
		}
		if status != "" && string(o.Status) != status {
			continue
		}
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (m *memOrders) ListAll(_ context.Context, f services.OrderFilter) ([]models.Order, int64, float64, error) {
	var (
		out     []models.Order
		revenue float64
	)
	for _, o := range m.orders {
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		out = append(out, *o)
		if o.Status != models.StatusCancelled {
			revenue += o.Payment.Amount
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), models.Round2(revenue), nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id string, status models.OrderStatus) error {
	if m.updStatusErr != nil {
		return m.updStatusErr
	}
	o, ok := m.orders[id]
	if !ok {
		return services.ErrNotFound
	}
	o.Status = status
	return nil
}

func (m *memOrders) Stats(_ context.Context) (*services.OrderStats, error) {
	stats := &services.OrderStats{StatusCounts: map[string]int64{}}
	var revenue float64
	for _, o := range m.orders {
		stats.StatusCounts[string(o.Status)]++
		if o.Status != models.StatusCancelled {
			stats.TotalOrders++
			revenue += o.Payment.Amount
		}
	}
	stats.TotalRevenue = models.Round2(revenue)
	if stats.TotalOrders > 0 {
		stats.AverageOrderValue = models.Round2(revenue / float64(stats.TotalOrders))
	}
	return stats, nil
}

// ─── otps ─────────────────────────────────────────────────────────────────────

type memOTPs struct {
	seq  int
	otps []*models.OTP
}

func newMemOTPs() *memOTPs { return &memOTPs{} }

func (m *memOTPs) Create(_ context.Context, otp *models.OTP) error {
	m.seq++
	otp.ID = fmt.Sprintf("otp-%d", m.seq)
	otp.CreatedAt = time.Now().Add(time.Duration(m.seq) * time.Millisecond)
	cp := *otp
	m.otps = append(m.otps, &cp)
	return nil
}

func (m *memOTPs) LatestByEmail(_ context.Context, email string) (*models.OTP, error) {
	var latest *models.OTP
	for _, o := range m.otps {
		if o.Email != email {
			continue
		}
		if latest == nil || o.CreatedAt.After(latest.CreatedAt) {
			latest = o
		}
	}
	if latest == nil {
		return nil, services.ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (m *memOTPs) DeleteByEmail(_ context.Context, email string) error {
	kept := m.otps[:0]
	for _, o := range m.otps {
		if o.Email != email {
			kept = append(kept, o)
		}
	}
	m.otps = kept
	return nil
}
