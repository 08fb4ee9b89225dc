package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/pkg/cache"
	"github.com/shashiranjanraj/vastra/pkg/storage"
)

const (
	productCachePrefix = "products:"
	productCacheTTL    = 5 * time.Minute
)

// ProductService handles catalog CRUD, cached reads and image uploads.
type ProductService struct {
	products   ProductRepo
	categories CategoryRepo
}

func NewProductService(products ProductRepo, categories CategoryRepo) *ProductService {
	return &ProductService{products: products, categories: categories}
}

// ProductInput carries the writable product fields.
type ProductInput struct {
	Name        string           `json:"name" validate:"required,max=200"`
	Description string           `json:"description" validate:"nullable,max=5000"`
	Price       float64          `json:"price" validate:"required,numeric,gte=0"`
	Categories  []string         `json:"categories"`
	Variants    []models.Variant `json:"variants"`
}

func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	p := &models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       models.Round2(in.Price),
		Categories:  in.Categories,
		Variants:    in.Variants,
		Images:      []models.Image{},
		Reviews:     []models.Review{},
	}
	if err := s.products.Create(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate()
	return p, nil
}

func (s *ProductService) Update(ctx context.Context, id string, in ProductInput) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, in); err != nil {
		return nil, err
	}

	p.Name = in.Name
	p.Description = in.Description
	p.Price = models.Round2(in.Price)
	p.Categories = in.Categories
	p.Variants = in.Variants
	if err := s.products.Update(ctx, p); err != nil {
		return nil, err
	}
	s.invalidate()
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	key := productCachePrefix + id
	var cached models.Product
	if cache.Get(key, &cached) {
		return &cached, nil
	}

	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	cache.Set(key, p, productCacheTTL) //nolint:errcheck
	return p, nil
}

// ListResult pairs a product page with its total match count.
type ListResult struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

func (s *ProductService) List(ctx context.Context, f ProductFilter) (*ListResult, error) {
	key := listCacheKey(f)
	var cached ListResult
	if cache.Get(key, &cached) {
		return &cached, nil
	}

	products, total, err := s.products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	result := &ListResult{Products: products, Total: total}
	cache.Set(key, result, productCacheTTL) //nolint:errcheck
	return result, nil
}

// AttachImage stores the uploaded file and appends its public URL to
// the product. The first image becomes primary.
func (s *ProductService) AttachImage(ctx context.Context, id, filename string, r io.Reader) (*models.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return nil, fmt.Errorf("unsupported image type %q", ext)
	}

	path := fmt.Sprintf("products/%s/%d%s", p.ID, time.Now().UnixNano(), ext)
	if err := storage.PutStream(path, r); err != nil {
		return nil, err
	}

	img := models.Image{URL: storage.URL(path), IsPrimary: len(p.Images) == 0}
	if err := s.products.AddImage(ctx, p.ID, img); err != nil {
		return nil, err
	}
	p.Images = append(p.Images, img)
	s.invalidate()
	return p, nil
}

// AddReview appends a customer review to the product.
func (s *ProductService) AddReview(ctx context.Context, productID, userID string, rating int, text string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	review := models.Review{
		UserID:    userID,
		Rating:    rating,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.products.AddReview(ctx, productID, review); err != nil {
		return err
	}
	s.invalidate()
	return nil
}

// validateInput checks variant and category references.
func (s *ProductService) validateInput(ctx context.Context, in ProductInput) error {
	seen := map[string]bool{}
	for _, v := range in.Variants {
		if v.SKU == "" {
			return fmt.Errorf("variant sku is required")
		}
		if seen[v.SKU] {
			return fmt.Errorf("duplicate variant sku %q", v.SKU)
		}
		seen[v.SKU] = true
		if v.Stock < 0 {
			return fmt.Errorf("variant %q stock must not be negative", v.SKU)
		}
	}
	for _, catID := range in.Categories {
		if _, err := s.categories.FindByID(ctx, catID); err != nil {
			if err == ErrNotFound {
				return fmt.Errorf("category %s: %w", catID, ErrNotFound)
			}
			return err
		}
	}
	return nil
}

func (s *ProductService) invalidate() {
	cache.DelPrefix(productCachePrefix) //nolint:errcheck
}

func listCacheKey(f ProductFilter) string {
	min, max := "", ""
	if f.MinPrice != nil {
		min = fmt.Sprintf("%.2f", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		max = fmt.Sprintf("%.2f", *f.MaxPrice)
	}
	return fmt.Sprintf("%slist:%d:%d:%s:%s:%s:%s",
		productCachePrefix, f.Page, f.Limit, f.Search, f.Category, min, max)
}
