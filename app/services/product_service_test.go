package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/models"
	"github.com/shashiranjanraj/vastra/app/services"
)

func newProductFixture() (*services.ProductService, *memProducts, *memCategories) {
	products := newMemProducts()
	categories := newMemCategories()
	return services.NewProductService(products, categories), products, categories
}

func sareeInput(categories ...string) services.ProductInput {
	return services.ProductInput{
		Name:       "Silk Saree",
		Price:      129.994,
		Categories: categories,
		Variants: []models.Variant{
			{SKU: "SAR-RED", Size: "Free", Color: "Red", Stock: 25},
			{SKU: "SAR-GLD", Size: "Free", Color: "Gold", Stock: 10},
		},
	}
}

func TestProductCreate(t *testing.T) {
	svc, _, categories := newProductFixture()
	ctx := context.Background()

	cat := &models.Category{Name: "Sarees", Slug: "sarees", IsActive: true}
	require.NoError(t, categories.Create(ctx, cat))

	p, err := svc.Create(ctx, sareeInput(cat.ID))
	require.NoError(t, err)
	require.NotEmpty(t, p.ID)
	require.Equal(t, 129.99, p.Price)
	require.Len(t, p.Variants, 2)
}

func TestProductCreateValidation(t *testing.T) {
	svc, _, _ := newProductFixture()
	ctx := context.Background()

	in := sareeInput()
	in.Variants[0].SKU = ""
	_, err := svc.Create(ctx, in)
	require.ErrorContains(t, err, "sku is required")

	in = sareeInput()
	in.Variants[1].SKU = in.Variants[0].SKU
	_, err = svc.Create(ctx, in)
	require.ErrorContains(t, err, "duplicate variant sku")

	in = sareeInput()
	in.Variants[0].Stock = -1
	_, err = svc.Create(ctx, in)
	require.ErrorContains(t, err, "must not be negative")

	_, err = svc.Create(ctx, sareeInput("cat-ghost"))
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestProductUpdateAndDelete(t *testing.T) {
	svc, _, _ := newProductFixture()
	ctx := context.Background()

	p, err := svc.Create(ctx, sareeInput())
	require.NoError(t, err)

	in := sareeInput()
	in.Name = "Banarasi Silk Saree"
	in.Price = 149.50
	updated, err := svc.Update(ctx, p.ID, in)
	require.NoError(t, err)
	require.Equal(t, "Banarasi Silk Saree", updated.Name)
	require.Equal(t, 149.50, updated.Price)

	_, err = svc.Update(ctx, "prod-ghost", in)
	require.ErrorIs(t, err, services.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, p.ID))
	_, err = svc.Get(ctx, p.ID)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestProductList(t *testing.T) {
	svc, _, _ := newProductFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, sareeInput())
	require.NoError(t, err)

	res, err := svc.List(ctx, services.ProductFilter{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Equal(t, int64(1), res.Total)
	require.Len(t, res.Products, 1)
}

func TestProductAddReview(t *testing.T) {
	svc, products, _ := newProductFixture()
	ctx := context.Background()

	p, err := svc.Create(ctx, sareeInput())
	require.NoError(t, err)

	require.Error(t, svc.AddReview(ctx, p.ID, "u1", 0, "no stars"))
	require.Error(t, svc.AddReview(ctx, p.ID, "u1", 6, "too many stars"))

	require.NoError(t, svc.AddReview(ctx, p.ID, "u1", 5, "beautiful weave"))
	stored, err := products.FindByID(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, stored.Reviews, 1)
	require.Equal(t, 5, stored.Reviews[0].Rating)
}
