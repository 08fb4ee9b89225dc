package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vastra/app/services"
)

func TestCategoryCreateNormalizesAndDefaults(t *testing.T) {
	repo := newMemCategories()
	svc := services.NewCategoryService(repo)
	ctx := context.Background()

	c, err := svc.Create(ctx, services.CategoryInput{Name: "  Sarees ", Slug: " SAREES "})
	require.NoError(t, err)
	require.Equal(t, "Sarees", c.Name)
	require.Equal(t, "sarees", c.Slug)
	require.True(t, c.IsActive)

	inactive := false
	c, err = svc.Create(ctx, services.CategoryInput{Name: "Archive", Slug: "archive", IsActive: &inactive})
	require.NoError(t, err)
	require.False(t, c.IsActive)
}

func TestCategoryCreateDuplicateAndMissingParent(t *testing.T) {
	repo := newMemCategories()
	svc := services.NewCategoryService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, services.CategoryInput{Name: "Sarees", Slug: "sarees"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, services.CategoryInput{Name: "Sarees", Slug: "other"})
	require.ErrorIs(t, err, services.ErrDuplicate)
	_, err = svc.Create(ctx, services.CategoryInput{Name: "Other", Slug: "sarees"})
	require.ErrorIs(t, err, services.ErrDuplicate)

	_, err = svc.Create(ctx, services.CategoryInput{Name: "Kurtas", Slug: "kurtas", ParentID: "cat-ghost"})
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestCategoryDeleteWithChildren(t *testing.T) {
	repo := newMemCategories()
	svc := services.NewCategoryService(repo)
	ctx := context.Background()

	parent, err := svc.Create(ctx, services.CategoryInput{Name: "Clothing", Slug: "clothing"})
	require.NoError(t, err)
	child, err := svc.Create(ctx, services.CategoryInput{Name: "Sarees", Slug: "sarees", ParentID: parent.ID})
	require.NoError(t, err)

	err = svc.Delete(ctx, parent.ID)
	require.ErrorIs(t, err, services.ErrHasChildren)

	// Both records survive the refused delete.
	_, err = svc.Get(ctx, parent.ID)
	require.NoError(t, err)
	_, err = svc.Get(ctx, child.ID)
	require.NoError(t, err)

	// Leaf first, then the parent.
	require.NoError(t, svc.Delete(ctx, child.ID))
	require.NoError(t, svc.Delete(ctx, parent.ID))
	err = svc.Delete(ctx, parent.ID)
	require.ErrorIs(t, err, services.ErrNotFound)
}

func TestCategoryUpdateCycleGuard(t *testing.T) {
	repo := newMemCategories()
	svc := services.NewCategoryService(repo)
	ctx := context.Background()

	root, err := svc.Create(ctx, services.CategoryInput{Name: "Clothing", Slug: "clothing"})
	require.NoError(t, err)
	mid, err := svc.Create(ctx, services.CategoryInput{Name: "Sarees", Slug: "sarees", ParentID: root.ID})
	require.NoError(t, err)
	leaf, err := svc.Create(ctx, services.CategoryInput{Name: "Silk", Slug: "silk", ParentID: mid.ID})
	require.NoError(t, err)

	// Self-parenting.
	_, err = svc.Update(ctx, root.ID, services.CategoryInput{Name: "Clothing", Slug: "clothing", ParentID: root.ID})
	require.ErrorIs(t, err, services.ErrCategoryCycle)

	// Re-rooting under a descendant.
	_, err = svc.Update(ctx, root.ID, services.CategoryInput{Name: "Clothing", Slug: "clothing", ParentID: leaf.ID})
	require.ErrorIs(t, err, services.ErrCategoryCycle)

	// A legitimate move still works.
	moved, err := svc.Update(ctx, leaf.ID, services.CategoryInput{Name: "Silk", Slug: "silk", ParentID: root.ID})
	require.NoError(t, err)
	require.Equal(t, root.ID, moved.ParentID)
}

func TestCategoryListFilters(t *testing.T) {
	repo := newMemCategories()
	svc := services.NewCategoryService(repo)
	ctx := context.Background()

	root, err := svc.Create(ctx, services.CategoryInput{Name: "Clothing", Slug: "clothing"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, services.CategoryInput{Name: "Sarees", Slug: "sarees", ParentID: root.ID})
	require.NoError(t, err)
	inactive := false
	_, err = svc.Create(ctx, services.CategoryInput{Name: "Archive", Slug: "archive", IsActive: &inactive})
	require.NoError(t, err)

	all, err := svc.List(ctx, services.CategoryFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	rootsOnly := ""
	roots, err := svc.List(ctx, services.CategoryFilter{ParentID: &rootsOnly})
	require.NoError(t, err)
	require.Len(t, roots, 2)

	active := true
	actives, err := svc.List(ctx, services.CategoryFilter{IsActive: &active})
	require.NoError(t, err)
	require.Len(t, actives, 2)
}
