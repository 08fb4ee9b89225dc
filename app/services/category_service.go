package services

import (
	"context"
	"strings"

	"github.com/shashiranjanraj/vastra/app/models"
)

// CategoryService manages the taxonomy tree.
type CategoryService struct {
	categories CategoryRepo
}

func NewCategoryService(categories CategoryRepo) *CategoryService {
	return &CategoryService{categories: categories}
}

// CategoryInput carries the writable category fields.
type CategoryInput struct {
	Name        string `json:"name" validate:"required,max=100"`
	Slug        string `json:"slug" validate:"required,alpha_dash,max=100"`
	Description string `json:"description" validate:"nullable,max=1000"`
	ParentID    string `json:"parent_id"`
	IsActive    *bool  `json:"is_active"`
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))

	taken, err := s.categories.ExistsOther(ctx, in.Name, in.Slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicate
	}

	if in.ParentID != "" {
		if _, err := s.categories.FindByID(ctx, in.ParentID); err != nil {
			return nil, err
		}
	}

	c := &models.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		ParentID:    in.ParentID,
		IsActive:    in.IsActive == nil || *in.IsActive,
	}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(ctx context.Context, id string, in CategoryInput) (*models.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))

	taken, err := s.categories.ExistsOther(ctx, in.Name, in.Slug, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrDuplicate
	}

	if in.ParentID != "" && in.ParentID != c.ParentID {
		if err := s.checkCycle(ctx, id, in.ParentID); err != nil {
			return nil, err
		}
	}

	c.Name = in.Name
	c.Slug = in.Slug
	c.Description = in.Description
	c.ParentID = in.ParentID
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := s.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a leaf category. Categories with children are
// protected until the children are moved or removed.
func (s *CategoryService) Delete(ctx context.Context, id string) error {
	if _, err := s.categories.FindByID(ctx, id); err != nil {
		return err
	}
	hasChildren, err := s.categories.HasChildren(ctx, id)
	if err != nil {
		return err
	}
	if hasChildren {
		return ErrHasChildren
	}
	return s.categories.Delete(ctx, id)
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	return s.categories.FindByID(ctx, id)
}

func (s *CategoryService) List(ctx context.Context, f CategoryFilter) ([]models.Category, error) {
	out, err := s.categories.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Category{}
	}
	return out, nil
}

// checkCycle walks the ancestor chain from newParentID upward and
// rejects the move if id appears on it. Bounded to guard against
// pre-existing corrupt linkage.
func (s *CategoryService) checkCycle(ctx context.Context, id, newParentID string) error {
	if newParentID == id {
		return ErrCategoryCycle
	}
	current := newParentID
	for depth := 0; depth < 100 && current != ""; depth++ {
		parent, err := s.categories.FindByID(ctx, current)
		if err != nil {
			return err
		}
		if parent.ParentID == id {
			return ErrCategoryCycle
		}
		current = parent.ParentID
	}
	return nil
}
