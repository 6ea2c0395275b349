package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, actor identity.ActorContext, req CreateCategoryRequest) (*CategoryResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	category, err := catalog.NewCategory(req.Name, req.Color)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List returns every category ordered by name
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses, nil
}

// Delete removes a category that no product references
func (s *CategoryService) Delete(ctx context.Context, actor identity.ActorContext, id uuid.UUID) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	// Inactive products still reference the category
	count, err := s.categoryRepo.CountProducts(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return shared.NewValidationError("category still has %d products", count)
	}
	return s.categoryRepo.Delete(ctx, id)
}
