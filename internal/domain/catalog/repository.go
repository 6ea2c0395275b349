package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository persists products and their variants
type ProductRepository interface {
	// FindByID loads a product with its variants
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	// FindByIDs loads several products with their variants
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	// List returns one page of products and the total match count
	List(ctx context.Context, filter ProductFilter) ([]Product, int64, error)
	// Create inserts the product together with its variants
	Create(ctx context.Context, product *Product) error
	// Update writes the product's own columns; variants are untouched
	Update(ctx context.Context, product *Product) error
	// SetActive flips the soft-delete flag
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	// SaveVariants inserts or updates the given variants
	SaveVariants(ctx context.Context, variants []*ProductVariant) error
	// DeleteVariants removes variants by ID
	DeleteVariants(ctx context.Context, ids []uuid.UUID) error
}

// CategoryRepository persists categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	Create(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	// CountProducts counts products of any status in the category
	CountProducts(ctx context.Context, id uuid.UUID) (int64, error)
}
