package trade

import (
	"context"

	"github.com/google/uuid"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// Create inserts the sale together with its items
	Create(ctx context.Context, sale *Sale) error

	// FindByID loads a sale with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)

	// List returns one page of sales (items not loaded) and the total match count
	List(ctx context.Context, filter SaleFilter) ([]Sale, int64, error)

	// CountByBranch counts the sales recorded at a branch
	CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error)
}
