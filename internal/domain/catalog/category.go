package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/pos/backend/internal/domain/shared"
)

// Category groups products for the POS grid
type Category struct {
	shared.BaseEntity
	Name  string
	Color string
}

// ErrCategoryInUse is returned when products still reference a category
var ErrCategoryInUse = shared.NewValidationError("category still has products")

// NewCategory creates a category
func NewCategory(name, color string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewValidationError("category name is required")
	}
	if utf8.RuneCountInString(name) > 100 {
		return nil, shared.NewValidationError("category name cannot exceed 100 characters")
	}
	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Color:      strings.TrimSpace(color),
	}, nil
}
