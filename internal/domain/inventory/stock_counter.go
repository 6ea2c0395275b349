package inventory

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// Subject identifies what a stock counter counts: a plain product, or one
// variant of a product.
type Subject struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
}

// ProductSubject returns the subject of a plain product
func ProductSubject(productID uuid.UUID) Subject {
	return Subject{ProductID: productID}
}

// VariantSubject returns the subject of a product variant
func VariantSubject(productID, variantID uuid.UUID) Subject {
	return Subject{ProductID: productID, VariantID: &variantID}
}

// IsVariant reports whether the subject is a variant
func (s Subject) IsVariant() bool {
	return s.VariantID != nil
}

// Key is the identifier counters are unique on: the variant ID for
// variants, the product ID otherwise.
func (s Subject) Key() uuid.UUID {
	if s.VariantID != nil {
		return *s.VariantID
	}
	return s.ProductID
}

// Validate checks that the subject references real identifiers
func (s Subject) Validate() error {
	if s.ProductID == uuid.Nil {
		return shared.NewValidationError("product ID is required")
	}
	if s.VariantID != nil && *s.VariantID == uuid.Nil {
		return shared.NewValidationError("variant ID cannot be empty")
	}
	return nil
}

// StockCounter is the stock of one subject at one branch.
// At most one counter exists per (subject, branch) and its stock is never negative.
type StockCounter struct {
	shared.BaseEntity
	ProductID uuid.UUID
	VariantID *uuid.UUID
	SubjectID uuid.UUID
	BranchID  uuid.UUID
	Stock     int64
}

// NewStockCounter creates a counter for subject at branch with an initial stock
func NewStockCounter(subject Subject, branchID uuid.UUID, initial int64) (*StockCounter, error) {
	if err := subject.Validate(); err != nil {
		return nil, err
	}
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("branch ID is required")
	}
	if initial < 0 {
		return nil, shared.NewValidationError("initial stock cannot be negative")
	}

	return &StockCounter{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  subject.ProductID,
		VariantID:  subject.VariantID,
		SubjectID:  subject.Key(),
		BranchID:   branchID,
		Stock:      initial,
	}, nil
}

// Subject returns the subject this counter counts
func (c *StockCounter) Subject() Subject {
	return Subject{ProductID: c.ProductID, VariantID: c.VariantID}
}
