package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// MovementKind is how a movement changes a counter
type MovementKind string

const (
	// MovementIn adds the quantity to the stock
	MovementIn MovementKind = "IN"
	// MovementOut subtracts the quantity from the stock
	MovementOut MovementKind = "OUT"
	// MovementSet replaces the stock with the quantity
	MovementSet MovementKind = "SET"
)

// String returns the string representation of MovementKind
func (k MovementKind) String() string {
	return string(k)
}

// IsValid returns true if the kind is one of IN, OUT or SET
func (k MovementKind) IsValid() bool {
	switch k {
	case MovementIn, MovementOut, MovementSet:
		return true
	}
	return false
}

// Apply computes the stock that results from applying quantity to current.
// The result may be negative; callers reject it.
func (k MovementKind) Apply(current, quantity int64) int64 {
	switch k {
	case MovementIn:
		return current + quantity
	case MovementOut:
		return current - quantity
	default:
		return quantity
	}
}

// InventoryMovement is the immutable audit record of one counter mutation
type InventoryMovement struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	VariantID   *uuid.UUID
	BranchID    uuid.UUID
	CounterID   uuid.UUID
	Kind        MovementKind
	Quantity    int64
	StockBefore int64
	StockAfter  int64
	Reason      string
	UserID      uuid.UUID
	CreatedAt   time.Time
}

// Subject returns the subject the movement was applied to
func (m *InventoryMovement) Subject() Subject {
	return Subject{ProductID: m.ProductID, VariantID: m.VariantID}
}

// newMovement records a mutation of counter from before to after
func newMovement(counter *StockCounter, cmd MovementCommand, before, after int64) *InventoryMovement {
	return &InventoryMovement{
		ID:          uuid.New(),
		ProductID:   counter.ProductID,
		VariantID:   counter.VariantID,
		BranchID:    counter.BranchID,
		CounterID:   counter.ID,
		Kind:        cmd.Kind,
		Quantity:    cmd.Quantity,
		StockBefore: before,
		StockAfter:  after,
		Reason:      cmd.Reason,
		UserID:      cmd.ActorID,
		CreatedAt:   time.Now(),
	}
}

// MovementFilter narrows movement history queries
type MovementFilter struct {
	shared.Filter
	ProductID *uuid.UUID
	VariantID *uuid.UUID
	BranchID  *uuid.UUID
	Kind      MovementKind
	From      *time.Time
	To        *time.Time
}
