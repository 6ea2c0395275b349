package inventory

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

const (
	// EventTypeStockChanged is published after a counter mutation commits
	EventTypeStockChanged = "inventory.stock_changed"
	// AggregateTypeStockCounter names the counter aggregate in events
	AggregateTypeStockCounter = "StockCounter"
)

// StockChangedEvent carries one committed counter mutation
type StockChangedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID    `json:"product_id"`
	VariantID   *uuid.UUID   `json:"variant_id,omitempty"`
	BranchID    uuid.UUID    `json:"branch_id"`
	Kind        MovementKind `json:"kind"`
	Quantity    int64        `json:"quantity"`
	StockBefore int64        `json:"stock_before"`
	StockAfter  int64        `json:"stock_after"`
	Reason      string       `json:"reason"`
}

// NewStockChangedEvent builds the event of movement m
func NewStockChangedEvent(m *InventoryMovement) *StockChangedEvent {
	return &StockChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeStockChanged, AggregateTypeStockCounter, m.CounterID),
		ProductID:       m.ProductID,
		VariantID:       m.VariantID,
		BranchID:        m.BranchID,
		Kind:            m.Kind,
		Quantity:        m.Quantity,
		StockBefore:     m.StockBefore,
		StockAfter:      m.StockAfter,
		Reason:          m.Reason,
	}
}
