package catalog

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

const (
	// EventTypeProductChanged is published after a product write commits
	EventTypeProductChanged = "catalog.product_changed"
	// AggregateTypeProduct names the product aggregate in events
	AggregateTypeProduct = "Product"
)

// ProductChange tells what happened to a product
type ProductChange string

const (
	ProductCreated     ProductChange = "created"
	ProductUpdated     ProductChange = "updated"
	ProductDeactivated ProductChange = "deactivated"
	ProductRestored    ProductChange = "restored"
)

// ProductChangedEvent is raised when a product, its variants or its status change
type ProductChangedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID     `json:"product_id"`
	Name      string        `json:"name"`
	Change    ProductChange `json:"change"`
	// SeededCounters is the number of stock counters created by the change
	SeededCounters int64 `json:"seeded_counters"`
}

// NewProductChangedEvent builds the event of a change to p
func NewProductChangedEvent(p *Product, change ProductChange, seeded int64) *ProductChangedEvent {
	return &ProductChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductChanged, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Name:            p.Name,
		Change:          change,
		SeededCounters:  seeded,
	}
}
