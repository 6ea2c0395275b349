package trade

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeSale = "Sale"

// EventTypeSaleCompleted is published after an order placement commits
const EventTypeSaleCompleted = "trade.sale_completed"

// SaleCompletedEvent is raised when a sale and its stock decrements commit
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	SaleID        uuid.UUID       `json:"sale_id"`
	BranchID      uuid.UUID       `json:"branch_id"`
	UserID        uuid.UUID       `json:"user_id"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	ItemCount     int             `json:"item_count"`
}

// NewSaleCompletedEvent creates a new SaleCompletedEvent
func NewSaleCompletedEvent(sale *Sale) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleCompleted, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		BranchID:        sale.BranchID,
		UserID:          sale.UserID,
		Total:           sale.Total,
		PaymentMethod:   sale.PaymentMethod,
		ItemCount:       len(sale.Items),
	}
}
