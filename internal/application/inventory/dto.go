package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/inventory"
)

// ApplyMovementRequest represents a manual stock adjustment
type ApplyMovementRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	VariantID *uuid.UUID `json:"variant_id"`
	BranchID  *uuid.UUID `json:"branch_id"`
	Kind      string     `json:"kind" binding:"required,movementkind"`
	Quantity  int64      `json:"quantity" binding:"min=0"`
	Reason    string     `json:"reason" binding:"required,max=255"`
}

// StockCounterResponse represents a stock counter in API responses
type StockCounterResponse struct {
	ID        uuid.UUID  `json:"id"`
	ProductID uuid.UUID  `json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	BranchID  uuid.UUID  `json:"branch_id"`
	Stock     int64      `json:"stock"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// MovementResponse represents an inventory movement in API responses
type MovementResponse struct {
	ID          uuid.UUID  `json:"id"`
	ProductID   uuid.UUID  `json:"product_id"`
	VariantID   *uuid.UUID `json:"variant_id,omitempty"`
	BranchID    uuid.UUID  `json:"branch_id"`
	Kind        string     `json:"kind"`
	Quantity    int64      `json:"quantity"`
	StockBefore int64      `json:"stock_before"`
	StockAfter  int64      `json:"stock_after"`
	Reason      string     `json:"reason"`
	UserID      uuid.UUID  `json:"user_id"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ApplyMovementResponse is the outcome of a committed adjustment
type ApplyMovementResponse struct {
	Counter  StockCounterResponse `json:"counter"`
	Movement MovementResponse     `json:"movement"`
}

// MovementListFilter represents filter options for the movement history
type MovementListFilter struct {
	ProductID string     `form:"product_id" binding:"omitempty,uuid"`
	VariantID string     `form:"variant_id" binding:"omitempty,uuid"`
	BranchID  string     `form:"branch_id" binding:"omitempty,uuid"`
	Kind      string     `form:"kind" binding:"omitempty,movementkind"`
	From      *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To        *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// StockListFilter selects the counters of one branch
type StockListFilter struct {
	BranchID   string   `form:"branch_id" binding:"omitempty,uuid"`
	ProductIDs []string `form:"product_id" binding:"omitempty,dive,uuid"`
}

// ToStockCounterResponse converts a domain counter to a response DTO
func ToStockCounterResponse(c *inventory.StockCounter) StockCounterResponse {
	return StockCounterResponse{
		ID:        c.ID,
		ProductID: c.ProductID,
		VariantID: c.VariantID,
		BranchID:  c.BranchID,
		Stock:     c.Stock,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToMovementResponse converts a domain movement to a response DTO
func ToMovementResponse(m *inventory.InventoryMovement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		VariantID:   m.VariantID,
		BranchID:    m.BranchID,
		Kind:        m.Kind.String(),
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
	}
}
