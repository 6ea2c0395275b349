package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest represents a POS checkout
type PlaceOrderRequest struct {
	BranchID      *uuid.UUID       `json:"branch_id"`
	Items         []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	Total         decimal.Decimal  `json:"total"`
	PaymentMethod string           `json:"payment_method" binding:"required,oneof=CASH CARD TRANSFER"`
	CashAmount    *decimal.Decimal `json:"cash_amount"`
	TableService  bool             `json:"table_service"`
	TableNumber   string           `json:"table_number" binding:"max=32"`
	Notes         string           `json:"notes" binding:"max=500"`
}

// OrderItemInput represents one line of a checkout
type OrderItemInput struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	VariantID *uuid.UUID      `json:"variant_id"`
	Quantity  int64           `json:"quantity" binding:"required,min=1"`
	Price     decimal.Decimal `json:"price"`
}

// Checkout converts the request into the domain checkout
func (r PlaceOrderRequest) Checkout() trade.Checkout {
	items := make([]trade.LineItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = trade.LineItem{
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	return trade.Checkout{
		Items:         items,
		Total:         r.Total,
		PaymentMethod: trade.PaymentMethod(r.PaymentMethod),
		CashAmount:    r.CashAmount,
		TableService:  r.TableService,
		TableNumber:   r.TableNumber,
		Notes:         r.Notes,
	}
}

// SaleListFilter represents filter options for listing sales
type SaleListFilter struct {
	BranchID string `form:"branch_id" binding:"omitempty,uuid"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID            uuid.UUID           `json:"id"`
	UserID        uuid.UUID           `json:"user_id"`
	BranchID      uuid.UUID           `json:"branch_id"`
	Total         decimal.Decimal     `json:"total"`
	PaymentMethod string              `json:"payment_method"`
	CashAmount    decimal.NullDecimal `json:"cash_amount"`
	Change        decimal.NullDecimal `json:"change"`
	TableService  bool                `json:"table_service"`
	TableNumber   *string             `json:"table_number,omitempty"`
	Notes         *string             `json:"notes,omitempty"`
	Items         []SaleItemResponse  `json:"items,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// SaleItemResponse represents a sale line in API responses
type SaleItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	VariantID *uuid.UUID      `json:"variant_id,omitempty"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ToSaleResponse converts a domain sale to a response DTO
func ToSaleResponse(sale *trade.Sale) SaleResponse {
	resp := SaleResponse{
		ID:            sale.ID,
		UserID:        sale.UserID,
		BranchID:      sale.BranchID,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod.String(),
		CashAmount:    sale.CashAmount,
		Change:        sale.ChangeAmount,
		TableService:  sale.TableService,
		TableNumber:   sale.TableNumber,
		Notes:         sale.Notes,
		CreatedAt:     sale.CreatedAt,
	}
	if len(sale.Items) > 0 {
		resp.Items = make([]SaleItemResponse, len(sale.Items))
		for i, item := range sale.Items {
			resp.Items[i] = SaleItemResponse{
				ID:        item.ID,
				ProductID: item.ProductID,
				VariantID: item.VariantID,
				Quantity:  item.Quantity,
				Price:     item.Price,
				Subtotal:  item.Subtotal,
			}
		}
	}
	return resp
}
