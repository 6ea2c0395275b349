package models

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// SaleModel is the persistence model for the Sale aggregate root.
type SaleModel struct {
	AggregateModel
	UserID        uuid.UUID           `gorm:"type:uuid;not null;index"`
	BranchID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	Total         decimal.Decimal     `gorm:"type:decimal(12,2);not null"`
	PaymentMethod trade.PaymentMethod `gorm:"type:varchar(16);not null"`
	CashAmount    decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	ChangeAmount  decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	TableService  bool                `gorm:"not null;default:false"`
	TableNumber   *string             `gorm:"type:varchar(32)"`
	Notes         *string             `gorm:"type:varchar(500)"`
	Items         []SaleItemModel     `gorm:"foreignKey:SaleID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// ToDomain converts the persistence model to a domain Sale.
func (m *SaleModel) ToDomain() *trade.Sale {
	s := &trade.Sale{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		UserID:            m.UserID,
		BranchID:          m.BranchID,
		Total:             m.Total,
		PaymentMethod:     m.PaymentMethod,
		CashAmount:        m.CashAmount,
		ChangeAmount:      m.ChangeAmount,
		TableService:      m.TableService,
		TableNumber:       m.TableNumber,
		Notes:             m.Notes,
		Items:             make([]trade.SaleItem, len(m.Items)),
	}
	for i, item := range m.Items {
		s.Items[i] = item.ToDomain()
	}
	return s
}

// SaleModelFromDomain creates a new persistence model from a domain Sale, items included.
func SaleModelFromDomain(s *trade.Sale) *SaleModel {
	m := &SaleModel{
		UserID:        s.UserID,
		BranchID:      s.BranchID,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		CashAmount:    s.CashAmount,
		ChangeAmount:  s.ChangeAmount,
		TableService:  s.TableService,
		TableNumber:   s.TableNumber,
		Notes:         s.Notes,
		Items:         make([]SaleItemModel, len(s.Items)),
	}
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	for i, item := range s.Items {
		m.Items[i] = SaleItemModel{
			ID:        item.ID,
			SaleID:    item.SaleID,
			ProductID: item.ProductID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			Price:     item.Price,
			Subtotal:  item.Subtotal,
		}
	}
	return m
}

// SaleItemModel is the persistence model for a sale line.
type SaleItemModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SaleID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	VariantID *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity  int64           `gorm:"not null;check:chk_sale_items_quantity_positive,quantity > 0"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToDomain converts the persistence model to a domain SaleItem.
func (m SaleItemModel) ToDomain() trade.SaleItem {
	return trade.SaleItem{
		ID:        m.ID,
		SaleID:    m.SaleID,
		ProductID: m.ProductID,
		VariantID: m.VariantID,
		Quantity:  m.Quantity,
		Price:     m.Price,
		Subtotal:  m.Subtotal,
	}
}
