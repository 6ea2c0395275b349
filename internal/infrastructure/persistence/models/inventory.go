package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/inventory"
)

// StockCounterModel is the persistence model for the StockCounter entity.
// SubjectID is the variant ID for variant counters and the product ID otherwise,
// so one unique index covers both kinds of subject.
type StockCounterModel struct {
	BaseModel
	ProductID uuid.UUID  `gorm:"type:uuid;not null;index"`
	VariantID *uuid.UUID `gorm:"type:uuid;index"`
	SubjectID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_stock_counters_subject_branch,priority:1"`
	BranchID  uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_stock_counters_subject_branch,priority:2"`
	Stock     int64      `gorm:"not null;default:0;check:chk_stock_counters_stock_non_negative,stock >= 0"`
}

// TableName returns the table name for GORM
func (StockCounterModel) TableName() string {
	return "stock_counters"
}

// ToDomain converts the persistence model to a domain StockCounter.
func (m *StockCounterModel) ToDomain() *inventory.StockCounter {
	return &inventory.StockCounter{
		BaseEntity: m.BaseModel.ToDomain(),
		ProductID:  m.ProductID,
		VariantID:  m.VariantID,
		SubjectID:  m.SubjectID,
		BranchID:   m.BranchID,
		Stock:      m.Stock,
	}
}

// FromDomain populates the persistence model from a domain StockCounter.
func (m *StockCounterModel) FromDomain(c *inventory.StockCounter) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.ProductID = c.ProductID
	m.VariantID = c.VariantID
	m.SubjectID = c.SubjectID
	m.BranchID = c.BranchID
	m.Stock = c.Stock
}

// StockCounterModelFromDomain creates a new persistence model from a domain StockCounter.
func StockCounterModelFromDomain(c *inventory.StockCounter) *StockCounterModel {
	m := &StockCounterModel{}
	m.FromDomain(c)
	return m
}

// InventoryMovementModel is the persistence model for the append-only movement log.
// It carries no foreign keys so the history outlives deleted products and branches.
type InventoryMovementModel struct {
	ID          uuid.UUID              `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	VariantID   *uuid.UUID             `gorm:"type:uuid;index"`
	BranchID    uuid.UUID              `gorm:"type:uuid;not null;index"`
	CounterID   uuid.UUID              `gorm:"type:uuid;not null;index"`
	Kind        inventory.MovementKind `gorm:"type:varchar(8);not null"`
	Quantity    int64                  `gorm:"not null"`
	StockBefore int64                  `gorm:"not null"`
	StockAfter  int64                  `gorm:"not null"`
	Reason      string                 `gorm:"type:varchar(255);not null"`
	UserID      uuid.UUID              `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time              `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (InventoryMovementModel) TableName() string {
	return "inventory_movements"
}

// ToDomain converts the persistence model to a domain InventoryMovement.
func (m *InventoryMovementModel) ToDomain() *inventory.InventoryMovement {
	return &inventory.InventoryMovement{
		ID:          m.ID,
		ProductID:   m.ProductID,
		VariantID:   m.VariantID,
		BranchID:    m.BranchID,
		CounterID:   m.CounterID,
		Kind:        m.Kind,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
	}
}

// InventoryMovementModelFromDomain creates a new persistence model from a domain movement.
func InventoryMovementModelFromDomain(mv *inventory.InventoryMovement) *InventoryMovementModel {
	return &InventoryMovementModel{
		ID:          mv.ID,
		ProductID:   mv.ProductID,
		VariantID:   mv.VariantID,
		BranchID:    mv.BranchID,
		CounterID:   mv.CounterID,
		Kind:        mv.Kind,
		Quantity:    mv.Quantity,
		StockBefore: mv.StockBefore,
		StockAfter:  mv.StockAfter,
		Reason:      mv.Reason,
		UserID:      mv.UserID,
		CreatedAt:   mv.CreatedAt,
	}
}
