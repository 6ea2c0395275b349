package models

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for the Category entity.
type CategoryModel struct {
	BaseModel
	Name  string `gorm:"type:varchar(100);not null"`
	Color string `gorm:"type:varchar(32);not null;default:''"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		Color:      m.Color,
	}
}

// CategoryModelFromDomain creates a new persistence model from a domain Category.
func CategoryModelFromDomain(c *catalog.Category) *CategoryModel {
	m := &CategoryModel{Name: c.Name, Color: c.Color}
	m.FromDomainBaseEntity(c.BaseEntity)
	return m
}

// ProductModel is the persistence model for the Product aggregate root.
type ProductModel struct {
	AggregateModel
	Name       string                `gorm:"type:varchar(200);not null;index"`
	Price      decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	Cost       decimal.Decimal       `gorm:"type:decimal(12,2);not null"`
	Barcode    *string               `gorm:"type:varchar(64);index"`
	CategoryID uuid.UUID             `gorm:"type:uuid;not null;index"`
	Color      string                `gorm:"type:varchar(32);not null;default:''"`
	Image      string                `gorm:"type:varchar(512);not null;default:''"`
	MinStock   *int64
	Active     bool                  `gorm:"not null;default:true;index"`
	Variants   []ProductVariantModel `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model (with loaded variants) to a domain Product.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Price:             m.Price,
		Cost:              m.Cost,
		Barcode:           m.Barcode,
		CategoryID:        m.CategoryID,
		Color:             m.Color,
		Image:             m.Image,
		MinStock:          m.MinStock,
		Active:            m.Active,
		Variants:          make([]catalog.ProductVariant, len(m.Variants)),
	}
	for i := range m.Variants {
		p.Variants[i] = *m.Variants[i].ToDomain()
	}
	return p
}

// FromDomain populates the persistence model from a domain Product, variants included.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Name = p.Name
	m.Price = p.Price
	m.Cost = p.Cost
	m.Barcode = p.Barcode
	m.CategoryID = p.CategoryID
	m.Color = p.Color
	m.Image = p.Image
	m.MinStock = p.MinStock
	m.Active = p.Active
	m.Variants = make([]ProductVariantModel, len(p.Variants))
	for i := range p.Variants {
		m.Variants[i] = *ProductVariantModelFromDomain(&p.Variants[i])
	}
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// ProductVariantModel is the persistence model for the ProductVariant entity.
type ProductVariantModel struct {
	BaseModel
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"type:varchar(100);not null"`
	Value           string          `gorm:"type:varchar(100);not null"`
	PriceAdjustment decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductVariantModel) TableName() string {
	return "product_variants"
}

// ToDomain converts the persistence model to a domain ProductVariant.
func (m *ProductVariantModel) ToDomain() *catalog.ProductVariant {
	return &catalog.ProductVariant{
		BaseEntity:      m.BaseModel.ToDomain(),
		ProductID:       m.ProductID,
		Name:            m.Name,
		Value:           m.Value,
		PriceAdjustment: m.PriceAdjustment,
	}
}

// ProductVariantModelFromDomain creates a new persistence model from a domain ProductVariant.
func ProductVariantModelFromDomain(v *catalog.ProductVariant) *ProductVariantModel {
	m := &ProductVariantModel{
		ProductID:       v.ProductID,
		Name:            v.Name,
		Value:           v.Value,
		PriceAdjustment: v.PriceAdjustment,
	}
	m.FromDomainBaseEntity(v.BaseEntity)
	return m
}
