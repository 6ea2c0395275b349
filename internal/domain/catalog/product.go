package catalog

import (
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable item. Its stock lives in per-branch counters of the
// inventory context, never on the product row itself.
type Product struct {
	shared.BaseAggregateRoot
	Name       string
	Price      decimal.Decimal
	Cost       decimal.Decimal
	Barcode    *string
	CategoryID uuid.UUID
	Color      string
	Image      string
	MinStock   *int64
	Active     bool
	Variants   []ProductVariant
}

// ProductDetails are the editable attributes of a product
type ProductDetails struct {
	Name       string
	Price      decimal.Decimal
	Cost       decimal.Decimal
	Barcode    string
	CategoryID uuid.UUID
	Color      string
	Image      string
	MinStock   *int64
}

// Validate checks the details of a product
func (d ProductDetails) Validate() error {
	name := strings.TrimSpace(d.Name)
	if name == "" {
		return shared.NewValidationError("product name is required")
	}
	if utf8.RuneCountInString(name) > 200 {
		return shared.NewValidationError("product name cannot exceed 200 characters")
	}
	if !d.Price.IsPositive() {
		return shared.NewValidationError("price must be positive")
	}
	if !d.Cost.IsPositive() {
		return shared.NewValidationError("cost must be positive")
	}
	if d.CategoryID == uuid.Nil {
		return shared.NewValidationError("category is required")
	}
	if len(d.Barcode) > 64 {
		return shared.NewValidationError("barcode cannot exceed 64 characters")
	}
	if d.MinStock != nil && *d.MinStock < 0 {
		return shared.NewValidationError("minimum stock cannot be negative")
	}
	return nil
}

// NewProduct creates an active product with the given variants
func NewProduct(details ProductDetails, variants []VariantSpec) (*Product, error) {
	if err := details.Validate(); err != nil {
		return nil, err
	}
	if err := validateVariantSpecs(variants); err != nil {
		return nil, err
	}

	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Active:            true,
	}
	p.apply(details)
	for _, spec := range variants {
		p.Variants = append(p.Variants, *newVariant(p.ID, spec))
	}
	return p, nil
}

// Update replaces the editable attributes
func (p *Product) Update(details ProductDetails) error {
	if err := details.Validate(); err != nil {
		return err
	}
	p.apply(details)
	p.IncrementVersion()
	return nil
}

func (p *Product) apply(d ProductDetails) {
	p.Name = strings.TrimSpace(d.Name)
	p.Price = d.Price
	p.Cost = d.Cost
	p.CategoryID = d.CategoryID
	p.Color = d.Color
	p.Image = d.Image
	p.MinStock = d.MinStock
	p.Barcode = nil
	if barcode := strings.TrimSpace(d.Barcode); barcode != "" {
		p.Barcode = &barcode
	}
}

// Deactivate soft-deletes the product
func (p *Product) Deactivate() {
	p.Active = false
	p.Touch()
}

// Restore reactivates a soft-deleted product
func (p *Product) Restore() {
	p.Active = true
	p.Touch()
}

// SetImage replaces the image URL of the product
func (p *Product) SetImage(url string) {
	p.Image = strings.TrimSpace(url)
	p.Touch()
}

// FindVariant returns the variant with the given ID, if it belongs to p
func (p *Product) FindVariant(id uuid.UUID) (*ProductVariant, bool) {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i], true
		}
	}
	return nil, false
}

// VariantIDs returns the IDs of all variants
func (p *Product) VariantIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(p.Variants))
	for _, v := range p.Variants {
		ids = append(ids, v.ID)
	}
	return ids
}

// IsLowStock reports whether stock is under the product's minimum.
// Products without a configured minimum use DefaultMinStock.
func (p *Product) IsLowStock(stock int64) bool {
	threshold := DefaultMinStock
	if p.MinStock != nil {
		threshold = *p.MinStock
	}
	return stock < threshold
}

// DefaultMinStock is the low-stock threshold of products without their own
const DefaultMinStock int64 = 10

// ProductFilter narrows product listings
type ProductFilter struct {
	shared.Filter
	CategoryID *uuid.UUID
	Active     *bool
}
