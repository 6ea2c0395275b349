package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductRequest carries the editable fields of a product. It is used for
// both create and update; on update InitialStock only fills counters that
// do not exist yet.
type ProductRequest struct {
	Name         string           `json:"name" binding:"required,min=1,max=200"`
	Price        decimal.Decimal  `json:"price"`
	Cost         decimal.Decimal  `json:"cost"`
	Barcode      string           `json:"barcode" binding:"max=64"`
	CategoryID   uuid.UUID        `json:"category_id" binding:"required"`
	Color        string           `json:"color" binding:"max=32"`
	Image        string           `json:"image" binding:"max=500"`
	MinStock     *int64           `json:"min_stock" binding:"omitempty,min=0"`
	InitialStock int64            `json:"initial_stock" binding:"min=0"`
	Variants     []VariantRequest `json:"variants" binding:"omitempty,dive"`
}

// VariantRequest describes one variant. ID refers to an existing variant on update.
type VariantRequest struct {
	ID              *uuid.UUID      `json:"id"`
	Name            string          `json:"name" binding:"required,max=100"`
	Value           string          `json:"value" binding:"required,max=100"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

// Details converts the request into domain product details
func (r ProductRequest) Details() catalog.ProductDetails {
	return catalog.ProductDetails{
		Name:       r.Name,
		Price:      r.Price,
		Cost:       r.Cost,
		Barcode:    r.Barcode,
		CategoryID: r.CategoryID,
		Color:      r.Color,
		Image:      r.Image,
		MinStock:   r.MinStock,
	}
}

// VariantSpecs converts the requested variants into domain specs
func (r ProductRequest) VariantSpecs() []catalog.VariantSpec {
	specs := make([]catalog.VariantSpec, len(r.Variants))
	for i, v := range r.Variants {
		specs[i] = catalog.VariantSpec{
			ID:              v.ID,
			Name:            v.Name,
			Value:           v.Value,
			PriceAdjustment: v.PriceAdjustment,
		}
	}
	return specs
}

// ProductListFilter represents filter options for listing products
type ProductListFilter struct {
	Search     string `form:"search"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	Active     *bool  `form:"active"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	Price      decimal.Decimal   `json:"price"`
	Cost       decimal.Decimal   `json:"cost"`
	Barcode    *string           `json:"barcode,omitempty"`
	CategoryID uuid.UUID         `json:"category_id"`
	Color      string            `json:"color"`
	Image      string            `json:"image"`
	MinStock   *int64            `json:"min_stock,omitempty"`
	Active     bool              `json:"active"`
	Variants   []VariantResponse `json:"variants"`
	Version    int               `json:"version"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// VariantResponse represents a product variant in API responses
type VariantResponse struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Value           string          `json:"value"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	variants := make([]VariantResponse, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = VariantResponse{
			ID:              v.ID,
			Name:            v.Name,
			Value:           v.Value,
			PriceAdjustment: v.PriceAdjustment,
		}
	}
	return ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		Cost:       p.Cost,
		Barcode:    p.Barcode,
		CategoryID: p.CategoryID,
		Color:      p.Color,
		Image:      p.Image,
		MinStock:   p.MinStock,
		Active:     p.Active,
		Variants:   variants,
		Version:    p.Version,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,min=1,max=100"`
	Color string `json:"color" binding:"max=32"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// ToCategoryResponse converts a domain category to a response DTO
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
	}
}

// POSView is the sellable catalog of one branch with its stock
type POSView struct {
	BranchID    uuid.UUID    `json:"branch_id"`
	Products    []POSProduct `json:"products"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// POSProduct is a product tile of the POS grid
type POSProduct struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Barcode    *string         `json:"barcode,omitempty"`
	CategoryID uuid.UUID       `json:"category_id"`
	Color      string          `json:"color"`
	Image      string          `json:"image"`
	Stock      int64           `json:"stock"`
	LowStock   bool            `json:"low_stock"`
	Variants   []POSVariant    `json:"variants,omitempty"`
}

// POSVariant is one variant of a POS tile with its own stock
type POSVariant struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	Value           string          `json:"value"`
	PriceAdjustment decimal.Decimal `json:"price_adjustment"`
	Stock           int64           `json:"stock"`
	LowStock        bool            `json:"low_stock"`
}

// ImageUploadRequest asks for a presigned image upload URL
type ImageUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// ImageUploadResponse carries the presigned URL the client PUTs the image to
type ImageUploadResponse struct {
	UploadURL string    `json:"upload_url"`
	ObjectKey string    `json:"object_key"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ConfirmImageRequest attaches an uploaded object to the product
type ConfirmImageRequest struct {
	ObjectKey string `json:"object_key" binding:"required,max=512"`
}
