package trade

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a sale was paid
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentTransfer PaymentMethod = "TRANSFER"
)

// IsValid returns true for known payment methods
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// MaxNotesLength bounds the free-text notes of a sale
const MaxNotesLength = 500

// Sale is a completed POS ticket. It is written once, together with the stock
// decrements of its lines, and never modified afterwards.
type Sale struct {
	shared.BaseAggregateRoot
	UserID        uuid.UUID
	BranchID      uuid.UUID
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	CashAmount    decimal.NullDecimal
	ChangeAmount  decimal.NullDecimal
	TableService  bool
	TableNumber   *string
	Notes         *string
	Items         []SaleItem
}

// SaleItem is one line of a sale with the unit price captured at checkout
type SaleItem struct {
	ID        uuid.UUID
	SaleID    uuid.UUID
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int64
	Price     decimal.Decimal
	Subtotal  decimal.Decimal
}

// IsVariant reports whether the line sold a product variant
func (i *SaleItem) IsVariant() bool {
	return i.VariantID != nil
}

// LineItem is one requested line of a checkout
type LineItem struct {
	ProductID uuid.UUID
	VariantID *uuid.UUID
	Quantity  int64
	Price     decimal.Decimal
}

// Validate checks a single line; index is the zero-based line position
func (l LineItem) Validate(index int) error {
	if l.ProductID == uuid.Nil {
		return shared.NewValidationError("item %d: product is required", index+1)
	}
	if l.VariantID != nil && *l.VariantID == uuid.Nil {
		return shared.NewValidationError("item %d: variant ID cannot be empty", index+1)
	}
	if l.Quantity <= 0 {
		return shared.NewValidationError("item %d: quantity must be positive", index+1)
	}
	if !l.Price.IsPositive() {
		return shared.NewValidationError("item %d: price must be positive", index+1)
	}
	return nil
}

// Checkout is the payload of an order placement
type Checkout struct {
	Items         []LineItem
	Total         decimal.Decimal
	PaymentMethod PaymentMethod
	CashAmount    *decimal.Decimal
	TableService  bool
	TableNumber   string
	Notes         string
}

// Validate checks the payment rules and every line
func (c Checkout) Validate() error {
	if len(c.Items) == 0 {
		return shared.NewValidationError("a sale needs at least one item")
	}
	for i, item := range c.Items {
		if err := item.Validate(i); err != nil {
			return err
		}
	}
	if !c.Total.IsPositive() {
		return shared.NewValidationError("total must be positive")
	}
	if !c.PaymentMethod.IsValid() {
		return shared.NewValidationError("invalid payment method %q", string(c.PaymentMethod))
	}
	if c.PaymentMethod == PaymentCash {
		if c.CashAmount == nil || !c.CashAmount.IsPositive() {
			return shared.NewValidationError("cash amount is required for cash payments")
		}
		if c.CashAmount.LessThan(c.Total) {
			return shared.NewValidationError("cash amount %s does not cover total %s",
				c.CashAmount.StringFixed(2), c.Total.StringFixed(2))
		}
	}
	if c.TableService && strings.TrimSpace(c.TableNumber) == "" {
		return shared.NewValidationError("table number is required for table service")
	}
	if utf8.RuneCountInString(c.Notes) > MaxNotesLength {
		return shared.NewValidationError("notes cannot exceed %d characters", MaxNotesLength)
	}
	return nil
}

// NewSale builds the sale of a validated checkout made by userID at branchID.
// Change is computed here; cash payments get cash minus total.
func NewSale(userID, branchID uuid.UUID, c Checkout) (*Sale, error) {
	if userID == uuid.Nil {
		return nil, shared.NewValidationError("seller is required")
	}
	if branchID == uuid.Nil {
		return nil, shared.NewValidationError("branch ID is required")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		BranchID:          branchID,
		Total:             c.Total,
		PaymentMethod:     c.PaymentMethod,
		TableService:      c.TableService,
	}
	if c.PaymentMethod == PaymentCash {
		sale.CashAmount = decimal.NewNullDecimal(*c.CashAmount)
		sale.ChangeAmount = decimal.NewNullDecimal(c.CashAmount.Sub(c.Total))
	}
	if c.TableService {
		table := strings.TrimSpace(c.TableNumber)
		sale.TableNumber = &table
	}
	if notes := strings.TrimSpace(c.Notes); notes != "" {
		sale.Notes = &notes
	}

	sale.Items = make([]SaleItem, 0, len(c.Items))
	for _, line := range c.Items {
		sale.Items = append(sale.Items, SaleItem{
			ID:        uuid.New(),
			SaleID:    sale.ID,
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Subtotal:  line.Price.Mul(decimal.NewFromInt(line.Quantity)),
		})
	}

	sale.Record(NewSaleCompletedEvent(sale))
	return sale, nil
}

// ItemsSubtotal sums the line subtotals
func (s *Sale) ItemsSubtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range s.Items {
		sum = sum.Add(item.Subtotal)
	}
	return sum
}

// MovementReason is the stock movement reason recorded for a line of the sale
func (s *Sale) MovementReason(item *SaleItem) string {
	if item.IsVariant() {
		return fmt.Sprintf("Sale #%s (variant)", s.ID)
	}
	return fmt.Sprintf("Sale #%s", s.ID)
}

// SaleFilter narrows sale listings
type SaleFilter struct {
	shared.Filter
	BranchID *uuid.UUID
	UserID   *uuid.UUID
}
