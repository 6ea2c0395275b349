package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Alert types
const (
	AlertTypeLowStock   = "low_stock"
	AlertTypeOutOfStock = "out_of_stock"
)

// ProductLookup loads the product a counter belongs to
type ProductLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
}

// StockBelowThresholdHandler handles StockChanged events and raises an alert
// when a decrease leaves a counter under the product's minimum stock
type StockBelowThresholdHandler struct {
	logger   *zap.Logger
	products ProductLookup
	notifier StockAlertNotifier
}

// StockAlertNotifier is the interface for sending stock alerts
type StockAlertNotifier interface {
	// SendAlert sends a stock alert notification
	SendAlert(ctx context.Context, alert StockAlert) error
}

// StockAlert represents a stock level alert
type StockAlert struct {
	ProductID    string  `json:"product_id"`
	ProductName  string  `json:"product_name"`
	VariantID    *string `json:"variant_id,omitempty"`
	BranchID     string  `json:"branch_id"`
	CurrentStock int64   `json:"current_stock"`
	MinimumStock int64   `json:"minimum_stock"`
	AlertType    string  `json:"alert_type"`
}

// NewStockBelowThresholdHandler creates a new handler for stock changed events
func NewStockBelowThresholdHandler(logger *zap.Logger, products ProductLookup) *StockBelowThresholdHandler {
	return &StockBelowThresholdHandler{
		logger:   logger,
		products: products,
	}
}

// WithNotifier sets the notifier for sending alerts
func (h *StockBelowThresholdHandler) WithNotifier(notifier StockAlertNotifier) *StockBelowThresholdHandler {
	h.notifier = notifier
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *StockBelowThresholdHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockChanged}
}

// Handle processes a StockChangedEvent
func (h *StockBelowThresholdHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	changed, ok := event.(*inventory.StockChangedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", inventory.EventTypeStockChanged),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			inventory.EventTypeStockChanged, event.EventType())
	}

	// Only decreases can cross the threshold downwards
	if changed.StockAfter >= changed.StockBefore {
		return nil
	}

	product, err := h.products.FindByID(ctx, changed.ProductID)
	if err != nil {
		h.logger.Debug("product lookup failed, skipping stock alert",
			zap.String("product_id", changed.ProductID.String()),
			zap.Error(err),
		)
		return nil
	}
	if !product.IsLowStock(changed.StockAfter) {
		return nil
	}

	minimum := catalog.DefaultMinStock
	if product.MinStock != nil {
		minimum = *product.MinStock
	}
	alert := StockAlert{
		ProductID:    product.ID.String(),
		ProductName:  product.Name,
		BranchID:     changed.BranchID.String(),
		CurrentStock: changed.StockAfter,
		MinimumStock: minimum,
		AlertType:    AlertTypeLowStock,
	}
	if changed.StockAfter == 0 {
		alert.AlertType = AlertTypeOutOfStock
	}
	if changed.VariantID != nil {
		id := changed.VariantID.String()
		alert.VariantID = &id
	}

	h.logger.Warn("stock below threshold detected",
		zap.String("product_id", alert.ProductID),
		zap.String("branch_id", alert.BranchID),
		zap.Int64("current_stock", alert.CurrentStock),
		zap.Int64("minimum_stock", alert.MinimumStock),
	)

	if h.notifier != nil {
		if err := h.notifier.SendAlert(ctx, alert); err != nil {
			// Notification failure doesn't fail the event handling
			h.logger.Error("failed to send stock alert notification",
				zap.String("product_id", alert.ProductID),
				zap.Error(err),
			)
		}
	}
	return nil
}

// Ensure StockBelowThresholdHandler implements shared.EventHandler
var _ shared.EventHandler = (*StockBelowThresholdHandler)(nil)

// LoggingStockAlertNotifier is a simple notifier that logs alerts
type LoggingStockAlertNotifier struct {
	logger *zap.Logger
}

// NewLoggingStockAlertNotifier creates a new logging notifier
func NewLoggingStockAlertNotifier(logger *zap.Logger) *LoggingStockAlertNotifier {
	return &LoggingStockAlertNotifier{
		logger: logger,
	}
}

// SendAlert logs the stock alert
func (n *LoggingStockAlertNotifier) SendAlert(ctx context.Context, alert StockAlert) error {
	n.logger.Warn("STOCK ALERT",
		zap.String("type", alert.AlertType),
		zap.String("product", alert.ProductName),
		zap.String("branch_id", alert.BranchID),
		zap.Int64("current_stock", alert.CurrentStock),
		zap.Int64("minimum_stock", alert.MinimumStock),
	)
	return nil
}

// Ensure LoggingStockAlertNotifier implements StockAlertNotifier
var _ StockAlertNotifier = (*LoggingStockAlertNotifier)(nil)
