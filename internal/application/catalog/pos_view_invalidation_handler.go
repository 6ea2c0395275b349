package catalog

import (
	"context"

	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// POSViewInvalidationHandler drops cached POS views when stock or the catalog changes.
// A stock change only affects its branch; a product change affects all of them.
type POSViewInvalidationHandler struct {
	cache  POSViewCache
	logger *zap.Logger
}

// NewPOSViewInvalidationHandler creates a new handler
func NewPOSViewInvalidationHandler(cache POSViewCache, logger *zap.Logger) *POSViewInvalidationHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &POSViewInvalidationHandler{cache: cache, logger: logger}
}

// EventTypes returns the event types this handler is interested in
func (h *POSViewInvalidationHandler) EventTypes() []string {
	return []string{inventory.EventTypeStockChanged, catalog.EventTypeProductChanged}
}

// Handle invalidates the views affected by event
func (h *POSViewInvalidationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *inventory.StockChangedEvent:
		if err := h.cache.Invalidate(ctx, e.BranchID); err != nil {
			h.logger.Warn("failed to invalidate pos view",
				zap.String("branch_id", e.BranchID.String()),
				zap.Error(err),
			)
			return err
		}
	case *catalog.ProductChangedEvent:
		if err := h.cache.InvalidateAll(ctx); err != nil {
			h.logger.Warn("failed to invalidate pos views",
				zap.String("product_id", e.ProductID.String()),
				zap.Error(err),
			)
			return err
		}
	default:
		h.logger.Debug("ignoring event", zap.String("event_type", event.EventType()))
	}
	return nil
}
