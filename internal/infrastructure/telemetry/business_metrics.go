package telemetry

import (
	"context"

	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/trade"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Business metric names.
const (
	MetricStockMovements = "pos.stock.movements"
	MetricStockUnits     = "pos.stock.units"
	MetricSales          = "pos.sales"
	MetricSalesRevenue   = "pos.sales.revenue"
)

// BusinessMetrics records committed stock movements and sales. It is
// subscribed to the event bus, so rolled back work is never counted.
type BusinessMetrics struct {
	movements metric.Int64Counter
	units     metric.Int64Counter
	sales     metric.Int64Counter
	revenue   metric.Float64Counter
}

// NewBusinessMetrics creates the instruments on meter
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	movements, err := meter.Int64Counter(MetricStockMovements,
		metric.WithDescription("Committed stock movements"),
		metric.WithUnit("{movement}"),
	)
	if err != nil {
		return nil, err
	}
	units, err := meter.Int64Counter(MetricStockUnits,
		metric.WithDescription("Units moved by committed stock movements"),
		metric.WithUnit("{unit}"),
	)
	if err != nil {
		return nil, err
	}
	sales, err := meter.Int64Counter(MetricSales,
		metric.WithDescription("Completed sales"),
		metric.WithUnit("{sale}"),
	)
	if err != nil {
		return nil, err
	}
	revenue, err := meter.Float64Counter(MetricSalesRevenue,
		metric.WithDescription("Revenue of completed sales"),
	)
	if err != nil {
		return nil, err
	}
	return &BusinessMetrics{
		movements: movements,
		units:     units,
		sales:     sales,
		revenue:   revenue,
	}, nil
}

// EventTypes returns the event types this handler is interested in
func (m *BusinessMetrics) EventTypes() []string {
	return []string{inventory.EventTypeStockChanged, trade.EventTypeSaleCompleted}
}

// Handle records one event. Unknown events are ignored.
func (m *BusinessMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *inventory.StockChangedEvent:
		attrs := metric.WithAttributes(
			attribute.String("kind", string(e.Kind)),
			attribute.String("branch_id", e.BranchID.String()),
		)
		m.movements.Add(ctx, 1, attrs)
		m.units.Add(ctx, e.Quantity, attrs)
	case *trade.SaleCompletedEvent:
		attrs := metric.WithAttributes(
			attribute.String("payment_method", string(e.PaymentMethod)),
			attribute.String("branch_id", e.BranchID.String()),
		)
		m.sales.Add(ctx, 1, attrs)
		m.revenue.Add(ctx, e.Total.InexactFloat64(), attrs)
	}
	return nil
}

// Ensure BusinessMetrics implements shared.EventHandler
var _ shared.EventHandler = (*BusinessMetrics)(nil)
