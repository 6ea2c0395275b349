package trade

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appinv "github.com/pos/backend/internal/application/inventory"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/trade"
	"github.com/pos/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SaleService places POS orders and serves the sales history
type SaleService struct {
	txScope        appinv.TransactionScope
	saleRepo       trade.SaleRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(txScope appinv.TransactionScope, saleRepo trade.SaleRepository, logger *zap.Logger) *SaleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SaleService{
		txScope:  txScope,
		saleRepo: saleRepo,
		logger:   logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// PlaceOrder records a sale and decrements the stock of every line in one
// transaction. Lines are applied in the given order; the first failing line
// aborts the whole order and nothing is persisted.
func (s *SaleService) PlaceOrder(ctx context.Context, actor identity.ActorContext, req PlaceOrderRequest) (_ *SaleResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "SaleService", "PlaceOrder",
		attribute.Int("order.items", len(req.Items)),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	branchID, err := actor.ResolveBranch(req.BranchID)
	if err != nil {
		return nil, err
	}

	sale, err := trade.NewSale(actor.UserID, branchID, req.Checkout())
	if err != nil {
		return nil, err
	}

	var events []shared.DomainEvent
	err = s.txScope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if _, err := repos.BranchRepo().FindByID(ctx, branchID); err != nil {
			return err
		}

		for i := range sale.Items {
			item := &sale.Items[i]
			product, subject, err := appinv.ResolveSubject(ctx, repos.ProductRepo(), item.ProductID, item.VariantID)
			if err != nil {
				return lineError(i, err)
			}
			if !product.Active {
				return lineError(i, shared.NewValidationError("product %s is inactive", product.Name))
			}
			result, err := inventory.ApplyMovement(ctx, repos.StockRepo(), inventory.MovementCommand{
				Subject:  subject,
				BranchID: branchID,
				Kind:     inventory.MovementOut,
				Quantity: item.Quantity,
				Reason:   sale.MovementReason(item),
				ActorID:  actor.UserID,
			})
			if err != nil {
				return lineError(i, err)
			}
			events = append(events, result.Event())
		}

		return repos.SaleRepo().Create(ctx, sale)
	})
	if err != nil {
		s.logger.Info("order rejected",
			zap.String("sale_id", sale.ID.String()),
			zap.String("branch_id", branchID.String()),
			zap.Int("items", len(sale.Items)),
			zap.Error(err),
		)
		return nil, err
	}

	if !sale.Total.Equal(sale.ItemsSubtotal()) {
		s.logger.Warn("sale total differs from the sum of its lines",
			zap.String("sale_id", sale.ID.String()),
			zap.String("total", sale.Total.String()),
			zap.String("lines", sale.ItemsSubtotal().String()),
		)
	}

	events = append(events, sale.PullEvents()...)
	s.publish(ctx, events)

	response := ToSaleResponse(sale)
	return &response, nil
}

// GetByID returns one sale with its items. Non-administrators only see the
// sales of their own branch.
func (s *SaleService) GetByID(ctx context.Context, actor identity.ActorContext, id uuid.UUID) (*SaleResponse, error) {
	if err := actor.RequireAuthenticated(); err != nil {
		return nil, err
	}
	sale, err := s.saleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && (actor.BranchID == nil || *actor.BranchID != sale.BranchID) {
		return nil, shared.NewNotFoundError("sale")
	}
	response := ToSaleResponse(sale)
	return &response, nil
}

// List returns one page of sales. Administrators see every branch unless
// they filter; everyone else sees their own branch.
func (s *SaleService) List(ctx context.Context, actor identity.ActorContext, filter SaleListFilter) (shared.Paginated[SaleResponse], error) {
	var empty shared.Paginated[SaleResponse]
	if err := actor.RequireAuthenticated(); err != nil {
		return empty, err
	}

	query := trade.SaleFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
		}.Normalize(),
	}

	requested, err := shared.ParseOptionalID(filter.BranchID, "branch ID")
	if err != nil {
		return empty, err
	}
	if requested != nil || !actor.IsAdmin() {
		branchID, err := actor.ResolveBranch(requested)
		if err != nil {
			return empty, err
		}
		query.BranchID = &branchID
	}
	if query.UserID, err = shared.ParseOptionalID(filter.UserID, "user ID"); err != nil {
		return empty, err
	}

	sales, total, err := s.saleRepo.List(ctx, query)
	if err != nil {
		return empty, err
	}
	items := make([]SaleResponse, len(sales))
	for i := range sales {
		items[i] = ToSaleResponse(&sales[i])
	}
	return shared.NewPaginated(items, total, query.Page, query.PageSize), nil
}

func (s *SaleService) publish(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish sale events", zap.Error(err))
	}
}

// lineError prefixes domain errors with the 1-based line number so the
// cashier knows which line failed. Other errors pass through untouched.
func lineError(index int, err error) error {
	if de, ok := shared.AsDomainError(err); ok {
		return shared.NewDomainError(de.Code, fmt.Sprintf("item %d: %s", index+1, de.Message))
	}
	return err
}
