package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// StockService runs manual stock adjustments and serves stock reads
type StockService struct {
	txScope        TransactionScope
	stockReader    inventory.StockReader
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(txScope TransactionScope, stockReader inventory.StockReader, logger *zap.Logger) *StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockService{
		txScope:     txScope,
		stockReader: stockReader,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *StockService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// ResolveSubject loads the product a mutation targets and checks that the
// variant, when given, belongs to it.
func ResolveSubject(ctx context.Context, products catalog.ProductRepository, productID uuid.UUID, variantID *uuid.UUID) (*catalog.Product, inventory.Subject, error) {
	product, err := products.FindByID(ctx, productID)
	if err != nil {
		return nil, inventory.Subject{}, err
	}
	if variantID == nil {
		return product, inventory.ProductSubject(product.ID), nil
	}
	if _, ok := product.FindVariant(*variantID); !ok {
		return nil, inventory.Subject{}, shared.NewNotFoundError("variant")
	}
	return product, inventory.VariantSubject(product.ID, *variantID), nil
}

// ApplyMovement applies one IN, OUT or SET movement for the actor. The target
// branch is the requested one (administrators, or the actor's own branch) or
// the actor's assigned branch.
func (s *StockService) ApplyMovement(ctx context.Context, actor identity.ActorContext, req ApplyMovementRequest) (_ *ApplyMovementResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "StockService", "ApplyMovement",
		attribute.String("movement.kind", req.Kind),
		attribute.Int64("movement.quantity", req.Quantity),
	)
	defer func() { telemetry.EndSpan(span, err) }()

	branchID, err := actor.ResolveBranch(req.BranchID)
	if err != nil {
		return nil, err
	}

	cmd := inventory.MovementCommand{
		Subject:  inventory.Subject{ProductID: req.ProductID, VariantID: req.VariantID},
		BranchID: branchID,
		Kind:     inventory.MovementKind(req.Kind),
		Quantity: req.Quantity,
		Reason:   req.Reason,
		ActorID:  actor.UserID,
	}
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var result *inventory.MovementResult
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.BranchRepo().FindByID(ctx, branchID); err != nil {
			return err
		}
		_, subject, err := ResolveSubject(ctx, repos.ProductRepo(), req.ProductID, req.VariantID)
		if err != nil {
			return err
		}
		cmd.Subject = subject

		result, err = inventory.ApplyMovement(ctx, repos.StockRepo(), cmd)
		return err
	})
	if err != nil {
		s.logMutationFailure(cmd, err)
		return nil, err
	}

	s.publish(ctx, result.Event())
	return &ApplyMovementResponse{
		Counter:  ToStockCounterResponse(result.Counter),
		Movement: ToMovementResponse(result.Movement),
	}, nil
}

// ListStock returns the counters of a branch. Non-administrators only see
// their own branch.
func (s *StockService) ListStock(ctx context.Context, actor identity.ActorContext, filter StockListFilter) ([]StockCounterResponse, error) {
	requested, err := shared.ParseOptionalID(filter.BranchID, "branch ID")
	if err != nil {
		return nil, err
	}
	branchID, err := actor.ResolveBranch(requested)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, 0, len(filter.ProductIDs))
	for _, raw := range filter.ProductIDs {
		id, err := shared.ParseOptionalID(raw, "product ID")
		if err != nil {
			return nil, err
		}
		if id != nil {
			productIDs = append(productIDs, *id)
		}
	}

	counters, err := s.stockReader.ListBranchCounters(ctx, branchID, productIDs)
	if err != nil {
		return nil, err
	}
	out := make([]StockCounterResponse, len(counters))
	for i := range counters {
		out[i] = ToStockCounterResponse(&counters[i])
	}
	return out, nil
}

// ListMovements returns one page of the movement history. Administrators may
// query every branch by leaving the branch empty; everyone else is scoped to
// their own branch.
func (s *StockService) ListMovements(ctx context.Context, actor identity.ActorContext, filter MovementListFilter) (shared.Paginated[MovementResponse], error) {
	var empty shared.Paginated[MovementResponse]
	if err := actor.RequireAuthenticated(); err != nil {
		return empty, err
	}

	query := inventory.MovementFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
		}.Normalize(),
		Kind: inventory.MovementKind(filter.Kind),
		From: filter.From,
		To:   filter.To,
	}
	if query.Kind != "" && !query.Kind.IsValid() {
		return empty, shared.NewValidationError("invalid movement kind %q", filter.Kind)
	}

	var err error
	if query.ProductID, err = shared.ParseOptionalID(filter.ProductID, "product ID"); err != nil {
		return empty, err
	}
	if query.VariantID, err = shared.ParseOptionalID(filter.VariantID, "variant ID"); err != nil {
		return empty, err
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

	movements, total, err := s.stockReader.ListMovements(ctx, query)
	if err != nil {
		return empty, err
	}
	items := make([]MovementResponse, len(movements))
	for i := range movements {
		items[i] = ToMovementResponse(&movements[i])
	}
	return shared.NewPaginated(items, total, query.Page, query.PageSize), nil
}

// publish sends events after commit; failures are logged, never returned
func (s *StockService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish stock events", zap.Error(err))
	}
}

func (s *StockService) logMutationFailure(cmd inventory.MovementCommand, err error) {
	if de, ok := shared.AsDomainError(err); ok {
		s.logger.Debug("stock movement rejected",
			zap.String("product_id", cmd.Subject.ProductID.String()),
			zap.String("branch_id", cmd.BranchID.String()),
			zap.String("kind", cmd.Kind.String()),
			zap.String("code", de.Code),
		)
		return
	}
	s.logger.Error("stock movement failed",
		zap.String("product_id", cmd.Subject.ProductID.String()),
		zap.String("branch_id", cmd.BranchID.String()),
		zap.Error(err),
	)
}
