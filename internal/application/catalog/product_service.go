package catalog

import (
	"context"

	"github.com/google/uuid"
	appinv "github.com/pos/backend/internal/application/inventory"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles product administration and keeps the stock counters
// of every branch in step with the catalog.
type ProductService struct {
	txScope        appinv.TransactionScope
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(txScope appinv.TransactionScope, productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		txScope:     txScope,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create inserts a product with its variants and seeds a counter at
// InitialStock for the product and each variant in every branch.
func (s *ProductService) Create(ctx context.Context, actor identity.ActorContext, req ProductRequest) (*ProductResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	if req.InitialStock < 0 {
		return nil, shared.NewValidationError("initial stock cannot be negative")
	}

	product, err := catalog.NewProduct(req.Details(), req.VariantSpecs())
	if err != nil {
		return nil, err
	}

	var seeded int64
	err = s.txScope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if _, err := repos.CategoryRepo().FindByID(ctx, product.CategoryID); err != nil {
			return err
		}
		if err := repos.ProductRepo().Create(ctx, product); err != nil {
			return err
		}

		subjects := []inventory.Subject{inventory.ProductSubject(product.ID)}
		for _, v := range product.Variants {
			subjects = append(subjects, inventory.VariantSubject(product.ID, v.ID))
		}
		seeded, err = seedCounters(ctx, repos, subjects, req.InitialStock)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", product.ID.String()),
		zap.Int("variants", len(product.Variants)),
		zap.Int64("counters", seeded),
	)
	s.publish(ctx, catalog.NewProductChangedEvent(product, catalog.ProductCreated, seeded))

	response := ToProductResponse(product)
	return &response, nil
}

// Update replaces the product's attributes and reconciles its variants.
// Removed and renamed variants lose their counters; renamed and new variants
// get fresh counters at InitialStock. Existing counters of the product and of
// unchanged variants are never overwritten, only missing ones are filled.
func (s *ProductService) Update(ctx context.Context, actor identity.ActorContext, id uuid.UUID, req ProductRequest) (*ProductResponse, error) {
	if err := actor.RequireAdmin(); err != nil {
		return nil, err
	}
	if req.InitialStock < 0 {
		return nil, shared.NewValidationError("initial stock cannot be negative")
	}

	var (
		product *catalog.Product
		seeded  int64
	)
	err := s.txScope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		var err error
		product, err = repos.ProductRepo().FindByID(ctx, id)
		if err != nil {
			return err
		}
		if err := product.Update(req.Details()); err != nil {
			return err
		}
		if _, err := repos.CategoryRepo().FindByID(ctx, product.CategoryID); err != nil {
			return err
		}

		plan, err := product.PlanVariants(req.VariantSpecs())
		if err != nil {
			return err
		}

		stale := append([]uuid.UUID{}, plan.Removed...)
		for _, v := range plan.Changed {
			stale = append(stale, v.ID)
		}
		if err := repos.StockRepo().DeleteVariantCounters(ctx, stale); err != nil {
			return err
		}
		if err := repos.ProductRepo().DeleteVariants(ctx, plan.Removed); err != nil {
			return err
		}

		saved := append(append([]*catalog.ProductVariant{}, plan.Retained...), plan.Regenerated()...)
		if err := repos.ProductRepo().SaveVariants(ctx, saved); err != nil {
			return err
		}
		if err := repos.ProductRepo().Update(ctx, product); err != nil {
			return err
		}
		product.ApplyVariantPlan(plan)

		subjects := []inventory.Subject{inventory.ProductSubject(product.ID)}
		for _, v := range product.Variants {
			subjects = append(subjects, inventory.VariantSubject(product.ID, v.ID))
		}
		seeded, err = seedCounters(ctx, repos, subjects, req.InitialStock)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product updated",
		zap.String("product_id", product.ID.String()),
		zap.Int("variants", len(product.Variants)),
		zap.Int64("counters_seeded", seeded),
	)
	s.publish(ctx, catalog.NewProductChangedEvent(product, catalog.ProductUpdated, seeded))

	response := ToProductResponse(product)
	return &response, nil
}

// Delete soft-deletes a product. Its counters and history are kept.
func (s *ProductService) Delete(ctx context.Context, actor identity.ActorContext, id uuid.UUID) error {
	return s.setActive(ctx, actor, id, false)
}

// Restore reactivates a soft-deleted product
func (s *ProductService) Restore(ctx context.Context, actor identity.ActorContext, id uuid.UUID) error {
	return s.setActive(ctx, actor, id, true)
}

func (s *ProductService) setActive(ctx context.Context, actor identity.ActorContext, id uuid.UUID, active bool) error {
	if err := actor.RequireAdmin(); err != nil {
		return err
	}
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.SetActive(ctx, id, active); err != nil {
		return err
	}

	change := catalog.ProductDeactivated
	product.Deactivate()
	if active {
		change = catalog.ProductRestored
		product.Restore()
	}
	s.publish(ctx, catalog.NewProductChangedEvent(product, change, 0))
	return nil
}

// GetByID returns one product with its variants
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List returns one page of products
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) (shared.Paginated[ProductResponse], error) {
	query := catalog.ProductFilter{
		Filter: shared.Filter{
			Page:     filter.Page,
			PageSize: filter.PageSize,
			OrderBy:  filter.OrderBy,
			OrderDir: filter.OrderDir,
			Search:   filter.Search,
		}.Normalize(),
		Active: filter.Active,
	}
	categoryID, err := shared.ParseOptionalID(filter.CategoryID, "category ID")
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	query.CategoryID = categoryID

	products, total, err := s.productRepo.List(ctx, query)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = ToProductResponse(&products[i])
	}
	return shared.NewPaginated(items, total, query.Page, query.PageSize), nil
}

func (s *ProductService) publish(ctx context.Context, event shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish product event",
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}
}

// seedCounters creates the missing counters of subjects in every branch at
// stock. Existing counters are left untouched.
func seedCounters(ctx context.Context, repos appinv.TransactionalRepositories, subjects []inventory.Subject, stock int64) (int64, error) {
	branchIDs, err := repos.BranchRepo().ListIDs(ctx)
	if err != nil {
		return 0, err
	}
	counters := make([]*inventory.StockCounter, 0, len(branchIDs)*len(subjects))
	for _, branchID := range branchIDs {
		for _, subject := range subjects {
			counter, err := inventory.NewStockCounter(subject, branchID, stock)
			if err != nil {
				return 0, err
			}
			counters = append(counters, counter)
		}
	}
	return repos.StockRepo().SeedCounters(ctx, counters)
}
