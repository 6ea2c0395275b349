package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// POSViewCache stores rendered POS views per branch
type POSViewCache interface {
	// Get returns the cached view of a branch; found is false on a miss
	Get(ctx context.Context, branchID uuid.UUID) (view *POSView, found bool, err error)
	// Set stores the view of its branch
	Set(ctx context.Context, view *POSView) error
	// Invalidate drops the views of the given branches
	Invalidate(ctx context.Context, branchIDs ...uuid.UUID) error
	// InvalidateAll drops every cached view
	InvalidateAll(ctx context.Context) error
}

// posViewPageSize is the page size used to walk the active catalog
const posViewPageSize = 100

// POSViewService builds the sellable catalog of a branch with its stock
type POSViewService struct {
	productRepo catalog.ProductRepository
	stockReader inventory.StockReader
	cache       POSViewCache
	logger      *zap.Logger
}

// NewPOSViewService creates a new POSViewService. cache may be nil.
func NewPOSViewService(productRepo catalog.ProductRepository, stockReader inventory.StockReader, cache POSViewCache, logger *zap.Logger) *POSViewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &POSViewService{
		productRepo: productRepo,
		stockReader: stockReader,
		cache:       cache,
		logger:      logger,
	}
}

// Get returns the POS view of the requested branch, or of the actor's own
// branch when none is requested. Cache failures fall back to the database.
func (s *POSViewService) Get(ctx context.Context, actor identity.ActorContext, requested *uuid.UUID) (*POSView, error) {
	branchID, err := actor.ResolveBranch(requested)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		view, found, err := s.cache.Get(ctx, branchID)
		if err != nil {
			s.logger.Warn("pos view cache read failed", zap.String("branch_id", branchID.String()), zap.Error(err))
		} else if found {
			return view, nil
		}
	}

	view, err := s.build(ctx, branchID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, view); err != nil {
			s.logger.Warn("pos view cache write failed", zap.String("branch_id", branchID.String()), zap.Error(err))
		}
	}
	return view, nil
}

func (s *POSViewService) build(ctx context.Context, branchID uuid.UUID) (*POSView, error) {
	products, err := s.activeProducts(ctx)
	if err != nil {
		return nil, err
	}
	counters, err := s.stockReader.ListBranchCounters(ctx, branchID, nil)
	if err != nil {
		return nil, err
	}
	stock := make(map[uuid.UUID]int64, len(counters))
	for _, c := range counters {
		stock[c.SubjectID] = c.Stock
	}

	view := &POSView{
		BranchID:    branchID,
		Products:    make([]POSProduct, 0, len(products)),
		GeneratedAt: time.Now(),
	}
	for i := range products {
		p := &products[i]
		tile := POSProduct{
			ID:         p.ID,
			Name:       p.Name,
			Price:      p.Price,
			Barcode:    p.Barcode,
			CategoryID: p.CategoryID,
			Color:      p.Color,
			Image:      p.Image,
			Stock:      stock[p.ID],
			LowStock:   p.IsLowStock(stock[p.ID]),
		}
		for _, v := range p.Variants {
			tile.Variants = append(tile.Variants, POSVariant{
				ID:              v.ID,
				Name:            v.Name,
				Value:           v.Value,
				PriceAdjustment: v.PriceAdjustment,
				Stock:           stock[v.ID],
				LowStock:        p.IsLowStock(stock[v.ID]),
			})
		}
		view.Products = append(view.Products, tile)
	}
	return view, nil
}

func (s *POSViewService) activeProducts(ctx context.Context) ([]catalog.Product, error) {
	active := true
	var all []catalog.Product
	for page := 1; ; page++ {
		batch, total, err := s.productRepo.List(ctx, catalog.ProductFilter{
			Filter: shared.Filter{Page: page, PageSize: posViewPageSize, OrderBy: "name", OrderDir: "asc"},
			Active: &active,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < posViewPageSize || int64(len(all)) >= total {
			return all, nil
		}
	}
}
