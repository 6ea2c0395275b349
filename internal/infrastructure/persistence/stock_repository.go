package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// seedBatchSize bounds the rows per INSERT when seeding counters
const seedBatchSize = 200

// GormStockRepository implements inventory.StockRepository using GORM.
// Mutating methods must run on a transaction handle (see GormTransactionScope)
// for the row lock taken by EnsureCounter to mean anything.
type GormStockRepository struct {
	db *gorm.DB
}

// NewGormStockRepository creates a new GormStockRepository
func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

var subjectBranchConflict = clause.OnConflict{
	Columns:   []clause.Column{{Name: "subject_id"}, {Name: "branch_id"}},
	DoNothing: true,
}

// GetCounter returns the counter of subject at branch without locking it
func (r *GormStockRepository) GetCounter(ctx context.Context, subject inventory.Subject, branchID uuid.UUID) (*inventory.StockCounter, error) {
	var model models.StockCounterModel
	if err := r.db.WithContext(ctx).
		Where("subject_id = ? AND branch_id = ?", subject.Key(), branchID).
		First(&model).Error; err != nil {
		return nil, notFound(err, "stock counter")
	}
	return model.ToDomain(), nil
}

// EnsureCounter inserts a zero counter unless one exists and then reads the
// row with SELECT ... FOR UPDATE. Of two concurrent callers the first insert
// wins; the second one's insert is a no-op and its read waits on the lock.
func (r *GormStockRepository) EnsureCounter(ctx context.Context, subject inventory.Subject, branchID uuid.UUID) (*inventory.StockCounter, error) {
	counter, err := inventory.NewStockCounter(subject, branchID, 0)
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Clauses(subjectBranchConflict).
		Create(models.StockCounterModelFromDomain(counter)).Error; err != nil {
		return nil, fmt.Errorf("failed to create stock counter: %w", err)
	}

	var model models.StockCounterModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("subject_id = ? AND branch_id = ?", subject.Key(), branchID).
		First(&model).Error; err != nil {
		return nil, fmt.Errorf("failed to lock stock counter: %w", notFound(err, "stock counter"))
	}
	return model.ToDomain(), nil
}

// SetCounterValue overwrites the stock of a counter
func (r *GormStockRepository) SetCounterValue(ctx context.Context, counterID uuid.UUID, stock int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.StockCounterModel{}).
		Where("id = ?", counterID).
		Updates(map[string]any{
			"stock":      stock,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		if isCheckViolation(result.Error) {
			return shared.ErrInsufficientStock
		}
		return fmt.Errorf("failed to update stock counter: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("stock counter")
	}
	return nil
}

// AppendMovement inserts one movement record
func (r *GormStockRepository) AppendMovement(ctx context.Context, movement *inventory.InventoryMovement) error {
	if err := r.db.WithContext(ctx).
		Create(models.InventoryMovementModelFromDomain(movement)).Error; err != nil {
		return fmt.Errorf("failed to append inventory movement: %w", err)
	}
	return nil
}

// SeedCounters inserts the counters whose (subject, branch) pair is still free
func (r *GormStockRepository) SeedCounters(ctx context.Context, counters []*inventory.StockCounter) (int64, error) {
	if len(counters) == 0 {
		return 0, nil
	}
	rows := make([]*models.StockCounterModel, len(counters))
	for i, c := range counters {
		rows[i] = models.StockCounterModelFromDomain(c)
	}

	result := r.db.WithContext(ctx).
		Clauses(subjectBranchConflict).
		CreateInBatches(rows, seedBatchSize)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to seed stock counters: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// DeleteVariantCounters removes every counter of the given variants
func (r *GormStockRepository) DeleteVariantCounters(ctx context.Context, variantIDs []uuid.UUID) error {
	if len(variantIDs) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).
		Where("variant_id IN ?", variantIDs).
		Delete(&models.StockCounterModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete variant counters: %w", err)
	}
	return nil
}

// ListBranchCounters returns the counters of a branch, optionally limited to products
func (r *GormStockRepository) ListBranchCounters(ctx context.Context, branchID uuid.UUID, productIDs []uuid.UUID) ([]inventory.StockCounter, error) {
	query := r.db.WithContext(ctx).Where("branch_id = ?", branchID)
	if len(productIDs) > 0 {
		query = query.Where("product_id IN ?", productIDs)
	}

	var rows []models.StockCounterModel
	if err := query.Order("product_id, subject_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list stock counters: %w", err)
	}

	counters := make([]inventory.StockCounter, len(rows))
	for i := range rows {
		counters[i] = *rows[i].ToDomain()
	}
	return counters, nil
}

// ListMovements returns one page of movements, newest first by default
func (r *GormStockRepository) ListMovements(ctx context.Context, filter inventory.MovementFilter) ([]inventory.InventoryMovement, int64, error) {
	filter.Filter = filter.Filter.Normalize()
	query := r.db.WithContext(ctx).Model(&models.InventoryMovementModel{})
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.VariantID != nil {
		query = query.Where("variant_id = ?", *filter.VariantID)
	}
	if filter.BranchID != nil {
		query = query.Where("branch_id = ?", *filter.BranchID)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count inventory movements: %w", err)
	}

	var rows []models.InventoryMovementModel
	if err := query.
		Order(movementOrder.clause(filter.OrderBy, filter.OrderDir)).
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list inventory movements: %w", err)
	}

	movements := make([]inventory.InventoryMovement, len(rows))
	for i := range rows {
		movements[i] = *rows[i].ToDomain()
	}
	return movements, total, nil
}

// Ensure GormStockRepository implements inventory.StockRepository
var _ inventory.StockRepository = (*GormStockRepository)(nil)
