package inventory

import (
	"context"

	"github.com/google/uuid"
)

// StockLedger is the durable store of counters and movements used by the
// mutation workflow. Implementations bound to a transaction serialize
// concurrent mutations of the same counter.
type StockLedger interface {
	// GetCounter returns the counter of subject at branch, or shared.ErrNotFound
	GetCounter(ctx context.Context, subject Subject, branchID uuid.UUID) (*StockCounter, error)
	// EnsureCounter returns the counter of subject at branch, creating it with
	// stock 0 when absent. Concurrent callers observe the same row; the row
	// is locked for the rest of the transaction.
	EnsureCounter(ctx context.Context, subject Subject, branchID uuid.UUID) (*StockCounter, error)
	// SetCounterValue overwrites the stock of a counter
	SetCounterValue(ctx context.Context, counterID uuid.UUID, stock int64) error
	// AppendMovement inserts one immutable movement
	AppendMovement(ctx context.Context, movement *InventoryMovement) error
}

// CounterProvisioner seeds and removes counters for catalog changes
type CounterProvisioner interface {
	// SeedCounters inserts counters whose (subject, branch) has none yet and
	// leaves existing ones untouched. Returns the number of rows inserted.
	SeedCounters(ctx context.Context, counters []*StockCounter) (int64, error)
	// DeleteVariantCounters removes every counter of the given variants
	DeleteVariantCounters(ctx context.Context, variantIDs []uuid.UUID) error
}

// StockReader serves read-only stock views
type StockReader interface {
	// ListBranchCounters returns the counters of a branch, optionally limited to products
	ListBranchCounters(ctx context.Context, branchID uuid.UUID, productIDs []uuid.UUID) ([]StockCounter, error)
	// ListMovements returns one page of movements and the total match count
	ListMovements(ctx context.Context, filter MovementFilter) ([]InventoryMovement, int64, error)
}

// StockRepository is the full ledger surface implemented by persistence
type StockRepository interface {
	StockLedger
	CounterProvisioner
	StockReader
}
