package inventory

import (
	"context"

	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a stock
// mutation touches. When a function is executed within a transaction scope, all
// repository operations are part of the same database transaction and are
// committed or rolled back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a transaction.
// All repositories returned share the same underlying database transaction.
//
// Aggregate boundary notes:
//   - StockRepo: counters and the append-only movement log. EnsureCounter locks the
//     counter row until the transaction ends, which serializes mutations of one counter.
//   - ProductRepo / CategoryRepo / BranchRepo: reference data read to validate a
//     mutation and written by catalog and branch administration.
//   - SaleRepo: sales are inserted in the same transaction as their stock decrements.
type TransactionalRepositories interface {
	// StockRepo returns the stock ledger scoped to the current transaction
	StockRepo() inventory.StockRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// CategoryRepo returns the category repository scoped to the current transaction
	CategoryRepo() catalog.CategoryRepository
	// BranchRepo returns the branch repository scoped to the current transaction
	BranchRepo() identity.BranchRepository
	// UserRepo returns the user repository scoped to the current transaction
	UserRepo() identity.UserRepository
	// SaleRepo returns the sale repository scoped to the current transaction
	SaleRepo() trade.SaleRepository
}
