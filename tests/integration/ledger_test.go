package integration

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	appinv "github.com/pos/backend/internal/application/inventory"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
	"github.com/pos/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	code := m.Run()
	CleanupSharedContainer()
	os.Exit(code)
}

type ledgerSetup struct {
	testDB   *TestDB
	stock    *appinv.StockService
	branchID uuid.UUID
	actor    identity.ActorContext
	product  uuid.UUID
}

func newLedgerSetup(t *testing.T) ledgerSetup {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewSharedTestDB(t)
	testDB.CleanTables()

	branch := testutil.SeedBranch(t, testDB.DB, "Centro")
	seller := testutil.SeedUser(t, testDB.DB, "seller@pos.test", identity.RoleSeller, &branch.ID)
	category := testutil.SeedCategory(t, testDB.DB, "Bebidas")
	product := testutil.SeedProduct(t, testDB.DB, category.ID, "Agua", 10)

	return ledgerSetup{
		testDB:   testDB,
		stock:    appinv.NewStockService(persistence.NewGormTransactionScope(testDB.DB), persistence.NewGormStockRepository(testDB.DB), nil),
		branchID: branch.ID,
		actor:    seller.Actor(),
		product:  product.ID,
	}
}

func (s ledgerSetup) apply(kind string, qty int64) error {
	_, err := s.stock.ApplyMovement(context.Background(), s.actor, appinv.ApplyMovementRequest{
		ProductID: s.product,
		Kind:      kind,
		Quantity:  qty,
		Reason:    "integration",
	})
	return err
}

func TestLedger_ConcurrentOutNeverOversells(t *testing.T) {
	s := newLedgerSetup(t)
	require.NoError(t, s.apply("IN", 10))

	const workers = 25
	var ok, short atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.apply("OUT", 1)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, shared.ErrInsufficientStock):
				short.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(10), ok.Load())
	assert.Equal(t, int64(workers-10), short.Load())

	subject := inventory.ProductSubject(s.product)
	assert.Equal(t, int64(0), testutil.CounterStock(t, s.testDB.DB, subject, s.branchID))
	assert.Equal(t, int64(10), testutil.CountRows(t, s.testDB.DB, &models.InventoryMovementModel{}, "kind = ?", "OUT"))
}

func TestLedger_ConcurrentFirstMovementCreatesOneCounter(t *testing.T) {
	s := newLedgerSetup(t)

	const workers = 10
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.apply("IN", 1)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), testutil.CountRows(t, s.testDB.DB, &models.StockCounterModel{}, ""))
	assert.Equal(t, int64(workers), testutil.CounterStock(t, s.testDB.DB, inventory.ProductSubject(s.product), s.branchID))
}

func TestLedger_MovementHistoryMatchesCounter(t *testing.T) {
	s := newLedgerSetup(t)

	require.NoError(t, s.apply("IN", 8))
	require.NoError(t, s.apply("OUT", 3))
	require.NoError(t, s.apply("SET", 20))
	require.ErrorIs(t, s.apply("OUT", 21), shared.ErrInsufficientStock)

	page, err := s.stock.ListMovements(context.Background(), s.actor, appinv.MovementListFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(3), page.Total)
	// Newest first: the last movement's StockAfter is the counter value
	assert.Equal(t, int64(20), page.Items[0].StockAfter)
	assert.Equal(t, int64(20), testutil.CounterStock(t, s.testDB.DB, inventory.ProductSubject(s.product), s.branchID))
}

func TestLedger_CheckConstraintRejectsNegativeStock(t *testing.T) {
	s := newLedgerSetup(t)
	counter := testutil.SeedCounter(t, s.testDB.DB, inventory.ProductSubject(s.product), s.branchID, 1)

	err := persistence.NewGormStockRepository(s.testDB.DB).SetCounterValue(context.Background(), counter.ID, -1)
	assert.ErrorIs(t, err, shared.ErrInsufficientStock)
}
