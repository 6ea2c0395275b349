package integration

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	apptrade "github.com/pos/backend/internal/application/trade"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
	"github.com/pos/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutSetup struct {
	testDB   *TestDB
	sales    *apptrade.SaleService
	branchID uuid.UUID
	actor    identity.ActorContext
	water    *catalog.Product
	shirt    *catalog.Product
}

func newCheckoutSetup(t *testing.T) checkoutSetup {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := NewSharedTestDB(t)
	testDB.CleanTables()

	branch := testutil.SeedBranch(t, testDB.DB, "Centro")
	seller := testutil.SeedUser(t, testDB.DB, "seller@pos.test", identity.RoleSeller, &branch.ID)
	category := testutil.SeedCategory(t, testDB.DB, "General")
	water := testutil.SeedProduct(t, testDB.DB, category.ID, "Agua", 10)
	shirt := testutil.SeedProduct(t, testDB.DB, category.ID, "Remera", 20,
		catalog.VariantSpec{Name: "Size", Value: "M"}, catalog.VariantSpec{Name: "Size", Value: "L"})

	return checkoutSetup{
		testDB:   testDB,
		sales:    apptrade.NewSaleService(persistence.NewGormTransactionScope(testDB.DB), persistence.NewGormSaleRepository(testDB.DB), nil),
		branchID: branch.ID,
		actor:    seller.Actor(),
		water:    water,
		shirt:    shirt,
	}
}

func (s checkoutSetup) order(items ...apptrade.OrderItemInput) apptrade.PlaceOrderRequest {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return apptrade.PlaceOrderRequest{
		Items:         items,
		Total:         total,
		PaymentMethod: "CARD",
	}
}

func TestCheckout_MultiLineOrderRollsBackAsAUnit(t *testing.T) {
	s := newCheckoutSetup(t)
	ctx := context.Background()

	waterSubject := inventory.ProductSubject(s.water.ID)
	medium := s.shirt.Variants[0]
	mediumSubject := inventory.VariantSubject(s.shirt.ID, medium.ID)
	testutil.SeedCounter(t, s.testDB.DB, waterSubject, s.branchID, 5)
	testutil.SeedCounter(t, s.testDB.DB, mediumSubject, s.branchID, 1)

	_, err := s.sales.PlaceOrder(ctx, s.actor, s.order(
		apptrade.OrderItemInput{ProductID: s.water.ID, Quantity: 2, Price: decimal.NewFromInt(10)},
		apptrade.OrderItemInput{ProductID: s.shirt.ID, VariantID: &medium.ID, Quantity: 2, Price: decimal.NewFromInt(20)},
	))
	require.ErrorIs(t, err, shared.ErrInsufficientStock)

	assert.Equal(t, int64(5), testutil.CounterStock(t, s.testDB.DB, waterSubject, s.branchID))
	assert.Equal(t, int64(1), testutil.CounterStock(t, s.testDB.DB, mediumSubject, s.branchID))
	assert.Zero(t, testutil.CountRows(t, s.testDB.DB, &models.SaleModel{}, ""))
	assert.Zero(t, testutil.CountRows(t, s.testDB.DB, &models.InventoryMovementModel{}, ""))

	sale, err := s.sales.PlaceOrder(ctx, s.actor, s.order(
		apptrade.OrderItemInput{ProductID: s.water.ID, Quantity: 2, Price: decimal.NewFromInt(10)},
		apptrade.OrderItemInput{ProductID: s.shirt.ID, VariantID: &medium.ID, Quantity: 1, Price: decimal.NewFromInt(20)},
	))
	require.NoError(t, err)
	assert.Len(t, sale.Items, 2)
	assert.Equal(t, int64(3), testutil.CounterStock(t, s.testDB.DB, waterSubject, s.branchID))
	assert.Equal(t, int64(0), testutil.CounterStock(t, s.testDB.DB, mediumSubject, s.branchID))
	assert.Equal(t, int64(2), testutil.CountRows(t, s.testDB.DB, &models.InventoryMovementModel{}, "kind = ?", "OUT"))
}

func TestCheckout_ConcurrentOrdersForLastUnits(t *testing.T) {
	s := newCheckoutSetup(t)
	subject := inventory.ProductSubject(s.water.ID)
	testutil.SeedCounter(t, s.testDB.DB, subject, s.branchID, 6)

	const buyers = 12
	var placed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.sales.PlaceOrder(context.Background(), s.actor, s.order(
				apptrade.OrderItemInput{ProductID: s.water.ID, Quantity: 2, Price: decimal.NewFromInt(10)},
			))
			if err == nil {
				placed.Add(1)
				return
			}
			if !errors.Is(err, shared.ErrInsufficientStock) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(3), placed.Load())
	assert.Equal(t, int64(0), testutil.CounterStock(t, s.testDB.DB, subject, s.branchID))
	assert.Equal(t, int64(3), testutil.CountRows(t, s.testDB.DB, &models.SaleModel{}, ""))
}

func TestCheckout_OpposingLineOrderStaysConsistent(t *testing.T) {
	s := newCheckoutSetup(t)
	medium := s.shirt.Variants[0]
	testutil.SeedCounter(t, s.testDB.DB, inventory.ProductSubject(s.water.ID), s.branchID, 100)
	testutil.SeedCounter(t, s.testDB.DB, inventory.VariantSubject(s.shirt.ID, medium.ID), s.branchID, 100)

	waterLine := apptrade.OrderItemInput{ProductID: s.water.ID, Quantity: 1, Price: decimal.NewFromInt(10)}
	shirtLine := apptrade.OrderItemInput{ProductID: s.shirt.ID, VariantID: &medium.ID, Quantity: 1, Price: decimal.NewFromInt(20)}

	const rounds = 20
	var wg sync.WaitGroup
	errs := make([]error, rounds)
	for i := 0; i < rounds; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := s.order(waterLine, shirtLine)
			if i%2 == 1 {
				req = s.order(shirtLine, waterLine)
			}
			_, errs[i] = s.sales.PlaceOrder(context.Background(), s.actor, req)
		}(i)
	}
	wg.Wait()

	// PostgreSQL breaks a deadlock by failing one side; any such failure
	// must leave the counters consistent with the committed sales.
	committed := testutil.CountRows(t, s.testDB.DB, &models.SaleModel{}, "")
	assert.Equal(t, 100-committed, testutil.CounterStock(t, s.testDB.DB, inventory.ProductSubject(s.water.ID), s.branchID))
	assert.Equal(t, 100-committed, testutil.CounterStock(t, s.testDB.DB, inventory.VariantSubject(s.shirt.ID, medium.ID), s.branchID))
	for _, err := range errs {
		if err != nil {
			assert.NotErrorIs(t, err, shared.ErrInsufficientStock)
		}
	}
}
