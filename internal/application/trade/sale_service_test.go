package trade_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	apptrade "github.com/pos/backend/internal/application/trade"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/trade"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
	"github.com/pos/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

type saleFixture struct {
	db        *gorm.DB
	service   *apptrade.SaleService
	publisher *testutil.RecordingPublisher
	branch    *identity.Branch
	other     *identity.Branch
	seller    identity.ActorContext
	admin     identity.ActorContext
	p1        *catalog.Product
	p2        *catalog.Product
	shirt     *catalog.Product
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)

	branch := testutil.SeedBranch(t, db, "Centro")
	other := testutil.SeedBranch(t, db, "Norte")
	seller := testutil.SeedUser(t, db, "seller@example.com", identity.RoleSeller, &branch.ID)
	admin := testutil.SeedUser(t, db, "admin@example.com", identity.RoleAdmin, nil)
	category := testutil.SeedCategory(t, db, "General")
	p1 := testutil.SeedProduct(t, db, category.ID, "Coffee", 3)
	p2 := testutil.SeedProduct(t, db, category.ID, "Cake", 5)
	shirt := testutil.SeedProduct(t, db, category.ID, "Shirt", 20,
		catalog.VariantSpec{Name: "Size", Value: "M"})

	publisher := &testutil.RecordingPublisher{}
	service := apptrade.NewSaleService(
		persistence.NewGormTransactionScope(db),
		persistence.NewGormSaleRepository(db),
		zaptest.NewLogger(t),
	)
	service.SetEventPublisher(publisher)

	return &saleFixture{
		db:        db,
		service:   service,
		publisher: publisher,
		branch:    branch,
		other:     other,
		seller:    seller.Actor(),
		admin:     admin.Actor(),
		p1:        p1,
		p2:        p2,
		shirt:     shirt,
	}
}

func line(productID uuid.UUID, qty, price int64) apptrade.OrderItemInput {
	return apptrade.OrderItemInput{ProductID: productID, Quantity: qty, Price: decimal.NewFromInt(price)}
}

func cardOrder(total int64, items ...apptrade.OrderItemInput) apptrade.PlaceOrderRequest {
	return apptrade.PlaceOrderRequest{
		Items:         items,
		Total:         decimal.NewFromInt(total),
		PaymentMethod: "CARD",
	}
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	de, ok := shared.AsDomainError(err)
	require.True(t, ok, "expected a domain error, got %v", err)
	assert.Equal(t, code, de.Code)
}

func TestPlaceOrder_DecrementsEveryLine(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()
	testutil.SeedCounter(t, f.db, inventory.ProductSubject(f.p1.ID), f.branch.ID, 5)
	testutil.SeedCounter(t, f.db, inventory.ProductSubject(f.p2.ID), f.branch.ID, 4)

	cash := decimal.NewFromInt(20)
	req := cardOrder(11, line(f.p1.ID, 2, 3), line(f.p2.ID, 1, 5))
	req.PaymentMethod = "CASH"
	req.CashAmount = &cash

	sale, err := f.service.PlaceOrder(ctx, f.seller, req)
	require.NoError(t, err)
	require.Len(t, sale.Items, 2)
	assert.True(t, decimal.NewFromInt(6).Equal(sale.Items[0].Subtotal))
	assert.True(t, decimal.NewFromInt(9).Equal(sale.Change.Decimal))
	assert.Equal(t, f.branch.ID, sale.BranchID)

	assert.Equal(t, int64(3), testutil.CounterStock(t, f.db, inventory.ProductSubject(f.p1.ID), f.branch.ID))
	assert.Equal(t, int64(3), testutil.CounterStock(t, f.db, inventory.ProductSubject(f.p2.ID), f.branch.ID))

	reason := fmt.Sprintf("Sale #%s", sale.ID)
	assert.Equal(t, int64(2), testutil.CountRows(t, f.db, &models.InventoryMovementModel{}, "reason = ? AND kind = ?", reason, "OUT"))
	assert.Equal(t, int64(2), testutil.CountRows(t, f.db, &models.SaleItemModel{}, "sale_id = ?", sale.ID))

	assert.Len(t, f.publisher.EventsOfType(trade.EventTypeSaleCompleted), 1)
	assert.Len(t, f.publisher.EventsOfType(inventory.EventTypeStockChanged), 2)
}

func TestPlaceOrder_FailingLineRollsBackEverything(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()
	testutil.SeedCounter(t, f.db, inventory.ProductSubject(f.p1.ID), f.branch.ID, 5)
	testutil.SeedCounter(t, f.db, inventory.ProductSubject(f.p2.ID), f.branch.ID, 1)

	_, err := f.service.PlaceOrder(ctx, f.seller, cardOrder(31, line(f.p1.ID, 2, 3), line(f.p2.ID, 5, 5)))
	requireCode(t, err, shared.CodeInsufficientStock)
	assert.Contains(t, err.Error(), "item 2")

	assert.Equal(t, int64(5), testutil.CounterStock(t, f.db, inventory.ProductSubject(f.p1.ID), f.branch.ID))
	assert.Equal(t, int64(1), testutil.CounterStock(t, f.db, inventory.ProductSubject(f.p2.ID), f.branch.ID))
	assert.Equal(t, int64(0), testutil.CountRows(t, f.db, &models.SaleModel{}, ""))
	assert.Equal(t, int64(0), testutil.CountRows(t, f.db, &models.SaleItemModel{}, ""))
	assert.Equal(t, int64(0), testutil.CountRows(t, f.db, &models.InventoryMovementModel{}, ""))
	assert.Empty(t, f.publisher.Events())
}

func TestPlaceOrder_AtomicAtEveryFailingPosition(t *testing.T) {
	for failing := 1; failing < 4; failing++ {
		t.Run(fmt.Sprintf("line %d", failing+1), func(t *testing.T) {
			f := newSaleFixture(t)
			products := []*catalog.Product{f.p1, f.p2, f.shirt, f.p1}
			for _, p := range []*catalog.Product{f.p1, f.p2, f.shirt} {
				testutil.SeedCounter(t, f.db, inventory.ProductSubject(p.ID), f.branch.ID, 10)
			}

			items := make([]apptrade.OrderItemInput, len(products))
			for i, p := range products {
				items[i] = line(p.ID, 1, 1)
			}
			items[failing].Quantity = 11

			_, err := f.service.PlaceOrder(context.Background(), f.seller, cardOrder(4, items...))
			requireCode(t, err, shared.CodeInsufficientStock)

			for _, p := range []*catalog.Product{f.p1, f.p2, f.shirt} {
				assert.Equal(t, int64(10), testutil.CounterStock(t, f.db, inventory.ProductSubject(p.ID), f.branch.ID))
			}
			assert.Equal(t, int64(0), testutil.CountRows(t, f.db, &models.SaleModel{}, ""))
			assert.Equal(t, int64(0), testutil.CountRows(t, f.db, &models.InventoryMovementModel{}, ""))
		})
	}
}

func TestPlaceOrder_MissingCounterFails(t *testing.T) {
	f := newSaleFixture(t)

	_, err := f.service.PlaceOrder(context.Background(), f.seller, cardOrder(3, line(f.p1.ID, 1, 3)))
	requireCode(t, err, shared.CodeInsufficientStock)
	assert.Equal(t, int64(0), testutil.CountRows(t, f.db, &models.StockCounterModel{}, ""))
}

func TestPlaceOrder_VariantLine(t *testing.T) {
	f := newSaleFixture(t)
	variant := f.shirt.Variants[0]
	subject := inventory.VariantSubject(f.shirt.ID, variant.ID)
	testutil.SeedCounter(t, f.db, subject, f.branch.ID, 2)

	item := line(f.shirt.ID, 2, 20)
	item.VariantID = &variant.ID
	sale, err := f.service.PlaceOrder(context.Background(), f.seller, cardOrder(40, item))
	require.NoError(t, err)

	assert.Equal(t, int64(0), testutil.CounterStock(t, f.db, subject, f.branch.ID))
	reason := fmt.Sprintf("Sale #%s (variant)", sale.ID)
	assert.Equal(t, int64(1), testutil.CountRows(t, f.db, &models.InventoryMovementModel{}, "reason = ?", reason))
}

func TestPlaceOrder_UnknownProductOrVariant(t *testing.T) {
	f := newSaleFixture(t)
	testutil.SeedCounter(t, f.db, inventory.ProductSubject(f.p1.ID), f.branch.ID, 5)

	_, err := f.service.PlaceOrder(context.Background(), f.seller, cardOrder(6, line(f.p1.ID, 1, 3), line(uuid.New(), 1, 3)))
	requireCode(t, err, shared.CodeNotFound)

	item := line(f.p1.ID, 1, 3)
	foreign := f.shirt.Variants[0].ID
	item.VariantID = &foreign
	_, err = f.service.PlaceOrder(context.Background(), f.seller, cardOrder(3, item))
	requireCode(t, err, shared.CodeNotFound)

	assert.Equal(t, int64(5), testutil.CounterStock(t, f.db, inventory.ProductSubject(f.p1.ID), f.branch.ID))
}

func TestPlaceOrder_Validation(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()

	t.Run("no items", func(t *testing.T) {
		_, err := f.service.PlaceOrder(ctx, f.seller, cardOrder(1))
		requireCode(t, err, shared.CodeValidation)
	})

	t.Run("cash without amount", func(t *testing.T) {
		req := cardOrder(3, line(f.p1.ID, 1, 3))
		req.PaymentMethod = "CASH"
		_, err := f.service.PlaceOrder(ctx, f.seller, req)
		requireCode(t, err, shared.CodeValidation)
	})

	t.Run("table service without number", func(t *testing.T) {
		req := cardOrder(3, line(f.p1.ID, 1, 3))
		req.TableService = true
		_, err := f.service.PlaceOrder(ctx, f.seller, req)
		requireCode(t, err, shared.CodeValidation)
	})

	t.Run("seller without branch", func(t *testing.T) {
		actor := identity.ActorContext{UserID: uuid.New(), Role: identity.RoleSeller}
		_, err := f.service.PlaceOrder(ctx, actor, cardOrder(3, line(f.p1.ID, 1, 3)))
		requireCode(t, err, shared.CodeNoBranchAssigned)
	})

	assert.Equal(t, int64(0), testutil.CountRows(t, f.db, &models.SaleModel{}, ""))
}

func TestSaleQueries_Scoping(t *testing.T) {
	f := newSaleFixture(t)
	ctx := context.Background()
	testutil.SeedCounter(t, f.db, inventory.ProductSubject(f.p1.ID), f.branch.ID, 5)
	testutil.SeedCounter(t, f.db, inventory.ProductSubject(f.p1.ID), f.other.ID, 5)

	own, err := f.service.PlaceOrder(ctx, f.seller, cardOrder(3, line(f.p1.ID, 1, 3)))
	require.NoError(t, err)
	req := cardOrder(3, line(f.p1.ID, 1, 3))
	req.BranchID = &f.other.ID
	foreign, err := f.service.PlaceOrder(ctx, f.admin, req)
	require.NoError(t, err)

	got, err := f.service.GetByID(ctx, f.seller, own.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	_, err = f.service.GetByID(ctx, f.seller, foreign.ID)
	requireCode(t, err, shared.CodeNotFound)

	page, err := f.service.List(ctx, f.seller, apptrade.SaleListFilter{})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, own.ID, page.Items[0].ID)

	page, err = f.service.List(ctx, f.admin, apptrade.SaleListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = f.service.List(ctx, f.admin, apptrade.SaleListFilter{BranchID: f.other.ID.String()})
	require.NoError(t, err)
	require.Equal(t, int64(1), page.Total)
	assert.Equal(t, foreign.ID, page.Items[0].ID)
}
