package identity_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	appidentity "github.com/pos/backend/internal/application/identity"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
	"github.com/pos/backend/tests/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newBranchService(t *testing.T, db *gorm.DB) *appidentity.BranchService {
	return appidentity.NewBranchService(
		persistence.NewGormTransactionScope(db),
		persistence.NewGormBranchRepository(db),
		zaptest.NewLogger(t),
	)
}

func TestBranchService_CreateAssignsBranchlessAdmin(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, db, "admin@example.com", identity.RoleAdmin, nil)
	service := newBranchService(t, db)

	created, err := service.Create(ctx, admin.Actor(), appidentity.BranchRequest{Name: " Centro ", Address: "Main 1"})
	require.NoError(t, err)
	assert.Equal(t, "Centro", created.Name)

	stored, err := persistence.NewGormUserRepository(db).FindByID(ctx, admin.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.BranchID)
	assert.Equal(t, created.ID, *stored.BranchID)

	// An admin who already has a branch keeps it
	withBranch := stored.Actor()
	second, err := service.Create(ctx, withBranch, appidentity.BranchRequest{Name: "Norte"})
	require.NoError(t, err)
	stored, err = persistence.NewGormUserRepository(db).FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, *stored.BranchID)
	assert.NotEqual(t, second.ID, *stored.BranchID)

	// A token issued before the assignment still carries no branch
	stale := admin.Actor()
	require.Nil(t, stale.BranchID)
	third, err := service.Create(ctx, stale, appidentity.BranchRequest{Name: "Sur"})
	require.NoError(t, err)
	stored, err = persistence.NewGormUserRepository(db).FindByID(ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, *stored.BranchID)
	assert.NotEqual(t, third.ID, *stored.BranchID)
}

func TestBranchService_NameIsUnique(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, db, "admin@example.com", identity.RoleAdmin, nil).Actor()
	service := newBranchService(t, db)

	centro, err := service.Create(ctx, admin, appidentity.BranchRequest{Name: "Centro"})
	require.NoError(t, err)
	norte, err := service.Create(ctx, admin, appidentity.BranchRequest{Name: "Norte"})
	require.NoError(t, err)

	_, err = service.Create(ctx, admin, appidentity.BranchRequest{Name: "Centro"})
	assert.ErrorIs(t, err, shared.ErrConflict)
	assert.EqualError(t, err, "a branch with this name already exists")

	_, err = service.Update(ctx, admin, norte.ID, appidentity.BranchRequest{Name: "Centro"})
	assert.ErrorIs(t, err, shared.ErrConflict)

	// keeping its own name is fine
	updated, err := service.Update(ctx, admin, centro.ID, appidentity.BranchRequest{Name: "Centro", Address: "Plaza 2"})
	require.NoError(t, err)
	assert.Equal(t, "Plaza 2", updated.Address)

	list, err := service.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Centro", list[0].Name)
}

func TestBranchService_Delete(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	admin := testutil.SeedUser(t, db, "admin@example.com", identity.RoleAdmin, nil).Actor()
	service := newBranchService(t, db)

	withUser := testutil.SeedBranch(t, db, "Centro")
	testutil.SeedUser(t, db, "seller@example.com", identity.RoleSeller, &withUser.ID)

	withSale := testutil.SeedBranch(t, db, "Norte")
	require.NoError(t, db.Create(&models.SaleModel{
		AggregateModel: models.AggregateModel{BaseModel: models.BaseModel{ID: uuid.New()}},
		UserID:         admin.UserID,
		BranchID:       withSale.ID,
		Total:          decimal.NewFromInt(5),
		PaymentMethod:  "CARD",
	}).Error)

	empty := testutil.SeedBranch(t, db, "Sur")
	category := testutil.SeedCategory(t, db, "Drinks")
	product := testutil.SeedProduct(t, db, category.ID, "Cola", 2)
	testutil.SeedCounter(t, db, inventory.ProductSubject(product.ID), empty.ID, 3)

	assert.ErrorIs(t, service.Delete(ctx, admin, withUser.ID), shared.ErrValidation)
	assert.ErrorIs(t, service.Delete(ctx, admin, withSale.ID), shared.ErrValidation)
	assert.ErrorIs(t, service.Delete(ctx, admin, uuid.New()), shared.ErrNotFound)

	require.NoError(t, service.Delete(ctx, admin, empty.ID))
	_, err := service.GetByID(ctx, empty.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Zero(t, testutil.CountRows(t, db, &models.StockCounterModel{}, "branch_id = ?", empty.ID))
}

func TestBranchService_RequiresAdmin(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	branch := testutil.SeedBranch(t, db, "Centro")
	seller := testutil.SeedUser(t, db, "seller@example.com", identity.RoleSeller, &branch.ID).Actor()
	service := newBranchService(t, db)

	_, err := service.Create(ctx, seller, appidentity.BranchRequest{Name: "Norte"})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	_, err = service.Update(ctx, seller, branch.ID, appidentity.BranchRequest{Name: "X"})
	assert.ErrorIs(t, err, shared.ErrForbidden)
	assert.ErrorIs(t, service.Delete(ctx, seller, branch.ID), shared.ErrForbidden)
}
