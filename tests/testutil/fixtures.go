package testutil

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the password of every seeded user
const TestPassword = "secret123"

func init() {
	// Seeding hundreds of users at DefaultCost would dominate test time
	identity.PasswordCost = bcrypt.MinCost
}

// SeedBranch inserts a branch
func SeedBranch(t *testing.T, db *gorm.DB, name string) *identity.Branch {
	t.Helper()
	branch, err := identity.NewBranch(name, "")
	require.NoError(t, err)
	require.NoError(t, db.Create(models.BranchModelFromDomain(branch)).Error)
	return branch
}

// SeedUser inserts a user with TestPassword
func SeedUser(t *testing.T, db *gorm.DB, email string, role identity.Role, branchID *uuid.UUID) *identity.User {
	t.Helper()
	user, err := identity.NewUser("Test "+string(role), email, TestPassword, role, branchID)
	require.NoError(t, err)
	require.NoError(t, db.Create(models.UserModelFromDomain(user)).Error)
	return user
}

// SeedCategory inserts a category
func SeedCategory(t *testing.T, db *gorm.DB, name string) *catalog.Category {
	t.Helper()
	category, err := catalog.NewCategory(name, "#cccccc")
	require.NoError(t, err)
	require.NoError(t, db.Create(models.CategoryModelFromDomain(category)).Error)
	return category
}

// SeedProduct inserts an active product priced at price with the given
// variants. No counters are created.
func SeedProduct(t *testing.T, db *gorm.DB, categoryID uuid.UUID, name string, price int64, variants ...catalog.VariantSpec) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(catalog.ProductDetails{
		Name:       name,
		Price:      decimal.NewFromInt(price),
		Cost:       decimal.NewFromInt(1),
		CategoryID: categoryID,
	}, variants)
	require.NoError(t, err)
	require.NoError(t, db.Create(models.ProductModelFromDomain(product)).Error)
	return product
}

// SeedCounter inserts a counter of subject at branch holding stock
func SeedCounter(t *testing.T, db *gorm.DB, subject inventory.Subject, branchID uuid.UUID, stock int64) *inventory.StockCounter {
	t.Helper()
	counter, err := inventory.NewStockCounter(subject, branchID, stock)
	require.NoError(t, err)
	require.NoError(t, db.Create(models.StockCounterModelFromDomain(counter)).Error)
	return counter
}

// CounterStock reads the stock of subject at branch, failing when no counter exists
func CounterStock(t *testing.T, db *gorm.DB, subject inventory.Subject, branchID uuid.UUID) int64 {
	t.Helper()
	var model models.StockCounterModel
	require.NoError(t, db.Where("subject_id = ? AND branch_id = ?", subject.Key(), branchID).First(&model).Error)
	return model.Stock
}

// CountRows counts the rows of model matching an optional condition
func CountRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&count).Error)
	return count
}
