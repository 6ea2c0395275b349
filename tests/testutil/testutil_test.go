package testutil

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pos/backend/internal/domain/identity"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMockDB(t *testing.T) {
	mockDB := NewMockDB(t)

	assert.NotNil(t, mockDB.DB)
	assert.NotNil(t, mockDB.Mock)
	assert.NotNil(t, mockDB.SqlDB)

	// No expectations set, should pass
	mockDB.ExpectationsWereMet(t)
}

func TestNewSQLiteDB_IsolatedAndMigrated(t *testing.T) {
	first := NewSQLiteDB(t)
	second := NewSQLiteDB(t)

	SeedBranch(t, first, "Centro")

	assert.Equal(t, int64(1), CountRows(t, first, &models.BranchModel{}, ""))
	assert.Equal(t, int64(0), CountRows(t, second, &models.BranchModel{}, ""))
}

func TestSeedFixtures(t *testing.T) {
	db := NewSQLiteDB(t)

	branch := SeedBranch(t, db, "Centro")
	user := SeedUser(t, db, "seller@example.com", identity.RoleSeller, &branch.ID)
	assert.True(t, user.VerifyPassword(TestPassword))

	category := SeedCategory(t, db, "Drinks")
	product := SeedProduct(t, db, category.ID, "Cola", 2)
	SeedCounter(t, db, inventory.ProductSubject(product.ID), branch.ID, 7)

	assert.Equal(t, int64(7), CounterStock(t, db, inventory.ProductSubject(product.ID), branch.ID))
}

func TestDoJSON_RoundTrip(t *testing.T) {
	engine := gin.New()
	engine.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		require.NoError(t, c.ShouldBindJSON(&body))
		body["auth"] = c.GetHeader("Authorization")
		c.JSON(http.StatusOK, gin.H{"success": true, "data": body})
	})
	engine.GET("/fail", func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": gin.H{"code": "ERR_NOT_FOUND", "message": "missing"}})
	})

	w := DoJSON(t, engine, http.MethodPost, "/echo", map[string]any{"name": "x"}, "tok")
	data := DecodeData[map[string]any](t, w)
	assert.Equal(t, "x", data["name"])
	assert.Equal(t, "Bearer tok", data["auth"])

	w = DoJSON(t, engine, http.MethodGet, "/fail", nil, "")
	AssertErrorResponse(t, w, http.StatusNotFound, "ERR_NOT_FOUND")
}
