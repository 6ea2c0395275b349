package persistence

import (
	"testing"

	"github.com/pos/backend/internal/infrastructure/persistence/models"
	"github.com/pos/backend/tests/testutil"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestListOrder_Clause(t *testing.T) {
	db := testutil.NewSQLiteDB(t).Session(&gorm.Session{DryRun: true})
	orderSQL := func(o listOrder, column, direction string) string {
		var rows []models.SaleModel
		return db.Model(&models.SaleModel{}).Order(o.clause(column, direction)).Find(&rows).Statement.SQL.String()
	}

	tests := []struct {
		name      string
		order     listOrder
		column    string
		direction string
		want      string
	}{
		{"requested column ascending", saleOrder, "total", "asc", "ORDER BY `total`,`id`"},
		{"requested column descending", saleOrder, "total", "desc", "ORDER BY `total` DESC,`id` DESC"},
		{"direction is case insensitive", saleOrder, "total", " ASC ", "ORDER BY `total`,`id`"},
		{"no column keeps the requested direction", saleOrder, "", "desc", "ORDER BY `created_at` DESC,`id` DESC"},
		{"unknown column falls back", movementOrder, "reason; DROP TABLE x", "asc", "ORDER BY `created_at`,`id`"},
		{"products default to name ascending", productOrder, "", "desc", "ORDER BY `name`,`id`"},
		{"products honour an explicit column", productOrder, "price", "", "ORDER BY `price` DESC,`id` DESC"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, orderSQL(tt.order, tt.column, tt.direction), tt.want)
		})
	}
}
