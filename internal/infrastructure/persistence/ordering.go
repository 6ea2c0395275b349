package persistence

import (
	"strings"

	"gorm.io/gorm/clause"
)

// listOrder whitelists the columns a list may be sorted by. Requested names
// never reach SQL unless they are in columns.
type listOrder struct {
	columns  map[string]bool
	fallback string
	// fallbackAsc sorts ascending when the caller asked for no column
	fallbackAsc bool
}

var (
	productOrder = listOrder{
		columns:     map[string]bool{"name": true, "price": true, "cost": true, "barcode": true, "created_at": true, "updated_at": true},
		fallback:    "name",
		fallbackAsc: true,
	}
	saleOrder = listOrder{
		columns:  map[string]bool{"created_at": true, "total": true, "payment_method": true},
		fallback: "created_at",
	}
	movementOrder = listOrder{
		columns:  map[string]bool{"created_at": true, "kind": true, "quantity": true, "stock_after": true},
		fallback: "created_at",
	}
)

// clause resolves the requested column and direction. Unknown columns use
// the fallback; rows with equal keys are ordered by id so paging is stable.
func (o listOrder) clause(column, direction string) clause.OrderBy {
	column = strings.TrimSpace(column)
	desc := !strings.EqualFold(strings.TrimSpace(direction), "asc")
	if column == "" && o.fallbackAsc {
		desc = false
	}
	if !o.columns[column] {
		column = o.fallback
	}
	return clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: column}, Desc: desc},
		{Column: clause.Column{Name: "id"}, Desc: desc},
	}}
}
