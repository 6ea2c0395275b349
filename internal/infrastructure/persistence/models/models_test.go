package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/inventory"
	"github.com/pos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockCounterModel_RoundTrip(t *testing.T) {
	productID, variantID, branchID := uuid.New(), uuid.New(), uuid.New()
	counter, err := inventory.NewStockCounter(inventory.VariantSubject(productID, variantID), branchID, 7)
	require.NoError(t, err)

	m := StockCounterModelFromDomain(counter)
	assert.Equal(t, variantID, m.SubjectID)
	assert.Equal(t, productID, m.ProductID)

	back := m.ToDomain()
	assert.Equal(t, counter.ID, back.ID)
	assert.Equal(t, int64(7), back.Stock)
	assert.True(t, back.Subject().IsVariant())
}

func TestProductModel_CarriesVariants(t *testing.T) {
	product, err := catalog.NewProduct(catalog.ProductDetails{
		Name:       "Tee",
		Price:      decimal.NewFromInt(20),
		Cost:       decimal.NewFromInt(8),
		CategoryID: uuid.New(),
	}, []catalog.VariantSpec{{Name: "Size", Value: "L"}})
	require.NoError(t, err)

	m := ProductModelFromDomain(product)
	require.Len(t, m.Variants, 1)
	assert.Equal(t, product.ID, m.Variants[0].ProductID)

	back := m.ToDomain()
	require.Len(t, back.Variants, 1)
	assert.Equal(t, "L", back.Variants[0].Value)
	assert.Equal(t, product.Version, back.Version)
}

func TestSaleModel_CarriesItems(t *testing.T) {
	cash := decimal.NewFromInt(50)
	sale, err := trade.NewSale(uuid.New(), uuid.New(), trade.Checkout{
		Items:         []trade.LineItem{{ProductID: uuid.New(), Quantity: 3, Price: decimal.NewFromInt(10)}},
		Total:         decimal.NewFromInt(30),
		PaymentMethod: trade.PaymentCash,
		CashAmount:    &cash,
	})
	require.NoError(t, err)

	back := SaleModelFromDomain(sale).ToDomain()
	require.Len(t, back.Items, 1)
	assert.Equal(t, sale.Items[0].ID, back.Items[0].ID)
	assert.True(t, back.ChangeAmount.Decimal.Equal(decimal.NewFromInt(20)))
}
