package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/domain/pricing"
)

func TestSaleTotal(t *testing.T) {
	cases := []struct {
		name     string
		price    float64
		quantity int
		discount float64
		want     float64
	}{
		{"no discount", 150, 4, 0, 600},
		{"ten percent", 200, 3, 10, 540},
		{"full discount", 99.99, 2, 100, 0},
		{"fractional", 19.99, 3, 15, 50.97},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := pricing.Float(pricing.SaleTotal(tc.price, tc.quantity, tc.discount))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPurchaseTotalIncludesShippingAndCustoms(t *testing.T) {
	got := pricing.PurchaseTotal(10, 100, 50, 25)
	assert.True(t, decimal.NewFromInt(1075).Equal(got), "got %s", got)
}

func TestWeightedUnitCost(t *testing.T) {
	lots := []models.StockRecord{
		{PurchasedQuantity: 10, Total: 1000},
		{PurchasedQuantity: 5, Total: 800},
		{PurchasedQuantity: 0, Total: 999},
	}

	cost, ok := pricing.WeightedUnitCost(lots)
	assert.True(t, ok)
	assert.Equal(t, 120.0, pricing.Float(cost))

	_, ok = pricing.WeightedUnitCost(nil)
	assert.False(t, ok)
}
