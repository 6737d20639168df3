// Package pricing holds the money arithmetic shared by purchases, sales and
// the reconciliation reporter. Amounts are computed with decimal and stored as
// float64 rounded to cents.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

var hundred = decimal.NewFromInt(100)

// SaleTotal = price * quantity * (1 - discount/100).
func SaleTotal(price float64, quantity int, discount float64) decimal.Decimal {
	subtotal := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(discount).Div(hundred))
	return subtotal.Mul(factor)
}

// PurchaseTotal = quantity * price + shipping + customs.
func PurchaseTotal(quantity int, price, shipping, customs float64) decimal.Decimal {
	return decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(int64(quantity))).
		Add(decimal.NewFromFloat(shipping)).
		Add(decimal.NewFromFloat(customs))
}

// WeightedUnitCost returns the landed cost per unit across all lots:
// sum(total) / sum(purchasedQuantity). ok is false when no units were bought.
func WeightedUnitCost(lots []models.StockRecord) (cost decimal.Decimal, ok bool) {
	totalCost := decimal.Zero
	units := int64(0)
	for _, lot := range lots {
		if lot.PurchasedQuantity <= 0 {
			continue
		}
		totalCost = totalCost.Add(decimal.NewFromFloat(lot.Total))
		units += int64(lot.PurchasedQuantity)
	}
	if units == 0 {
		return decimal.Zero, false
	}
	return totalCost.Div(decimal.NewFromInt(units)), true
}

// Float rounds d to cents.
func Float(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
