package reporting_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/repository"
	"github.com/mamadbah2/autotrade/internal/repository/memory"
	"github.com/mamadbah2/autotrade/internal/service/reporting"
)

var day = time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)

func addLot(t *testing.T, repos repository.Store, serial, product string, qty int, total float64, bought time.Time) {
	t.Helper()
	require.NoError(t, repos.Stocks.Insert(context.Background(), &models.StockRecord{
		SerialNumber:      serial,
		ProductName:       product,
		Type:              models.StockTypePart,
		Supplier:          "Acme",
		Quantity:          qty,
		PurchasedQuantity: qty,
		Total:             total,
		PurchaseDate:      bought,
	}))
}

func addSale(t *testing.T, repos repository.Store, product string, price float64, qty int, discount float64, at time.Time) {
	t.Helper()
	require.NoError(t, repos.Sales.Insert(context.Background(), &models.SaleRecord{
		ProductName: product,
		Price:       price,
		Quantity:    qty,
		Discount:    discount,
		Date:        at,
	}))
}

func TestBuildReport_MatchedProfit(t *testing.T) {
	repos := memory.NewStore().Repositories()
	addLot(t, repos, "E-1", "Engine", 10, 1000, day.AddDate(0, -1, 0))
	addSale(t, repos, "Engine", 150, 4, 0, day)
	require.NoError(t, repos.Expenses.Insert(context.Background(), &models.ExpenseRecord{Title: "Rent", Amount: 50, Date: day}))

	svc := reporting.NewService(repos, time.UTC, nil)
	report, err := svc.BuildReport(context.Background(), reporting.DayRange(day))
	require.NoError(t, err)

	assert.Equal(t, 600.0, report.Summary.Sales)
	assert.Equal(t, 400.0, report.Summary.Purchases)
	assert.Equal(t, 50.0, report.Summary.Expenses)
	assert.Equal(t, 150.0, report.Summary.Profit)
	assert.Zero(t, report.Summary.UnmatchedSales)
	assert.Len(t, report.Details.Purchases, 1)
}

func TestBuildReport_WeightedLandedCostAndDiscount(t *testing.T) {
	repos := memory.NewStore().Repositories()
	addLot(t, repos, "T-1", "Tyre", 4, 440, day.AddDate(0, -2, 0))
	addLot(t, repos, "T-2", "Tyre", 6, 760, day.AddDate(0, -1, 0))
	addSale(t, repos, "Tyre", 200, 2, 10, day)

	report, err := reporting.NewService(repos, time.UTC, nil).BuildReport(context.Background(), reporting.DayRange(day))
	require.NoError(t, err)

	// (440+760)/10 = 120 per unit; 200*2*0.9 = 360.
	assert.Equal(t, 360.0, report.Summary.Sales)
	assert.Equal(t, 240.0, report.Summary.Purchases)
	assert.Equal(t, 120.0, report.Summary.Profit)
}

func TestBuildReport_UnmatchedSaleOnlyCountsAsRevenue(t *testing.T) {
	repos := memory.NewStore().Repositories()
	addSale(t, repos, "Ghost", 100, 1, 0, day)

	report, err := reporting.NewService(repos, time.UTC, nil).BuildReport(context.Background(), reporting.DayRange(day))
	require.NoError(t, err)

	assert.Equal(t, 100.0, report.Summary.Sales)
	assert.Zero(t, report.Summary.Purchases)
	assert.Zero(t, report.Summary.Profit)
	assert.Equal(t, 1, report.Summary.UnmatchedSales)
}

func TestBuildReport_IgnoresRecordsOutsideRange(t *testing.T) {
	repos := memory.NewStore().Repositories()
	addLot(t, repos, "E-1", "Engine", 10, 1000, day)
	addSale(t, repos, "Engine", 150, 1, 0, day.AddDate(0, 0, -1))
	require.NoError(t, repos.Expenses.Insert(context.Background(), &models.ExpenseRecord{Title: "Rent", Amount: 50, Date: day.AddDate(0, 0, 1)}))

	report, err := reporting.NewService(repos, time.UTC, nil).BuildReport(context.Background(), reporting.DayRange(day))
	require.NoError(t, err)

	assert.Zero(t, report.Summary.Sales)
	assert.Zero(t, report.Summary.Expenses)
	assert.Empty(t, report.Details.Purchases)
}

func TestInventory_OmitsSoldOutProducts(t *testing.T) {
	repos := memory.NewStore().Repositories()
	addLot(t, repos, "E-2", "Engine", 3, 300, day)
	addLot(t, repos, "E-1", "Engine", 2, 200, day.AddDate(0, -1, 0))
	addLot(t, repos, "F-1", "Filter", 5, 50, day)
	addSale(t, repos, "Engine", 150, 4, 0, day)
	addSale(t, repos, "Filter", 20, 5, 0, day.AddDate(-1, 0, 0))

	items, err := reporting.NewService(repos, time.UTC, nil).Inventory(context.Background())
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, "Engine", items[0].ProductName)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 2, items[0].Lots)
	assert.Equal(t, "E-1", items[0].SerialNumber)
	for _, item := range items {
		assert.Positive(t, item.Quantity)
	}
}
