package export_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/export"
)

func sampleReport() *models.Report {
	day := time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)
	return &models.Report{
		Summary: models.ReportSummary{Sales: 1600, Purchases: 400, Expenses: 50, Profit: 1150},
		Details: models.ReportDetails{
			Sales:     []models.SaleRecord{{InvoiceNumber: 7, ProductName: "Engine", Buyer: "Sam", Quantity: 4, Price: 400, Total: 1600, Date: day}},
			Expenses:  []models.ExpenseRecord{{Title: "Rent", Category: "rent", Amount: 50, Date: day}},
			Inventory: []models.InventoryItem{{ProductName: "Engine", Type: models.StockTypePart, Lots: 1, Quantity: 6}},
		},
		Range: models.ReportRange{Start: day, End: day.Add(24*time.Hour - time.Nanosecond)},
	}
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "1,234,567.50", export.Money(1234567.5))
	assert.Equal(t, "-12.00", export.Money(-12))
}

func TestPDF(t *testing.T) {
	doc, err := export.PDF(sampleReport(), "Daily report")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestXLSX(t *testing.T) {
	doc, err := export.XLSX(sampleReport())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(doc))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Summary", "Sales", "Purchases", "Expenses", "Inventory"}, f.GetSheetList())

	profit, err := f.GetCellValue("Summary", "B6")
	require.NoError(t, err)
	assert.Equal(t, "1150", profit)

	buyer, err := f.GetCellValue("Sales", "G2")
	require.NoError(t, err)
	assert.Equal(t, "Sam", buyer)
}
