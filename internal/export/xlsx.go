package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

// XLSX writes one sheet per report section.
func XLSX(report *models.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	s := report.Summary
	summary := [][]any{
		{"Start", report.Range.Start.Format(dateTimeLayout)},
		{"End", report.Range.End.Format(dateTimeLayout)},
		{"Sales", s.Sales},
		{"Purchases", s.Purchases},
		{"Expenses", s.Expenses},
		{"Profit", s.Profit},
		{"Unmatched sales", s.UnmatchedSales},
	}
	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return nil, fmt.Errorf("rename summary sheet: %w", err)
	}
	if err := writeRows(f, "Summary", summary); err != nil {
		return nil, err
	}

	sales := [][]any{{"Invoice", "Date", "Serial", "Product", "Type", "Supplier", "Buyer", "Price", "Quantity", "Discount", "Total"}}
	for _, r := range report.Details.Sales {
		sales = append(sales, []any{r.InvoiceNumber, r.Date.Format(dateTimeLayout), r.SerialNumber, r.ProductName, string(r.Type), r.Supplier, r.Buyer, r.Price, r.Quantity, r.Discount, r.Total})
	}

	purchases := [][]any{{"Invoice", "Date", "Serial", "Product", "Type", "Supplier", "Purchased", "On hand", "Price", "Shipping", "Customs", "Total"}}
	for _, r := range report.Details.Purchases {
		purchases = append(purchases, []any{r.InvoiceNumber, r.PurchaseDate.Format(dateTimeLayout), r.SerialNumber, r.ProductName, string(r.Type), r.Supplier, r.PurchasedQuantity, r.Quantity, r.Price, r.ShippingCost, r.CustomsFee, r.Total})
	}

	expenses := [][]any{{"Date", "Title", "Category", "Amount", "Note"}}
	for _, r := range report.Details.Expenses {
		expenses = append(expenses, []any{r.Date.Format(dateLayout), r.Title, r.Category, r.Amount, r.Note})
	}

	inventory := [][]any{{"Product", "Type", "Supplier", "Serial", "Lots", "Remaining"}}
	for _, r := range report.Details.Inventory {
		inventory = append(inventory, []any{r.ProductName, string(r.Type), r.Supplier, r.SerialNumber, r.Lots, r.Quantity})
	}

	for _, sheet := range []struct {
		name string
		rows [][]any
	}{
		{"Sales", sales},
		{"Purchases", purchases},
		{"Expenses", expenses},
		{"Inventory", inventory},
	} {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("create %s sheet: %w", sheet.name, err)
		}
		if err := writeRows(f, sheet.name, sheet.rows); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write report xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, values := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
