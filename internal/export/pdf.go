// Package export renders reconciliation reports as downloadable documents.
package export

import (
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}

	amounts = message.NewPrinter(language.English)
)

// Money formats an amount with thousands separators and two decimals.
func Money(v float64) string {
	return amounts.Sprintf("%.2f", v)
}

// PDF renders the report summary followed by the sales, expenses and
// inventory tables.
func PDF(report *models.Report, title string) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report, title))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRows(report.Summary)...)

	m.AddRows(sectionRow("Sales"))
	m.AddRows(tableRow(true, "Invoice", "Date", "Product", "Buyer", "Qty", "Total"))
	for _, s := range report.Details.Sales {
		m.AddRows(tableRow(false,
			strconv.FormatInt(s.InvoiceNumber, 10),
			s.Date.Format(dateTimeLayout),
			s.ProductName,
			s.Buyer,
			strconv.Itoa(s.Quantity),
			Money(s.Total),
		))
	}

	m.AddRows(sectionRow("Expenses"))
	m.AddRows(tableRow(true, "Date", "Title", "Category", "", "", "Amount"))
	for _, e := range report.Details.Expenses {
		m.AddRows(tableRow(false, e.Date.Format(dateLayout), e.Title, e.Category, "", "", Money(e.Amount)))
	}

	m.AddRows(sectionRow("Inventory"))
	m.AddRows(tableRow(true, "Product", "Type", "Supplier", "Serial", "Lots", "Remaining"))
	for _, item := range report.Details.Inventory {
		m.AddRows(tableRow(false,
			item.ProductName,
			string(item.Type),
			item.Supplier,
			item.SerialNumber,
			strconv.Itoa(item.Lots),
			strconv.Itoa(item.Quantity),
		))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate report pdf: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(report *models.Report, title string) core.Row {
	period := fmt.Sprintf("%s to %s", report.Range.Start.Format(dateLayout), report.Range.End.Format(dateLayout))
	return row.New(16).Add(
		col.New(8).Add(text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 2,
		})),
		col.New(4).Add(text.New(period, props.Text{
			Size: 9, Align: align.Right, Color: colorGray, Top: 4,
		})),
	)
}

func summaryRows(s models.ReportSummary) []core.Row {
	entry := func(label, value string) core.Row {
		return row.New(6).Add(
			col.New(8).Add(text.New(label, props.Text{Size: 10})),
			col.New(4).Add(text.New(value, props.Text{Size: 10, Style: fontstyle.Bold, Align: align.Right})),
		)
	}
	return []core.Row{
		entry("Total sales", Money(s.Sales)),
		entry("Cost of goods sold", Money(s.Purchases)),
		entry("Expenses", Money(s.Expenses)),
		entry("Net profit", Money(s.Profit)),
		entry("Sales without purchase cost", strconv.Itoa(s.UnmatchedSales)),
	}
}

func sectionRow(title string) core.Row {
	return row.New(10).Add(col.New(12).Add(text.New(title, props.Text{
		Style: fontstyle.Bold, Size: 11, Color: colorPrimary, Top: 4,
	})))
}

// tableRow lays cells out on a 2/2/3/2/1/2 grid; the last cell is right aligned.
func tableRow(header bool, cells ...string) core.Row {
	sizes := []int{2, 2, 3, 2, 1, 2}
	style := fontstyle.Normal
	if header {
		style = fontstyle.Bold
	}

	cols := make([]core.Col, 0, len(sizes))
	for i, size := range sizes {
		value := ""
		if i < len(cells) {
			value = cells[i]
		}
		a := align.Left
		if i == len(sizes)-1 {
			a = align.Right
		}
		cols = append(cols, col.New(size).Add(text.New(value, props.Text{Size: 8, Style: style, Align: a, Top: 1})))
	}
	return row.New(6).Add(cols...)
}
