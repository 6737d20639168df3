package models

import "time"

// ReportSummary holds the headline figures of a reconciliation report.
type ReportSummary struct {
	Sales          float64 `json:"sales"`
	Purchases      float64 `json:"purchases"`
	Expenses       float64 `json:"expenses"`
	Profit         float64 `json:"profit"`
	UnmatchedSales int     `json:"unmatchedSales"`
}

// InventoryItem is one product of the derived inventory snapshot.
type InventoryItem struct {
	ProductName  string    `json:"productName"`
	SerialNumber string    `json:"serialNumber"`
	Type         StockType `json:"type"`
	Supplier     string    `json:"supplier"`
	Lots         int       `json:"lots"`
	Quantity     int       `json:"quantity"`
}

// ReportDetails lists the records the summary was computed from.
type ReportDetails struct {
	Sales     []SaleRecord    `json:"sales"`
	Purchases []StockRecord   `json:"purchases"`
	Expenses  []ExpenseRecord `json:"expenses"`
	Inventory []InventoryItem `json:"inventory"`
}

// ReportRange is the closed interval a report covers.
type ReportRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Report is the output of the reconciliation reporter.
type Report struct {
	Summary ReportSummary `json:"summary"`
	Details ReportDetails `json:"details"`
	Range   ReportRange   `json:"range"`
}

// DailyReport is the snapshot the scheduler stores in MongoDB after each run.
type DailyReport struct {
	Date           time.Time `bson:"date" json:"date"`
	SalesAmount    float64   `bson:"sales_amount" json:"sales_amount"`
	PurchaseCost   float64   `bson:"purchase_cost" json:"purchase_cost"`
	Expenses       float64   `bson:"expenses" json:"expenses"`
	Profit         float64   `bson:"profit" json:"profit"`
	UnmatchedSales int       `bson:"unmatched_sales" json:"unmatched_sales"`
	InventoryItems int       `bson:"inventory_items" json:"inventory_items"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// NewDailyReport condenses a report into the stored snapshot.
func NewDailyReport(day time.Time, report *Report, now time.Time) DailyReport {
	return DailyReport{
		Date:           day,
		SalesAmount:    report.Summary.Sales,
		PurchaseCost:   report.Summary.Purchases,
		Expenses:       report.Summary.Expenses,
		Profit:         report.Summary.Profit,
		UnmatchedSales: report.Summary.UnmatchedSales,
		InventoryItems: len(report.Details.Inventory),
		CreatedAt:      now,
	}
}
