// Package sheets appends daily report summaries to a Google spreadsheet so the
// owner can follow the figures without opening the API.
package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/autotrade/internal/config"
	"github.com/mamadbah2/autotrade/internal/domain/models"
)

const dailyReportsRange = "DailyReports!A:G"

// Archive writes daily summaries through the official Google Sheets API.
type Archive struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewArchive builds a Google Sheets backed archive.
func NewArchive(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*Archive, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &Archive{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendDailyReport adds one row per report to the DailyReports tab.
func (a *Archive) AppendDailyReport(ctx context.Context, report models.DailyReport) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{Row(report)}}

	call := a.service.Spreadsheets.Values.Append(a.spreadsheetID, dailyReportsRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append daily report into range %s: %w", dailyReportsRange, err)
	}

	a.logger.Debug("daily report appended to sheet", zap.Time("date", report.Date))
	return nil
}

// Row lays a snapshot out as date, sales, cost, expenses, profit, unmatched
// sales and inventory item count.
func Row(report models.DailyReport) []interface{} {
	return []interface{}{
		report.Date.Format("2006-01-02"),
		report.SalesAmount,
		report.PurchaseCost,
		report.Expenses,
		report.Profit,
		report.UnmatchedSales,
		report.InventoryItems,
	}
}
