// Package reporting builds the reconciliation report: sales matched against
// landed purchase cost, expenses, net profit and the remaining inventory.
package reporting

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/domain/pricing"
	"github.com/mamadbah2/autotrade/internal/repository"
)

// Service reads sales, stock and expenses to build reports.
type Service struct {
	stocks   repository.StockRepository
	sales    repository.SaleRepository
	expenses repository.ExpenseRepository
	location *time.Location
	logger   *zap.Logger
}

// NewService wires a new reporting service instance. Ranges are parsed in loc.
func NewService(store repository.Store, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		stocks:   store.Stocks,
		sales:    store.Sales,
		expenses: store.Expenses,
		location: loc,
		logger:   logger,
	}
}

// Location returns the time zone report days are computed in.
func (s *Service) Location() *time.Location {
	return s.location
}

// BuildReport computes the report for the closed range r. Any read failure
// aborts the whole report.
func (s *Service) BuildReport(ctx context.Context, r models.ReportRange) (*models.Report, error) {
	sales, err := s.sales.Find(ctx, models.SaleFilter{From: &r.Start, To: &r.End})
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}

	soldNames := distinctProducts(sales)
	lots := []models.StockRecord{}
	if len(soldNames) > 0 {
		lots, err = s.stocks.Find(ctx, models.StockFilter{ProductNames: soldNames})
		if err != nil {
			return nil, fmt.Errorf("load purchases: %w", err)
		}
	}

	expenses, err := s.expenses.Find(ctx, models.ExpenseFilter{From: &r.Start, To: &r.End})
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	inventory, err := s.Inventory(ctx)
	if err != nil {
		return nil, err
	}

	lotsByProduct := make(map[string][]models.StockRecord)
	for _, lot := range lots {
		lotsByProduct[lot.ProductName] = append(lotsByProduct[lot.ProductName], lot)
	}

	totalSales := decimal.Zero
	totalPurchases := decimal.Zero
	matchedProfit := decimal.Zero
	unmatched := 0
	for _, sale := range sales {
		saleTotal := pricing.SaleTotal(sale.Price, sale.Quantity, sale.Discount)
		totalSales = totalSales.Add(saleTotal)

		unitCost, ok := pricing.WeightedUnitCost(lotsByProduct[sale.ProductName])
		if !ok {
			unmatched++
			s.logger.Debug("sale has no purchase cost basis",
				zap.Int64("invoice", sale.InvoiceNumber),
				zap.String("product", sale.ProductName),
			)
			continue
		}
		cost := unitCost.Mul(decimal.NewFromInt(int64(sale.Quantity)))
		totalPurchases = totalPurchases.Add(cost)
		matchedProfit = matchedProfit.Add(saleTotal.Sub(cost))
	}

	totalExpenses := decimal.Zero
	for _, e := range expenses {
		totalExpenses = totalExpenses.Add(decimal.NewFromFloat(e.Amount))
	}

	return &models.Report{
		Summary: models.ReportSummary{
			Sales:          pricing.Float(totalSales),
			Purchases:      pricing.Float(totalPurchases),
			Expenses:       pricing.Float(totalExpenses),
			Profit:         pricing.Float(matchedProfit.Sub(totalExpenses)),
			UnmatchedSales: unmatched,
		},
		Details: models.ReportDetails{
			Sales:     sales,
			Purchases: lots,
			Expenses:  expenses,
			Inventory: inventory,
		},
		Range: r,
	}, nil
}

// Inventory derives what is left of each product as everything ever purchased
// minus everything ever sold. Products with nothing left are omitted.
func (s *Service) Inventory(ctx context.Context) ([]models.InventoryItem, error) {
	lots, err := s.stocks.Find(ctx, models.StockFilter{})
	if err != nil {
		return nil, fmt.Errorf("load stock: %w", err)
	}
	sold, err := s.sales.SoldQuantities(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sold quantities: %w", err)
	}

	byProduct := make(map[string]*models.InventoryItem)
	earliest := make(map[string]time.Time)
	for _, lot := range lots {
		item, ok := byProduct[lot.ProductName]
		if !ok {
			item = &models.InventoryItem{ProductName: lot.ProductName}
			byProduct[lot.ProductName] = item
		}
		item.Lots++
		item.Quantity += lot.PurchasedQuantity
		if first, seen := earliest[lot.ProductName]; !seen || lot.PurchaseDate.Before(first) {
			earliest[lot.ProductName] = lot.PurchaseDate
			item.SerialNumber = lot.SerialNumber
			item.Type = lot.Type
			item.Supplier = lot.Supplier
		}
	}

	items := make([]models.InventoryItem, 0, len(byProduct))
	for name, item := range byProduct {
		item.Quantity -= sold[name]
		if item.Quantity > 0 {
			items = append(items, *item)
		}
	}
	slices.SortFunc(items, func(a, b models.InventoryItem) int {
		return strings.Compare(a.ProductName, b.ProductName)
	})
	return items, nil
}

func distinctProducts(sales []models.SaleRecord) []string {
	seen := make(map[string]struct{}, len(sales))
	names := make([]string, 0, len(sales))
	for _, sale := range sales {
		if _, ok := seen[sale.ProductName]; ok {
			continue
		}
		seen[sale.ProductName] = struct{}{}
		names = append(names, sale.ProductName)
	}
	return names
}
