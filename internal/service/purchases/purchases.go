// Package purchases records purchased lots and keeps supplier ledgers in step
// with them.
package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/domain/pricing"
	"github.com/mamadbah2/autotrade/internal/repository"
)

const invoiceCounter = "purchases"

// Settlement applies purchase totals to supplier ledgers.
type Settlement interface {
	ApplyPurchase(ctx context.Context, supplierName string, purchaseTotal float64) (*models.SupplierLedger, error)
	ApplyPurchaseDelta(ctx context.Context, supplierName string, delta float64) (*models.SupplierLedger, error)
}

// Report is the response of the purchases report endpoint.
type Report struct {
	Purchases      []models.StockRecord `json:"purchases"`
	TotalPurchases float64              `json:"totalPurchases"`
	Count          int                  `json:"count"`
}

// Service creates, revises and deletes purchased lots.
type Service struct {
	stocks     repository.StockRepository
	sales      repository.SaleRepository
	counters   repository.CounterRepository
	settlement Settlement
	location   *time.Location
	logger     *zap.Logger
	now        func() time.Time
}

// NewService wires a new purchases service instance. Period boundaries are
// computed in loc.
func NewService(store repository.Store, settlement Settlement, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		stocks:     store.Stocks,
		sales:      store.Sales,
		counters:   store.Counters,
		settlement: settlement,
		location:   loc,
		logger:     logger,
		now:        time.Now,
	}
}

// Create stores a new lot and adds its total to the supplier ledger. If the
// ledger cannot be updated the lot is removed again.
func (s *Service) Create(ctx context.Context, in Input) (*models.StockRecord, error) {
	n, err := in.normalize()
	if err != nil {
		return nil, err
	}

	invoice, err := s.counters.Next(ctx, invoiceCounter)
	if err != nil {
		return nil, fmt.Errorf("allocate purchase invoice: %w", err)
	}

	ts := s.now()
	record := &models.StockRecord{
		InvoiceNumber: invoice,
		SerialNumber:  n.SerialNumber,
		CreatedAt:     ts,
	}
	if record.SerialNumber == "" {
		record.SerialNumber = generateSerial(ts)
	}
	rev := s.revision(n, record.SerialNumber, ts)
	// Applying to an empty lot puts the whole purchased quantity on hand.
	rev.Apply(record)

	if err := s.stocks.Insert(ctx, record); err != nil {
		return nil, fmt.Errorf("create purchase %s: %w", record.SerialNumber, err)
	}

	if _, err := s.settlement.ApplyPurchase(ctx, record.Supplier, record.Total); err != nil {
		if delErr := s.stocks.Delete(ctx, record.ID); delErr != nil {
			s.logger.Error("failed to roll back purchase after ledger error",
				zap.String("stock_id", record.ID.Hex()),
				zap.NamedError("ledger_error", err),
				zap.NamedError("rollback_error", delErr),
			)
		}
		return nil, fmt.Errorf("settle purchase %s: %w", record.SerialNumber, err)
	}

	s.logger.Info("purchase created",
		zap.String("stock_id", record.ID.Hex()),
		zap.String("serial", record.SerialNumber),
		zap.String("supplier", record.Supplier),
		zap.Float64("total", record.Total),
	)
	return record, nil
}

// Revise rewrites a lot. The on-hand quantity moves by the change in purchased
// quantity and the ledger receives the change in total. When the supplier
// changes, the old supplier is credited the old total and the new one charged
// the new total.
func (s *Service) Revise(ctx context.Context, id primitive.ObjectID, in Input) (*models.StockRecord, error) {
	n, err := in.normalize()
	if err != nil {
		return nil, err
	}

	serial := n.SerialNumber
	if serial == "" {
		current, err := s.stocks.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("revise purchase %s: %w", id.Hex(), err)
		}
		serial = current.SerialNumber
	}

	rev := s.revision(n, serial, s.now())
	before, err := s.stocks.Revise(ctx, id, rev)
	if err != nil {
		return nil, fmt.Errorf("revise purchase %s: %w", id.Hex(), err)
	}

	if err := s.settleRevision(ctx, before, rev); err != nil {
		if _, undoErr := s.stocks.Revise(ctx, id, revisionOf(before)); undoErr != nil {
			s.logger.Error("failed to restore purchase after ledger error",
				zap.String("stock_id", id.Hex()),
				zap.NamedError("ledger_error", err),
				zap.NamedError("rollback_error", undoErr),
			)
		}
		return nil, fmt.Errorf("settle revised purchase %s: %w", id.Hex(), err)
	}

	after := *before
	rev.Apply(&after)
	s.logger.Info("purchase revised",
		zap.String("stock_id", id.Hex()),
		zap.Float64("old_total", before.Total),
		zap.Float64("new_total", after.Total),
	)
	return &after, nil
}

func (s *Service) settleRevision(ctx context.Context, before *models.StockRecord, rev models.StockRevision) error {
	if before.Supplier == rev.Supplier {
		delta := pricing.Float(decimal.NewFromFloat(rev.Total).Sub(decimal.NewFromFloat(before.Total)))
		_, err := s.settlement.ApplyPurchaseDelta(ctx, rev.Supplier, delta)
		return err
	}

	if _, err := s.settlement.ApplyPurchaseDelta(ctx, before.Supplier, -before.Total); err != nil {
		return err
	}
	if _, err := s.settlement.ApplyPurchase(ctx, rev.Supplier, rev.Total); err != nil {
		if _, undoErr := s.settlement.ApplyPurchaseDelta(ctx, before.Supplier, before.Total); undoErr != nil {
			s.logger.Error("failed to restore previous supplier ledger",
				zap.String("supplier", before.Supplier),
				zap.NamedError("ledger_error", err),
				zap.NamedError("rollback_error", undoErr),
			)
		}
		return err
	}
	return nil
}

// Delete removes a lot no sale refers to and takes its total off the ledger.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	record, err := s.stocks.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete purchase %s: %w", id.Hex(), err)
	}

	refs, err := s.sales.CountByStock(ctx, id)
	if err != nil {
		return fmt.Errorf("delete purchase %s: %w", id.Hex(), err)
	}
	if refs > 0 {
		return fmt.Errorf("delete purchase %s with %d sales: %w", id.Hex(), refs, models.ErrStockInUse)
	}

	if err := s.stocks.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete purchase %s: %w", id.Hex(), err)
	}

	if _, err := s.settlement.ApplyPurchaseDelta(ctx, record.Supplier, -record.Total); err != nil {
		if insErr := s.stocks.Insert(ctx, record); insErr != nil {
			s.logger.Error("failed to restore purchase after ledger error",
				zap.String("stock_id", id.Hex()),
				zap.NamedError("ledger_error", err),
				zap.NamedError("rollback_error", insErr),
			)
		}
		return fmt.Errorf("settle deleted purchase %s: %w", id.Hex(), err)
	}

	s.logger.Info("purchase deleted", zap.String("stock_id", id.Hex()), zap.Float64("total", record.Total))
	return nil
}

// List returns the lots bought in the given period, newest first.
func (s *Service) List(ctx context.Context, period string) ([]models.StockRecord, error) {
	from, err := periodStart(period, s.now().In(s.location))
	if err != nil {
		return nil, err
	}
	records, err := s.stocks.Find(ctx, models.StockFilter{From: from})
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return records, nil
}

// Report sums the totals of the lots bought between from and to. Nil bounds
// are open.
func (s *Service) Report(ctx context.Context, from, to *time.Time) (*Report, error) {
	records, err := s.stocks.Find(ctx, models.StockFilter{From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("purchases report: %w", err)
	}

	total := decimal.Zero
	for _, r := range records {
		total = total.Add(decimal.NewFromFloat(r.Total))
	}
	return &Report{
		Purchases:      records,
		TotalPurchases: pricing.Float(total),
		Count:          len(records),
	}, nil
}

func (s *Service) revision(n normalized, serial string, ts time.Time) models.StockRevision {
	purchaseDate := ts
	if n.PurchaseDate != nil && !n.PurchaseDate.IsZero() {
		purchaseDate = *n.PurchaseDate
	}
	return models.StockRevision{
		SerialNumber:      serial,
		ProductName:       n.ProductName,
		Type:              n.stockType,
		Supplier:          n.Supplier,
		PurchasedQuantity: n.Quantity,
		Price:             n.Price,
		ShippingCost:      n.ShippingCost,
		CustomsFee:        n.CustomsFee,
		Total:             pricing.Float(pricing.PurchaseTotal(n.Quantity, n.Price, n.ShippingCost, n.CustomsFee)),
		Model:             n.Model,
		ManufactureYear:   n.ManufactureYear,
		Color:             n.Color,
		ChassisNumber:     n.ChassisNumber,
		Condition:         n.Condition,
		Notes:             n.Notes,
		PurchaseDate:      purchaseDate,
		UpdatedAt:         ts,
	}
}

func revisionOf(r *models.StockRecord) models.StockRevision {
	return models.StockRevision{
		SerialNumber:      r.SerialNumber,
		ProductName:       r.ProductName,
		Type:              r.Type,
		Supplier:          r.Supplier,
		PurchasedQuantity: r.PurchasedQuantity,
		Price:             r.Price,
		ShippingCost:      r.ShippingCost,
		CustomsFee:        r.CustomsFee,
		Total:             r.Total,
		Model:             r.Model,
		ManufactureYear:   r.ManufactureYear,
		Color:             r.Color,
		ChassisNumber:     r.ChassisNumber,
		Condition:         r.Condition,
		Notes:             r.Notes,
		PurchaseDate:      r.PurchaseDate,
		UpdatedAt:         r.UpdatedAt,
	}
}

func generateSerial(ts time.Time) string {
	return fmt.Sprintf("%d-%s", ts.UnixMilli(), uuid.NewString()[:8])
}

// periodStart maps a listing period to its lower bound. "all" and "" are
// unbounded.
func periodStart(period string, now time.Time) (*time.Time, error) {
	var start time.Time
	switch period {
	case "", "all":
		return nil, nil
	case "daily":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "weekly":
		start = now.Add(-7 * 24 * time.Hour)
	case "monthly":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	default:
		return nil, fmt.Errorf("unknown period %q: %w", period, models.ErrInvalidInput)
	}
	return &start, nil
}
