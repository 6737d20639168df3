// Package sales records sales against stock lots. Every create, edit and
// delete moves the lot's on-hand quantity by the same amount the sale does.
package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/domain/pricing"
	"github.com/mamadbah2/autotrade/internal/repository"
)

const invoiceCounter = "sales"

// Inventory reserves and releases lot quantity.
type Inventory interface {
	Reserve(ctx context.Context, stockID primitive.ObjectID, qty int) (*models.StockRecord, error)
	Release(ctx context.Context, stockID primitive.ObjectID, qty int) (*models.StockRecord, error)
}

// CreateInput is the body of a new sale.
type CreateInput struct {
	StockID  string     `json:"stockId"`
	Buyer    string     `json:"buyer"`
	Price    float64    `json:"price"`
	Quantity int        `json:"quantity"`
	Discount float64    `json:"discount"`
	Date     *time.Time `json:"date"`
}

// EditInput carries the fields of a sale edit. Nil fields keep their value.
// The sold lot and its copied details cannot be changed.
type EditInput struct {
	Buyer    *string    `json:"buyer"`
	Price    *float64   `json:"price"`
	Quantity *int       `json:"quantity"`
	Discount *float64   `json:"discount"`
	Date     *time.Time `json:"date"`
}

// Filter bounds sale listings; nil bounds are open.
type Filter struct {
	From *time.Time
	To   *time.Time
}

// Service creates, edits and deletes sales.
type Service struct {
	sales     repository.SaleRepository
	counters  repository.CounterRepository
	inventory Inventory
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new sales service instance.
func NewService(sales repository.SaleRepository, counters repository.CounterRepository, inventory Inventory, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		sales:     sales,
		counters:  counters,
		inventory: inventory,
		logger:    logger,
		now:       time.Now,
	}
}

// Create reserves the quantity on the lot, then stores the sale with a copy of
// the lot's details. A failed store gives the quantity back.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.SaleRecord, error) {
	stockID, err := primitive.ObjectIDFromHex(in.StockID)
	if err != nil {
		return nil, fmt.Errorf("stock id %q: %w", in.StockID, models.ErrInvalidInput)
	}
	buyer := strings.TrimSpace(in.Buyer)
	if err := validate(buyer, in.Price, in.Quantity, in.Discount); err != nil {
		return nil, err
	}

	stock, err := s.inventory.Reserve(ctx, stockID, in.Quantity)
	if err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}

	sale := &models.SaleRecord{
		Buyer:    buyer,
		Price:    in.Price,
		Quantity: in.Quantity,
		Discount: in.Discount,
		Total:    pricing.Float(pricing.SaleTotal(in.Price, in.Quantity, in.Discount)),
		Date:     s.now(),
	}
	if in.Date != nil && !in.Date.IsZero() {
		sale.Date = *in.Date
	}
	sale.FreezeFrom(stock)

	invoice, err := s.counters.Next(ctx, invoiceCounter)
	if err == nil {
		sale.InvoiceNumber = invoice
		err = s.sales.Insert(ctx, sale)
	}
	if err != nil {
		s.giveBack(ctx, stockID, in.Quantity, err)
		return nil, fmt.Errorf("create sale: %w", err)
	}

	s.logger.Info("sale created",
		zap.Int64("invoice", sale.InvoiceNumber),
		zap.String("stock_id", stockID.Hex()),
		zap.Int("qty", sale.Quantity),
		zap.Float64("total", sale.Total),
	)
	return sale, nil
}

// Edit updates a sale. A larger quantity reserves the difference on the lot,
// a smaller one releases it; the total is recomputed. If the sale changed
// since it was read, the difference is given back and ErrConcurrentUpdate is
// returned.
func (s *Service) Edit(ctx context.Context, id primitive.ObjectID, in EditInput) (*models.SaleRecord, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("edit sale %s: %w", id.Hex(), err)
	}

	updated := *sale
	if in.Buyer != nil {
		updated.Buyer = strings.TrimSpace(*in.Buyer)
	}
	if in.Price != nil {
		updated.Price = *in.Price
	}
	if in.Quantity != nil {
		updated.Quantity = *in.Quantity
	}
	if in.Discount != nil {
		updated.Discount = *in.Discount
	}
	if in.Date != nil && !in.Date.IsZero() {
		updated.Date = *in.Date
	}
	if err := validate(updated.Buyer, updated.Price, updated.Quantity, updated.Discount); err != nil {
		return nil, err
	}
	updated.Total = pricing.Float(pricing.SaleTotal(updated.Price, updated.Quantity, updated.Discount))

	delta := updated.Quantity - sale.Quantity
	if err := s.adjust(ctx, sale.StockID, delta); err != nil {
		return nil, fmt.Errorf("edit sale %s: %w", id.Hex(), err)
	}

	if err := s.sales.Replace(ctx, &updated, sale.Quantity); err != nil {
		if undoErr := s.adjust(ctx, sale.StockID, -delta); undoErr != nil {
			s.logger.Error("failed to restore stock after sale edit error",
				zap.String("sale_id", id.Hex()),
				zap.NamedError("edit_error", err),
				zap.NamedError("rollback_error", undoErr),
			)
		}
		return nil, fmt.Errorf("edit sale %s: %w", id.Hex(), err)
	}

	s.logger.Info("sale edited",
		zap.Int64("invoice", updated.InvoiceNumber),
		zap.Int("qty_delta", delta),
		zap.Float64("total", updated.Total),
	)
	return &updated, nil
}

// Delete removes a sale and puts its whole quantity back on the lot. A sale
// whose lot no longer exists is removed without restocking.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete sale %s: %w", id.Hex(), err)
	}

	restocked := true
	if _, err := s.inventory.Release(ctx, sale.StockID, sale.Quantity); err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return fmt.Errorf("delete sale %s: %w", id.Hex(), err)
		}
		restocked = false
		s.logger.Warn("sold lot is gone, nothing to restock",
			zap.String("sale_id", id.Hex()),
			zap.String("stock_id", sale.StockID.Hex()),
		)
	}

	if err := s.sales.Delete(ctx, id, sale.Quantity); err != nil {
		if restocked {
			if _, undoErr := s.inventory.Reserve(ctx, sale.StockID, sale.Quantity); undoErr != nil {
				s.logger.Error("failed to re-reserve stock after sale delete error",
					zap.String("sale_id", id.Hex()),
					zap.NamedError("delete_error", err),
					zap.NamedError("rollback_error", undoErr),
				)
			}
		}
		return fmt.Errorf("delete sale %s: %w", id.Hex(), err)
	}

	s.logger.Info("sale deleted", zap.Int64("invoice", sale.InvoiceNumber), zap.Int("qty", sale.Quantity))
	return nil
}

// Get returns one sale.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.SaleRecord, error) {
	sale, err := s.sales.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get sale %s: %w", id.Hex(), err)
	}
	return sale, nil
}

// List returns sales in the filter range, newest first.
func (s *Service) List(ctx context.Context, filter Filter) ([]models.SaleRecord, error) {
	sales, err := s.sales.Find(ctx, models.SaleFilter{From: filter.From, To: filter.To})
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return sales, nil
}

func (s *Service) adjust(ctx context.Context, stockID primitive.ObjectID, delta int) error {
	var err error
	switch {
	case delta > 0:
		_, err = s.inventory.Reserve(ctx, stockID, delta)
	case delta < 0:
		_, err = s.inventory.Release(ctx, stockID, -delta)
	}
	return err
}

func (s *Service) giveBack(ctx context.Context, stockID primitive.ObjectID, qty int, cause error) {
	if _, err := s.inventory.Release(ctx, stockID, qty); err != nil {
		s.logger.Error("failed to release stock after sale error",
			zap.String("stock_id", stockID.Hex()),
			zap.Int("qty", qty),
			zap.NamedError("sale_error", cause),
			zap.NamedError("rollback_error", err),
		)
	}
}

func validate(buyer string, price float64, quantity int, discount float64) error {
	switch {
	case buyer == "":
		return fmt.Errorf("buyer is required: %w", models.ErrInvalidInput)
	case price <= 0:
		return fmt.Errorf("price must be positive: %w", models.ErrInvalidInput)
	case quantity <= 0:
		return fmt.Errorf("quantity must be positive: %w", models.ErrInvalidInput)
	case discount < 0 || discount > 100:
		return fmt.Errorf("discount must be between 0 and 100: %w", models.ErrInvalidInput)
	}
	return nil
}
