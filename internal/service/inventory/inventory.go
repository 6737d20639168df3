// Package inventory adjusts the on-hand quantity of stock lots.
package inventory

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/repository"
)

// Service reserves and releases quantity on stock records.
type Service struct {
	stocks repository.StockRepository
	logger *zap.Logger
}

// NewService wires a new inventory service instance.
func NewService(stocks repository.StockRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{stocks: stocks, logger: logger}
}

// Reserve takes qty units off the lot. The lot is left untouched when fewer
// than qty units are on hand.
func (s *Service) Reserve(ctx context.Context, stockID primitive.ObjectID, qty int) (*models.StockRecord, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("reserve %d units: %w", qty, models.ErrInvalidInput)
	}
	record, err := s.stocks.Reserve(ctx, stockID, qty)
	if err != nil {
		return nil, fmt.Errorf("reserve stock %s: %w", stockID.Hex(), err)
	}
	s.logger.Debug("stock reserved",
		zap.String("stock_id", stockID.Hex()),
		zap.Int("qty", qty),
		zap.Int("remaining", record.Quantity),
	)
	return record, nil
}

// Release puts qty units back on the lot, never beyond its purchased quantity.
func (s *Service) Release(ctx context.Context, stockID primitive.ObjectID, qty int) (*models.StockRecord, error) {
	if qty <= 0 {
		return nil, fmt.Errorf("release %d units: %w", qty, models.ErrInvalidInput)
	}
	record, err := s.stocks.Release(ctx, stockID, qty)
	if err != nil {
		return nil, fmt.Errorf("release stock %s: %w", stockID.Hex(), err)
	}
	s.logger.Debug("stock released",
		zap.String("stock_id", stockID.Hex()),
		zap.Int("qty", qty),
		zap.Int("remaining", record.Quantity),
	)
	return record, nil
}

// ListProducts returns the lots currently on hand, or every lot when all is set.
func (s *Service) ListProducts(ctx context.Context, all bool) ([]models.StockRecord, error) {
	records, err := s.stocks.Find(ctx, models.StockFilter{InStockOnly: !all})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return records, nil
}
