package memory

import (
	"context"
	"slices"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

// StockRepository implements repository.StockRepository.
type StockRepository struct {
	s *Store
}

func (r *StockRepository) Insert(_ context.Context, record *models.StockRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.stocks {
		if existing.SerialNumber == record.SerialNumber {
			return models.ErrDuplicateSerialNumber
		}
	}
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	r.s.stocks[record.ID] = *record
	return nil
}

func (r *StockRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record, ok := r.s.stocks[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &record, nil
}

func (r *StockRepository) Find(_ context.Context, filter models.StockFilter) ([]models.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	records := make([]models.StockRecord, 0, len(r.s.stocks))
	for _, record := range r.s.stocks {
		if !containsName(filter.ProductNames, record.ProductName) {
			continue
		}
		if !inRange(record.PurchaseDate, filter.From, filter.To) {
			continue
		}
		if filter.InStockOnly && record.Quantity <= 0 {
			continue
		}
		records = append(records, record)
	}
	slices.SortFunc(records, func(a, b models.StockRecord) int {
		return newestFirst(a.PurchaseDate, b.PurchaseDate)
	})
	return records, nil
}

func (r *StockRepository) Reserve(_ context.Context, id primitive.ObjectID, qty int) (*models.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record, ok := r.s.stocks[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if record.Quantity < qty {
		return nil, models.ErrInsufficientStock
	}
	record.Quantity -= qty
	record.UpdatedAt = r.s.now()
	r.s.stocks[id] = record
	return &record, nil
}

func (r *StockRepository) Release(_ context.Context, id primitive.ObjectID, qty int) (*models.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record, ok := r.s.stocks[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if record.Quantity+qty > record.PurchasedQuantity {
		return nil, models.ErrOverRelease
	}
	record.Quantity += qty
	record.UpdatedAt = r.s.now()
	r.s.stocks[id] = record
	return &record, nil
}

func (r *StockRepository) Revise(_ context.Context, id primitive.ObjectID, rev models.StockRevision) (*models.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	record, ok := r.s.stocks[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if record.Quantity+rev.PurchasedQuantity-record.PurchasedQuantity < 0 {
		return nil, models.ErrInsufficientStock
	}
	for otherID, other := range r.s.stocks {
		if otherID != id && other.SerialNumber == rev.SerialNumber {
			return nil, models.ErrDuplicateSerialNumber
		}
	}

	before := record
	rev.Apply(&record)
	r.s.stocks[id] = record
	return &before, nil
}

func (r *StockRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.stocks[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.s.stocks, id)
	return nil
}
