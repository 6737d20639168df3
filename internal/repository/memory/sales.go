package memory

import (
	"context"
	"slices"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

// SaleRepository implements repository.SaleRepository.
type SaleRepository struct {
	s *Store
}

func (r *SaleRepository) Insert(_ context.Context, sale *models.SaleRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if sale.ID.IsZero() {
		sale.ID = primitive.NewObjectID()
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.SaleRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sale, ok := r.s.sales[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &sale, nil
}

func (r *SaleRepository) Find(_ context.Context, filter models.SaleFilter) ([]models.SaleRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sales := make([]models.SaleRecord, 0, len(r.s.sales))
	for _, sale := range r.s.sales {
		if !inRange(sale.Date, filter.From, filter.To) {
			continue
		}
		if !containsName(filter.ProductNames, sale.ProductName) {
			continue
		}
		if filter.StockID != nil && sale.StockID != *filter.StockID {
			continue
		}
		sales = append(sales, sale)
	}
	slices.SortFunc(sales, func(a, b models.SaleRecord) int {
		return newestFirst(a.Date, b.Date)
	})
	return sales, nil
}

func (r *SaleRepository) Replace(_ context.Context, sale *models.SaleRecord, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.expect(sale.ID, quantity); err != nil {
		return err
	}
	r.s.sales[sale.ID] = *sale
	return nil
}

func (r *SaleRepository) Delete(_ context.Context, id primitive.ObjectID, quantity int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if err := r.expect(id, quantity); err != nil {
		return err
	}
	delete(r.s.sales, id)
	return nil
}

// expect must be called with the lock held.
func (r *SaleRepository) expect(id primitive.ObjectID, quantity int) error {
	current, ok := r.s.sales[id]
	if !ok {
		return models.ErrNotFound
	}
	if current.Quantity != quantity {
		return models.ErrConcurrentUpdate
	}
	return nil
}

func (r *SaleRepository) SoldQuantities(_ context.Context) (map[string]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sold := make(map[string]int)
	for _, sale := range r.s.sales {
		sold[sale.ProductName] += sale.Quantity
	}
	return sold, nil
}

func (r *SaleRepository) CountByStock(_ context.Context, stockID primitive.ObjectID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var count int64
	for _, sale := range r.s.sales {
		if sale.StockID == stockID {
			count++
		}
	}
	return count, nil
}
