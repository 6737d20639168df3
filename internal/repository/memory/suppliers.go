package memory

import (
	"context"
	"slices"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

// SupplierRepository implements repository.SupplierRepository.
type SupplierRepository struct {
	s *Store
}

func (r *SupplierRepository) Insert(_ context.Context, ledger *models.SupplierLedger) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.byName(ledger.Name); ok {
		return models.ErrDuplicateSupplier
	}
	if ledger.ID.IsZero() {
		ledger.ID = primitive.NewObjectID()
	}
	ledger.ProductsSupplied = slices.Clone(ledger.ProductsSupplied)
	r.s.suppliers[ledger.ID] = *ledger
	return nil
}

func (r *SupplierRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.SupplierLedger, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ledger, ok := r.s.suppliers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return cloneLedger(ledger), nil
}

func (r *SupplierRepository) FindByName(_ context.Context, name string) (*models.SupplierLedger, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ledger, ok := r.byName(name)
	if !ok {
		return nil, models.ErrNotFound
	}
	return cloneLedger(ledger), nil
}

func (r *SupplierRepository) List(_ context.Context) ([]models.SupplierLedger, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ledgers := make([]models.SupplierLedger, 0, len(r.s.suppliers))
	for _, ledger := range r.s.suppliers {
		ledgers = append(ledgers, *cloneLedger(ledger))
	}
	slices.SortFunc(ledgers, func(a, b models.SupplierLedger) int {
		return strings.Compare(a.Name, b.Name)
	})
	return ledgers, nil
}

func (r *SupplierRepository) AddSpend(_ context.Context, name string, amount float64) (*models.SupplierLedger, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	ledger, ok := r.byName(name)
	if !ok {
		ledger = models.SupplierLedger{
			ID:               primitive.NewObjectID(),
			Name:             name,
			ProductsSupplied: []string{},
			CreatedAt:        now,
		}
	}
	ledger.TotalSpent += amount
	ledger.Remaining = ledger.TotalSpent - ledger.CashPaid
	ledger.UpdatedAt = now
	r.s.suppliers[ledger.ID] = ledger
	return cloneLedger(ledger), nil
}

func (r *SupplierRepository) AddPayment(_ context.Context, id primitive.ObjectID, amount float64) (*models.SupplierLedger, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ledger, ok := r.s.suppliers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	ledger.CashPaid += amount
	ledger.Remaining = ledger.TotalSpent - ledger.CashPaid
	ledger.UpdatedAt = r.s.now()
	r.s.suppliers[id] = ledger
	return cloneLedger(ledger), nil
}

func (r *SupplierRepository) Update(_ context.Context, id primitive.ObjectID, update models.SupplierUpdate) (*models.SupplierLedger, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ledger, ok := r.s.suppliers[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if other, taken := r.byName(update.Name); taken && other.ID != id {
		return nil, models.ErrDuplicateSupplier
	}
	ledger.Name = update.Name
	ledger.ProductsSupplied = slices.Clone(update.ProductsSupplied)
	ledger.CashPaid = update.CashPaid
	ledger.Remaining = ledger.TotalSpent - ledger.CashPaid
	ledger.UpdatedAt = r.s.now()
	r.s.suppliers[id] = ledger
	return cloneLedger(ledger), nil
}

func (r *SupplierRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.suppliers[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.s.suppliers, id)
	return nil
}

// byName must be called with the lock held.
func (r *SupplierRepository) byName(name string) (models.SupplierLedger, bool) {
	for _, ledger := range r.s.suppliers {
		if ledger.Name == name {
			return ledger, true
		}
	}
	return models.SupplierLedger{}, false
}

func cloneLedger(ledger models.SupplierLedger) *models.SupplierLedger {
	ledger.ProductsSupplied = slices.Clone(ledger.ProductsSupplied)
	return &ledger
}
