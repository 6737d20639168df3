package memory

import (
	"context"
	"slices"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

// ExpenseRepository implements repository.ExpenseRepository.
type ExpenseRepository struct {
	s *Store
}

func (r *ExpenseRepository) Insert(_ context.Context, expense *models.ExpenseRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if expense.ID.IsZero() {
		expense.ID = primitive.NewObjectID()
	}
	r.s.expenses[expense.ID] = *expense
	return nil
}

func (r *ExpenseRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.ExpenseRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	expense, ok := r.s.expenses[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &expense, nil
}

func (r *ExpenseRepository) Find(_ context.Context, filter models.ExpenseFilter) ([]models.ExpenseRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	expenses := make([]models.ExpenseRecord, 0, len(r.s.expenses))
	for _, expense := range r.s.expenses {
		if inRange(expense.Date, filter.From, filter.To) {
			expenses = append(expenses, expense)
		}
	}
	slices.SortFunc(expenses, func(a, b models.ExpenseRecord) int {
		return newestFirst(a.Date, b.Date)
	})
	return expenses, nil
}

func (r *ExpenseRepository) Replace(_ context.Context, expense *models.ExpenseRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.expenses[expense.ID]; !ok {
		return models.ErrNotFound
	}
	r.s.expenses[expense.ID] = *expense
	return nil
}

func (r *ExpenseRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.expenses[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.s.expenses, id)
	return nil
}
