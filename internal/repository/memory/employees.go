package memory

import (
	"context"
	"slices"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

// EmployeeRepository implements repository.EmployeeRepository.
type EmployeeRepository struct {
	s *Store
}

func (r *EmployeeRepository) Insert(_ context.Context, employee *models.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if employee.ID.IsZero() {
		employee.ID = primitive.NewObjectID()
	}
	r.s.employees[employee.ID] = *employee
	return nil
}

func (r *EmployeeRepository) FindByID(_ context.Context, id primitive.ObjectID) (*models.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	employee, ok := r.s.employees[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return &employee, nil
}

func (r *EmployeeRepository) List(_ context.Context) ([]models.Employee, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	employees := make([]models.Employee, 0, len(r.s.employees))
	for _, employee := range r.s.employees {
		employees = append(employees, employee)
	}
	slices.SortFunc(employees, func(a, b models.Employee) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return employees, nil
}

func (r *EmployeeRepository) Replace(_ context.Context, employee *models.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[employee.ID]; !ok {
		return models.ErrNotFound
	}
	r.s.employees[employee.ID] = *employee
	return nil
}

func (r *EmployeeRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.employees[id]; !ok {
		return models.ErrNotFound
	}
	delete(r.s.employees, id)
	return nil
}
