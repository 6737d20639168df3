// Package employees keeps the staff roster. Login credentials are not part of
// it.
package employees

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/repository"
)

// PermissionsInput sets individual permissions. Nil fields keep their value.
type PermissionsInput struct {
	Inventory *bool `json:"inventory"`
	Purchases *bool `json:"purchases"`
	Sales     *bool `json:"sales"`
	Expenses  *bool `json:"expenses"`
	Reports   *bool `json:"reports"`
}

// Input is the body of an employee create or update. On update nil fields
// keep their value.
type Input struct {
	RealName    *string           `json:"realName"`
	Address     *string           `json:"address"`
	Salary      *float64          `json:"salary"`
	Phone       *string           `json:"phone"`
	HireDate    *time.Time        `json:"hireDate"`
	Notes       *string           `json:"notes"`
	Permissions *PermissionsInput `json:"permissions"`
}

// Service manages the roster.
type Service struct {
	repo   repository.EmployeeRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new employee service instance.
func NewService(repo repository.EmployeeRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Create adds an employee. A real name is required; every permission starts
// off unless set.
func (s *Service) Create(ctx context.Context, in Input) (*models.Employee, error) {
	if in.RealName == nil || strings.TrimSpace(*in.RealName) == "" {
		return nil, fmt.Errorf("real name is required: %w", models.ErrInvalidInput)
	}
	ts := s.now()
	employee := &models.Employee{CreatedAt: ts}
	if err := apply(employee, in); err != nil {
		return nil, err
	}
	employee.UpdatedAt = ts

	if err := s.repo.Insert(ctx, employee); err != nil {
		return nil, fmt.Errorf("create employee: %w", err)
	}
	s.logger.Info("employee added", zap.String("employee_id", employee.ID.Hex()))
	return employee, nil
}

// Update changes the fields sent and merges the permissions sent into the
// current ones.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, in Input) (*models.Employee, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update employee %s: %w", id.Hex(), err)
	}
	if err := apply(employee, in); err != nil {
		return nil, err
	}
	employee.UpdatedAt = s.now()

	if err := s.repo.Replace(ctx, employee); err != nil {
		return nil, fmt.Errorf("update employee %s: %w", id.Hex(), err)
	}
	return employee, nil
}

// Delete removes an employee.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete employee %s: %w", id.Hex(), err)
	}
	s.logger.Info("employee removed", zap.String("employee_id", id.Hex()))
	return nil
}

// List returns the roster in the order employees were added.
func (s *Service) List(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

func apply(e *models.Employee, in Input) error {
	if in.RealName != nil {
		name := strings.TrimSpace(*in.RealName)
		if name == "" {
			return fmt.Errorf("real name must not be empty: %w", models.ErrInvalidInput)
		}
		e.RealName = name
	}
	if in.Salary != nil {
		if *in.Salary < 0 {
			return fmt.Errorf("salary must not be negative: %w", models.ErrInvalidInput)
		}
		e.Salary = *in.Salary
	}
	if in.Address != nil {
		e.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		e.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.HireDate != nil {
		hired := *in.HireDate
		e.HireDate = &hired
	}
	if in.Notes != nil {
		e.Notes = *in.Notes
	}
	if p := in.Permissions; p != nil {
		setIf(&e.Permissions.Inventory, p.Inventory)
		setIf(&e.Permissions.Purchases, p.Purchases)
		setIf(&e.Permissions.Sales, p.Sales)
		setIf(&e.Permissions.Expenses, p.Expenses)
		setIf(&e.Permissions.Reports, p.Reports)
	}
	return nil
}

func setIf(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
