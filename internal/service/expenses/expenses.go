// Package expenses manages operating expenses. They do not touch inventory and
// are only read back by the reconciliation report.
package expenses

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

// Input is the body of an expense create or update.
type Input struct {
	Title    string     `json:"title"`
	Category string     `json:"category"`
	Amount   float64    `json:"amount"`
	Note     string     `json:"note"`
	Date     *time.Time `json:"date"`
}

func (in Input) validate() error {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("title is required: %w", models.ErrInvalidInput)
	case strings.TrimSpace(in.Category) == "":
		return fmt.Errorf("category is required: %w", models.ErrInvalidInput)
	case in.Amount <= 0:
		return fmt.Errorf("amount must be positive: %w", models.ErrInvalidInput)
	}
	return nil
}

type Service struct {
	repo   repository.ExpenseRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new expenses service instance.
func NewService(repo repository.ExpenseRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Create stores a new expense, dated now unless a date is given.
func (s *Service) Create(ctx context.Context, in Input) (*models.ExpenseRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	expense := &models.ExpenseRecord{Date: s.now()}
	apply(expense, in)

	if err := s.repo.Insert(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	s.logger.Info("expense recorded",
		zap.String("category", expense.Category),
		zap.Float64("amount", expense.Amount),
	)
	return expense, nil
}

// Update overwrites the expense fields. The date is kept unless one is sent.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, in Input) (*models.ExpenseRecord, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	expense, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update expense %s: %w", id.Hex(), err)
	}
	apply(expense, in)

	if err := s.repo.Replace(ctx, expense); err != nil {
		return nil, fmt.Errorf("update expense %s: %w", id.Hex(), err)
	}
	return expense, nil
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense %s: %w", id.Hex(), err)
	}
	return nil
}

// List returns expenses in the range, newest first.
func (s *Service) List(ctx context.Context, filter models.ExpenseFilter) ([]models.ExpenseRecord, error) {
	expenses, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

func apply(expense *models.ExpenseRecord, in Input) {
	expense.Title = strings.TrimSpace(in.Title)
	expense.Category = strings.TrimSpace(in.Category)
	expense.Amount = in.Amount
	expense.Note = in.Note
	if in.Date != nil && !in.Date.IsZero() {
		expense.Date = *in.Date
	}
}
