// Package suppliers keeps the running balance owed to each supplier.
package suppliers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/repository"
)

// Input carries the manually entered supplier fields. TotalSpent is only used
// as an opening balance on creation.
type Input struct {
	Name             string   `json:"name"`
	ProductsSupplied []string `json:"productsSupplied"`
	TotalSpent       float64  `json:"totalSpent"`
	CashPaid         float64  `json:"cashPaid"`
}

func (in Input) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("supplier name is required: %w", models.ErrInvalidInput)
	}
	if in.TotalSpent < 0 || in.CashPaid < 0 {
		return fmt.Errorf("supplier amounts must not be negative: %w", models.ErrInvalidInput)
	}
	return nil
}

// Service applies purchase totals and payments to supplier ledgers.
type Service struct {
	repo   repository.SupplierRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new supplier service instance.
func NewService(repo repository.SupplierRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// ApplyPurchase adds a purchase total to the ledger named supplierName,
// opening the ledger on the first purchase. Names match exactly.
func (s *Service) ApplyPurchase(ctx context.Context, supplierName string, purchaseTotal float64) (*models.SupplierLedger, error) {
	if supplierName == "" {
		return nil, fmt.Errorf("apply purchase: supplier name is required: %w", models.ErrInvalidInput)
	}
	ledger, err := s.repo.AddSpend(ctx, supplierName, purchaseTotal)
	if err != nil {
		return nil, fmt.Errorf("apply purchase to %q: %w", supplierName, err)
	}
	s.logger.Info("supplier ledger updated",
		zap.String("supplier", supplierName),
		zap.Float64("amount", purchaseTotal),
		zap.Float64("remaining", ledger.Remaining),
	)
	return ledger, nil
}

// ApplyPurchaseDelta applies the change of an edited purchase total. A zero
// delta writes nothing and returns the current ledger, or nil if none exists.
func (s *Service) ApplyPurchaseDelta(ctx context.Context, supplierName string, delta float64) (*models.SupplierLedger, error) {
	if delta == 0 {
		ledger, err := s.repo.FindByName(ctx, supplierName)
		if errors.Is(err, models.ErrNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("load supplier %q: %w", supplierName, err)
		}
		return ledger, nil
	}
	return s.ApplyPurchase(ctx, supplierName, delta)
}

// Create opens a ledger with an optional opening balance.
func (s *Service) Create(ctx context.Context, in Input) (*models.SupplierLedger, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	ts := s.now()
	ledger := &models.SupplierLedger{
		Name:             strings.TrimSpace(in.Name),
		ProductsSupplied: normalizeProducts(in.ProductsSupplied),
		TotalSpent:       in.TotalSpent,
		CashPaid:         in.CashPaid,
		Remaining:        in.TotalSpent - in.CashPaid,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}
	if err := s.repo.Insert(ctx, ledger); err != nil {
		return nil, fmt.Errorf("create supplier %q: %w", ledger.Name, err)
	}
	return ledger, nil
}

// List returns every supplier ledger.
func (s *Service) List(ctx context.Context) ([]models.SupplierLedger, error) {
	ledgers, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	return ledgers, nil
}

// Get returns one supplier ledger.
func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.SupplierLedger, error) {
	ledger, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get supplier %s: %w", id.Hex(), err)
	}
	return ledger, nil
}

// Update edits the name, product list and cash paid. totalSpent stays driven
// by purchases; a rename does not touch historical purchases.
func (s *Service) Update(ctx context.Context, id primitive.ObjectID, in Input) (*models.SupplierLedger, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	ledger, err := s.repo.Update(ctx, id, models.SupplierUpdate{
		Name:             strings.TrimSpace(in.Name),
		ProductsSupplied: normalizeProducts(in.ProductsSupplied),
		CashPaid:         in.CashPaid,
	})
	if err != nil {
		return nil, fmt.Errorf("update supplier %s: %w", id.Hex(), err)
	}
	return ledger, nil
}

// RecordPayment adds a cash payment to the ledger.
func (s *Service) RecordPayment(ctx context.Context, id primitive.ObjectID, amount float64) (*models.SupplierLedger, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payment must be positive: %w", models.ErrInvalidInput)
	}
	ledger, err := s.repo.AddPayment(ctx, id, amount)
	if err != nil {
		return nil, fmt.Errorf("record payment for supplier %s: %w", id.Hex(), err)
	}
	s.logger.Info("supplier payment recorded",
		zap.String("supplier", ledger.Name),
		zap.Float64("amount", amount),
		zap.Float64("remaining", ledger.Remaining),
	)
	return ledger, nil
}

// Delete removes a supplier ledger. Lots keep the supplier name they were bought under.
func (s *Service) Delete(ctx context.Context, id primitive.ObjectID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete supplier %s: %w", id.Hex(), err)
	}
	return nil
}

func normalizeProducts(products []string) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
