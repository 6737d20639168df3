// Package repository declares the persistence contracts the services depend
// on. The mongodb package implements them for production and the memory
// package for local runs and tests.
package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/autotrade/internal/domain/models"
)

// StockRepository persists purchased lots. Reserve, Release and Revise are
// single atomic operations: the guard and the write cannot interleave with
// another caller.
type StockRepository interface {
	// Insert fails with models.ErrDuplicateSerialNumber on a serial collision.
	Insert(ctx context.Context, record *models.StockRecord) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.StockRecord, error)
	// Find returns matching lots ordered by purchase date, newest first.
	Find(ctx context.Context, filter models.StockFilter) ([]models.StockRecord, error)
	// Reserve decrements quantity by qty only if quantity >= qty.
	Reserve(ctx context.Context, id primitive.ObjectID, qty int) (*models.StockRecord, error)
	// Release increments quantity by qty only if the result stays <= purchasedQuantity.
	Release(ctx context.Context, id primitive.ObjectID, qty int) (*models.StockRecord, error)
	// Revise applies rev and returns the record as it was before the update.
	// It fails with models.ErrInsufficientStock when the new purchased quantity
	// is smaller than what has already been sold from the lot.
	Revise(ctx context.Context, id primitive.ObjectID, rev models.StockRevision) (*models.StockRecord, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// SaleRepository persists sale records.
type SaleRepository interface {
	Insert(ctx context.Context, sale *models.SaleRecord) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.SaleRecord, error)
	// Find returns matching sales ordered by date, newest first.
	Find(ctx context.Context, filter models.SaleFilter) ([]models.SaleRecord, error)
	// Replace and Delete apply only while the stored quantity still equals
	// quantity. A stored sale with another quantity yields
	// models.ErrConcurrentUpdate.
	Replace(ctx context.Context, sale *models.SaleRecord, quantity int) error
	Delete(ctx context.Context, id primitive.ObjectID, quantity int) error
	// SoldQuantities sums the quantity of every sale per product name.
	SoldQuantities(ctx context.Context) (map[string]int, error)
	CountByStock(ctx context.Context, stockID primitive.ObjectID) (int64, error)
}

// SupplierRepository persists supplier ledgers.
type SupplierRepository interface {
	// Insert fails with models.ErrDuplicateSupplier when the name is taken.
	Insert(ctx context.Context, ledger *models.SupplierLedger) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.SupplierLedger, error)
	FindByName(ctx context.Context, name string) (*models.SupplierLedger, error)
	List(ctx context.Context) ([]models.SupplierLedger, error)
	// AddSpend adds amount to totalSpent of the ledger named name, creating it
	// when absent, and recomputes remaining in the same write.
	AddSpend(ctx context.Context, name string, amount float64) (*models.SupplierLedger, error)
	// AddPayment adds amount to cashPaid and recomputes remaining.
	AddPayment(ctx context.Context, id primitive.ObjectID, amount float64) (*models.SupplierLedger, error)
	// Update overwrites the editable fields and recomputes remaining.
	Update(ctx context.Context, id primitive.ObjectID, update models.SupplierUpdate) (*models.SupplierLedger, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// ExpenseRepository persists expenses.
type ExpenseRepository interface {
	Insert(ctx context.Context, expense *models.ExpenseRecord) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.ExpenseRecord, error)
	// Find returns matching expenses ordered by date, newest first.
	Find(ctx context.Context, filter models.ExpenseFilter) ([]models.ExpenseRecord, error)
	Replace(ctx context.Context, expense *models.ExpenseRecord) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// EmployeeRepository persists the staff roster.
type EmployeeRepository interface {
	Insert(ctx context.Context, employee *models.Employee) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error)
	// List returns every employee, oldest hire record first.
	List(ctx context.Context) ([]models.Employee, error)
	Replace(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// CounterRepository hands out monotonically increasing sequence numbers.
type CounterRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}

// ReportRepository stores daily report snapshots.
type ReportRepository interface {
	SaveDailyReport(ctx context.Context, report models.DailyReport) error
}

// Store bundles every repository so callers can switch backends at once.
type Store struct {
	Stocks    StockRepository
	Sales     SaleRepository
	Suppliers SupplierRepository
	Expenses  ExpenseRepository
	Employees EmployeeRepository
	Counters  CounterRepository
	Reports   ReportRepository
}
