// Package memory is a process-local implementation of the repository
// contracts. Every operation runs under one mutex, which gives Reserve,
// Release and the ledger updates the same atomicity as the MongoDB
// conditional updates.
package memory

import (
	"slices"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/repository"
)

// Store keeps all collections in maps keyed by ObjectID.
type Store struct {
	mu        sync.Mutex
	stocks    map[primitive.ObjectID]models.StockRecord
	sales     map[primitive.ObjectID]models.SaleRecord
	suppliers map[primitive.ObjectID]models.SupplierLedger
	expenses  map[primitive.ObjectID]models.ExpenseRecord
	employees map[primitive.ObjectID]models.Employee
	counters  map[string]int64
	reports   []models.DailyReport
	now       func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		stocks:    make(map[primitive.ObjectID]models.StockRecord),
		sales:     make(map[primitive.ObjectID]models.SaleRecord),
		suppliers: make(map[primitive.ObjectID]models.SupplierLedger),
		expenses:  make(map[primitive.ObjectID]models.ExpenseRecord),
		employees: make(map[primitive.ObjectID]models.Employee),
		counters:  make(map[string]int64),
		now:       time.Now,
	}
}

// Repositories exposes the store through the repository contracts.
func (s *Store) Repositories() repository.Store {
	return repository.Store{
		Stocks:    &StockRepository{s: s},
		Sales:     &SaleRepository{s: s},
		Suppliers: &SupplierRepository{s: s},
		Expenses:  &ExpenseRepository{s: s},
		Employees: &EmployeeRepository{s: s},
		Counters:  &CounterRepository{s: s},
		Reports:   &ReportRepository{s: s},
	}
}

// DailyReports returns the snapshots saved so far.
func (s *Store) DailyReports() []models.DailyReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.reports)
}

func inRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}

func containsName(names []string, name string) bool {
	if len(names) == 0 {
		return true
	}
	return slices.Contains(names, name)
}

func newestFirst(a, b time.Time) int {
	return b.Compare(a)
}
