package purchases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/repository"
	"github.com/mamadbah2/autotrade/internal/repository/memory"
	"github.com/mamadbah2/autotrade/internal/service/purchases"
	"github.com/mamadbah2/autotrade/internal/service/suppliers"
)

type fixture struct {
	repos     repository.Store
	suppliers *suppliers.Service
	svc       *purchases.Service
}

func newFixture() fixture {
	repos := memory.NewStore().Repositories()
	ledgers := suppliers.NewService(repos.Suppliers, nil)
	return fixture{
		repos:     repos,
		suppliers: ledgers,
		svc:       purchases.NewService(repos, ledgers, time.UTC, nil),
	}
}

func engine(qty int, price float64) purchases.Input {
	return purchases.Input{
		ProductName: "Engine",
		Type:        "spare_part",
		Supplier:    "Acme",
		Quantity:    qty,
		Price:       price,
	}
}

func ledger(t *testing.T, f fixture, name string) *models.SupplierLedger {
	t.Helper()
	l, err := f.repos.Suppliers.FindByName(context.Background(), name)
	require.NoError(t, err)
	return l
}

type failingSettlement struct{}

func (failingSettlement) ApplyPurchase(context.Context, string, float64) (*models.SupplierLedger, error) {
	return nil, errors.New("ledger offline")
}

func (failingSettlement) ApplyPurchaseDelta(context.Context, string, float64) (*models.SupplierLedger, error) {
	return nil, errors.New("ledger offline")
}

func TestCreate_StoresLotAndChargesSupplier(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	in := engine(10, 100)
	in.ShippingCost = 50
	in.CustomsFee = 25
	first, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, models.StockTypePart, first.Type)
	assert.Equal(t, 10, first.Quantity)
	assert.Equal(t, 10, first.PurchasedQuantity)
	assert.Equal(t, 1075.0, first.Total)
	assert.Equal(t, int64(1), first.InvoiceNumber)
	assert.Regexp(t, `^\d+-[0-9a-f]{8}$`, first.SerialNumber)

	second, err := f.svc.Create(ctx, engine(5, 100))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.InvoiceNumber)

	l := ledger(t, f, "Acme")
	assert.Equal(t, 1575.0, l.TotalSpent)
	assert.Equal(t, 1575.0, l.Remaining)
}

func TestCreate_DuplicateSerialLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	in := engine(1, 1000)
	in.SerialNumber = "VIN-1"
	_, err := f.svc.Create(ctx, in)
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, in)
	require.ErrorIs(t, err, models.ErrDuplicateSerialNumber)
	assert.Equal(t, 1000.0, ledger(t, f, "Acme").TotalSpent)
}

func TestCreate_LedgerFailureRemovesLot(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repositories()
	svc := purchases.NewService(repos, failingSettlement{}, time.UTC, nil)

	_, err := svc.Create(ctx, engine(3, 10))
	require.Error(t, err)

	lots, err := repos.Stocks.Find(ctx, models.StockFilter{})
	require.NoError(t, err)
	assert.Empty(t, lots)
}

func TestCreate_RejectsInvalidInput(t *testing.T) {
	f := newFixture()

	for name, in := range map[string]purchases.Input{
		"missing product": {Type: "car", Supplier: "Acme", Quantity: 1},
		"bad type":        {ProductName: "X", Type: "boat", Supplier: "Acme", Quantity: 1},
		"zero quantity":   {ProductName: "X", Type: "car", Supplier: "Acme"},
		"negative price":  {ProductName: "X", Type: "car", Supplier: "Acme", Quantity: 1, Price: -1},
		"bad condition":   {ProductName: "X", Type: "car", Supplier: "Acme", Quantity: 1, Condition: "broken"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), in)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestRevise_AppliesTotalDeltaToLedger(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	lot, err := f.svc.Create(ctx, engine(10, 100))
	require.NoError(t, err)
	_, err = f.suppliers.ApplyPurchase(ctx, "Acme", 500)
	require.NoError(t, err)
	_, err = f.suppliers.RecordPayment(ctx, ledger(t, f, "Acme").ID, 500)
	require.NoError(t, err)

	revised, err := f.svc.Revise(ctx, lot.ID, engine(10, 80))
	require.NoError(t, err)
	assert.Equal(t, 800.0, revised.Total)
	assert.Equal(t, lot.SerialNumber, revised.SerialNumber)

	l := ledger(t, f, "Acme")
	assert.Equal(t, 1300.0, l.TotalSpent)
	assert.Equal(t, 800.0, l.Remaining)
}

func TestRevise_MovesTotalsBetweenSuppliers(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	lot, err := f.svc.Create(ctx, engine(2, 100))
	require.NoError(t, err)

	in := engine(2, 150)
	in.Supplier = "Globex"
	_, err = f.svc.Revise(ctx, lot.ID, in)
	require.NoError(t, err)

	assert.Equal(t, 0.0, ledger(t, f, "Acme").TotalSpent)
	assert.Equal(t, 300.0, ledger(t, f, "Globex").TotalSpent)
}

func TestRevise_QuantityShiftsOnHandAndRespectsSold(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	lot, err := f.svc.Create(ctx, engine(10, 100))
	require.NoError(t, err)
	_, err = f.repos.Stocks.Reserve(ctx, lot.ID, 4)
	require.NoError(t, err)

	revised, err := f.svc.Revise(ctx, lot.ID, engine(12, 100))
	require.NoError(t, err)
	assert.Equal(t, 8, revised.Quantity)
	assert.Equal(t, 12, revised.PurchasedQuantity)

	_, err = f.svc.Revise(ctx, lot.ID, engine(3, 100))
	assert.ErrorIs(t, err, models.ErrInsufficientStock)
}

func TestDelete_RejectsReferencedLot(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	lot, err := f.svc.Create(ctx, engine(2, 100))
	require.NoError(t, err)
	require.NoError(t, f.repos.Sales.Insert(ctx, &models.SaleRecord{StockID: lot.ID, ProductName: "Engine", Quantity: 1}))

	err = f.svc.Delete(ctx, lot.ID)
	assert.ErrorIs(t, err, models.ErrStockInUse)
}

func TestDelete_CreditsSupplier(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	lot, err := f.svc.Create(ctx, engine(2, 100))
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, engine(1, 50))
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, lot.ID))
	assert.Equal(t, 50.0, ledger(t, f, "Acme").TotalSpent)

	_, err = f.repos.Stocks.FindByID(ctx, lot.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListAndReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	old := time.Now().AddDate(0, -2, 0)
	in := engine(1, 10)
	in.PurchaseDate = &old
	_, err := f.svc.Create(ctx, in)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, engine(2, 20))
	require.NoError(t, err)

	all, err := f.svc.List(ctx, "all")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	weekly, err := f.svc.List(ctx, "weekly")
	require.NoError(t, err)
	assert.Len(t, weekly, 1)

	_, err = f.svc.List(ctx, "yearly")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	report, err := f.svc.Report(ctx, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Count)
	assert.Equal(t, 50.0, report.TotalPurchases)
}
