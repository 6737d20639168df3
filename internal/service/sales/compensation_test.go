package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/repository"
	"github.com/mamadbah2/autotrade/internal/service/inventory"
	"github.com/mamadbah2/autotrade/internal/service/sales"
)

var errStoreOffline = errors.New("store offline")

type faultySales struct {
	repository.SaleRepository
	insertErr  error
	replaceErr error
	deleteErr  error
}

func (f faultySales) Insert(ctx context.Context, sale *models.SaleRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	return f.SaleRepository.Insert(ctx, sale)
}

func (f faultySales) Replace(ctx context.Context, sale *models.SaleRecord, quantity int) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	return f.SaleRepository.Replace(ctx, sale, quantity)
}

func (f faultySales) Delete(ctx context.Context, id primitive.ObjectID, quantity int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.SaleRepository.Delete(ctx, id, quantity)
}

type faultyCounters struct{}

func (faultyCounters) Next(context.Context, string) (int64, error) {
	return 0, errStoreOffline
}

// interleavingInventory runs before once, ahead of the first stock movement.
type interleavingInventory struct {
	sales.Inventory
	before func()
}

func (i *interleavingInventory) fire() {
	if hook := i.before; hook != nil {
		i.before = nil
		hook()
	}
}

func (i *interleavingInventory) Reserve(ctx context.Context, id primitive.ObjectID, qty int) (*models.StockRecord, error) {
	i.fire()
	return i.Inventory.Reserve(ctx, id, qty)
}

func (i *interleavingInventory) Release(ctx context.Context, id primitive.ObjectID, qty int) (*models.StockRecord, error) {
	i.fire()
	return i.Inventory.Release(ctx, id, qty)
}

func sell(t *testing.T, svc *sales.Service, lot *models.StockRecord, qty int) *models.SaleRecord {
	t.Helper()
	sale, err := svc.Create(context.Background(), sales.CreateInput{StockID: lot.ID.Hex(), Buyer: "Sam", Price: 150, Quantity: qty})
	require.NoError(t, err)
	return sale
}

func storedQuantity(t *testing.T, svc *sales.Service, id primitive.ObjectID) int {
	t.Helper()
	sale, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	return sale.Quantity
}

func TestEdit_InterleavedEditIsRejectedWithoutDrift(t *testing.T) {
	ctx := context.Background()
	repos, svc, lot := setup(t)
	sale := sell(t, svc, lot, 4)

	inv := &interleavingInventory{Inventory: inventory.NewService(repos.Stocks, nil)}
	inv.before = func() {
		_, err := svc.Edit(ctx, sale.ID, sales.EditInput{Quantity: ptr(5)})
		require.NoError(t, err)
	}
	late := sales.NewService(repos.Sales, repos.Counters, inv, nil)

	_, err := late.Edit(ctx, sale.ID, sales.EditInput{Quantity: ptr(6)})
	require.ErrorIs(t, err, models.ErrConcurrentUpdate)

	assert.Equal(t, 5, storedQuantity(t, svc, sale.ID))
	assert.Equal(t, 5, onHand(t, repos, lot))
}

func TestDelete_InterleavedEditIsRejectedWithoutDrift(t *testing.T) {
	ctx := context.Background()
	repos, svc, lot := setup(t)
	sale := sell(t, svc, lot, 4)

	inv := &interleavingInventory{Inventory: inventory.NewService(repos.Stocks, nil)}
	inv.before = func() {
		_, err := svc.Edit(ctx, sale.ID, sales.EditInput{Quantity: ptr(6)})
		require.NoError(t, err)
	}
	late := sales.NewService(repos.Sales, repos.Counters, inv, nil)

	err := late.Delete(ctx, sale.ID)
	require.ErrorIs(t, err, models.ErrConcurrentUpdate)

	assert.Equal(t, 6, storedQuantity(t, svc, sale.ID))
	assert.Equal(t, 4, onHand(t, repos, lot))
}

func TestCreate_CounterFailureGivesQuantityBack(t *testing.T) {
	repos, _, lot := setup(t)
	svc := sales.NewService(repos.Sales, faultyCounters{}, inventory.NewService(repos.Stocks, nil), nil)

	_, err := svc.Create(context.Background(), sales.CreateInput{StockID: lot.ID.Hex(), Buyer: "Sam", Price: 150, Quantity: 3})
	require.ErrorIs(t, err, errStoreOffline)
	assert.Equal(t, 10, onHand(t, repos, lot))
}

func TestCreate_InsertFailureGivesQuantityBack(t *testing.T) {
	repos, _, lot := setup(t)
	broken := faultySales{SaleRepository: repos.Sales, insertErr: errStoreOffline}
	svc := sales.NewService(broken, repos.Counters, inventory.NewService(repos.Stocks, nil), nil)

	_, err := svc.Create(context.Background(), sales.CreateInput{StockID: lot.ID.Hex(), Buyer: "Sam", Price: 150, Quantity: 3})
	require.ErrorIs(t, err, errStoreOffline)
	assert.Equal(t, 10, onHand(t, repos, lot))
}

func TestEdit_ReplaceFailureUndoesStockDelta(t *testing.T) {
	ctx := context.Background()
	repos, svc, lot := setup(t)
	sale := sell(t, svc, lot, 4)

	broken := faultySales{SaleRepository: repos.Sales, replaceErr: errStoreOffline}
	failing := sales.NewService(broken, repos.Counters, inventory.NewService(repos.Stocks, nil), nil)

	_, err := failing.Edit(ctx, sale.ID, sales.EditInput{Quantity: ptr(7)})
	require.ErrorIs(t, err, errStoreOffline)
	assert.Equal(t, 6, onHand(t, repos, lot))

	_, err = failing.Edit(ctx, sale.ID, sales.EditInput{Quantity: ptr(1)})
	require.ErrorIs(t, err, errStoreOffline)
	assert.Equal(t, 6, onHand(t, repos, lot))
	assert.Equal(t, 4, storedQuantity(t, svc, sale.ID))
}

func TestDelete_StoreFailureReservesAgain(t *testing.T) {
	ctx := context.Background()
	repos, svc, lot := setup(t)
	sale := sell(t, svc, lot, 4)

	broken := faultySales{SaleRepository: repos.Sales, deleteErr: errStoreOffline}
	failing := sales.NewService(broken, repos.Counters, inventory.NewService(repos.Stocks, nil), nil)

	require.ErrorIs(t, failing.Delete(ctx, sale.ID), errStoreOffline)
	assert.Equal(t, 6, onHand(t, repos, lot))
	assert.Equal(t, 4, storedQuantity(t, svc, sale.ID))
}

func TestDelete_MissingLotStillRemovesSale(t *testing.T) {
	ctx := context.Background()
	repos, svc, lot := setup(t)
	sale := sell(t, svc, lot, 4)
	require.NoError(t, repos.Stocks.Delete(ctx, lot.ID))

	require.NoError(t, svc.Delete(ctx, sale.ID))

	_, err := svc.Get(ctx, sale.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
