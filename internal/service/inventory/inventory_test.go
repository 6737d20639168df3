package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/repository/memory"
	"github.com/mamadbah2/autotrade/internal/service/inventory"
)

func newLot(t *testing.T, qty int) (*inventory.Service, *models.StockRecord) {
	t.Helper()
	repos := memory.NewStore().Repositories()
	lot := &models.StockRecord{
		SerialNumber:      "SN-1",
		ProductName:       "Oil Filter",
		Type:              models.StockTypePart,
		Supplier:          "ACME",
		Quantity:          qty,
		PurchasedQuantity: qty,
		PurchaseDate:      time.Now(),
	}
	require.NoError(t, repos.Stocks.Insert(context.Background(), lot))
	return inventory.NewService(repos.Stocks, nil), lot
}

func TestReserve_NeverOversells(t *testing.T) {
	ctx := context.Background()
	svc, lot := newLot(t, 5)

	_, err := svc.Reserve(ctx, lot.ID, 6)
	require.ErrorIs(t, err, models.ErrInsufficientStock)

	updated, err := svc.Reserve(ctx, lot.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Quantity)

	_, err = svc.Reserve(ctx, lot.ID, 1)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)
}

func TestReserveRelease_Symmetric(t *testing.T) {
	ctx := context.Background()
	svc, lot := newLot(t, 5)

	_, err := svc.Reserve(ctx, lot.ID, 3)
	require.NoError(t, err)
	restored, err := svc.Release(ctx, lot.ID, 3)
	require.NoError(t, err)

	assert.Equal(t, 5, restored.Quantity)
}

func TestRelease_RejectsOverRelease(t *testing.T) {
	svc, lot := newLot(t, 2)

	_, err := svc.Release(context.Background(), lot.ID, 1)
	assert.ErrorIs(t, err, models.ErrOverRelease)
}

func TestReserve_RejectsNonPositiveQuantity(t *testing.T) {
	svc, lot := newLot(t, 2)

	_, err := svc.Reserve(context.Background(), lot.ID, 0)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = svc.Release(context.Background(), lot.ID, -1)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestListProducts_FiltersEmptyLots(t *testing.T) {
	ctx := context.Background()
	svc, lot := newLot(t, 1)
	_, err := svc.Reserve(ctx, lot.ID, 1)
	require.NoError(t, err)

	onHand, err := svc.ListProducts(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, onHand)

	all, err := svc.ListProducts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
