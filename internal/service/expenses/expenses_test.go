package expenses_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/repository/memory"
	"github.com/mamadbah2/autotrade/internal/service/expenses"
)

func TestExpenses_Lifecycle(t *testing.T) {
	ctx := context.Background()
	svc := expenses.NewService(memory.NewStore().Repositories().Expenses, nil)

	march := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	rent, err := svc.Create(ctx, expenses.Input{Title: "Rent", Category: "rent", Amount: 300, Date: &march})
	require.NoError(t, err)
	_, err = svc.Create(ctx, expenses.Input{Title: "Power", Category: "electricity", Amount: 45.5})
	require.NoError(t, err)

	from := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.March, 31, 23, 59, 59, 0, time.UTC)
	inMarch, err := svc.List(ctx, models.ExpenseFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, inMarch, 1)
	assert.Equal(t, "Rent", inMarch[0].Title)

	updated, err := svc.Update(ctx, rent.ID, expenses.Input{Title: "Rent", Category: "rent", Amount: 350})
	require.NoError(t, err)
	assert.Equal(t, 350.0, updated.Amount)
	assert.Equal(t, march, updated.Date)

	require.NoError(t, svc.Delete(ctx, rent.ID))
	assert.ErrorIs(t, svc.Delete(ctx, rent.ID), models.ErrNotFound)
}

func TestExpenses_Validation(t *testing.T) {
	ctx := context.Background()
	svc := expenses.NewService(memory.NewStore().Repositories().Expenses, nil)

	_, err := svc.Create(ctx, expenses.Input{Category: "rent", Amount: 1})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = svc.Create(ctx, expenses.Input{Title: "Rent", Category: "rent"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
	_, err = svc.Update(ctx, primitive.NewObjectID(), expenses.Input{Title: "Rent", Category: "rent", Amount: 1})
	assert.ErrorIs(t, err, models.ErrNotFound)
}
