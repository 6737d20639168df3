package employees_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/autotrade/internal/domain/models"
	"github.com/mamadbah2/autotrade/internal/repository/memory"
	"github.com/mamadbah2/autotrade/internal/service/employees"
)

func ptr[T any](v T) *T { return &v }

func newService() *employees.Service {
	return employees.NewService(memory.NewStore().Repositories().Employees, nil)
}

func TestCreate_DefaultsAndValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	_, err := svc.Create(ctx, employees.Input{Phone: ptr("0100")})
	require.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.Create(ctx, employees.Input{RealName: ptr("Omar"), Salary: ptr(-1.0)})
	require.ErrorIs(t, err, models.ErrInvalidInput)

	hired := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	employee, err := svc.Create(ctx, employees.Input{
		RealName:    ptr("  Omar  "),
		Salary:      ptr(4500.0),
		HireDate:    &hired,
		Permissions: &employees.PermissionsInput{Sales: ptr(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, "Omar", employee.RealName)
	assert.Equal(t, models.EmployeePermissions{Sales: true}, employee.Permissions)
	require.NotNil(t, employee.HireDate)
	assert.True(t, hired.Equal(*employee.HireDate))
}

func TestUpdate_MergesFieldsAndPermissions(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	employee, err := svc.Create(ctx, employees.Input{
		RealName:    ptr("Omar"),
		Phone:       ptr("0100"),
		Permissions: &employees.PermissionsInput{Sales: ptr(true), Reports: ptr(true)},
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, employee.ID, employees.Input{
		Salary:      ptr(5000.0),
		Permissions: &employees.PermissionsInput{Reports: ptr(false), Inventory: ptr(true)},
	})
	require.NoError(t, err)
	assert.Equal(t, "Omar", updated.RealName)
	assert.Equal(t, "0100", updated.Phone)
	assert.Equal(t, 5000.0, updated.Salary)
	assert.Equal(t, models.EmployeePermissions{Sales: true, Inventory: true}, updated.Permissions)

	_, err = svc.Update(ctx, employee.ID, employees.Input{RealName: ptr(" ")})
	require.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.Update(ctx, primitive.NewObjectID(), employees.Input{Salary: ptr(1.0)})
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestListAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	first, err := svc.Create(ctx, employees.Input{RealName: ptr("Omar")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, employees.Input{RealName: ptr("Laila")})
	require.NoError(t, err)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, svc.Delete(ctx, first.ID))
	require.ErrorIs(t, svc.Delete(ctx, first.ID), models.ErrNotFound)

	list, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Laila", list[0].RealName)
}
