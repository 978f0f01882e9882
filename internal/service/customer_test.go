package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/bookmarket/backend/internal/apperr"
	"github.com/bookmarket/backend/internal/hash"
	"github.com/bookmarket/backend/internal/models"
	"github.com/bookmarket/backend/internal/repo"
)

func newCustomerService(t *testing.T) (*CustomerService, *repo.GormRepo) {
	t.Helper()
	store := repo.New(initTestDB(t))
	books := &BookService{Repo: store}
	return &CustomerService{Repo: store, Books: books}, store
}

func TestCreateCustomerDefaults(t *testing.T) {
	svc, _ := newCustomerService(t)

	customer := models.Customer{Name: "Ana", Email: "ana@x.com", Password: "secret"}
	require.NoError(t, svc.Create(context.Background(), &customer))

	require.NotZero(t, customer.ID)
	require.Equal(t, models.CustomerActive, customer.Status)
	require.Equal(t, []string{models.RoleCustomer}, customer.Roles)
	require.NotEqual(t, "secret", customer.Password)
	require.True(t, hash.CheckPassword(customer.Password, "secret"))
}

func TestCreateCustomerDuplicateEmailAtStore(t *testing.T) {
	svc, _ := newCustomerService(t)

	first := models.Customer{Name: "Ana", Email: "ana@x.com", Password: "secret"}
	require.NoError(t, svc.Create(context.Background(), &first))

	// straight to the service, past any handler pre-check: the unique index
	// rejects the insert and the error keeps the validation shape
	second := models.Customer{Name: "Other Ana", Email: "ana@x.com", Password: "secret"}
	err := svc.Create(context.Background(), &second)

	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	require.Equal(t, "ML-001", ae.InternalCode)
	require.Equal(t, 422, ae.HTTPCode)
	require.Equal(t, "E-mail already exists on database.", ae.Message)
}

func TestFindCustomerByIDNotFound(t *testing.T) {
	svc, _ := newCustomerService(t)

	_, err := svc.FindByID(context.Background(), 42)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	require.Equal(t, "ML-201", ae.InternalCode)
	require.Equal(t, 404, ae.HTTPCode)
	require.Equal(t, "Customer [42] not exists.", ae.Message)
}

func TestUpdateMissingCustomer(t *testing.T) {
	svc, _ := newCustomerService(t)

	err := svc.Update(context.Background(), &models.Customer{ID: 7, Name: "x", Email: "x@x.com"})
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	require.Equal(t, "ML-201", ae.InternalCode)
}

func TestDeleteIsSoftAndCascades(t *testing.T) {
	svc, store := newCustomerService(t)

	customer := models.Customer{Name: "Ana", Email: "ana@x.com", Password: "secret"}
	require.NoError(t, svc.Create(context.Background(), &customer))

	active := models.Book{Name: "one", Price: decimal.NewFromInt(10), CustomerID: customer.ID, Status: models.BookActive}
	cancelled := models.Book{Name: "two", Price: decimal.NewFromInt(20), CustomerID: customer.ID, Status: models.BookCancelled}
	require.NoError(t, store.DB.Create(&active).Error)
	require.NoError(t, store.DB.Create(&cancelled).Error)

	require.NoError(t, svc.Delete(context.Background(), customer.ID))

	// the row survives with status flipped
	got, err := svc.FindByID(context.Background(), customer.ID)
	require.NoError(t, err)
	require.Equal(t, models.CustomerInactive, got.Status)

	var gotActive, gotCancelled models.Book
	require.NoError(t, store.DB.First(&gotActive, active.ID).Error)
	require.NoError(t, store.DB.First(&gotCancelled, cancelled.ID).Error)
	require.Equal(t, models.BookDeleted, gotActive.Status)
	require.Equal(t, models.BookCancelled, gotCancelled.Status)
}

func TestDeleteMissingCustomer(t *testing.T) {
	svc, _ := newCustomerService(t)

	err := svc.Delete(context.Background(), 99)
	var ae *apperr.Error
	require.True(t, errors.As(err, &ae))
	require.Equal(t, "ML-201", ae.InternalCode)
}

func TestEmailAvailable(t *testing.T) {
	svc, _ := newCustomerService(t)

	available, err := svc.EmailAvailable(context.Background(), "ana@x.com")
	require.NoError(t, err)
	require.True(t, available)

	customer := models.Customer{Name: "Ana", Email: "ana@x.com", Password: "secret"}
	require.NoError(t, svc.Create(context.Background(), &customer))

	available, err = svc.EmailAvailable(context.Background(), "ana@x.com")
	require.NoError(t, err)
	require.False(t, available)
}

func TestGetAllWithNameFilter(t *testing.T) {
	svc, _ := newCustomerService(t)

	for _, c := range []models.Customer{
		{Name: "Ana", Email: "ana@x.com", Password: "secret"},
		{Name: "Bruno", Email: "bruno@x.com", Password: "secret"},
	} {
		customer := c
		require.NoError(t, svc.Create(context.Background(), &customer))
	}

	items, total, err := svc.GetAll(context.Background(), "An", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	require.Equal(t, "Ana", items[0].Name)

	items, total, err = svc.GetAll(context.Background(), "", 0, 10)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)
	require.Len(t, items, 2)
}
