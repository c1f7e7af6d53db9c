package store_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/toolrent/internal/customer"
	"github.com/MrJamesThe3rd/toolrent/internal/customer/store"
)

var customerCols = []string{"id", "name", "rut", "email", "phone", "status", "created_at", "updated_at"}

func TestStore_GetCustomerByRUT(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM customers WHERE rut = $1")).
		WithArgs("24.027.977-0").
		WillReturnRows(sqlmock.NewRows(customerCols).
			AddRow(id.String(), "Ana Rojas", "24.027.977-0", "ana@example.cl", "+56 9 1234 5678", "restringido", time.Now(), nil))

	c, err := store.New(db).GetCustomerByRUT(context.Background(), "24.027.977-0")
	require.NoError(t, err)
	assert.Equal(t, id, c.ID)
	assert.Equal(t, customer.StatusRestricted, c.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_CreateCustomer_DuplicateRUT(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO customers").WillReturnError(&pgconn.PgError{Code: "23505"})

	err = store.New(db).CreateCustomer(context.Background(), &customer.Customer{Name: "Ana", RUT: "24.027.977-0"})
	assert.ErrorIs(t, err, customer.ErrDuplicateRUT)
}

func TestStore_CountOverdueLoans(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM loans WHERE customer_id = $1 AND status = 'activo' AND return_date < $2")).
		WithArgs(id, today).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := store.New(db).CountOverdueLoans(context.Background(), id, today)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestStore_UpdateCustomerStatus_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectExec("UPDATE customers SET status").
		WithArgs(customer.StatusActive, id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.New(db).UpdateCustomerStatus(context.Background(), id, customer.StatusActive)
	assert.ErrorIs(t, err, customer.ErrNotFound)
}
