package store_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/toolrent/internal/fine"
	"github.com/MrJamesThe3rd/toolrent/internal/fine/store"
)

var fineCols = []string{"id", "customer_id", "name", "rut", "loan_id", "type", "value", "status", "created_at", "paid_at"}

func TestStore_ListFines_Filters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rut := "24.027.977-0"
	status := fine.StatusUnpaid
	typ := fine.TypeLate
	customerID, loanID := uuid.New(), uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.rut = $1 AND f.status = $2 AND f.type = $3 ORDER BY f.created_at DESC")).
		WithArgs(rut, status, typ).
		WillReturnRows(sqlmock.NewRows(fineCols).
			AddRow(uuid.NewString(), customerID.String(), "Ana Rojas", rut, loanID.String(), "atraso", int64(4000), "no pagada", time.Now(), nil))

	got, err := store.New(db).ListFines(context.Background(), fine.ListFilter{RUT: &rut, Status: &status, Type: &typ})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, fine.TypeLate, got[0].Type)
	assert.Equal(t, "Ana Rojas", got[0].CustomerName)
	assert.Equal(t, loanID, got[0].LoanID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_MarkFinePaid_AlreadyPaid(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	paidAt := time.Now()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE fines SET status = $1, paid_at = $2 WHERE id = $3 AND status = $4")).
		WithArgs(fine.StatusPaid, paidAt, id, fine.StatusUnpaid).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.New(db).MarkFinePaid(context.Background(), id, paidAt)
	assert.ErrorIs(t, err, fine.ErrAlreadyPaid)
}

func TestStore_ListDelinquentCustomers(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectQuery("GROUP BY c.id, c.name, c.rut").
		WithArgs(fine.StatusUnpaid).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "rut", "count", "sum"}).
			AddRow(id.String(), "Ana Rojas", "24.027.977-0", 2, int64(14000)))

	got, err := store.New(db).ListDelinquentCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].UnpaidFines)
	assert.Equal(t, int64(14000), got[0].UnpaidTotal)
}
