package store_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
	"github.com/MrJamesThe3rd/toolrent/internal/loan/store"
)

var loanCols = []string{
	"id", "customer_id", "name", "rut", "tool_id", "group_id", "group_name", "category",
	"loan_date", "return_date", "returned_at", "return_condition", "status", "loan_value",
	"created_at", "updated_at",
}

func TestStore_ListLoans_Overdue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	today := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	status := loan.StatusOverdue

	mock.ExpectQuery(regexp.QuoteMeta("WHERE l.status = $1 AND l.return_date < $2 ORDER BY l.loan_date DESC, l.created_at DESC")).
		WithArgs(loan.StatusActive, today).
		WillReturnRows(sqlmock.NewRows(loanCols).AddRow(
			uuid.NewString(), uuid.NewString(), "Ana Rojas", "12.345.678-5", uuid.NewString(), uuid.NewString(),
			"Taladro", "Herramientas eléctricas",
			today.AddDate(0, 0, -5), today.AddDate(0, 0, -2), nil, nil, "activo", int64(9000),
			today.AddDate(0, 0, -5), nil,
		))

	got, err := store.New(db).ListLoans(context.Background(), loan.ListFilter{Status: &status, Today: today})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, loan.StatusActive, got[0].Status)
	assert.Nil(t, got[0].Condition)
	assert.Equal(t, loan.StatusOverdue, got[0].DisplayStatus(today))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListLoans_ReturnedCondition(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	day := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
	customerID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE l.status IN ($1,$2) AND l.customer_id = $3")).
		WithArgs("evaluación pendiente", "multa pendiente", customerID).
		WillReturnRows(sqlmock.NewRows(loanCols).AddRow(
			uuid.NewString(), customerID.String(), "Ana Rojas", "12.345.678-5", uuid.NewString(), uuid.NewString(),
			"Sierra", "Herramientas eléctricas",
			day, day.AddDate(0, 0, 3), day.AddDate(0, 0, 2), "dañada", "evaluación pendiente", int64(15000),
			day, day.AddDate(0, 0, 2),
		))

	got, err := store.New(db).ListLoans(context.Background(), loan.ListFilter{
		Statuses:   []loan.Status{loan.StatusPendingEvaluation, loan.StatusFinePending},
		CustomerID: &customerID,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Condition)
	assert.Equal(t, inventory.ConditionDamaged, *got[0].Condition)
	assert.NotNil(t, got[0].ReturnedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetLoan_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE l.id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(loanCols))

	_, err = store.New(db).GetLoan(context.Background(), id)
	assert.ErrorIs(t, err, loan.ErrNotFound)
}

func TestStore_CreateLoan_UnitTaken(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO loans")).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = store.New(db).CreateLoan(context.Background(), &loan.Loan{
		CustomerID: uuid.New(),
		ToolID:     uuid.New(),
		GroupID:    uuid.New(),
		Status:     loan.StatusActive,
	})
	assert.ErrorIs(t, err, inventory.ErrToolUnavailable)
}

func TestStore_UpdateLoan(t *testing.T) {
	type testCase struct {
		name     string
		affected int64
		execErr  error
		wantErr  error
	}

	tests := []testCase{
		{name: "updated", affected: 1},
		{name: "missing", affected: 0, wantErr: loan.ErrNotFound},
		{name: "driver error", execErr: errors.New("connection reset")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			returned := time.Date(2025, 5, 10, 0, 0, 0, 0, time.UTC)
			l := &loan.Loan{
				ID:         uuid.New(),
				Status:     loan.StatusClosed,
				ReturnedAt: &returned,
				Condition:  new(inventory.ConditionGood),
			}

			exp := mock.ExpectExec(regexp.QuoteMeta("UPDATE loans")).
				WithArgs(loan.StatusClosed, sqlmock.AnyArg(), sqlmock.AnyArg(), l.ID)

			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			err = store.New(db).UpdateLoan(context.Background(), l)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.execErr != nil:
				assert.ErrorIs(t, err, tt.execErr)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestStore_RankGroups(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	from := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC)
	groupID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(
		"WHERE l.loan_date >= $1 AND l.loan_date <= $2 GROUP BY g.id, g.name, cat.name ORDER BY COUNT(*) DESC, g.name ASC LIMIT 3",
	)).
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "category", "count"}).
			AddRow(groupID.String(), "Taladro", "Herramientas eléctricas", 7))

	got, err := store.New(db).RankGroups(context.Background(), &from, &to, 3)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, groupID, got[0].GroupID)
	assert.Equal(t, 7, got[0].Loans)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListRepairQueue(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	returned := time.Date(2025, 5, 9, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT DISTINCT ON \\(t.id\\)").
		WithArgs(inventory.ConditionDamaged, inventory.StatusInRepair).
		WillReturnRows(sqlmock.NewRows([]string{"tool_id", "group_id", "tool_name", "loan_id", "customer_name", "returned_at", "loan_status"}).
			AddRow(uuid.NewString(), uuid.NewString(), "Sierra", uuid.NewString(), "Luis Soto", returned, "multa pendiente"))

	got, err := store.New(db).ListRepairQueue(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, loan.StatusFinePending, got[0].LoanStatus)
	assert.Equal(t, "Luis Soto", got[0].CustomerName)
}
