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

	"github.com/MrJamesThe3rd/toolrent/internal/rate"
	"github.com/MrJamesThe3rd/toolrent/internal/rate/store"
)

func TestStore_GetRateByName(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM global_rates WHERE LOWER(name) = LOWER($1)")).
		WithArgs("tarifa diaria de multa").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "daily_rate_value", "created_at", "updated_at"}).
			AddRow(id.String(), "tarifa diaria de multa", int64(2000), time.Now(), nil))

	r, err := store.New(db).GetRateByName(context.Background(), "tarifa diaria de multa")
	require.NoError(t, err)
	assert.Equal(t, id, r.ID)
	assert.Equal(t, int64(2000), r.DailyRateValue)
	assert.Nil(t, r.UpdatedAt)
}

func TestStore_GetRate_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM global_rates").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "daily_rate_value", "created_at", "updated_at"}))

	_, err = store.New(db).GetRate(context.Background(), uuid.New())
	assert.ErrorIs(t, err, rate.ErrNotFound)
}

func TestStore_CreateRate_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO global_rates").
		WithArgs("tarifa diaria de arriendo", int64(5000)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = store.New(db).CreateRate(context.Background(), &rate.GlobalRate{Name: "tarifa diaria de arriendo", DailyRateValue: 5000})
	assert.ErrorIs(t, err, rate.ErrDuplicateName)
}

func TestStore_UpdateRateValue_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectExec("UPDATE global_rates").
		WithArgs(int64(3000), id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.New(db).UpdateRateValue(context.Background(), id, 3000)
	assert.ErrorIs(t, err, rate.ErrNotFound)
}
