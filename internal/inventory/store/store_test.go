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

	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory/store"
)

var groupCols = []string{
	"id", "name", "category_id", "category_name", "total_tools", "current_stock",
	"replacement_value", "daily_rental_rate", "created_at", "updated_at",
}

func TestStore_GetGroup(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := store.New(db)
	id := uuid.New()
	catID := uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM tool_groups g JOIN categories c ON c.id = g.category_id WHERE g.id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(groupCols).
			AddRow(id.String(), "Taladro", catID.String(), "Herramientas eléctricas", 5, 4, int64(90000), nil, now, nil))

	g, err := s.GetGroup(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Taladro", g.Name)
	assert.Equal(t, "Herramientas eléctricas", g.Category.Name)
	assert.Equal(t, 4, g.CurrentStock)
	require.NotNil(t, g.ReplacementValue)
	assert.Equal(t, int64(90000), *g.ReplacementValue)
	assert.Nil(t, g.DailyRentalRate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetGroup_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM tool_groups g").WillReturnRows(sqlmock.NewRows(groupCols))

	_, err = store.New(db).GetGroup(context.Background(), uuid.New())
	assert.ErrorIs(t, err, inventory.ErrGroupNotFound)
}

func TestStore_FindAvailableTool(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	groupID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.group_id = $1 AND t.status = $2 ORDER BY t.created_at ASC, t.id ASC LIMIT 1")).
		WithArgs(groupID, "disponible").
		WillReturnRows(sqlmock.NewRows([]string{"id", "group_id", "name", "cid", "cname", "status", "created_at", "updated_at"}))

	_, err = store.New(db).FindAvailableTool(context.Background(), groupID)
	assert.ErrorIs(t, err, inventory.ErrToolNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateStock_Missing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()

	mock.ExpectExec("UPDATE tool_groups").
		WithArgs(5, 4, id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.New(db).UpdateStock(context.Background(), id, 5, 4)
	assert.ErrorIs(t, err, inventory.ErrGroupNotFound)
}

func TestStore_CreateCategory_Duplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO categories").
		WithArgs("Jardinería").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err = store.New(db).CreateCategory(context.Background(), &inventory.Category{Name: "Jardinería"})
	assert.ErrorIs(t, err, inventory.ErrDuplicateCategory)
}

func TestStore_ListMovements_Filters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	toolID := uuid.New()
	groupID := uuid.New()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE m.tool_id = $1 AND m.date >= $2 AND m.date < $3 ORDER BY m.date ASC")).
		WithArgs(toolID, start, end.AddDate(0, 0, 1)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "type", "date", "user", "tool_id", "group_id", "name", "amount"}).
			AddRow(uuid.NewString(), "préstamo", start, "ana", toolID.String(), groupID.String(), "Taladro", -1).
			AddRow(uuid.NewString(), "devolución", end, "leo", toolID.String(), groupID.String(), "Taladro", 1))

	got, err := store.New(db).ListMovements(context.Background(), inventory.MovementFilter{
		ToolID:    &toolID,
		StartDate: &start,
		EndDate:   &end,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, inventory.MovementLoan, got[0].Type)
	assert.Equal(t, -1, got[0].AffectedAmount)
	assert.Equal(t, inventory.MovementReturn, got[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
