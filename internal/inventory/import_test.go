package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	"github.com/MrJamesThe3rd/toolrent/internal/memstore"
)

func clockDay(d int) time.Time {
	return time.Date(2025, 4, d, 0, 0, 0, 0, time.UTC)
}

func TestService_ImportBatch(t *testing.T) {
	store := memstore.New("", 0)
	svc := inventory.NewService(store, store)
	ctx := context.Background()
	value := int64(80000)

	groups, err := svc.ImportBatch(ctx, []inventory.ImportRow{
		{Line: 2, Name: "Taladro", Category: "herramientas eléctricas", Quantity: 2, ReplacementValue: &value},
		{Line: 3, Name: "Pala", Category: "Jardinería", Quantity: 4},
		{Line: 4, Name: "taladro", Category: "Herramientas eléctricas", Quantity: 1},
	})
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, 3, groups[0].TotalTools)
	assert.Equal(t, 3, groups[0].CurrentStock)
	assert.Equal(t, 4, groups[1].TotalTools)

	balance, err := svc.MovementBalance(ctx, groups[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 3, balance)
}

func TestService_ImportBatch_AllOrNothing(t *testing.T) {
	store := memstore.New("", 0)
	svc := inventory.NewService(store, store)
	ctx := context.Background()

	_, err := svc.ImportBatch(ctx, []inventory.ImportRow{
		{Line: 2, Name: "Carretilla", Category: "Construcción", Quantity: 2},
		{Line: 3, Name: "Flexómetro", Category: "Topografía", Quantity: 1},
	})
	require.ErrorIs(t, err, apperr.ErrValidation)

	var verr *apperr.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "line 3", verr.Field)

	groups, err := svc.ListGroups(ctx, inventory.GroupFilter{})
	require.NoError(t, err)
	assert.Empty(t, groups)
}
