package events_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/toolrent/internal/events"
)

func TestBus_PublishInOrder(t *testing.T) {
	bus := events.NewBus()

	var calls []string

	bus.Subscribe(events.NameFinePaid, func(_ context.Context, e events.Event) error {
		calls = append(calls, "loan")
		return nil
	})
	bus.Subscribe(events.NameFinePaid, func(_ context.Context, e events.Event) error {
		paid, ok := e.(events.FinePaid)
		require.True(t, ok)
		assert.NotEqual(t, uuid.Nil, paid.LoanID)

		calls = append(calls, "standing")

		return nil
	})
	bus.Subscribe(events.NameLoanReturned, func(context.Context, events.Event) error {
		calls = append(calls, "unexpected")
		return nil
	})

	err := bus.Publish(context.Background(), events.FinePaid{FineID: uuid.New(), LoanID: uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, []string{"loan", "standing"}, calls)
}

func TestBus_PublishStopsOnError(t *testing.T) {
	bus := events.NewBus()
	boom := errors.New("boom")
	called := false

	bus.Subscribe(events.NameLoanReturned, func(context.Context, events.Event) error { return boom })
	bus.Subscribe(events.NameLoanReturned, func(context.Context, events.Event) error {
		called = true
		return nil
	})

	err := bus.Publish(context.Background(), events.LoanReturned{})
	assert.ErrorIs(t, err, boom)
	assert.False(t, called)
}

func TestBus_NoListeners(t *testing.T) {
	assert.NoError(t, events.NewBus().Publish(context.Background(), events.LoanCreated{}))
}
