package customer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/clock"
	"github.com/MrJamesThe3rd/toolrent/internal/events"
)

// Tracker derives a customer's standing from unpaid fines and overdue loans
// and persists the status when it changes.
type Tracker struct {
	repo Repository
	now  clock.Clock
}

func NewTracker(repo Repository, now clock.Clock) *Tracker {
	if now == nil {
		now = time.Now
	}

	return &Tracker{repo: repo, now: now}
}

func (t *Tracker) Evaluate(ctx context.Context, customerID uuid.UUID) (*Standing, error) {
	st, _, err := t.evaluate(ctx, customerID)
	return st, err
}

func (t *Tracker) evaluate(ctx context.Context, customerID uuid.UUID) (*Standing, bool, error) {
	c, err := t.repo.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, false, fmt.Errorf("get customer: %w", err)
	}

	fines, err := t.repo.CountUnpaidFines(ctx, customerID)
	if err != nil {
		return nil, false, fmt.Errorf("count unpaid fines: %w", err)
	}

	overdue, err := t.repo.CountOverdueLoans(ctx, customerID, t.now.Today())
	if err != nil {
		return nil, false, fmt.Errorf("count overdue loans: %w", err)
	}

	st := &Standing{CustomerID: customerID, Status: StatusActive, UnpaidFines: fines, OverdueLoans: overdue}
	if st.Restricted() {
		st.Status = StatusRestricted
	}

	if st.Status == c.Status {
		return st, false, nil
	}

	if err := t.repo.UpdateCustomerStatus(ctx, customerID, st.Status); err != nil {
		return nil, false, fmt.Errorf("update customer status: %w", err)
	}

	slog.Info("customer standing changed",
		"customer_id", customerID,
		"from", c.Status,
		"to", st.Status,
		"unpaid_fines", fines,
		"overdue_loans", overdue,
	)

	return st, true, nil
}

// EvaluateAll refreshes every customer and returns how many changed status.
// A failure on one customer is logged and the sweep continues.
func (t *Tracker) EvaluateAll(ctx context.Context) (int, error) {
	ids, err := t.repo.ListCustomerIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list customers: %w", err)
	}

	changed := 0

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return changed, err
		}

		_, ok, err := t.evaluate(ctx, id)
		if err != nil {
			slog.Error("standing sweep failed for customer", "customer_id", id, "error", err)
			continue
		}

		if ok {
			changed++
		}
	}

	return changed, nil
}

// Subscribe re-evaluates the customer after every event that can change
// their counts.
func (t *Tracker) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.NameLoanReturned, func(ctx context.Context, e events.Event) error {
		_, err := t.Evaluate(ctx, e.(events.LoanReturned).CustomerID)
		return err
	})
	bus.Subscribe(events.NameDamageAssessed, func(ctx context.Context, e events.Event) error {
		_, err := t.Evaluate(ctx, e.(events.DamageAssessed).CustomerID)
		return err
	})
	bus.Subscribe(events.NameFinePaid, func(ctx context.Context, e events.Event) error {
		_, err := t.Evaluate(ctx, e.(events.FinePaid).CustomerID)
		return err
	})
}
