package loan_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/clock"
	"github.com/MrJamesThe3rd/toolrent/internal/customer"
	"github.com/MrJamesThe3rd/toolrent/internal/events"
	"github.com/MrJamesThe3rd/toolrent/internal/fine"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
	"github.com/MrJamesThe3rd/toolrent/internal/memstore"
	"github.com/MrJamesThe3rd/toolrent/internal/rate"
)

var rateNames = rate.Names{
	DailyRental:      "tarifa diaria de arriendo",
	ReplacementValue: "valor de reposición",
	LateFee:          "tarifa diaria de multa",
}

const lateFeeRate = 2000

type system struct {
	t         *testing.T
	now       time.Time
	store     *memstore.Store
	inventory *inventory.Service
	customers *customer.Service
	tracker   *customer.Tracker
	fines     *fine.Service
	loans     *loan.Service
}

func newSystem(t *testing.T) *system {
	t.Helper()

	sys := &system{t: t, now: time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)}
	clk := clock.Clock(func() time.Time { return sys.now })

	sys.store = memstore.New(rateNames.LateFee, lateFeeRate, memstore.WithClock(clk))
	bus := events.NewBus()
	resolver := rate.NewResolver(sys.store, rateNames)

	sys.inventory = inventory.NewService(sys.store, sys.store)
	sys.customers = customer.NewService(sys.store)
	sys.tracker = customer.NewTracker(sys.store, clk)
	sys.fines = fine.NewService(sys.store, sys.store, resolver, sys.inventory, bus, fine.WithClock(clk))
	sys.loans = loan.NewService(sys.store, sys.store, loan.Deps{
		Inventory: sys.inventory,
		Rates:     resolver,
		Fines:     sys.fines,
		Standing:  sys.tracker,
		Bus:       bus,
	}, loan.WithClock(clk))

	sys.loans.Subscribe(bus)
	sys.tracker.Subscribe(bus)

	return sys
}

func (sys *system) today() time.Time {
	return clock.Date(sys.now)
}

func (sys *system) advance(days int) {
	sys.now = sys.now.AddDate(0, 0, days)
}

func (sys *system) customer(rut string) *customer.Customer {
	sys.t.Helper()

	c, err := sys.customers.Create(context.Background(), customer.CreateParams{
		Name:  "Cliente " + rut,
		RUT:   rut,
		Email: "cliente@example.cl",
		Phone: "+56912345678",
	})
	require.NoError(sys.t, err)

	return c
}

func (sys *system) group(name string, quantity int, daily, replacement int64) *inventory.Group {
	sys.t.Helper()

	ctx := context.Background()

	c, err := sys.inventory.GetCategoryByName(ctx, "Herramientas eléctricas")
	require.NoError(sys.t, err)

	g, err := sys.inventory.Intake(ctx, inventory.IntakeParams{
		Name:             name,
		CategoryID:       c.ID,
		Quantity:         quantity,
		DailyRentalRate:  &daily,
		ReplacementValue: &replacement,
	})
	require.NoError(sys.t, err)

	return g
}

func (sys *system) rent(c *customer.Customer, g *inventory.Group, days int) *loan.Loan {
	sys.t.Helper()

	l, err := sys.loans.Create(context.Background(), loan.CreateParams{
		CustomerID:  c.ID,
		ToolGroupID: g.ID,
		ReturnDate:  sys.today().AddDate(0, 0, days),
	})
	require.NoError(sys.t, err)

	return l
}

func (sys *system) requireStock(groupID uuid.UUID, total, current int) {
	sys.t.Helper()

	g, err := sys.inventory.GetGroup(context.Background(), groupID)
	require.NoError(sys.t, err)
	assert.Equal(sys.t, total, g.TotalTools, "total tools")
	assert.Equal(sys.t, current, g.CurrentStock, "current stock")

	balance, err := sys.inventory.MovementBalance(context.Background(), groupID)
	require.NoError(sys.t, err)

	loaned, err := sys.inventory.ListTools(context.Background(), inventory.ToolFilter{
		GroupID: &groupID,
		Status:  new(inventory.StatusLoaned),
	})
	require.NoError(sys.t, err)
	assert.Equal(sys.t, g.TotalTools-len(loaned), balance, "kardex balance")
}

func (sys *system) requireToolStatus(toolID uuid.UUID, want inventory.ToolStatus) {
	sys.t.Helper()

	tool, err := sys.inventory.GetTool(context.Background(), toolID)
	require.NoError(sys.t, err)
	assert.Equal(sys.t, want, tool.Status)
}

func (sys *system) requireCustomerStatus(id uuid.UUID, want customer.Status) {
	sys.t.Helper()

	c, err := sys.customers.Get(context.Background(), id)
	require.NoError(sys.t, err)
	assert.Equal(sys.t, want, c.Status)
}

func (sys *system) unpaidFines(loanID uuid.UUID) []*fine.Fine {
	sys.t.Helper()

	fines, err := sys.fines.List(context.Background(), fine.ListFilter{LoanID: &loanID, Status: new(fine.StatusUnpaid)})
	require.NoError(sys.t, err)

	return fines
}

func TestScenario_LateReturnThenPayment(t *testing.T) {
	sys := newSystem(t)
	ctx := context.Background()
	c := sys.customer("24.027.977-0")
	g := sys.group("Taladro percutor", 5, 1000, 90000)

	l := sys.rent(c, g, 3)
	assert.Equal(t, int64(3000), l.LoanValue)
	assert.Equal(t, loan.StatusActive, l.Status)
	sys.requireStock(g.ID, 5, 4)
	sys.requireToolStatus(l.ToolID, inventory.StatusLoaned)

	sys.advance(4)
	assert.Equal(t, loan.StatusOverdue, l.DisplayStatus(sys.today()))
	assert.Equal(t, 1, clock.DaysBetween(l.ReturnDate, sys.today()))

	returned, err := sys.loans.ProcessReturn(ctx, l.ID, inventory.ConditionGood)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusFinePending, returned.Status)
	sys.requireStock(g.ID, 5, 5)
	sys.requireToolStatus(l.ToolID, inventory.StatusAvailable)
	sys.requireCustomerStatus(c.ID, customer.StatusRestricted)

	fines := sys.unpaidFines(l.ID)
	require.Len(t, fines, 1)
	assert.Equal(t, fine.TypeLate, fines[0].Type)
	assert.Equal(t, int64(1*lateFeeRate), fines[0].Value)

	_, err = sys.fines.Pay(ctx, fines[0].ID)
	require.NoError(t, err)

	closed, err := sys.loans.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusClosedWithFine, closed.Status)
	sys.requireCustomerStatus(c.ID, customer.StatusActive)

	_, err = sys.fines.Pay(ctx, fines[0].ID)
	assert.ErrorIs(t, err, fine.ErrAlreadyPaid)
}

func TestScenario_OnTimeReturnCloses(t *testing.T) {
	sys := newSystem(t)
	ctx := context.Background()
	c := sys.customer("19.285.394-K")
	g := sys.group("Esmeril angular", 2, 3000, 60000)

	l := sys.rent(c, g, 2)
	sys.advance(2)

	returned, err := sys.loans.ProcessReturn(ctx, l.ID, inventory.ConditionGood)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusClosed, returned.Status)
	assert.Empty(t, sys.unpaidFines(l.ID))
	sys.requireStock(g.ID, 2, 2)

	_, err = sys.loans.ProcessReturn(ctx, l.ID, inventory.ConditionGood)
	assert.ErrorIs(t, err, loan.ErrNotActive)
	sys.requireStock(g.ID, 2, 2)
}

func TestScenario_IrreparableDamage(t *testing.T) {
	sys := newSystem(t)
	ctx := context.Background()
	c := sys.customer("24.027.977-0")
	g := sys.group("Sierra circular", 5, 2500, 120000)

	l := sys.rent(c, g, 5)

	returned, err := sys.loans.ProcessReturn(ctx, l.ID, inventory.ConditionDamaged)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusPendingEvaluation, returned.Status)
	sys.requireStock(g.ID, 5, 4)
	sys.requireToolStatus(l.ToolID, inventory.StatusInRepair)
	sys.requireCustomerStatus(c.ID, customer.StatusActive)

	queue, err := sys.loans.RepairQueue(ctx)
	require.NoError(t, err)
	require.Len(t, queue, 1)
	assert.Equal(t, l.ToolID, queue[0].ToolID)

	f, assessed, err := sys.loans.AssessIrreparableDamage(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, fine.TypeIrreparable, f.Type)
	assert.Equal(t, int64(120000), f.Value)
	assert.Equal(t, loan.StatusFinePending, assessed.Status)
	sys.requireStock(g.ID, 4, 4)
	sys.requireToolStatus(l.ToolID, inventory.StatusWrittenOff)
	sys.requireCustomerStatus(c.ID, customer.StatusRestricted)

	_, _, err = sys.loans.AssessMinorDamage(ctx, l.ID, 5000)
	assert.ErrorIs(t, err, loan.ErrNotPendingEvaluation)

	_, err = sys.fines.Pay(ctx, f.ID)
	require.NoError(t, err)

	closed, err := sys.loans.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusClosedWithFine, closed.Status)
}

func TestScenario_MinorDamageThenRepair(t *testing.T) {
	sys := newSystem(t)
	ctx := context.Background()
	c := sys.customer("24.027.977-0")
	g := sys.group("Lijadora", 1, 2000, 40000)

	l := sys.rent(c, g, 1)

	_, err := sys.loans.ProcessReturn(ctx, l.ID, inventory.ConditionDamaged)
	require.NoError(t, err)
	sys.requireStock(g.ID, 1, 0)

	_, _, err = sys.loans.AssessMinorDamage(ctx, l.ID, 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	f, _, err := sys.loans.AssessMinorDamage(ctx, l.ID, 15000)
	require.NoError(t, err)
	assert.Equal(t, fine.TypeMinorDamage, f.Type)
	sys.requireToolStatus(l.ToolID, inventory.StatusInRepair)

	_, err = sys.fines.Pay(ctx, f.ID)
	require.NoError(t, err)

	_, err = sys.inventory.CompleteRepair(ctx, l.ToolID)
	require.NoError(t, err)
	sys.requireStock(g.ID, 1, 1)
	sys.requireToolStatus(l.ToolID, inventory.StatusAvailable)

	movements, err := sys.inventory.ListMovements(ctx, inventory.MovementFilter{ToolID: &l.ToolID})
	require.NoError(t, err)

	var types []inventory.MovementType
	for _, m := range movements {
		types = append(types, m.Type)
	}

	assert.Equal(t, []inventory.MovementType{
		inventory.MovementIntake,
		inventory.MovementLoan,
		inventory.MovementReturn,
		inventory.MovementRepair,
	}, types)
}

func TestScenario_LateAndDamaged(t *testing.T) {
	sys := newSystem(t)
	ctx := context.Background()
	c := sys.customer("24.027.977-0")
	g := sys.group("Rotomartillo", 2, 4000, 150000)

	l := sys.rent(c, g, 2)
	sys.advance(5)

	returned, err := sys.loans.ProcessReturn(ctx, l.ID, inventory.ConditionDamaged)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusPendingEvaluation, returned.Status)

	late := sys.unpaidFines(l.ID)
	require.Len(t, late, 1)
	assert.Equal(t, int64(3*2000), late[0].Value)

	// Paying the late fee does not settle the pending evaluation.
	_, err = sys.fines.Pay(ctx, late[0].ID)
	require.NoError(t, err)

	pending, err := sys.loans.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusPendingEvaluation, pending.Status)

	f, _, err := sys.loans.AssessMinorDamage(ctx, l.ID, 20000)
	require.NoError(t, err)

	_, err = sys.fines.Pay(ctx, f.ID)
	require.NoError(t, err)

	closed, err := sys.loans.Get(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusClosedWithFine, closed.Status)
}

func TestScenario_RestrictedCustomerCannotRent(t *testing.T) {
	sys := newSystem(t)
	ctx := context.Background()
	c := sys.customer("24.027.977-0")
	drills := sys.group("Taladro", 3, 2000, 50000)
	saws := sys.group("Serrucho eléctrico", 3, 2000, 50000)

	sys.rent(c, drills, 1)
	sys.advance(3)

	_, err := sys.loans.Create(ctx, loan.CreateParams{
		CustomerID:  c.ID,
		ToolGroupID: saws.ID,
		ReturnDate:  sys.today().AddDate(0, 0, 2),
	})

	var restricted *apperr.RestrictedError
	require.True(t, errors.As(err, &restricted))
	assert.Equal(t, 1, restricted.OverdueLoans)
	assert.Equal(t, 0, restricted.UnpaidFines)
	sys.requireCustomerStatus(c.ID, customer.StatusRestricted)
	sys.requireStock(saws.ID, 3, 3)

	overdue, err := sys.loans.List(ctx, loan.ListFilter{Status: new(loan.StatusOverdue)})
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, c.ID, overdue[0].CustomerID)
}

func TestScenario_LoanRules(t *testing.T) {
	sys := newSystem(t)
	ctx := context.Background()
	c := sys.customer("24.027.977-0")
	g := sys.group("Taladro", 3, 2000, 50000)

	sys.rent(c, g, 2)

	_, err := sys.loans.Create(ctx, loan.CreateParams{CustomerID: c.ID, ToolGroupID: g.ID, ReturnDate: sys.today().AddDate(0, 0, 2)})
	assert.ErrorIs(t, err, loan.ErrDuplicateGroupLoan)

	_, err = sys.loans.Create(ctx, loan.CreateParams{CustomerID: c.ID, ToolGroupID: g.ID, ReturnDate: sys.today()})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	for i := range 4 {
		sys.rent(c, sys.group("Herramienta "+string(rune('A'+i)), 1, 2000, 50000), 2)
	}

	_, err = sys.loans.Create(ctx, loan.CreateParams{
		CustomerID:  c.ID,
		ToolGroupID: sys.group("Herramienta F", 1, 2000, 50000).ID,
		ReturnDate:  sys.today().AddDate(0, 0, 2),
	})
	assert.ErrorIs(t, err, loan.ErrLoanLimit)

	_, err = sys.loans.Create(ctx, loan.CreateParams{CustomerID: uuid.New(), ToolGroupID: g.ID, ReturnDate: sys.today().AddDate(0, 0, 1)})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestScenario_LastUnitUnderContention(t *testing.T) {
	sys := newSystem(t)
	g := sys.group("Generador", 1, 5000, 300000)

	const renters = 8

	customers := make([]*customer.Customer, renters)
	for i, rut := range []string{
		"24.027.977-0", "19.285.394-K", "12.345.678-5", "11.111.111-1",
		"22.222.222-2", "33.333.333-3", "44.444.444-4", "55.555.555-5",
	} {
		customers[i] = sys.customer(rut)
	}

	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		succeeded  int
		outOfStock int
	)

	for _, c := range customers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := sys.loans.Create(context.Background(), loan.CreateParams{
				CustomerID:  c.ID,
				ToolGroupID: g.ID,
				ReturnDate:  sys.today().AddDate(0, 0, 1),
			})

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				succeeded++
			case errors.Is(err, inventory.ErrOutOfStock):
				outOfStock++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, renters-1, outOfStock)
	sys.requireStock(g.ID, 1, 0)
}

func TestScenario_Reports(t *testing.T) {
	sys := newSystem(t)
	ctx := context.Background()
	a := sys.customer("24.027.977-0")
	b := sys.customer("19.285.394-K")
	drills := sys.group("Taladro", 3, 2000, 50000)
	saws := sys.group("Sierra", 3, 2000, 50000)

	first := sys.rent(a, drills, 2)
	sys.rent(b, drills, 2)
	sys.rent(a, saws, 2)

	_, err := sys.loans.ProcessReturn(ctx, first.ID, inventory.ConditionGood)
	require.NoError(t, err)

	active, err := sys.loans.ActiveLoans(ctx, nil, nil)
	require.NoError(t, err)
	assert.Len(t, active, 2)

	ranking, err := sys.loans.Ranking(ctx, nil, nil, 0)
	require.NoError(t, err)
	require.Len(t, ranking, 2)
	assert.Equal(t, "Taladro", ranking[0].Name)
	assert.Equal(t, 2, ranking[0].Loans)

	rut := b.RUT
	byRUT, err := sys.loans.List(ctx, loan.ListFilter{RUT: &rut})
	require.NoError(t, err)
	require.Len(t, byRUT, 1)
	assert.Equal(t, b.Name, byRUT[0].CustomerName)
}

func TestScenario_ReturnDateInLocalZone(t *testing.T) {
	saved := clock.Location
	clock.Location = time.FixedZone("CLT", -3*60*60)
	t.Cleanup(func() { clock.Location = saved })

	sys := newSystem(t)
	sys.now = time.Date(2025, 3, 10, 10, 0, 0, 0, clock.Location)
	ctx := context.Background()
	c := sys.customer("24.027.977-0")
	g := sys.group("Rotomartillo", 2, 2000, 90000)

	tomorrow, err := clock.ParseDate("2025-03-11")
	require.NoError(t, err)

	short, err := sys.loans.Create(ctx, loan.CreateParams{CustomerID: c.ID, ToolGroupID: g.ID, ReturnDate: tomorrow})
	require.NoError(t, err)
	assert.Equal(t, int64(2000), short.LoanValue)

	_, err = sys.loans.ProcessReturn(ctx, short.ID, inventory.ConditionGood)
	require.NoError(t, err)

	due, err := clock.ParseDate("2025-03-13")
	require.NoError(t, err)

	l, err := sys.loans.Create(ctx, loan.CreateParams{CustomerID: c.ID, ToolGroupID: g.ID, ReturnDate: due})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), l.LoanDate)
	assert.Equal(t, time.Date(2025, 3, 13, 0, 0, 0, 0, time.UTC), l.ReturnDate)
	assert.Equal(t, int64(6000), l.LoanValue)

	// 23:00 on the due date is already the next day in UTC.
	sys.now = time.Date(2025, 3, 13, 23, 0, 0, 0, clock.Location)
	assert.Equal(t, loan.StatusActive, l.DisplayStatus(sys.today()))

	returned, err := sys.loans.ProcessReturn(ctx, l.ID, inventory.ConditionGood)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusClosed, returned.Status)
	assert.Empty(t, sys.unpaidFines(l.ID))
}
