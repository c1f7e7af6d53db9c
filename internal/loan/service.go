package loan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/clock"
	"github.com/MrJamesThe3rd/toolrent/internal/customer"
	"github.com/MrJamesThe3rd/toolrent/internal/database"
	"github.com/MrJamesThe3rd/toolrent/internal/events"
	"github.com/MrJamesThe3rd/toolrent/internal/fine"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=loan
type Repository interface {
	CreateLoan(ctx context.Context, l *Loan) error
	GetLoan(ctx context.Context, id uuid.UUID) (*Loan, error)
	ListLoans(ctx context.Context, filter ListFilter) ([]*Loan, error)
	UpdateLoan(ctx context.Context, l *Loan) error
	CountOpenLoans(ctx context.Context, customerID uuid.UUID) (int, error)
	HasOpenLoanInGroup(ctx context.Context, customerID, groupID uuid.UUID) (bool, error)
	RankGroups(ctx context.Context, from, to *time.Time, limit int) ([]*RankingEntry, error)
	ListRepairQueue(ctx context.Context) ([]*RepairItem, error)
}

type Inventory interface {
	GetGroup(ctx context.Context, id uuid.UUID) (*inventory.Group, error)
	ReserveUnit(ctx context.Context, groupID uuid.UUID, unitID *uuid.UUID) (*inventory.Tool, error)
	ReleaseUnit(ctx context.Context, toolID uuid.UUID, condition inventory.Condition) (*inventory.Tool, error)
	WriteOff(ctx context.Context, toolID uuid.UUID) (*inventory.Tool, error)
}

type Rates interface {
	ResolveDailyRate(ctx context.Context, g *inventory.Group) (int64, error)
}

type Fines interface {
	CreateLateFee(ctx context.Context, loan fine.LoanRef) (*fine.Fine, error)
	CreateMinorDamageFee(ctx context.Context, loan fine.LoanRef, amount int64) (*fine.Fine, error)
	CreateIrreparableDamageFee(ctx context.Context, loan fine.LoanRef) (*fine.Fine, error)
	CountUnpaidForLoan(ctx context.Context, loanID uuid.UUID) (int, error)
}

type Standing interface {
	Evaluate(ctx context.Context, customerID uuid.UUID) (*customer.Standing, error)
}

// ListFilter narrows loan listings. Status may be StatusOverdue, which
// selects active loans past their return date as of Today. Statuses matches
// any of the given persisted statuses.
type ListFilter struct {
	Status     *Status
	Statuses   []Status
	CustomerID *uuid.UUID
	RUT        *string
	GroupID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	Today      time.Time
}

// Deps are the collaborators a loan coordinates.
type Deps struct {
	Inventory Inventory
	Rates     Rates
	Fines     Fines
	Standing  Standing
	Bus       *events.Bus
}

type Service struct {
	repo    Repository
	txr     database.Transactor
	deps    Deps
	now     clock.Clock
	maxOpen int
}

type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.now = c }
}

// WithMaxOpenLoans caps how many active loans one customer may hold.
func WithMaxOpenLoans(n int) Option {
	return func(s *Service) { s.maxOpen = n }
}

const defaultMaxOpen = 5

func NewService(repo Repository, txr database.Transactor, deps Deps, opts ...Option) *Service {
	s := &Service{repo: repo, txr: txr, deps: deps, now: time.Now, maxOpen: defaultMaxOpen}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

type CreateParams struct {
	CustomerID  uuid.UUID
	ToolGroupID uuid.UUID
	// ToolID picks a specific unit. When nil any available unit is used.
	ToolID     *uuid.UUID
	ReturnDate time.Time
}

// Create opens a loan: it checks the customer's standing, prices the loan
// and reserves a unit, all under the group's lock.
func (s *Service) Create(ctx context.Context, p CreateParams) (*Loan, error) {
	today := s.now.Today()
	returnDate := clock.Day(p.ReturnDate)

	if p.CustomerID == uuid.Nil {
		return nil, apperr.Validation("customer_id", "is required")
	}

	if p.ToolGroupID == uuid.Nil {
		return nil, apperr.Validation("tool_group_id", "is required")
	}

	if !returnDate.After(today) {
		return nil, apperr.Validation("return_date", "must be after the loan date")
	}

	standing, err := s.deps.Standing.Evaluate(ctx, p.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("evaluate standing: %w", err)
	}

	if standing.Status == customer.StatusRestricted {
		return nil, &apperr.RestrictedError{
			CustomerID:   p.CustomerID,
			UnpaidFines:  standing.UnpaidFines,
			OverdueLoans: standing.OverdueLoans,
		}
	}

	ctx, tx, err := s.txr.BeginTx(ctx, inventory.GroupLockKey(p.ToolGroupID))
	if err != nil {
		return nil, fmt.Errorf("begin loan: %w", err)
	}
	defer tx.Rollback()

	open, err := s.repo.CountOpenLoans(ctx, p.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("count open loans: %w", err)
	}

	if open >= s.maxOpen {
		return nil, ErrLoanLimit
	}

	dup, err := s.repo.HasOpenLoanInGroup(ctx, p.CustomerID, p.ToolGroupID)
	if err != nil {
		return nil, fmt.Errorf("check group loans: %w", err)
	}

	if dup {
		return nil, ErrDuplicateGroupLoan
	}

	g, err := s.deps.Inventory.GetGroup(ctx, p.ToolGroupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}

	rate, err := s.deps.Rates.ResolveDailyRate(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("resolve daily rate: %w", err)
	}

	t, err := s.deps.Inventory.ReserveUnit(ctx, g.ID, p.ToolID)
	if err != nil {
		return nil, fmt.Errorf("reserve unit: %w", err)
	}

	l := &Loan{
		CustomerID: p.CustomerID,
		ToolID:     t.ID,
		GroupID:    g.ID,
		ToolName:   g.Name,
		Category:   g.Category.Name,
		LoanDate:   today,
		ReturnDate: returnDate,
		Status:     StatusActive,
		LoanValue:  rate * int64(clock.DaysBetween(today, returnDate)),
	}
	if err := s.repo.CreateLoan(ctx, l); err != nil {
		return nil, fmt.Errorf("create loan: %w", err)
	}

	if err := s.deps.Bus.Publish(ctx, events.LoanCreated{LoanID: l.ID, CustomerID: l.CustomerID, ToolID: l.ToolID}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit loan: %w", err)
	}

	slog.Info("loan created",
		"loan_id", l.ID,
		"customer_id", l.CustomerID,
		"tool_id", l.ToolID,
		"return_date", l.ReturnDate.Format(time.DateOnly),
		"value", l.LoanValue,
	)

	return l, nil
}

// ProcessReturn takes the unit back. A damaged unit leaves the loan pending
// evaluation, a late one charges a late fee, anything else closes the loan.
func (s *Service) ProcessReturn(ctx context.Context, id uuid.UUID, condition inventory.Condition) (*Loan, error) {
	if !condition.Valid() {
		return nil, apperr.Validation("condition", "must be 'buen estado' or 'dañada'")
	}

	var late bool

	l, err := s.mutate(ctx, id, func(ctx context.Context, l *Loan) (Status, error) {
		if l.Status != StatusActive {
			return "", ErrNotActive
		}

		today := s.now.Today()
		late = l.Overdue(today)

		if _, err := s.deps.Inventory.ReleaseUnit(ctx, l.ToolID, condition); err != nil {
			return "", fmt.Errorf("release unit: %w", err)
		}

		l.ReturnedAt = &today
		l.Condition = &condition

		next := StatusClosed

		if late {
			if _, err := s.deps.Fines.CreateLateFee(ctx, l.ref()); err != nil {
				return "", err
			}

			next = StatusFinePending
		}

		if condition == inventory.ConditionDamaged {
			next = StatusPendingEvaluation
		}

		return next, nil
	}, func(l *Loan) events.Event {
		return events.LoanReturned{
			LoanID:     l.ID,
			CustomerID: l.CustomerID,
			ToolID:     l.ToolID,
			Late:       late,
			Damaged:    condition == inventory.ConditionDamaged,
		}
	})
	if err != nil {
		return nil, err
	}

	slog.Info("loan returned", "loan_id", l.ID, "status", l.Status, "condition", condition, "late", late)

	return l, nil
}

// AssessMinorDamage charges an administrator-judged amount for a repairable
// unit. The unit stays in repair.
func (s *Service) AssessMinorDamage(ctx context.Context, id uuid.UUID, amount int64) (*fine.Fine, *Loan, error) {
	var f *fine.Fine

	l, err := s.mutate(ctx, id, func(ctx context.Context, l *Loan) (Status, error) {
		if l.Status != StatusPendingEvaluation {
			return "", ErrNotPendingEvaluation
		}

		var err error
		if f, err = s.deps.Fines.CreateMinorDamageFee(ctx, l.ref(), amount); err != nil {
			return "", err
		}

		return StatusFinePending, nil
	}, damageAssessed(false))
	if err != nil {
		return nil, nil, err
	}

	return f, l, nil
}

// AssessIrreparableDamage charges the replacement value and writes the unit off.
func (s *Service) AssessIrreparableDamage(ctx context.Context, id uuid.UUID) (*fine.Fine, *Loan, error) {
	var f *fine.Fine

	l, err := s.mutate(ctx, id, func(ctx context.Context, l *Loan) (Status, error) {
		if l.Status != StatusPendingEvaluation {
			return "", ErrNotPendingEvaluation
		}

		var err error
		if f, err = s.deps.Fines.CreateIrreparableDamageFee(ctx, l.ref()); err != nil {
			return "", err
		}

		if _, err := s.deps.Inventory.WriteOff(ctx, l.ToolID); err != nil {
			return "", fmt.Errorf("write off: %w", err)
		}

		return StatusFinePending, nil
	}, damageAssessed(true))
	if err != nil {
		return nil, nil, err
	}

	return f, l, nil
}

func damageAssessed(irreparable bool) func(l *Loan) events.Event {
	return func(l *Loan) events.Event {
		return events.DamageAssessed{
			LoanID:      l.ID,
			CustomerID:  l.CustomerID,
			ToolID:      l.ToolID,
			Irreparable: irreparable,
		}
	}
}

// mutate runs fn under the lock of the loan's tool group, applies the status
// it returns and publishes the resulting event before committing.
func (s *Service) mutate(
	ctx context.Context,
	id uuid.UUID,
	fn func(ctx context.Context, l *Loan) (Status, error),
	event func(l *Loan) events.Event,
) (*Loan, error) {
	l, err := s.repo.GetLoan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get loan: %w", err)
	}

	ctx, tx, err := s.txr.BeginTx(ctx, inventory.GroupLockKey(l.GroupID))
	if err != nil {
		return nil, fmt.Errorf("begin loan update: %w", err)
	}
	defer tx.Rollback()

	// Re-read under the lock.
	l, err = s.repo.GetLoan(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get loan: %w", err)
	}

	next, err := fn(ctx, l)
	if err != nil {
		return nil, err
	}

	if !l.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("loan %s cannot move from %q to %q: %w", l.ID, l.Status, next, apperr.ErrConflict)
	}

	l.Status = next
	if err := s.repo.UpdateLoan(ctx, l); err != nil {
		return nil, fmt.Errorf("update loan: %w", err)
	}

	if err := s.deps.Bus.Publish(ctx, event(l)); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit loan update: %w", err)
	}

	return l, nil
}

// Subscribe closes a loan once its last outstanding fine is paid.
func (s *Service) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.NameFinePaid, s.onFinePaid)
}

func (s *Service) onFinePaid(ctx context.Context, e events.Event) error {
	paid, ok := e.(events.FinePaid)
	if !ok {
		return nil
	}

	l, err := s.repo.GetLoan(ctx, paid.LoanID)
	if err != nil {
		return fmt.Errorf("get loan: %w", err)
	}

	// A loan still pending evaluation may get another fine.
	if l.Status != StatusFinePending {
		return nil
	}

	unpaid, err := s.deps.Fines.CountUnpaidForLoan(ctx, l.ID)
	if err != nil {
		return fmt.Errorf("count unpaid fines: %w", err)
	}

	if unpaid > 0 {
		return nil
	}

	l.Status = StatusClosedWithFine
	if err := s.repo.UpdateLoan(ctx, l); err != nil {
		return fmt.Errorf("close loan: %w", err)
	}

	slog.Info("loan closed after payment", "loan_id", l.ID, "fine_id", paid.FineID)

	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Loan, error) {
	return s.repo.GetLoan(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Loan, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperr.Validation("status", fmt.Sprintf("unknown loan status %q", *filter.Status))
	}

	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, apperr.Validation("start_date", "must not be after end_date")
	}

	filter.Today = s.now.Today()

	return s.repo.ListLoans(ctx, filter)
}

// Today is the calendar date the service evaluates overdue loans against.
func (s *Service) Today() time.Time {
	return s.now.Today()
}

// ActiveLoans lists loans that are still open, optionally by loan date range.
func (s *Service) ActiveLoans(ctx context.Context, from, to *time.Time) ([]*Loan, error) {
	return s.List(ctx, ListFilter{
		Statuses:  []Status{StatusActive, StatusPendingEvaluation, StatusFinePending},
		StartDate: from,
		EndDate:   to,
	})
}

const defaultRankingLimit = 10

// Ranking lists the most loaned tool groups in the period.
func (s *Service) Ranking(ctx context.Context, from, to *time.Time, limit int) ([]*RankingEntry, error) {
	if from != nil && to != nil && from.After(*to) {
		return nil, apperr.Validation("start_date", "must not be after end_date")
	}

	if limit <= 0 {
		limit = defaultRankingLimit
	}

	return s.repo.RankGroups(ctx, from, to, limit)
}

func (s *Service) RepairQueue(ctx context.Context) ([]*RepairItem, error) {
	return s.repo.ListRepairQueue(ctx)
}
