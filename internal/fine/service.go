package fine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/clock"
	"github.com/MrJamesThe3rd/toolrent/internal/database"
	"github.com/MrJamesThe3rd/toolrent/internal/events"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=fine
type Repository interface {
	CreateFine(ctx context.Context, f *Fine) error
	GetFine(ctx context.Context, id uuid.UUID) (*Fine, error)
	ListFines(ctx context.Context, filter ListFilter) ([]*Fine, error)
	MarkFinePaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error
	CountUnpaidForLoan(ctx context.Context, loanID uuid.UUID) (int, error)
	ListDelinquentCustomers(ctx context.Context) ([]*DelinquentCustomer, error)
}

// Rates resolves the amounts fines are priced from.
type Rates interface {
	ResolveLateFeeRate(ctx context.Context) (int64, error)
	ResolveReplacementValue(ctx context.Context, g *inventory.Group) (int64, error)
}

type Groups interface {
	GetGroup(ctx context.Context, id uuid.UUID) (*inventory.Group, error)
}

type ListFilter struct {
	CustomerID *uuid.UUID
	RUT        *string
	LoanID     *uuid.UUID
	Status     *Status
	Type       *Type
}

type Service struct {
	repo   Repository
	txr    database.Transactor
	rates  Rates
	groups Groups
	bus    *events.Bus
	now    clock.Clock
}

type Option func(*Service)

func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.now = c }
}

func NewService(repo Repository, txr database.Transactor, rates Rates, groups Groups, bus *events.Bus, opts ...Option) *Service {
	s := &Service{repo: repo, txr: txr, rates: rates, groups: groups, bus: bus, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// LoanLockKey serialises payments against the same loan.
func LoanLockKey(loanID uuid.UUID) int64 {
	return database.LockKey("loan", loanID.String())
}

// CreateLateFee charges one late fee rate per day past the return date.
func (s *Service) CreateLateFee(ctx context.Context, loan LoanRef) (*Fine, error) {
	days := clock.DaysBetween(loan.ReturnDate, s.now.Today())
	if days <= 0 {
		return nil, ErrNotOverdue
	}

	rate, err := s.rates.ResolveLateFeeRate(ctx)
	if err != nil {
		return nil, fmt.Errorf("late fee rate: %w", err)
	}

	return s.create(ctx, loan, TypeLate, int64(days)*rate)
}

// CreateMinorDamageFee records an amount judged by an administrator.
func (s *Service) CreateMinorDamageFee(ctx context.Context, loan LoanRef, amount int64) (*Fine, error) {
	if amount <= 0 {
		return nil, apperr.Validation("fine_value", "must be greater than 0")
	}

	if amount > inventory.MaxValue {
		return nil, apperr.Validation("fine_value", fmt.Sprintf("must be at most %d", inventory.MaxValue))
	}

	return s.create(ctx, loan, TypeMinorDamage, amount)
}

// CreateIrreparableDamageFee charges the replacement value of the tool's group.
func (s *Service) CreateIrreparableDamageFee(ctx context.Context, loan LoanRef) (*Fine, error) {
	g, err := s.groups.GetGroup(ctx, loan.GroupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}

	value, err := s.rates.ResolveReplacementValue(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("replacement value: %w", err)
	}

	return s.create(ctx, loan, TypeIrreparable, value)
}

func (s *Service) create(ctx context.Context, loan LoanRef, typ Type, value int64) (*Fine, error) {
	f := &Fine{
		CustomerID: loan.CustomerID,
		LoanID:     loan.ID,
		Type:       typ,
		Value:      value,
		Status:     StatusUnpaid,
	}
	if err := s.repo.CreateFine(ctx, f); err != nil {
		return nil, fmt.Errorf("create %s fine: %w", typ, err)
	}

	slog.Info("fine created", "fine_id", f.ID, "loan_id", loan.ID, "type", typ, "value", value)

	return f, nil
}

// Pay settles an unpaid fine and notifies listeners so the loan and the
// customer's standing can follow.
func (s *Service) Pay(ctx context.Context, id uuid.UUID) (*Fine, error) {
	f, err := s.repo.GetFine(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get fine: %w", err)
	}

	ctx, tx, err := s.txr.BeginTx(ctx, LoanLockKey(f.LoanID))
	if err != nil {
		return nil, fmt.Errorf("begin payment: %w", err)
	}
	defer tx.Rollback()

	f, err = s.repo.GetFine(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get fine: %w", err)
	}

	if f.Status == StatusPaid {
		return nil, ErrAlreadyPaid
	}

	paidAt := s.now()
	if err := s.repo.MarkFinePaid(ctx, id, paidAt); err != nil {
		return nil, fmt.Errorf("mark fine paid: %w", err)
	}

	f.Status = StatusPaid
	f.PaidAt = &paidAt

	if err := s.bus.Publish(ctx, events.FinePaid{FineID: f.ID, LoanID: f.LoanID, CustomerID: f.CustomerID}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit payment: %w", err)
	}

	slog.Info("fine paid", "fine_id", f.ID, "loan_id", f.LoanID, "value", f.Value)

	return f, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Fine, error) {
	return s.repo.GetFine(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Fine, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperr.Validation("status", "must be 'pagada' or 'no pagada'")
	}

	if filter.Type != nil && !filter.Type.Valid() {
		return nil, apperr.Validation("type", "must be 'atraso', 'daño leve' or 'daño irreparable'")
	}

	return s.repo.ListFines(ctx, filter)
}

func (s *Service) CountUnpaidForLoan(ctx context.Context, loanID uuid.UUID) (int, error) {
	return s.repo.CountUnpaidForLoan(ctx, loanID)
}

// DelinquentCustomers lists customers holding unpaid fines, largest debt first.
func (s *Service) DelinquentCustomers(ctx context.Context) ([]*DelinquentCustomer, error) {
	return s.repo.ListDelinquentCustomers(ctx)
}
