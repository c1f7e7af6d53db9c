package loan

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/fine"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
)

type Status string

const (
	StatusActive            Status = "activo"
	StatusOverdue           Status = "vencido"
	StatusPendingEvaluation Status = "evaluación pendiente"
	StatusFinePending       Status = "multa pendiente"
	StatusClosed            Status = "finalizado"
	StatusClosedWithFine    Status = "finalizado con multa"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusOverdue, StatusPendingEvaluation, StatusFinePending, StatusClosed, StatusClosedWithFine:
		return true
	}

	return false
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == StatusClosed || s == StatusClosedWithFine
}

// transitions lists the persisted moves. StatusOverdue is never stored.
var transitions = map[Status][]Status{
	StatusActive:            {StatusClosed, StatusFinePending, StatusPendingEvaluation},
	StatusPendingEvaluation: {StatusFinePending},
	StatusFinePending:       {StatusClosedWithFine},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, n := range transitions[s] {
		if n == next {
			return true
		}
	}

	return false
}

var (
	ErrNotFound             = fmt.Errorf("loan: %w", apperr.ErrNotFound)
	ErrNotActive            = fmt.Errorf("loan is not active: %w", apperr.ErrConflict)
	ErrNotPendingEvaluation = fmt.Errorf("loan is not pending evaluation: %w", apperr.ErrConflict)
	ErrLoanLimit            = fmt.Errorf("customer reached the open loan limit: %w", apperr.ErrConflict)
	ErrDuplicateGroupLoan   = fmt.Errorf("customer already has this tool on loan: %w", apperr.ErrConflict)
)

type Loan struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	CustomerRUT  string
	ToolID       uuid.UUID
	GroupID      uuid.UUID
	ToolName     string
	Category     string
	LoanDate     time.Time
	ReturnDate   time.Time
	ReturnedAt   *time.Time
	Condition    *inventory.Condition
	Status       Status
	LoanValue    int64
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}

// Overdue reports whether the loan is still out past its return date.
func (l *Loan) Overdue(today time.Time) bool {
	return l.Status == StatusActive && today.After(l.ReturnDate)
}

// DisplayStatus is the status shown to users: an active loan past its
// return date reads as overdue.
func (l *Loan) DisplayStatus(today time.Time) Status {
	if l.Overdue(today) {
		return StatusOverdue
	}

	return l.Status
}

func (l *Loan) ref() fine.LoanRef {
	return fine.LoanRef{
		ID:         l.ID,
		CustomerID: l.CustomerID,
		ToolID:     l.ToolID,
		GroupID:    l.GroupID,
		ReturnDate: l.ReturnDate,
	}
}

// RankingEntry counts loans per tool group.
type RankingEntry struct {
	GroupID  uuid.UUID
	Name     string
	Category string
	Loans    int
}

// RepairItem is a unit waiting for repair together with the loan that
// brought it back damaged.
type RepairItem struct {
	ToolID       uuid.UUID
	GroupID      uuid.UUID
	ToolName     string
	LoanID       uuid.UUID
	CustomerName string
	ReturnedAt   *time.Time
	LoanStatus   Status
}
