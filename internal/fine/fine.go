package fine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
)

type Type string

const (
	TypeLate        Type = "atraso"
	TypeMinorDamage Type = "daño leve"
	TypeIrreparable Type = "daño irreparable"
)

func (t Type) Valid() bool {
	switch t {
	case TypeLate, TypeMinorDamage, TypeIrreparable:
		return true
	}

	return false
}

type Status string

const (
	StatusUnpaid Status = "no pagada"
	StatusPaid   Status = "pagada"
)

func (s Status) Valid() bool {
	return s == StatusUnpaid || s == StatusPaid
}

var (
	ErrNotFound    = fmt.Errorf("fine: %w", apperr.ErrNotFound)
	ErrAlreadyPaid = fmt.Errorf("fine already paid: %w", apperr.ErrConflict)
	ErrNotOverdue  = fmt.Errorf("loan is not overdue: %w", apperr.ErrConflict)
)

type Fine struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	CustomerRUT  string
	LoanID       uuid.UUID
	Type         Type
	Value        int64
	Status       Status
	CreatedAt    time.Time
	PaidAt       *time.Time
}

// LoanRef is the part of a loan a fine is assessed against.
type LoanRef struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	ToolID     uuid.UUID
	GroupID    uuid.UUID
	ReturnDate time.Time
}

// DelinquentCustomer aggregates a customer's unpaid fines.
type DelinquentCustomer struct {
	CustomerID  uuid.UUID
	Name        string
	RUT         string
	UnpaidFines int
	UnpaidTotal int64
}
