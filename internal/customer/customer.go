package customer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
)

type Status string

const (
	StatusActive     Status = "activo"
	StatusRestricted Status = "restringido"
)

var (
	ErrNotFound     = fmt.Errorf("customer: %w", apperr.ErrNotFound)
	ErrDuplicateRUT = fmt.Errorf("a customer with this RUT already exists: %w", apperr.ErrConflict)
)

type Customer struct {
	ID        uuid.UUID
	Name      string
	RUT       string
	Email     string
	Phone     string
	Status    Status
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Standing is a customer's eligibility to rent along with the counts it was
// derived from.
type Standing struct {
	CustomerID   uuid.UUID
	Status       Status
	UnpaidFines  int
	OverdueLoans int
}

// Restricted reports whether the counts block new loans.
func (s Standing) Restricted() bool {
	return s.UnpaidFines > 0 || s.OverdueLoans > 0
}
