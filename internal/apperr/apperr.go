// Package apperr defines the error kinds shared by every domain package.
// Domain sentinels wrap one of the kinds so callers can branch on
// errors.Is without knowing the concrete package.
package apperr

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrCustomerRestricted = errors.New("customer restricted")
)

// ValidationError reports a single rejected field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func Validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// RestrictedError is returned when a restricted customer tries to rent.
type RestrictedError struct {
	CustomerID   uuid.UUID
	UnpaidFines  int
	OverdueLoans int
}

func (e *RestrictedError) Error() string {
	return fmt.Sprintf("customer %s is restricted: %d unpaid fines, %d overdue loans",
		e.CustomerID, e.UnpaidFines, e.OverdueLoans)
}

func (e *RestrictedError) Is(target error) bool {
	return target == ErrCustomerRestricted
}
