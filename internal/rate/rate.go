package rate

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
)

var (
	ErrNotFound      = fmt.Errorf("rate: %w", apperr.ErrNotFound)
	ErrDuplicateName = fmt.Errorf("rate name already exists: %w", apperr.ErrConflict)
)

// GlobalRate is an admin-managed named amount used when a tool group has no
// value of its own, and as the source of the late fee.
type GlobalRate struct {
	ID             uuid.UUID
	Name           string
	DailyRateValue int64
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// Names binds the well-known rate names the resolver looks up.
type Names struct {
	DailyRental      string
	ReplacementValue string
	LateFee          string
}

// Bounds for daily rates, in CLP.
const (
	MinDailyRate int64 = 1500
	MaxDailyRate int64 = 25000
)
