package inventory

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
)

var (
	ErrCategoryNotFound  = fmt.Errorf("category: %w", apperr.ErrNotFound)
	ErrGroupNotFound     = fmt.Errorf("tool group: %w", apperr.ErrNotFound)
	ErrToolNotFound      = fmt.Errorf("tool: %w", apperr.ErrNotFound)
	ErrDuplicateCategory = fmt.Errorf("category already exists: %w", apperr.ErrConflict)

	ErrOutOfStock        = fmt.Errorf("tool group out of stock: %w", apperr.ErrConflict)
	ErrToolUnavailable   = fmt.Errorf("tool is not available: %w", apperr.ErrConflict)
	ErrNotOnLoan         = fmt.Errorf("tool is not on loan: %w", apperr.ErrConflict)
	ErrNotInRepair       = fmt.Errorf("tool is not in repair: %w", apperr.ErrConflict)
	ErrAlreadyWrittenOff = fmt.Errorf("tool is already written off: %w", apperr.ErrConflict)
	ErrOnLoan            = fmt.Errorf("tool is on loan: %w", apperr.ErrConflict)
)

// ToolStatus is the state of a single physical unit.
type ToolStatus string

const (
	StatusAvailable  ToolStatus = "disponible"
	StatusLoaned     ToolStatus = "prestada"
	StatusInRepair   ToolStatus = "en reparación"
	StatusWrittenOff ToolStatus = "dada de baja"
)

func (s ToolStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusLoaned, StatusInRepair, StatusWrittenOff:
		return true
	}

	return false
}

// Condition is the state a unit comes back in.
type Condition string

const (
	ConditionGood    Condition = "buen estado"
	ConditionDamaged Condition = "dañada"
)

func (c Condition) Valid() bool {
	return c == ConditionGood || c == ConditionDamaged
}

// MovementType classifies a kardex entry.
type MovementType string

const (
	MovementIntake   MovementType = "ingreso"
	MovementLoan     MovementType = "préstamo"
	MovementReturn   MovementType = "devolución"
	MovementWriteOff MovementType = "baja"
	MovementRepair   MovementType = "reparación"
)

// Value bounds for replacement values and per-group daily rates, in CLP.
const (
	MinValue           int64 = 2000
	MinDailyRentalRate int64 = 1000
	MaxValue           int64 = 10_000_000
)

type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Group is the inventory record shared by every unit with the same name and category.
type Group struct {
	ID               uuid.UUID
	Name             string
	Category         Category
	TotalTools       int
	CurrentStock     int
	ReplacementValue *int64 // nil falls back to the global rate
	DailyRentalRate  *int64 // nil falls back to the global rate
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// Tool is one physical unit of a Group.
type Tool struct {
	ID        uuid.UUID
	GroupID   uuid.UUID
	Name      string   // Loaded via JOIN
	Category  Category // Loaded via JOIN
	Status    ToolStatus
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Movement is an append-only kardex entry.
type Movement struct {
	ID              uuid.UUID
	Type            MovementType
	Date            time.Time
	ResponsibleUser string
	ToolID          uuid.UUID
	GroupID         uuid.UUID
	ToolName        string // Loaded via JOIN
	AffectedAmount  int
}
