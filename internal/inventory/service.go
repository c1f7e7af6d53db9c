package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/auth"
	"github.com/MrJamesThe3rd/toolrent/internal/clock"
	"github.com/MrJamesThe3rd/toolrent/internal/database"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=inventory
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategory(ctx context.Context, id uuid.UUID) (*Category, error)
	GetCategoryByName(ctx context.Context, name string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)

	CreateGroup(ctx context.Context, g *Group) error
	GetGroup(ctx context.Context, id uuid.UUID) (*Group, error)
	FindGroup(ctx context.Context, name string, categoryID uuid.UUID) (*Group, error)
	ListGroups(ctx context.Context, filter GroupFilter) ([]*Group, error)
	UpdateStock(ctx context.Context, id uuid.UUID, total, current int) error
	UpdateReplacementValue(ctx context.Context, id uuid.UUID, value int64) error
	UpdateDailyRentalRate(ctx context.Context, id uuid.UUID, value *int64) error

	CreateTools(ctx context.Context, tools []*Tool) error
	GetTool(ctx context.Context, id uuid.UUID) (*Tool, error)
	FindAvailableTool(ctx context.Context, groupID uuid.UUID) (*Tool, error)
	ListTools(ctx context.Context, filter ToolFilter) ([]*Tool, error)
	UpdateToolStatus(ctx context.Context, id uuid.UUID, status ToolStatus) error

	AppendMovement(ctx context.Context, movement *Movement) error
	ListMovements(ctx context.Context, filter MovementFilter) ([]*Movement, error)
	MovementBalance(ctx context.Context, groupID uuid.UUID) (int, error)
}

type Service struct {
	repo Repository
	txr  database.Transactor
}

func NewService(repo Repository, txr database.Transactor) *Service {
	return &Service{repo: repo, txr: txr}
}

type GroupFilter struct {
	CategoryID *uuid.UUID
	Name       *string
}

type ToolFilter struct {
	Status     *ToolStatus
	CategoryID *uuid.UUID
	GroupID    *uuid.UUID
}

type MovementFilter struct {
	ToolID    *uuid.UUID
	GroupID   *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}

type IntakeParams struct {
	Name             string
	CategoryID       uuid.UUID
	Quantity         int
	ReplacementValue *int64
	DailyRentalRate  *int64
}

// GroupLockKey is the advisory lock serialising every stock change of a group.
func GroupLockKey(groupID uuid.UUID) int64 {
	return database.LockKey("tool_group", groupID.String())
}

func (s *Service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("name", "is required")
	}

	c := &Category{Name: name}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	return c, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *Service) GetCategoryByName(ctx context.Context, name string) (*Category, error) {
	return s.repo.GetCategoryByName(ctx, strings.TrimSpace(name))
}

func validateIntake(p IntakeParams) error {
	if strings.TrimSpace(p.Name) == "" {
		return apperr.Validation("name", "is required")
	}

	if p.Quantity < 1 {
		return apperr.Validation("quantity", "must be at least 1")
	}

	if err := validateValue("replacement_value", p.ReplacementValue, MinValue); err != nil {
		return err
	}

	return validateValue("daily_rental_rate", p.DailyRentalRate, MinDailyRentalRate)
}

func validateValue(field string, v *int64, lowest int64) error {
	if v == nil {
		return nil
	}

	if *v < lowest || *v > MaxValue {
		return apperr.Validation(field, fmt.Sprintf("must be between %d and %d", lowest, MaxValue))
	}

	return nil
}

// Intake registers quantity new units under the (name, category) group,
// creating the group on first use.
func (s *Service) Intake(ctx context.Context, p IntakeParams) (*Group, error) {
	if err := validateIntake(p); err != nil {
		return nil, err
	}

	p.Name = strings.TrimSpace(p.Name)

	category, err := s.repo.GetCategory(ctx, p.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}

	ctx, tx, err := s.txr.BeginTx(ctx, database.LockKey("tool_group_name", p.Name, category.ID.String()))
	if err != nil {
		return nil, fmt.Errorf("begin intake: %w", err)
	}
	defer tx.Rollback()

	g, err := s.repo.FindGroup(ctx, p.Name, category.ID)

	switch {
	case errors.Is(err, ErrGroupNotFound):
		g = &Group{
			Name:             p.Name,
			Category:         *category,
			ReplacementValue: p.ReplacementValue,
			DailyRentalRate:  p.DailyRentalRate,
		}
		if err := s.repo.CreateGroup(ctx, g); err != nil {
			return nil, fmt.Errorf("create group: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("find group: %w", err)
	}

	if err := s.addUnits(ctx, g, p.Quantity); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit intake: %w", err)
	}

	return g, nil
}

// IntakeExisting adds quantity units to an existing group.
func (s *Service) IntakeExisting(ctx context.Context, groupID uuid.UUID, quantity int) (*Group, error) {
	if quantity < 1 {
		return nil, apperr.Validation("quantity", "must be at least 1")
	}

	ctx, tx, err := s.txr.BeginTx(ctx, GroupLockKey(groupID))
	if err != nil {
		return nil, fmt.Errorf("begin intake: %w", err)
	}
	defer tx.Rollback()

	g, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}

	if err := s.addUnits(ctx, g, quantity); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit intake: %w", err)
	}

	return g, nil
}

func (s *Service) addUnits(ctx context.Context, g *Group, quantity int) error {
	ctx, tx, err := s.txr.BeginTx(ctx, GroupLockKey(g.ID))
	if err != nil {
		return fmt.Errorf("lock group: %w", err)
	}
	defer tx.Rollback()

	tools := make([]*Tool, quantity)
	for i := range tools {
		tools[i] = &Tool{GroupID: g.ID, Name: g.Name, Category: g.Category, Status: StatusAvailable}
	}

	if err := s.repo.CreateTools(ctx, tools); err != nil {
		return fmt.Errorf("create tools: %w", err)
	}

	g.TotalTools += quantity
	g.CurrentStock += quantity

	if err := s.repo.UpdateStock(ctx, g.ID, g.TotalTools, g.CurrentStock); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}

	if err := s.record(ctx, MovementIntake, tools[0], quantity); err != nil {
		return err
	}

	slog.Info("tools registered", "group_id", g.ID, "name", g.Name, "quantity", quantity)

	return tx.Commit()
}

func (s *Service) record(ctx context.Context, typ MovementType, t *Tool, amount int) error {
	m := &Movement{
		Type:            typ,
		ResponsibleUser: auth.Username(ctx),
		ToolID:          t.ID,
		GroupID:         t.GroupID,
		ToolName:        t.Name,
		AffectedAmount:  amount,
	}
	if err := s.repo.AppendMovement(ctx, m); err != nil {
		return fmt.Errorf("append %s movement: %w", typ, err)
	}

	return nil
}

// ReserveUnit takes one available unit of the group out of stock. When unitID
// is set that exact unit is reserved.
func (s *Service) ReserveUnit(ctx context.Context, groupID uuid.UUID, unitID *uuid.UUID) (*Tool, error) {
	ctx, tx, err := s.txr.BeginTx(ctx, GroupLockKey(groupID))
	if err != nil {
		return nil, fmt.Errorf("begin reserve: %w", err)
	}
	defer tx.Rollback()

	g, err := s.repo.GetGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}

	if g.CurrentStock == 0 {
		return nil, ErrOutOfStock
	}

	var t *Tool

	if unitID != nil {
		t, err = s.repo.GetTool(ctx, *unitID)
		if err != nil {
			return nil, fmt.Errorf("get tool: %w", err)
		}

		if t.GroupID != groupID || t.Status != StatusAvailable {
			return nil, ErrToolUnavailable
		}
	} else {
		t, err = s.repo.FindAvailableTool(ctx, groupID)
		if errors.Is(err, ErrToolNotFound) {
			return nil, ErrOutOfStock
		}

		if err != nil {
			return nil, fmt.Errorf("find available tool: %w", err)
		}
	}

	if err := s.repo.UpdateStock(ctx, g.ID, g.TotalTools, g.CurrentStock-1); err != nil {
		return nil, fmt.Errorf("update stock: %w", err)
	}

	if err := s.setStatus(ctx, t, StatusLoaned); err != nil {
		return nil, err
	}

	if err := s.record(ctx, MovementLoan, t, -1); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit reserve: %w", err)
	}

	return t, nil
}

func (s *Service) setStatus(ctx context.Context, t *Tool, status ToolStatus) error {
	if err := s.repo.UpdateToolStatus(ctx, t.ID, status); err != nil {
		return fmt.Errorf("update tool status: %w", err)
	}

	t.Status = status

	return nil
}

// ReleaseUnit takes a loaned unit back. A damaged unit goes to repair and
// only returns to stock through CompleteRepair.
func (s *Service) ReleaseUnit(ctx context.Context, toolID uuid.UUID, condition Condition) (*Tool, error) {
	if !condition.Valid() {
		return nil, apperr.Validation("condition", "must be 'buen estado' or 'dañada'")
	}

	return s.mutateTool(ctx, toolID, func(ctx context.Context, g *Group, t *Tool) error {
		if t.Status != StatusLoaned {
			return ErrNotOnLoan
		}

		next := StatusInRepair
		if condition == ConditionGood {
			next = StatusAvailable

			if err := s.repo.UpdateStock(ctx, g.ID, g.TotalTools, g.CurrentStock+1); err != nil {
				return fmt.Errorf("update stock: %w", err)
			}
		}

		if err := s.setStatus(ctx, t, next); err != nil {
			return err
		}

		return s.record(ctx, MovementReturn, t, 1)
	})
}

// CompleteRepair puts a repaired unit back into stock.
func (s *Service) CompleteRepair(ctx context.Context, toolID uuid.UUID) (*Tool, error) {
	return s.mutateTool(ctx, toolID, func(ctx context.Context, g *Group, t *Tool) error {
		if t.Status != StatusInRepair {
			return ErrNotInRepair
		}

		if err := s.repo.UpdateStock(ctx, g.ID, g.TotalTools, g.CurrentStock+1); err != nil {
			return fmt.Errorf("update stock: %w", err)
		}

		if err := s.setStatus(ctx, t, StatusAvailable); err != nil {
			return err
		}

		return s.record(ctx, MovementRepair, t, 0)
	})
}

// WriteOff removes a unit from the inventory permanently. A unit out on loan
// has to come back first.
func (s *Service) WriteOff(ctx context.Context, toolID uuid.UUID) (*Tool, error) {
	t, err := s.mutateTool(ctx, toolID, func(ctx context.Context, g *Group, t *Tool) error {
		switch t.Status {
		case StatusWrittenOff:
			return ErrAlreadyWrittenOff
		case StatusLoaned:
			return ErrOnLoan
		}

		current := g.CurrentStock
		if t.Status == StatusAvailable {
			current--
		}

		if err := s.repo.UpdateStock(ctx, g.ID, g.TotalTools-1, current); err != nil {
			return fmt.Errorf("update stock: %w", err)
		}

		if err := s.setStatus(ctx, t, StatusWrittenOff); err != nil {
			return err
		}

		return s.record(ctx, MovementWriteOff, t, -1)
	})
	if err != nil {
		return nil, err
	}

	slog.Info("tool written off", "tool_id", t.ID, "group_id", t.GroupID)

	return t, nil
}

// mutateTool runs fn under the lock of the tool's group with both rows loaded.
func (s *Service) mutateTool(ctx context.Context, toolID uuid.UUID, fn func(ctx context.Context, g *Group, t *Tool) error) (*Tool, error) {
	t, err := s.repo.GetTool(ctx, toolID)
	if err != nil {
		return nil, fmt.Errorf("get tool: %w", err)
	}

	ctx, tx, err := s.txr.BeginTx(ctx, GroupLockKey(t.GroupID))
	if err != nil {
		return nil, fmt.Errorf("begin tool update: %w", err)
	}
	defer tx.Rollback()

	// Re-read under the lock.
	t, err = s.repo.GetTool(ctx, toolID)
	if err != nil {
		return nil, fmt.Errorf("get tool: %w", err)
	}

	g, err := s.repo.GetGroup(ctx, t.GroupID)
	if err != nil {
		return nil, fmt.Errorf("get group: %w", err)
	}

	if err := fn(ctx, g, t); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tool update: %w", err)
	}

	return t, nil
}

func (s *Service) UpdateReplacementValue(ctx context.Context, groupID uuid.UUID, value int64) (*Group, error) {
	if err := validateValue("replacement_value", &value, MinValue); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateReplacementValue(ctx, groupID, value); err != nil {
		return nil, fmt.Errorf("update replacement value: %w", err)
	}

	return s.repo.GetGroup(ctx, groupID)
}

// UpdateDailyRentalRate sets the group's own daily rate. A nil value resets
// it so the global rate applies. Open loans keep the value they were priced at.
func (s *Service) UpdateDailyRentalRate(ctx context.Context, groupID uuid.UUID, value *int64) (*Group, error) {
	if err := validateValue("daily_rental_rate", value, MinDailyRentalRate); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateDailyRentalRate(ctx, groupID, value); err != nil {
		return nil, fmt.Errorf("update daily rental rate: %w", err)
	}

	return s.repo.GetGroup(ctx, groupID)
}

func (s *Service) GetGroup(ctx context.Context, id uuid.UUID) (*Group, error) {
	return s.repo.GetGroup(ctx, id)
}

func (s *Service) ListGroups(ctx context.Context, filter GroupFilter) ([]*Group, error) {
	return s.repo.ListGroups(ctx, filter)
}

func (s *Service) GetTool(ctx context.Context, id uuid.UUID) (*Tool, error) {
	return s.repo.GetTool(ctx, id)
}

func (s *Service) ListTools(ctx context.Context, filter ToolFilter) ([]*Tool, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperr.Validation("status", "unknown tool status")
	}

	return s.repo.ListTools(ctx, filter)
}

func (s *Service) ListMovements(ctx context.Context, filter MovementFilter) ([]*Movement, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, apperr.Validation("start_date", "must not be after end_date")
	}

	// The filter carries calendar dates; movements are stamped with instants.
	if filter.StartDate != nil {
		filter.StartDate = new(clock.StartOf(*filter.StartDate))
	}

	if filter.EndDate != nil {
		filter.EndDate = new(clock.StartOf(*filter.EndDate))
	}

	return s.repo.ListMovements(ctx, filter)
}

// MovementBalance sums the kardex deltas of a group. It equals the units
// physically held: total minus those out on loan.
func (s *Service) MovementBalance(ctx context.Context, groupID uuid.UUID) (int, error) {
	return s.repo.MovementBalance(ctx, groupID)
}
