package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/database"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) conn(ctx context.Context) database.Querier {
	return database.Conn(ctx, s.db)
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func (s *Store) CreateCategory(ctx context.Context, c *inventory.Category) error {
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING id, created_at`

	if err := s.conn(ctx).QueryRowContext(ctx, query, c.Name).Scan(&c.ID, &c.CreatedAt); err != nil {
		if database.IsUniqueViolation(err) {
			return inventory.ErrDuplicateCategory
		}

		return fmt.Errorf("creating category: %w", err)
	}

	return nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*inventory.Category, error) {
	return s.getCategory(ctx, "id = $1", id)
}

func (s *Store) GetCategoryByName(ctx context.Context, name string) (*inventory.Category, error) {
	return s.getCategory(ctx, "LOWER(name) = LOWER($1)", name)
}

func (s *Store) getCategory(ctx context.Context, where string, arg any) (*inventory.Category, error) {
	query := `SELECT id, name, created_at FROM categories WHERE ` + where

	var c inventory.Category
	if err := s.conn(ctx).QueryRowContext(ctx, query, arg).Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrCategoryNotFound
		}

		return nil, fmt.Errorf("getting category: %w", err)
	}

	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]*inventory.Category, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `SELECT id, name, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer rows.Close()

	var categories []*inventory.Category

	for rows.Next() {
		var c inventory.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}

		categories = append(categories, &c)
	}

	return categories, rows.Err()
}

// scanGroup expects: id, name, category id, category name, total_tools,
// current_stock, replacement_value, daily_rental_rate, created_at, updated_at
func scanGroup(s scanner) (*inventory.Group, error) {
	var g inventory.Group

	if err := s.Scan(
		&g.ID, &g.Name, &g.Category.ID, &g.Category.Name,
		&g.TotalTools, &g.CurrentStock, &g.ReplacementValue, &g.DailyRentalRate,
		&g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &g, nil
}

var groupColumns = []string{
	"g.id", "g.name", "c.id", "c.name", "g.total_tools", "g.current_stock",
	"g.replacement_value", "g.daily_rental_rate", "g.created_at", "g.updated_at",
}

func selectGroups() sq.SelectBuilder {
	return psql.Select(groupColumns...).
		From("tool_groups g").
		Join("categories c ON c.id = g.category_id")
}

func (s *Store) CreateGroup(ctx context.Context, g *inventory.Group) error {
	query := `
		INSERT INTO tool_groups (name, category_id, total_tools, current_stock, replacement_value, daily_rental_rate)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := s.conn(ctx).QueryRowContext(ctx, query,
		g.Name,
		g.Category.ID,
		g.TotalTools,
		g.CurrentStock,
		g.ReplacementValue,
		g.DailyRentalRate,
	).Scan(&g.ID, &g.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating tool group: %w", err)
	}

	return nil
}

func (s *Store) getGroup(ctx context.Context, pred sq.Sqlizer) (*inventory.Group, error) {
	query, args, err := selectGroups().Where(pred).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building group query: %w", err)
	}

	g, err := scanGroup(s.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrGroupNotFound
		}

		return nil, fmt.Errorf("getting tool group: %w", err)
	}

	return g, nil
}

func (s *Store) GetGroup(ctx context.Context, id uuid.UUID) (*inventory.Group, error) {
	return s.getGroup(ctx, sq.Eq{"g.id": id})
}

func (s *Store) FindGroup(ctx context.Context, name string, categoryID uuid.UUID) (*inventory.Group, error) {
	return s.getGroup(ctx, sq.And{
		sq.Expr("LOWER(g.name) = LOWER(?)", name),
		sq.Eq{"g.category_id": categoryID},
	})
}

func (s *Store) ListGroups(ctx context.Context, filter inventory.GroupFilter) ([]*inventory.Group, error) {
	b := selectGroups().OrderBy("g.name ASC")

	if filter.CategoryID != nil {
		b = b.Where(sq.Eq{"g.category_id": *filter.CategoryID})
	}

	if filter.Name != nil {
		b = b.Where(sq.ILike{"g.name": "%" + *filter.Name + "%"})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building group query: %w", err)
	}

	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tool groups: %w", err)
	}
	defer rows.Close()

	var groups []*inventory.Group

	for rows.Next() {
		g, err := scanGroup(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tool group: %w", err)
		}

		groups = append(groups, g)
	}

	return groups, rows.Err()
}

func (s *Store) UpdateStock(ctx context.Context, id uuid.UUID, total, current int) error {
	query := `
		UPDATE tool_groups
		SET total_tools = $1, current_stock = $2, updated_at = NOW()
		WHERE id = $3
	`

	return s.execOne(ctx, "updating stock", query, total, current, id)
}

func (s *Store) UpdateReplacementValue(ctx context.Context, id uuid.UUID, value int64) error {
	query := `UPDATE tool_groups SET replacement_value = $1, updated_at = NOW() WHERE id = $2`

	return s.execOne(ctx, "updating replacement value", query, value, id)
}

func (s *Store) UpdateDailyRentalRate(ctx context.Context, id uuid.UUID, value *int64) error {
	query := `UPDATE tool_groups SET daily_rental_rate = $1, updated_at = NOW() WHERE id = $2`

	return s.execOne(ctx, "updating daily rental rate", query, value, id)
}

func (s *Store) execOne(ctx context.Context, op, query string, args ...any) error {
	res, err := s.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return inventory.ErrGroupNotFound
	}

	return nil
}

// scanTool expects: id, group_id, group name, category id, category name, status, created_at, updated_at
func scanTool(s scanner) (*inventory.Tool, error) {
	var t inventory.Tool

	var status string

	if err := s.Scan(
		&t.ID, &t.GroupID, &t.Name, &t.Category.ID, &t.Category.Name,
		&status, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Status = inventory.ToolStatus(status)

	return &t, nil
}

func selectTools() sq.SelectBuilder {
	return psql.Select("t.id", "t.group_id", "g.name", "c.id", "c.name", "t.status", "t.created_at", "t.updated_at").
		From("tools t").
		Join("tool_groups g ON g.id = t.group_id").
		Join("categories c ON c.id = g.category_id")
}

func (s *Store) CreateTools(ctx context.Context, tools []*inventory.Tool) error {
	query := `INSERT INTO tools (group_id, status) VALUES ($1, $2) RETURNING id, created_at`

	for _, t := range tools {
		if err := s.conn(ctx).QueryRowContext(ctx, query, t.GroupID, t.Status).Scan(&t.ID, &t.CreatedAt); err != nil {
			return fmt.Errorf("creating tool: %w", err)
		}
	}

	return nil
}

func (s *Store) getTool(ctx context.Context, b sq.SelectBuilder) (*inventory.Tool, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building tool query: %w", err)
	}

	t, err := scanTool(s.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, inventory.ErrToolNotFound
		}

		return nil, fmt.Errorf("getting tool: %w", err)
	}

	return t, nil
}

func (s *Store) GetTool(ctx context.Context, id uuid.UUID) (*inventory.Tool, error) {
	return s.getTool(ctx, selectTools().Where(sq.Eq{"t.id": id}))
}

func (s *Store) FindAvailableTool(ctx context.Context, groupID uuid.UUID) (*inventory.Tool, error) {
	return s.getTool(ctx, selectTools().
		Where(sq.Eq{"t.group_id": groupID, "t.status": inventory.StatusAvailable}).
		OrderBy("t.created_at ASC", "t.id ASC").
		Limit(1))
}

func (s *Store) ListTools(ctx context.Context, filter inventory.ToolFilter) ([]*inventory.Tool, error) {
	b := selectTools().OrderBy("g.name ASC", "t.created_at ASC")

	if filter.Status != nil {
		b = b.Where(sq.Eq{"t.status": *filter.Status})
	}

	if filter.CategoryID != nil {
		b = b.Where(sq.Eq{"g.category_id": *filter.CategoryID})
	}

	if filter.GroupID != nil {
		b = b.Where(sq.Eq{"t.group_id": *filter.GroupID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building tool query: %w", err)
	}

	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tools: %w", err)
	}
	defer rows.Close()

	var tools []*inventory.Tool

	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning tool: %w", err)
		}

		tools = append(tools, t)
	}

	return tools, rows.Err()
}

func (s *Store) UpdateToolStatus(ctx context.Context, id uuid.UUID, status inventory.ToolStatus) error {
	query := `UPDATE tools SET status = $1, updated_at = NOW() WHERE id = $2`

	res, err := s.conn(ctx).ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("updating tool status: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return inventory.ErrToolNotFound
	}

	return nil
}

func (s *Store) AppendMovement(ctx context.Context, m *inventory.Movement) error {
	query := `
		INSERT INTO movements (type, responsible_user, tool_id, group_id, affected_amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, date
	`

	err := s.conn(ctx).QueryRowContext(ctx, query,
		m.Type,
		m.ResponsibleUser,
		m.ToolID,
		m.GroupID,
		m.AffectedAmount,
	).Scan(&m.ID, &m.Date)
	if err != nil {
		return fmt.Errorf("appending movement: %w", err)
	}

	return nil
}

func (s *Store) ListMovements(ctx context.Context, filter inventory.MovementFilter) ([]*inventory.Movement, error) {
	b := psql.Select("m.id", "m.type", "m.date", "m.responsible_user", "m.tool_id", "m.group_id", "g.name", "m.affected_amount").
		From("movements m").
		Join("tool_groups g ON g.id = m.group_id").
		OrderBy("m.date ASC")

	if filter.ToolID != nil {
		b = b.Where(sq.Eq{"m.tool_id": *filter.ToolID})
	}

	if filter.GroupID != nil {
		b = b.Where(sq.Eq{"m.group_id": *filter.GroupID})
	}

	if filter.StartDate != nil {
		b = b.Where(sq.GtOrEq{"m.date": *filter.StartDate})
	}

	if filter.EndDate != nil {
		// EndDate is inclusive of the whole day.
		b = b.Where(sq.Lt{"m.date": filter.EndDate.AddDate(0, 0, 1)})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building movement query: %w", err)
	}

	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing movements: %w", err)
	}
	defer rows.Close()

	var movements []*inventory.Movement

	for rows.Next() {
		var (
			m   inventory.Movement
			typ string
		)

		if err := rows.Scan(&m.ID, &typ, &m.Date, &m.ResponsibleUser, &m.ToolID, &m.GroupID, &m.ToolName, &m.AffectedAmount); err != nil {
			return nil, fmt.Errorf("scanning movement: %w", err)
		}

		m.Type = inventory.MovementType(typ)
		movements = append(movements, &m)
	}

	return movements, rows.Err()
}

func (s *Store) MovementBalance(ctx context.Context, groupID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(SUM(affected_amount), 0) FROM movements WHERE group_id = $1`

	var balance int
	if err := s.conn(ctx).QueryRowContext(ctx, query, groupID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("summing movements: %w", err)
	}

	return balance, nil
}
