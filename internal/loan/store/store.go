package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/database"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
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

type scanner interface {
	Scan(dest ...any) error
}

func selectLoans() sq.SelectBuilder {
	return psql.Select(
		"l.id", "l.customer_id", "c.name", "c.rut", "l.tool_id", "l.group_id", "g.name", "cat.name",
		"l.loan_date", "l.return_date", "l.returned_at", "l.return_condition", "l.status", "l.loan_value",
		"l.created_at", "l.updated_at",
	).
		From("loans l").
		Join("customers c ON c.id = l.customer_id").
		Join("tool_groups g ON g.id = l.group_id").
		Join("categories cat ON cat.id = g.category_id")
}

func scanLoan(s scanner) (*loan.Loan, error) {
	var (
		l         loan.Loan
		condition sql.NullString
		status    string
	)

	if err := s.Scan(
		&l.ID, &l.CustomerID, &l.CustomerName, &l.CustomerRUT, &l.ToolID, &l.GroupID, &l.ToolName, &l.Category,
		&l.LoanDate, &l.ReturnDate, &l.ReturnedAt, &condition, &status, &l.LoanValue,
		&l.CreatedAt, &l.UpdatedAt,
	); err != nil {
		return nil, err
	}

	l.Status = loan.Status(status)

	if condition.Valid {
		c := inventory.Condition(condition.String)
		l.Condition = &c
	}

	return &l, nil
}

func (s *Store) CreateLoan(ctx context.Context, l *loan.Loan) error {
	query := `
		INSERT INTO loans (customer_id, tool_id, group_id, loan_date, return_date, status, loan_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	err := s.conn(ctx).QueryRowContext(ctx, query,
		l.CustomerID,
		l.ToolID,
		l.GroupID,
		l.LoanDate,
		l.ReturnDate,
		l.Status,
		l.LoanValue,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return inventory.ErrToolUnavailable
		}

		return fmt.Errorf("creating loan: %w", err)
	}

	return nil
}

func (s *Store) GetLoan(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	query, args, err := selectLoans().Where(sq.Eq{"l.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building loan query: %w", err)
	}

	l, err := scanLoan(s.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, loan.ErrNotFound
		}

		return nil, fmt.Errorf("getting loan: %w", err)
	}

	return l, nil
}

func (s *Store) ListLoans(ctx context.Context, filter loan.ListFilter) ([]*loan.Loan, error) {
	b := selectLoans().OrderBy("l.loan_date DESC", "l.created_at DESC")

	if filter.Status != nil {
		switch *filter.Status {
		case loan.StatusOverdue:
			b = b.Where(sq.Eq{"l.status": loan.StatusActive}).Where(sq.Lt{"l.return_date": filter.Today})
		case loan.StatusActive:
			b = b.Where(sq.Eq{"l.status": loan.StatusActive}).Where(sq.GtOrEq{"l.return_date": filter.Today})
		default:
			b = b.Where(sq.Eq{"l.status": *filter.Status})
		}
	}

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, st := range filter.Statuses {
			statuses[i] = string(st)
		}

		b = b.Where(sq.Eq{"l.status": statuses})
	}

	if filter.CustomerID != nil {
		b = b.Where(sq.Eq{"l.customer_id": *filter.CustomerID})
	}

	if filter.RUT != nil {
		b = b.Where(sq.Eq{"c.rut": *filter.RUT})
	}

	if filter.GroupID != nil {
		b = b.Where(sq.Eq{"l.group_id": *filter.GroupID})
	}

	if filter.StartDate != nil {
		b = b.Where(sq.GtOrEq{"l.loan_date": *filter.StartDate})
	}

	if filter.EndDate != nil {
		b = b.Where(sq.LtOrEq{"l.loan_date": *filter.EndDate})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building loan query: %w", err)
	}

	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing loans: %w", err)
	}
	defer rows.Close()

	var loans []*loan.Loan

	for rows.Next() {
		l, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning loan: %w", err)
		}

		loans = append(loans, l)
	}

	return loans, rows.Err()
}

func (s *Store) UpdateLoan(ctx context.Context, l *loan.Loan) error {
	query := `
		UPDATE loans
		SET status = $1, returned_at = $2, return_condition = $3, updated_at = NOW()
		WHERE id = $4
	`

	res, err := s.conn(ctx).ExecContext(ctx, query, l.Status, l.ReturnedAt, l.Condition, l.ID)
	if err != nil {
		return fmt.Errorf("updating loan: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return loan.ErrNotFound
	}

	return nil
}

func (s *Store) CountOpenLoans(ctx context.Context, customerID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM loans WHERE customer_id = $1 AND status = $2`

	var n int
	if err := s.conn(ctx).QueryRowContext(ctx, query, customerID, loan.StatusActive).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting open loans: %w", err)
	}

	return n, nil
}

func (s *Store) HasOpenLoanInGroup(ctx context.Context, customerID, groupID uuid.UUID) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM loans WHERE customer_id = $1 AND group_id = $2 AND status = $3)`

	var exists bool
	if err := s.conn(ctx).QueryRowContext(ctx, query, customerID, groupID, loan.StatusActive).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking open loans in group: %w", err)
	}

	return exists, nil
}

func (s *Store) RankGroups(ctx context.Context, from, to *time.Time, limit int) ([]*loan.RankingEntry, error) {
	b := psql.Select("g.id", "g.name", "cat.name", "COUNT(*)").
		From("loans l").
		Join("tool_groups g ON g.id = l.group_id").
		Join("categories cat ON cat.id = g.category_id").
		GroupBy("g.id", "g.name", "cat.name").
		OrderBy("COUNT(*) DESC", "g.name ASC").
		Limit(uint64(limit))

	if from != nil {
		b = b.Where(sq.GtOrEq{"l.loan_date": *from})
	}

	if to != nil {
		b = b.Where(sq.LtOrEq{"l.loan_date": *to})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building ranking query: %w", err)
	}

	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ranking tool groups: %w", err)
	}
	defer rows.Close()

	var ranking []*loan.RankingEntry

	for rows.Next() {
		var e loan.RankingEntry
		if err := rows.Scan(&e.GroupID, &e.Name, &e.Category, &e.Loans); err != nil {
			return nil, fmt.Errorf("scanning ranking entry: %w", err)
		}

		ranking = append(ranking, &e)
	}

	return ranking, rows.Err()
}

// ListRepairQueue pairs each unit in repair with the latest loan that
// returned it damaged.
func (s *Store) ListRepairQueue(ctx context.Context) ([]*loan.RepairItem, error) {
	query := `
		SELECT tool_id, group_id, tool_name, loan_id, customer_name, returned_at, loan_status
		FROM (
			SELECT DISTINCT ON (t.id)
				t.id AS tool_id, t.group_id, g.name AS tool_name, l.id AS loan_id,
				c.name AS customer_name, l.returned_at, l.status AS loan_status
			FROM tools t
			JOIN tool_groups g ON g.id = t.group_id
			JOIN loans l ON l.tool_id = t.id AND l.return_condition = $1
			JOIN customers c ON c.id = l.customer_id
			WHERE t.status = $2
			ORDER BY t.id, l.returned_at DESC, l.created_at DESC
		) q
		ORDER BY returned_at ASC
	`

	rows, err := s.conn(ctx).QueryContext(ctx, query, inventory.ConditionDamaged, inventory.StatusInRepair)
	if err != nil {
		return nil, fmt.Errorf("listing repair queue: %w", err)
	}
	defer rows.Close()

	var items []*loan.RepairItem

	for rows.Next() {
		var (
			it     loan.RepairItem
			status string
		)

		if err := rows.Scan(&it.ToolID, &it.GroupID, &it.ToolName, &it.LoanID, &it.CustomerName, &it.ReturnedAt, &status); err != nil {
			return nil, fmt.Errorf("scanning repair item: %w", err)
		}

		it.LoanStatus = loan.Status(status)
		items = append(items, &it)
	}

	return items, rows.Err()
}
