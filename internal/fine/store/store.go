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
	"github.com/MrJamesThe3rd/toolrent/internal/fine"
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

// scanFine expects: id, customer_id, customer name, customer rut, loan_id,
// type, value, status, created_at, paid_at
func scanFine(s scanner) (*fine.Fine, error) {
	var (
		f           fine.Fine
		typ, status string
	)

	if err := s.Scan(
		&f.ID, &f.CustomerID, &f.CustomerName, &f.CustomerRUT, &f.LoanID,
		&typ, &f.Value, &status, &f.CreatedAt, &f.PaidAt,
	); err != nil {
		return nil, err
	}

	f.Type = fine.Type(typ)
	f.Status = fine.Status(status)

	return &f, nil
}

func selectFines() sq.SelectBuilder {
	return psql.Select(
		"f.id", "f.customer_id", "c.name", "c.rut", "f.loan_id",
		"f.type", "f.value", "f.status", "f.created_at", "f.paid_at",
	).
		From("fines f").
		Join("customers c ON c.id = f.customer_id")
}

func (s *Store) CreateFine(ctx context.Context, f *fine.Fine) error {
	query := `
		INSERT INTO fines (customer_id, loan_id, type, value, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := s.conn(ctx).QueryRowContext(ctx, query, f.CustomerID, f.LoanID, f.Type, f.Value, f.Status).
		Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating fine: %w", err)
	}

	return nil
}

func (s *Store) GetFine(ctx context.Context, id uuid.UUID) (*fine.Fine, error) {
	query, args, err := selectFines().Where(sq.Eq{"f.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building fine query: %w", err)
	}

	f, err := scanFine(s.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fine.ErrNotFound
		}

		return nil, fmt.Errorf("getting fine: %w", err)
	}

	return f, nil
}

func (s *Store) ListFines(ctx context.Context, filter fine.ListFilter) ([]*fine.Fine, error) {
	b := selectFines().OrderBy("f.created_at DESC")

	if filter.CustomerID != nil {
		b = b.Where(sq.Eq{"f.customer_id": *filter.CustomerID})
	}

	if filter.RUT != nil {
		b = b.Where(sq.Eq{"c.rut": *filter.RUT})
	}

	if filter.LoanID != nil {
		b = b.Where(sq.Eq{"f.loan_id": *filter.LoanID})
	}

	if filter.Status != nil {
		b = b.Where(sq.Eq{"f.status": *filter.Status})
	}

	if filter.Type != nil {
		b = b.Where(sq.Eq{"f.type": *filter.Type})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building fine query: %w", err)
	}

	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing fines: %w", err)
	}
	defer rows.Close()

	var fines []*fine.Fine

	for rows.Next() {
		f, err := scanFine(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning fine: %w", err)
		}

		fines = append(fines, f)
	}

	return fines, rows.Err()
}

// MarkFinePaid only touches unpaid fines so a concurrent payment is reported
// as already paid.
func (s *Store) MarkFinePaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	query := `UPDATE fines SET status = $1, paid_at = $2 WHERE id = $3 AND status = $4`

	res, err := s.conn(ctx).ExecContext(ctx, query, fine.StatusPaid, paidAt, id, fine.StatusUnpaid)
	if err != nil {
		return fmt.Errorf("marking fine paid: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return fine.ErrAlreadyPaid
	}

	return nil
}

func (s *Store) CountUnpaidForLoan(ctx context.Context, loanID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM fines WHERE loan_id = $1 AND status = $2`

	var n int
	if err := s.conn(ctx).QueryRowContext(ctx, query, loanID, fine.StatusUnpaid).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting unpaid fines: %w", err)
	}

	return n, nil
}

func (s *Store) ListDelinquentCustomers(ctx context.Context) ([]*fine.DelinquentCustomer, error) {
	query := `
		SELECT c.id, c.name, c.rut, COUNT(*), SUM(f.value)
		FROM fines f
		JOIN customers c ON c.id = f.customer_id
		WHERE f.status = $1
		GROUP BY c.id, c.name, c.rut
		ORDER BY SUM(f.value) DESC, c.name ASC
	`

	rows, err := s.conn(ctx).QueryContext(ctx, query, fine.StatusUnpaid)
	if err != nil {
		return nil, fmt.Errorf("listing delinquent customers: %w", err)
	}
	defer rows.Close()

	var out []*fine.DelinquentCustomer

	for rows.Next() {
		var d fine.DelinquentCustomer
		if err := rows.Scan(&d.CustomerID, &d.Name, &d.RUT, &d.UnpaidFines, &d.UnpaidTotal); err != nil {
			return nil, fmt.Errorf("scanning delinquent customer: %w", err)
		}

		out = append(out, &d)
	}

	return out, rows.Err()
}
