package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/customer"
	"github.com/MrJamesThe3rd/toolrent/internal/database"
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

var customerColumns = []string{"id", "name", "rut", "email", "phone", "status", "created_at", "updated_at"}

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(s scanner) (*customer.Customer, error) {
	var (
		c      customer.Customer
		status string
	)

	if err := s.Scan(&c.ID, &c.Name, &c.RUT, &c.Email, &c.Phone, &status, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}

	c.Status = customer.Status(status)

	return &c, nil
}

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `
		INSERT INTO customers (name, rut, email, phone, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := s.conn(ctx).QueryRowContext(ctx, query, c.Name, c.RUT, c.Email, c.Phone, c.Status).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return customer.ErrDuplicateRUT
		}

		return fmt.Errorf("creating customer: %w", err)
	}

	return nil
}

func (s *Store) get(ctx context.Context, pred sq.Sqlizer) (*customer.Customer, error) {
	query, args, err := psql.Select(customerColumns...).From("customers").Where(pred).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building customer query: %w", err)
	}

	c, err := scanCustomer(s.conn(ctx).QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customer.ErrNotFound
		}

		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return c, nil
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	return s.get(ctx, sq.Eq{"id": id})
}

func (s *Store) GetCustomerByRUT(ctx context.Context, rut string) (*customer.Customer, error) {
	return s.get(ctx, sq.Eq{"rut": rut})
}

func (s *Store) ListCustomers(ctx context.Context, filter customer.ListFilter) ([]*customer.Customer, error) {
	b := psql.Select(customerColumns...).From("customers").OrderBy("name ASC")

	if filter.Status != nil {
		b = b.Where(sq.Eq{"status": *filter.Status})
	}

	if filter.Name != nil {
		b = b.Where(sq.ILike{"name": "%" + *filter.Name + "%"})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building customer query: %w", err)
	}

	rows, err := s.conn(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}

		customers = append(customers, c)
	}

	return customers, rows.Err()
}

func (s *Store) ListCustomerIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := s.conn(ctx).QueryContext(ctx, `SELECT id FROM customers ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing customer ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning customer id: %w", err)
		}

		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	query := `UPDATE customers SET name = $1, email = $2, phone = $3, updated_at = NOW() WHERE id = $4`

	return s.execOne(ctx, "updating customer", query, c.Name, c.Email, c.Phone, c.ID)
}

func (s *Store) UpdateCustomerStatus(ctx context.Context, id uuid.UUID, status customer.Status) error {
	query := `UPDATE customers SET status = $1, updated_at = NOW() WHERE id = $2`

	return s.execOne(ctx, "updating customer status", query, status, id)
}

func (s *Store) execOne(ctx context.Context, op, query string, args ...any) error {
	res, err := s.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return customer.ErrNotFound
	}

	return nil
}

func (s *Store) CountUnpaidFines(ctx context.Context, customerID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM fines WHERE customer_id = $1 AND status = 'no pagada'`

	var n int
	if err := s.conn(ctx).QueryRowContext(ctx, query, customerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting unpaid fines: %w", err)
	}

	return n, nil
}

func (s *Store) CountOverdueLoans(ctx context.Context, customerID uuid.UUID, today time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM loans WHERE customer_id = $1 AND status = 'activo' AND return_date < $2`

	var n int
	if err := s.conn(ctx).QueryRowContext(ctx, query, customerID, today).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting overdue loans: %w", err)
	}

	return n, nil
}
