package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/database"
	"github.com/MrJamesThe3rd/toolrent/internal/rate"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

const rateColumns = `id, name, daily_rate_value, created_at, updated_at`

func (s *Store) CreateRate(ctx context.Context, r *rate.GlobalRate) error {
	query := `INSERT INTO global_rates (name, daily_rate_value) VALUES ($1, $2) RETURNING id, created_at`

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query, r.Name, r.DailyRateValue).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return rate.ErrDuplicateName
		}

		return fmt.Errorf("creating rate: %w", err)
	}

	return nil
}

func (s *Store) GetRate(ctx context.Context, id uuid.UUID) (*rate.GlobalRate, error) {
	return s.get(ctx, `id = $1`, id)
}

func (s *Store) GetRateByName(ctx context.Context, name string) (*rate.GlobalRate, error) {
	return s.get(ctx, `LOWER(name) = LOWER($1)`, name)
}

func (s *Store) get(ctx context.Context, where string, arg any) (*rate.GlobalRate, error) {
	query := `SELECT ` + rateColumns + ` FROM global_rates WHERE ` + where

	var r rate.GlobalRate

	err := database.Conn(ctx, s.db).QueryRowContext(ctx, query, arg).
		Scan(&r.ID, &r.Name, &r.DailyRateValue, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, rate.ErrNotFound
		}

		return nil, fmt.Errorf("getting rate: %w", err)
	}

	return &r, nil
}

func (s *Store) ListRates(ctx context.Context) ([]*rate.GlobalRate, error) {
	rows, err := database.Conn(ctx, s.db).QueryContext(ctx, `SELECT `+rateColumns+` FROM global_rates ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing rates: %w", err)
	}
	defer rows.Close()

	var rates []*rate.GlobalRate

	for rows.Next() {
		var r rate.GlobalRate
		if err := rows.Scan(&r.ID, &r.Name, &r.DailyRateValue, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning rate: %w", err)
		}

		rates = append(rates, &r)
	}

	return rates, rows.Err()
}

func (s *Store) UpdateRateValue(ctx context.Context, id uuid.UUID, value int64) error {
	query := `UPDATE global_rates SET daily_rate_value = $1, updated_at = NOW() WHERE id = $2`

	res, err := database.Conn(ctx, s.db).ExecContext(ctx, query, value, id)
	if err != nil {
		return fmt.Errorf("updating rate: %w", err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		return rate.ErrNotFound
	}

	return nil
}
