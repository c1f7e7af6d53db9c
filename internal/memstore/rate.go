package memstore

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/rate"
)

func (s *Store) CreateRate(ctx context.Context, r *rate.GlobalRate) error {
	defer s.acquire(ctx)()

	for _, existing := range s.data.rates {
		if strings.EqualFold(existing.Name, r.Name) {
			return rate.ErrDuplicateName
		}
	}

	r.ID = uuid.New()
	r.CreatedAt = s.now()
	s.data.rates[r.ID] = copyOf(r)

	return nil
}

func (s *Store) GetRate(ctx context.Context, id uuid.UUID) (*rate.GlobalRate, error) {
	defer s.acquire(ctx)()

	r, ok := s.data.rates[id]
	if !ok {
		return nil, rate.ErrNotFound
	}

	return copyOf(r), nil
}

func (s *Store) GetRateByName(ctx context.Context, name string) (*rate.GlobalRate, error) {
	defer s.acquire(ctx)()

	for _, r := range s.data.rates {
		if strings.EqualFold(r.Name, name) {
			return copyOf(r), nil
		}
	}

	return nil, rate.ErrNotFound
}

func (s *Store) ListRates(ctx context.Context) ([]*rate.GlobalRate, error) {
	defer s.acquire(ctx)()

	out := sortedValues(s.data.rates, func(a, b *rate.GlobalRate) int { return strings.Compare(a.Name, b.Name) })
	for i, r := range out {
		out[i] = copyOf(r)
	}

	return out, nil
}

func (s *Store) UpdateRateValue(ctx context.Context, id uuid.UUID, value int64) error {
	defer s.acquire(ctx)()

	r, ok := s.data.rates[id]
	if !ok {
		return rate.ErrNotFound
	}

	r.DailyRateValue = value
	r.UpdatedAt = new(s.now())

	return nil
}
