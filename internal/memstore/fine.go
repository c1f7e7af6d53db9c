package memstore

import (
	"cmp"
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/fine"
)

func (s *Store) joinFine(f *fine.Fine) *fine.Fine {
	out := copyOf(f)
	if c, ok := s.data.customers[f.CustomerID]; ok {
		out.CustomerName = c.Name
		out.CustomerRUT = c.RUT
	}

	return out
}

func (s *Store) CreateFine(ctx context.Context, f *fine.Fine) error {
	defer s.acquire(ctx)()

	if _, ok := s.data.loans[f.LoanID]; !ok {
		return fine.ErrNotFound
	}

	f.ID = uuid.New()
	f.CreatedAt = s.now()
	s.data.fines[f.ID] = copyOf(f)

	return nil
}

func (s *Store) GetFine(ctx context.Context, id uuid.UUID) (*fine.Fine, error) {
	defer s.acquire(ctx)()

	f, ok := s.data.fines[id]
	if !ok {
		return nil, fine.ErrNotFound
	}

	return s.joinFine(f), nil
}

func (s *Store) ListFines(ctx context.Context, filter fine.ListFilter) ([]*fine.Fine, error) {
	defer s.acquire(ctx)()

	var out []*fine.Fine

	for _, f := range s.data.fines {
		joined := s.joinFine(f)

		switch {
		case filter.CustomerID != nil && f.CustomerID != *filter.CustomerID,
			filter.RUT != nil && joined.CustomerRUT != *filter.RUT,
			filter.LoanID != nil && f.LoanID != *filter.LoanID,
			filter.Status != nil && f.Status != *filter.Status,
			filter.Type != nil && f.Type != *filter.Type:
			continue
		}

		out = append(out, joined)
	}

	sortByTimeDesc(out, func(f *fine.Fine) time.Time { return f.CreatedAt })

	return out, nil
}

func (s *Store) MarkFinePaid(ctx context.Context, id uuid.UUID, paidAt time.Time) error {
	defer s.acquire(ctx)()

	f, ok := s.data.fines[id]
	if !ok {
		return fine.ErrNotFound
	}

	if f.Status == fine.StatusPaid {
		return fine.ErrAlreadyPaid
	}

	f.Status = fine.StatusPaid
	f.PaidAt = &paidAt

	return nil
}

func (s *Store) CountUnpaidForLoan(ctx context.Context, loanID uuid.UUID) (int, error) {
	defer s.acquire(ctx)()

	n := 0

	for _, f := range s.data.fines {
		if f.LoanID == loanID && f.Status == fine.StatusUnpaid {
			n++
		}
	}

	return n, nil
}

func (s *Store) ListDelinquentCustomers(ctx context.Context) ([]*fine.DelinquentCustomer, error) {
	defer s.acquire(ctx)()

	byCustomer := make(map[uuid.UUID]*fine.DelinquentCustomer)

	for _, f := range s.data.fines {
		if f.Status != fine.StatusUnpaid {
			continue
		}

		d, ok := byCustomer[f.CustomerID]
		if !ok {
			d = &fine.DelinquentCustomer{CustomerID: f.CustomerID}
			if c, ok := s.data.customers[f.CustomerID]; ok {
				d.Name = c.Name
				d.RUT = c.RUT
			}

			byCustomer[f.CustomerID] = d
		}

		d.UnpaidFines++
		d.UnpaidTotal += f.Value
	}

	return sortedValues(byCustomer, func(a, b *fine.DelinquentCustomer) int {
		if c := cmp.Compare(b.UnpaidTotal, a.UnpaidTotal); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	}), nil
}
