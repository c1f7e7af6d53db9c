package memstore

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/customer"
	"github.com/MrJamesThe3rd/toolrent/internal/fine"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
)

func (s *Store) CreateCustomer(ctx context.Context, c *customer.Customer) error {
	defer s.acquire(ctx)()

	for _, existing := range s.data.customers {
		if existing.RUT == c.RUT {
			return customer.ErrDuplicateRUT
		}
	}

	c.ID = uuid.New()
	c.CreatedAt = s.now()
	s.data.customers[c.ID] = copyOf(c)

	return nil
}

func (s *Store) GetCustomer(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	defer s.acquire(ctx)()

	c, ok := s.data.customers[id]
	if !ok {
		return nil, customer.ErrNotFound
	}

	return copyOf(c), nil
}

func (s *Store) GetCustomerByRUT(ctx context.Context, rut string) (*customer.Customer, error) {
	defer s.acquire(ctx)()

	for _, c := range s.data.customers {
		if c.RUT == rut {
			return copyOf(c), nil
		}
	}

	return nil, customer.ErrNotFound
}

func (s *Store) ListCustomers(ctx context.Context, filter customer.ListFilter) ([]*customer.Customer, error) {
	defer s.acquire(ctx)()

	var out []*customer.Customer

	for _, c := range s.data.customers {
		if filter.Status != nil && c.Status != *filter.Status {
			continue
		}

		if filter.Name != nil && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(*filter.Name)) {
			continue
		}

		out = append(out, copyOf(c))
	}

	sortBy(out, func(c *customer.Customer) string { return c.Name })

	return out, nil
}

func (s *Store) ListCustomerIDs(ctx context.Context) ([]uuid.UUID, error) {
	defer s.acquire(ctx)()

	all := sortedValues(s.data.customers, func(a, b *customer.Customer) int { return a.CreatedAt.Compare(b.CreatedAt) })

	ids := make([]uuid.UUID, len(all))
	for i, c := range all {
		ids[i] = c.ID
	}

	return ids, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, c *customer.Customer) error {
	defer s.acquire(ctx)()

	existing, ok := s.data.customers[c.ID]
	if !ok {
		return customer.ErrNotFound
	}

	existing.Name = c.Name
	existing.Email = c.Email
	existing.Phone = c.Phone
	existing.UpdatedAt = new(s.now())

	return nil
}

func (s *Store) UpdateCustomerStatus(ctx context.Context, id uuid.UUID, status customer.Status) error {
	defer s.acquire(ctx)()

	c, ok := s.data.customers[id]
	if !ok {
		return customer.ErrNotFound
	}

	c.Status = status
	c.UpdatedAt = new(s.now())

	return nil
}

func (s *Store) CountUnpaidFines(ctx context.Context, customerID uuid.UUID) (int, error) {
	defer s.acquire(ctx)()

	n := 0

	for _, f := range s.data.fines {
		if f.CustomerID == customerID && f.Status == fine.StatusUnpaid {
			n++
		}
	}

	return n, nil
}

func (s *Store) CountOverdueLoans(ctx context.Context, customerID uuid.UUID, today time.Time) (int, error) {
	defer s.acquire(ctx)()

	n := 0

	for _, l := range s.data.loans {
		if l.CustomerID == customerID && l.Overdue(today) {
			n++
		}
	}

	return n, nil
}

// countOpen counts active loans of the customer, optionally within one group.
func (s *Store) countOpen(customerID uuid.UUID, groupID *uuid.UUID) int {
	n := 0

	for _, l := range s.data.loans {
		if l.CustomerID != customerID || l.Status != loan.StatusActive {
			continue
		}

		if groupID != nil && l.GroupID != *groupID {
			continue
		}

		n++
	}

	return n
}
