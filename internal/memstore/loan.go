package memstore

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
)

func (s *Store) joinLoan(l *loan.Loan) *loan.Loan {
	out := copyOf(l)

	if c, ok := s.data.customers[l.CustomerID]; ok {
		out.CustomerName = c.Name
		out.CustomerRUT = c.RUT
	}

	if g, ok := s.group(l.GroupID); ok {
		out.ToolName = g.Name
		out.Category = g.Category.Name
	}

	return out
}

func (s *Store) CreateLoan(ctx context.Context, l *loan.Loan) error {
	defer s.acquire(ctx)()

	if _, ok := s.data.customers[l.CustomerID]; !ok {
		return fmtMissing("customer", l.CustomerID)
	}

	for _, existing := range s.data.loans {
		if existing.ToolID == l.ToolID && existing.Status == loan.StatusActive {
			return inventory.ErrToolUnavailable
		}
	}

	l.ID = uuid.New()
	l.CreatedAt = s.now()
	s.data.loans[l.ID] = copyOf(l)

	return nil
}

func (s *Store) GetLoan(ctx context.Context, id uuid.UUID) (*loan.Loan, error) {
	defer s.acquire(ctx)()

	l, ok := s.data.loans[id]
	if !ok {
		return nil, loan.ErrNotFound
	}

	return s.joinLoan(l), nil
}

func matchesStatus(l *loan.Loan, filter loan.ListFilter) bool {
	if filter.Status != nil {
		switch *filter.Status {
		case loan.StatusOverdue:
			if !l.Overdue(filter.Today) {
				return false
			}
		case loan.StatusActive:
			if l.Status != loan.StatusActive || l.Overdue(filter.Today) {
				return false
			}
		default:
			if l.Status != *filter.Status {
				return false
			}
		}
	}

	return len(filter.Statuses) == 0 || slices.Contains(filter.Statuses, l.Status)
}

func (s *Store) ListLoans(ctx context.Context, filter loan.ListFilter) ([]*loan.Loan, error) {
	defer s.acquire(ctx)()

	var out []*loan.Loan

	for _, l := range s.data.loans {
		if !matchesStatus(l, filter) {
			continue
		}

		joined := s.joinLoan(l)

		switch {
		case filter.CustomerID != nil && l.CustomerID != *filter.CustomerID,
			filter.RUT != nil && joined.CustomerRUT != *filter.RUT,
			filter.GroupID != nil && l.GroupID != *filter.GroupID,
			filter.StartDate != nil && l.LoanDate.Before(*filter.StartDate),
			filter.EndDate != nil && l.LoanDate.After(*filter.EndDate):
			continue
		}

		out = append(out, joined)
	}

	slices.SortStableFunc(out, func(a, b *loan.Loan) int {
		if c := b.LoanDate.Compare(a.LoanDate); c != 0 {
			return c
		}

		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out, nil
}

func (s *Store) UpdateLoan(ctx context.Context, l *loan.Loan) error {
	defer s.acquire(ctx)()

	existing, ok := s.data.loans[l.ID]
	if !ok {
		return loan.ErrNotFound
	}

	existing.Status = l.Status
	existing.ReturnedAt = l.ReturnedAt
	existing.Condition = l.Condition
	existing.UpdatedAt = new(s.now())

	return nil
}

func (s *Store) CountOpenLoans(ctx context.Context, customerID uuid.UUID) (int, error) {
	defer s.acquire(ctx)()

	return s.countOpen(customerID, nil), nil
}

func (s *Store) HasOpenLoanInGroup(ctx context.Context, customerID, groupID uuid.UUID) (bool, error) {
	defer s.acquire(ctx)()

	return s.countOpen(customerID, &groupID) > 0, nil
}

func (s *Store) RankGroups(ctx context.Context, from, to *time.Time, limit int) ([]*loan.RankingEntry, error) {
	defer s.acquire(ctx)()

	counts := make(map[uuid.UUID]*loan.RankingEntry)

	for _, l := range s.data.loans {
		if (from != nil && l.LoanDate.Before(*from)) || (to != nil && l.LoanDate.After(*to)) {
			continue
		}

		e, ok := counts[l.GroupID]
		if !ok {
			e = &loan.RankingEntry{GroupID: l.GroupID}
			if g, ok := s.group(l.GroupID); ok {
				e.Name = g.Name
				e.Category = g.Category.Name
			}

			counts[l.GroupID] = e
		}

		e.Loans++
	}

	ranking := sortedValues(counts, func(a, b *loan.RankingEntry) int {
		if c := cmp.Compare(b.Loans, a.Loans); c != 0 {
			return c
		}

		return cmp.Compare(a.Name, b.Name)
	})

	if limit > 0 && len(ranking) > limit {
		ranking = ranking[:limit]
	}

	return ranking, nil
}

func (s *Store) ListRepairQueue(ctx context.Context) ([]*loan.RepairItem, error) {
	defer s.acquire(ctx)()

	latest := make(map[uuid.UUID]*loan.Loan)

	for _, l := range s.data.loans {
		t, ok := s.data.tools[l.ToolID]
		if !ok || t.Status != inventory.StatusInRepair {
			continue
		}

		if l.Condition == nil || *l.Condition != inventory.ConditionDamaged {
			continue
		}

		if prev, ok := latest[l.ToolID]; !ok || l.CreatedAt.After(prev.CreatedAt) {
			latest[l.ToolID] = l
		}
	}

	items := make([]*loan.RepairItem, 0, len(latest))

	for toolID, l := range latest {
		joined := s.joinLoan(l)
		items = append(items, &loan.RepairItem{
			ToolID:       toolID,
			GroupID:      l.GroupID,
			ToolName:     joined.ToolName,
			LoanID:       l.ID,
			CustomerName: joined.CustomerName,
			ReturnedAt:   l.ReturnedAt,
			LoanStatus:   l.Status,
		})
	}

	slices.SortFunc(items, func(a, b *loan.RepairItem) int {
		var at, bt time.Time
		if a.ReturnedAt != nil {
			at = *a.ReturnedAt
		}

		if b.ReturnedAt != nil {
			bt = *b.ReturnedAt
		}

		return at.Compare(bt)
	})

	return items, nil
}
