package memstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
)

func (s *Store) CreateCategory(ctx context.Context, c *inventory.Category) error {
	defer s.acquire(ctx)()

	for _, existing := range s.data.categories {
		if existing.Name == c.Name {
			return inventory.ErrDuplicateCategory
		}
	}

	c.ID = uuid.New()
	c.CreatedAt = s.now()
	s.data.categories[c.ID] = copyOf(c)

	return nil
}

func (s *Store) GetCategory(ctx context.Context, id uuid.UUID) (*inventory.Category, error) {
	defer s.acquire(ctx)()

	c, ok := s.data.categories[id]
	if !ok {
		return nil, inventory.ErrCategoryNotFound
	}

	return copyOf(c), nil
}

func (s *Store) GetCategoryByName(ctx context.Context, name string) (*inventory.Category, error) {
	defer s.acquire(ctx)()

	for _, c := range s.data.categories {
		if strings.EqualFold(c.Name, name) {
			return copyOf(c), nil
		}
	}

	return nil, inventory.ErrCategoryNotFound
}

func (s *Store) ListCategories(ctx context.Context) ([]*inventory.Category, error) {
	defer s.acquire(ctx)()

	out := sortedValues(s.data.categories, func(a, b *inventory.Category) int { return strings.Compare(a.Name, b.Name) })
	for i, c := range out {
		out[i] = copyOf(c)
	}

	return out, nil
}

// group returns a copy of the group with its category joined in.
func (s *Store) group(id uuid.UUID) (*inventory.Group, bool) {
	g, ok := s.data.groups[id]
	if !ok {
		return nil, false
	}

	out := copyOf(g)
	if c, ok := s.data.categories[g.Category.ID]; ok {
		out.Category = *c
	}

	return out, true
}

func (s *Store) CreateGroup(ctx context.Context, g *inventory.Group) error {
	defer s.acquire(ctx)()

	if _, ok := s.data.categories[g.Category.ID]; !ok {
		return inventory.ErrCategoryNotFound
	}

	for _, existing := range s.data.groups {
		if existing.Name == g.Name && existing.Category.ID == g.Category.ID {
			return fmt.Errorf("tool group %q already exists in category", g.Name)
		}
	}

	g.ID = uuid.New()
	g.CreatedAt = s.now()
	s.data.groups[g.ID] = copyOf(g)

	return nil
}

func (s *Store) GetGroup(ctx context.Context, id uuid.UUID) (*inventory.Group, error) {
	defer s.acquire(ctx)()

	g, ok := s.group(id)
	if !ok {
		return nil, inventory.ErrGroupNotFound
	}

	return g, nil
}

func (s *Store) FindGroup(ctx context.Context, name string, categoryID uuid.UUID) (*inventory.Group, error) {
	defer s.acquire(ctx)()

	for id, g := range s.data.groups {
		if strings.EqualFold(g.Name, name) && g.Category.ID == categoryID {
			out, _ := s.group(id)
			return out, nil
		}
	}

	return nil, inventory.ErrGroupNotFound
}

func (s *Store) ListGroups(ctx context.Context, filter inventory.GroupFilter) ([]*inventory.Group, error) {
	defer s.acquire(ctx)()

	var out []*inventory.Group

	for id, g := range s.data.groups {
		if filter.CategoryID != nil && g.Category.ID != *filter.CategoryID {
			continue
		}

		if filter.Name != nil && !strings.Contains(strings.ToLower(g.Name), strings.ToLower(*filter.Name)) {
			continue
		}

		joined, _ := s.group(id)
		out = append(out, joined)
	}

	sortBy(out, func(g *inventory.Group) string { return g.Name })

	return out, nil
}

func (s *Store) UpdateStock(ctx context.Context, id uuid.UUID, total, current int) error {
	defer s.acquire(ctx)()

	g, ok := s.data.groups[id]
	if !ok {
		return inventory.ErrGroupNotFound
	}

	if current < 0 || current > total {
		return fmt.Errorf("updating stock to %d/%d: %w", current, total, errStockCheck)
	}

	g.TotalTools = total
	g.CurrentStock = current
	g.UpdatedAt = new(s.now())

	return nil
}

func (s *Store) UpdateReplacementValue(ctx context.Context, id uuid.UUID, value int64) error {
	defer s.acquire(ctx)()

	g, ok := s.data.groups[id]
	if !ok {
		return inventory.ErrGroupNotFound
	}

	g.ReplacementValue = &value
	g.UpdatedAt = new(s.now())

	return nil
}

func (s *Store) UpdateDailyRentalRate(ctx context.Context, id uuid.UUID, value *int64) error {
	defer s.acquire(ctx)()

	g, ok := s.data.groups[id]
	if !ok {
		return inventory.ErrGroupNotFound
	}

	if value != nil {
		value = new(*value)
	}

	g.DailyRentalRate = value
	g.UpdatedAt = new(s.now())

	return nil
}

func (s *Store) tool(id uuid.UUID) (*inventory.Tool, bool) {
	t, ok := s.data.tools[id]
	if !ok {
		return nil, false
	}

	out := copyOf(t)
	if g, ok := s.group(t.GroupID); ok {
		out.Name = g.Name
		out.Category = g.Category
	}

	return out, true
}

func (s *Store) CreateTools(ctx context.Context, tools []*inventory.Tool) error {
	defer s.acquire(ctx)()

	for _, t := range tools {
		if _, ok := s.data.groups[t.GroupID]; !ok {
			return inventory.ErrGroupNotFound
		}

		t.ID = uuid.New()
		t.CreatedAt = s.now()
		s.data.tools[t.ID] = copyOf(t)
	}

	return nil
}

func (s *Store) GetTool(ctx context.Context, id uuid.UUID) (*inventory.Tool, error) {
	defer s.acquire(ctx)()

	t, ok := s.tool(id)
	if !ok {
		return nil, inventory.ErrToolNotFound
	}

	return t, nil
}

// FindAvailableTool returns the oldest available unit of the group.
func (s *Store) FindAvailableTool(ctx context.Context, groupID uuid.UUID) (*inventory.Tool, error) {
	defer s.acquire(ctx)()

	var found *inventory.Tool

	for _, t := range s.data.tools {
		if t.GroupID != groupID || t.Status != inventory.StatusAvailable {
			continue
		}

		if found == nil || t.CreatedAt.Before(found.CreatedAt) ||
			(t.CreatedAt.Equal(found.CreatedAt) && t.ID.String() < found.ID.String()) {
			found = t
		}
	}

	if found == nil {
		return nil, inventory.ErrToolNotFound
	}

	out, _ := s.tool(found.ID)

	return out, nil
}

func (s *Store) ListTools(ctx context.Context, filter inventory.ToolFilter) ([]*inventory.Tool, error) {
	defer s.acquire(ctx)()

	var out []*inventory.Tool

	for id, t := range s.data.tools {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}

		if filter.GroupID != nil && t.GroupID != *filter.GroupID {
			continue
		}

		joined, _ := s.tool(id)
		if filter.CategoryID != nil && joined.Category.ID != *filter.CategoryID {
			continue
		}

		out = append(out, joined)
	}

	sortBy(out, func(t *inventory.Tool) string { return t.Name + "\x00" + t.CreatedAt.Format(time.RFC3339Nano) })

	return out, nil
}

func (s *Store) UpdateToolStatus(ctx context.Context, id uuid.UUID, status inventory.ToolStatus) error {
	defer s.acquire(ctx)()

	t, ok := s.data.tools[id]
	if !ok {
		return inventory.ErrToolNotFound
	}

	t.Status = status
	t.UpdatedAt = new(s.now())

	return nil
}

func (s *Store) AppendMovement(ctx context.Context, movement *inventory.Movement) error {
	defer s.acquire(ctx)()

	movement.ID = uuid.New()
	movement.Date = s.now()
	s.data.movements = append(s.data.movements, copyOf(movement))

	return nil
}

func (s *Store) ListMovements(ctx context.Context, filter inventory.MovementFilter) ([]*inventory.Movement, error) {
	defer s.acquire(ctx)()

	var out []*inventory.Movement

	for _, m := range s.data.movements {
		if filter.ToolID != nil && m.ToolID != *filter.ToolID {
			continue
		}

		if filter.GroupID != nil && m.GroupID != *filter.GroupID {
			continue
		}

		if filter.StartDate != nil && m.Date.Before(*filter.StartDate) {
			continue
		}

		if filter.EndDate != nil && !m.Date.Before(filter.EndDate.AddDate(0, 0, 1)) {
			continue
		}

		c := copyOf(m)
		if g, ok := s.data.groups[m.GroupID]; ok {
			c.ToolName = g.Name
		}

		out = append(out, c)
	}

	return out, nil
}

func (s *Store) MovementBalance(ctx context.Context, groupID uuid.UUID) (int, error) {
	defer s.acquire(ctx)()

	balance := 0

	for _, m := range s.data.movements {
		if m.GroupID == groupID {
			balance += m.AffectedAmount
		}
	}

	return balance, nil
}
