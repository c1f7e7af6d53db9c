package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/database"
)

// ImportRow is one parsed line of a bulk inventory file.
type ImportRow struct {
	Line             int
	Name             string
	Category         string
	Quantity         int
	ReplacementValue *int64
	DailyRentalRate  *int64
}

// ImportBatch applies every row as an intake in a single transaction.
// Nothing is written if any row fails.
func (s *Service) ImportBatch(ctx context.Context, rows []ImportRow) ([]*Group, error) {
	if len(rows) == 0 {
		return nil, nil
	}

	ctx, tx, err := s.txr.BeginTx(ctx, database.LockKey("inventory_import"))
	if err != nil {
		return nil, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	seen := make(map[string]*Group)

	var groups []*Group

	for _, row := range rows {
		category, err := s.repo.GetCategoryByName(ctx, row.Category)
		if errors.Is(err, ErrCategoryNotFound) {
			return nil, apperr.Validation(fmt.Sprintf("line %d", row.Line), fmt.Sprintf("unknown category %q", row.Category))
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: get category: %w", row.Line, err)
		}

		g, err := s.Intake(ctx, IntakeParams{
			Name:             row.Name,
			CategoryID:       category.ID,
			Quantity:         row.Quantity,
			ReplacementValue: row.ReplacementValue,
			DailyRentalRate:  row.DailyRentalRate,
		})
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", row.Line, err)
		}

		if _, ok := seen[g.ID.String()]; !ok {
			groups = append(groups, g)
		}

		seen[g.ID.String()] = g
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}

	// Later rows may have augmented a group returned earlier.
	for i, g := range groups {
		groups[i] = seen[g.ID.String()]
	}

	return groups, nil
}
