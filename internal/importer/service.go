package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/importer/toolcsv"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
)

// Inventory applies parsed rows.
type Inventory interface {
	ImportBatch(ctx context.Context, rows []inventory.ImportRow) ([]*inventory.Group, error)
}

type Service struct {
	inventory Inventory
	csvParser Parser
}

func NewService(inv Inventory) *Service {
	return &Service{
		inventory: inv,
		csvParser: toolcsv.NewParser(),
	}
}

func (s *Service) Parse(format Format, r io.Reader) ([]inventory.ImportRow, error) {
	var parser Parser

	switch format {
	case FormatCSV:
		parser = s.csvParser
	default:
		return nil, fmt.Errorf("unknown import format %q: %w", format, apperr.ErrValidation)
	}

	return parser.Parse(r)
}

// Import parses r and applies every row in one inventory transaction.
func (s *Service) Import(ctx context.Context, format Format, r io.Reader) ([]*inventory.Group, error) {
	rows, err := s.Parse(format, r)
	if err != nil {
		return nil, fmt.Errorf("parse import: %w", err)
	}

	if len(rows) == 0 {
		return nil, apperr.Validation("file", "no inventory rows found")
	}

	groups, err := s.inventory.ImportBatch(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("import inventory: %w", err)
	}

	slog.Info("inventory imported", "rows", len(rows), "groups", len(groups))

	return groups, nil
}
