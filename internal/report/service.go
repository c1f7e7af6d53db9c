package report

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/MrJamesThe3rd/toolrent/internal/clock"
	"github.com/MrJamesThe3rd/toolrent/internal/fine"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=report

type Loans interface {
	ActiveLoans(ctx context.Context, from, to *time.Time) ([]*loan.Loan, error)
	Ranking(ctx context.Context, from, to *time.Time, limit int) ([]*loan.RankingEntry, error)
	RepairQueue(ctx context.Context) ([]*loan.RepairItem, error)
	Today() time.Time
}

type Fines interface {
	DelinquentCustomers(ctx context.Context) ([]*fine.DelinquentCustomer, error)
}

type Movements interface {
	ListMovements(ctx context.Context, filter inventory.MovementFilter) ([]*inventory.Movement, error)
}

// Service builds report workbooks from the domain services.
type Service struct {
	loans  Loans
	fines  Fines
	kardex Movements
}

func NewService(loans Loans, fines Fines, kardex Movements) *Service {
	return &Service{loans: loans, fines: fines, kardex: kardex}
}

// Build returns the workbook for the named report. The caller closes it.
func (s *Service) Build(ctx context.Context, name Name, p Params) (*excelize.File, error) {
	var (
		sh  *sheet
		err error
	)

	switch name {
	case ActiveLoans:
		sh, err = s.activeLoans(ctx, p)
	case Ranking:
		sh, err = s.ranking(ctx, p)
	case Delinquent:
		sh, err = s.delinquent(ctx)
	case RepairQueue:
		sh, err = s.repairQueue(ctx)
	case Kardex:
		sh, err = s.movements(ctx, p)
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownReport)
	}

	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}

	f, err := sh.render()
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}

	return f, nil
}

// Write streams the named report to w.
func (s *Service) Write(ctx context.Context, name Name, p Params, w io.Writer) error {
	f, err := s.Build(ctx, name, p)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}

	return nil
}

// Export saves each named report into outputDir and returns the written paths.
func (s *Service) Export(ctx context.Context, names []Name, p Params, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	today := s.loans.Today()
	paths := make([]string, 0, len(names))

	for _, name := range names {
		f, err := s.Build(ctx, name, p)
		if err != nil {
			return nil, err
		}

		path := filepath.Join(outputDir, Filename(name, today))
		err = f.SaveAs(path)
		f.Close()

		if err != nil {
			return nil, fmt.Errorf("saving %s: %w", name, err)
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func (s *Service) activeLoans(ctx context.Context, p Params) (*sheet, error) {
	loans, err := s.loans.ActiveLoans(ctx, p.From, p.To)
	if err != nil {
		return nil, err
	}

	today := s.loans.Today()
	sh := &sheet{
		title:   "Préstamos activos",
		headers: []any{"ID", "Cliente", "RUT", "Herramienta", "Categoría", "Fecha préstamo", "Fecha devolución", "Estado", "Valor"},
		widths:  map[string]float64{"A": 38, "B": 28, "D": 28, "E": 24, "H": 22},
	}

	for _, l := range loans {
		sh.rows = append(sh.rows, []any{
			l.ID.String(), l.CustomerName, l.CustomerRUT, l.ToolName, l.Category,
			date(l.LoanDate), date(l.ReturnDate), string(l.DisplayStatus(today)), l.LoanValue,
		})
	}

	return sh, nil
}

func (s *Service) ranking(ctx context.Context, p Params) (*sheet, error) {
	entries, err := s.loans.Ranking(ctx, p.From, p.To, p.Limit)
	if err != nil {
		return nil, err
	}

	sh := &sheet{
		title:   "Ranking",
		headers: []any{"#", "Herramienta", "Categoría", "Préstamos"},
		widths:  map[string]float64{"B": 32, "C": 24},
	}

	for i, e := range entries {
		sh.rows = append(sh.rows, []any{i + 1, e.Name, e.Category, e.Loans})
	}

	return sh, nil
}

func (s *Service) delinquent(ctx context.Context) (*sheet, error) {
	customers, err := s.fines.DelinquentCustomers(ctx)
	if err != nil {
		return nil, err
	}

	sh := &sheet{
		title:   "Clientes con atrasos",
		headers: []any{"Cliente", "RUT", "Multas impagas", "Total adeudado"},
		widths:  map[string]float64{"A": 28, "B": 14, "D": 16},
	}

	for _, c := range customers {
		sh.rows = append(sh.rows, []any{c.Name, c.RUT, c.UnpaidFines, c.UnpaidTotal})
	}

	return sh, nil
}

func (s *Service) repairQueue(ctx context.Context) (*sheet, error) {
	items, err := s.loans.RepairQueue(ctx)
	if err != nil {
		return nil, err
	}

	sh := &sheet{
		title:   "Reparaciones",
		headers: []any{"Unidad", "Herramienta", "Préstamo", "Cliente", "Devuelta", "Estado préstamo"},
		widths:  map[string]float64{"A": 38, "B": 28, "C": 38, "D": 28, "F": 22},
	}

	for _, it := range items {
		returned := ""
		if it.ReturnedAt != nil {
			returned = date(*it.ReturnedAt)
		}

		sh.rows = append(sh.rows, []any{
			it.ToolID.String(), it.ToolName, it.LoanID.String(), it.CustomerName, returned, string(it.LoanStatus),
		})
	}

	return sh, nil
}

func (s *Service) movements(ctx context.Context, p Params) (*sheet, error) {
	movements, err := s.kardex.ListMovements(ctx, inventory.MovementFilter{
		ToolID:    p.ToolID,
		GroupID:   p.GroupID,
		StartDate: p.From,
		EndDate:   p.To,
	})
	if err != nil {
		return nil, err
	}

	sh := &sheet{
		title:   "Kardex",
		headers: []any{"Fecha", "Tipo", "Herramienta", "Unidad", "Usuario", "Cantidad"},
		widths:  map[string]float64{"A": 18, "C": 28, "D": 38, "E": 18},
	}

	for _, m := range movements {
		sh.rows = append(sh.rows, []any{
			m.Date.In(clock.Location).Format("02-01-2006 15:04"), string(m.Type), m.ToolName,
			m.ToolID.String(), m.ResponsibleUser, m.AffectedAmount,
		})
	}

	return sh, nil
}

func date(t time.Time) string {
	return t.Format("02-01-2006")
}
