package report

import (
	"github.com/xuri/excelize/v2"
)

// sheet is a single-table workbook: a bold header row followed by data rows.
type sheet struct {
	title   string
	headers []any
	rows    [][]any
	widths  map[string]float64
}

func (s *sheet) render() (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", s.title); err != nil {
		f.Close()
		return nil, err
	}

	if err := s.fill(f); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func (s *sheet) fill(f *excelize.File) error {
	if err := f.SetSheetRow(s.title, "A1", &s.headers); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(len(s.headers), 1)
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(s.title, "A1", last, bold); err != nil {
		return err
	}

	for i, row := range s.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		if err := f.SetSheetRow(s.title, cell, &row); err != nil {
			return err
		}
	}

	for col, width := range s.widths {
		if err := f.SetColWidth(s.title, col, col, width); err != nil {
			return err
		}
	}

	return nil
}
