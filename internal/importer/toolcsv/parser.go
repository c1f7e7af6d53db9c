package toolcsv

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	enc "github.com/MrJamesThe3rd/toolrent/internal/encoding"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
)

// Parser reads bulk inventory CSV files. The delimiter (';' or ',') and the
// header language are detected from the file itself.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]inventory.ImportRow, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	content, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = detectComma(content)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no inventory header found: expected nombre, categoría, cantidad and valor de reposición: %w", apperr.ErrValidation)
	}

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

// detectComma picks ';' when the first non-empty line has more of them than commas.
func detectComma(content []byte) rune {
	for line := range bytes.Lines(content) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
			return ';'
		}

		return ','
	}

	return ','
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows turns data rows into import rows. headerRowNum is the 0-based
// index of the header; reported line numbers are 1-based file lines.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) ([]inventory.ImportRow, error) {
	rateIdx := -1
	if idx, ok := cols[p.RateCol]; ok {
		rateIdx = idx
	}

	var out []inventory.ImportRow

	for i, row := range rows {
		line := headerRowNum + i + 1

		if blank(row) {
			continue
		}

		name := cellValue(row, cols[p.NameCol])
		if name == "" {
			return nil, invalid(line, "missing name")
		}

		category := cellValue(row, cols[p.CategoryCol])
		if category == "" {
			return nil, invalid(line, "missing category")
		}

		qty, err := strconv.Atoi(cellValue(row, cols[p.QuantityCol]))
		if err != nil {
			return nil, invalid(line, fmt.Sprintf("invalid quantity %q", cellValue(row, cols[p.QuantityCol])))
		}

		value, err := parsePesos(cellValue(row, cols[p.ValueCol]))
		if err != nil {
			return nil, invalid(line, fmt.Sprintf("invalid replacement value %q", cellValue(row, cols[p.ValueCol])))
		}

		item := inventory.ImportRow{
			Line:             line,
			Name:             name,
			Category:         category,
			Quantity:         qty,
			ReplacementValue: &value,
		}

		if s := cellValue(row, rateIdx); s != "" {
			rate, err := parsePesos(s)
			if err != nil {
				return nil, invalid(line, fmt.Sprintf("invalid daily rate %q", s))
			}

			item.DailyRentalRate = &rate
		}

		out = append(out, item)
	}

	return out, nil
}

func invalid(line int, msg string) error {
	return apperr.Validation(fmt.Sprintf("line %d", line), msg)
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
