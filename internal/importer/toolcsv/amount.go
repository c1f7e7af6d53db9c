package toolcsv

import (
	"strings"

	"github.com/shopspring/decimal"
)

// parsePesos parses a CLP amount into whole pesos.
// Format examples: "90.000" -> 90000, "$ 12.500" -> 12500, "4500,00" -> 4500.
func parsePesos(s string) (int64, error) {
	clean := strings.TrimPrefix(strings.TrimSpace(s), "$")
	clean = strings.ReplaceAll(clean, " ", "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	return d.Round(0).IntPart(), nil
}
