package importer

import (
	"io"

	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
)

type Format string

const (
	FormatCSV Format = "csv"
)

// Formats lists the supported formats in menu order.
var Formats = []Format{FormatCSV}

type Parser interface {
	Parse(r io.Reader) ([]inventory.ImportRow, error)
}
