// Package report renders the operational reports as XLSX workbooks.
package report

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
)

type Name string

const (
	ActiveLoans Name = "active-loans"
	Ranking     Name = "ranking"
	Delinquent  Name = "delinquent"
	RepairQueue Name = "repair-queue"
	Kardex      Name = "kardex"
)

// Names lists every report in menu order.
var Names = []Name{ActiveLoans, Ranking, Delinquent, RepairQueue, Kardex}

var ErrUnknownReport = fmt.Errorf("report: %w", apperr.ErrNotFound)

func (n Name) Valid() bool {
	switch n {
	case ActiveLoans, Ranking, Delinquent, RepairQueue, Kardex:
		return true
	}

	return false
}

// Params narrows a report. Fields a report does not use are ignored.
type Params struct {
	From    *time.Time
	To      *time.Time
	Limit   int
	ToolID  *uuid.UUID
	GroupID *uuid.UUID
}

// Filename is the download name for a report generated on day.
func Filename(n Name, day time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", n, day.Format("20060102"))
}

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
