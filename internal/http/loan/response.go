package loan

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
)

type loanResponse struct {
	ID           uuid.UUID            `json:"id"`
	CustomerID   uuid.UUID            `json:"customer_id"`
	CustomerName string               `json:"customer_name"`
	CustomerRUT  string               `json:"customer_rut"`
	ToolID       uuid.UUID            `json:"tool_id"`
	GroupID      uuid.UUID            `json:"tool_group_id"`
	ToolName     string               `json:"tool_name"`
	Category     string               `json:"category"`
	LoanDate     string               `json:"loan_date"`
	ReturnDate   string               `json:"return_date"`
	ReturnedAt   *string              `json:"returned_at,omitempty"`
	Condition    *inventory.Condition `json:"condition,omitempty"`
	Status       loan.Status          `json:"status"`
	LoanValue    int64                `json:"loan_value"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    *time.Time           `json:"updated_at,omitempty"`
}

type rankingResponse struct {
	GroupID  uuid.UUID `json:"tool_group_id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Loans    int       `json:"loans"`
}

type repairResponse struct {
	ToolID       uuid.UUID   `json:"tool_id"`
	GroupID      uuid.UUID   `json:"tool_group_id"`
	ToolName     string      `json:"tool_name"`
	LoanID       uuid.UUID   `json:"loan_id"`
	CustomerName string      `json:"customer_name"`
	ReturnedAt   *time.Time  `json:"returned_at,omitempty"`
	LoanStatus   loan.Status `json:"loan_status"`
}

// toResponse reports the display status, so an active loan past its return
// date reads "vencido".
func toResponse(l *loan.Loan, today time.Time) loanResponse {
	resp := loanResponse{
		ID:           l.ID,
		CustomerID:   l.CustomerID,
		CustomerName: l.CustomerName,
		CustomerRUT:  l.CustomerRUT,
		ToolID:       l.ToolID,
		GroupID:      l.GroupID,
		ToolName:     l.ToolName,
		Category:     l.Category,
		LoanDate:     l.LoanDate.Format(time.DateOnly),
		ReturnDate:   l.ReturnDate.Format(time.DateOnly),
		Condition:    l.Condition,
		Status:       l.DisplayStatus(today),
		LoanValue:    l.LoanValue,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}

	if l.ReturnedAt != nil {
		resp.ReturnedAt = new(l.ReturnedAt.Format(time.DateOnly))
	}

	return resp
}

func toResponseList(loans []*loan.Loan, today time.Time) []loanResponse {
	resp := make([]loanResponse, len(loans))
	for i, l := range loans {
		resp[i] = toResponse(l, today)
	}

	return resp
}
