package fine

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/fine"
	"github.com/MrJamesThe3rd/toolrent/internal/loan"
)

type fineResponse struct {
	ID           uuid.UUID   `json:"id"`
	CustomerID   uuid.UUID   `json:"customer_id"`
	CustomerName string      `json:"customer_name,omitempty"`
	CustomerRUT  string      `json:"customer_rut,omitempty"`
	LoanID       uuid.UUID   `json:"loan_id"`
	Type         fine.Type   `json:"type"`
	Value        int64       `json:"value"`
	Status       fine.Status `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	PaidAt       *time.Time  `json:"paid_at,omitempty"`
}

type assessmentResponse struct {
	Fine       fineResponse `json:"fine"`
	LoanID     uuid.UUID    `json:"loan_id"`
	LoanStatus loan.Status  `json:"loan_status"`
}

type delinquentResponse struct {
	CustomerID  uuid.UUID `json:"customer_id"`
	Name        string    `json:"name"`
	RUT         string    `json:"rut"`
	UnpaidFines int       `json:"unpaid_fines"`
	UnpaidTotal int64     `json:"unpaid_total"`
}

func toResponse(f *fine.Fine) fineResponse {
	return fineResponse{
		ID:           f.ID,
		CustomerID:   f.CustomerID,
		CustomerName: f.CustomerName,
		CustomerRUT:  f.CustomerRUT,
		LoanID:       f.LoanID,
		Type:         f.Type,
		Value:        f.Value,
		Status:       f.Status,
		CreatedAt:    f.CreatedAt,
		PaidAt:       f.PaidAt,
	}
}

func toResponseList(fines []*fine.Fine) []fineResponse {
	resp := make([]fineResponse, len(fines))
	for i, f := range fines {
		resp[i] = toResponse(f)
	}

	return resp
}

func toAssessmentResponse(f *fine.Fine, l *loan.Loan) assessmentResponse {
	return assessmentResponse{Fine: toResponse(f), LoanID: l.ID, LoanStatus: l.Status}
}
