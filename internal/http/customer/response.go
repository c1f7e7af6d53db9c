package customer

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/customer"
)

type customerResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	RUT       string          `json:"rut"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Status    customer.Status `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

type standingResponse struct {
	CustomerID   uuid.UUID       `json:"customer_id"`
	Status       customer.Status `json:"status"`
	UnpaidFines  int             `json:"unpaid_fines"`
	OverdueLoans int             `json:"overdue_loans"`
}

func toResponse(c *customer.Customer) customerResponse {
	return customerResponse{
		ID:        c.ID,
		Name:      c.Name,
		RUT:       c.RUT,
		Email:     c.Email,
		Phone:     c.Phone,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
