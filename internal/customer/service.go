package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/chile"
	"github.com/MrJamesThe3rd/toolrent/internal/validation"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=customer
type Repository interface {
	CreateCustomer(ctx context.Context, c *Customer) error
	GetCustomer(ctx context.Context, id uuid.UUID) (*Customer, error)
	GetCustomerByRUT(ctx context.Context, rut string) (*Customer, error)
	ListCustomers(ctx context.Context, filter ListFilter) ([]*Customer, error)
	UpdateCustomer(ctx context.Context, c *Customer) error
	UpdateCustomerStatus(ctx context.Context, id uuid.UUID, status Status) error

	// CountUnpaidFines counts fines of the customer still marked unpaid.
	CountUnpaidFines(ctx context.Context, customerID uuid.UUID) (int, error)
	// CountOverdueLoans counts open loans whose return date is before today.
	CountOverdueLoans(ctx context.Context, customerID uuid.UUID, today time.Time) (int, error)
	ListCustomerIDs(ctx context.Context) ([]uuid.UUID, error)
}

type ListFilter struct {
	Status *Status
	Name   *string
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	Name  string `json:"name" validate:"required,max=120"`
	RUT   string `json:"rut" validate:"required,rut"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,clmobile"`
}

func (s *Service) Create(ctx context.Context, p CreateParams) (*Customer, error) {
	p.Name = strings.TrimSpace(p.Name)
	p.Email = strings.TrimSpace(p.Email)

	if err := validation.Struct(p); err != nil {
		return nil, err
	}

	c := &Customer{
		Name:   p.Name,
		RUT:    chile.FormatRUT(p.RUT),
		Email:  strings.ToLower(p.Email),
		Phone:  chile.FormatMobile(p.Phone),
		Status: StatusActive,
	}
	if err := s.repo.CreateCustomer(ctx, c); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	return c, nil
}

// UpdateParams holds the editable contact fields. Nil fields are left as is.
type UpdateParams struct {
	Name  *string `json:"name" validate:"omitnil,min=1,max=120"`
	Email *string `json:"email" validate:"omitnil,email"`
	Phone *string `json:"phone" validate:"omitnil,clmobile"`
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, p UpdateParams) (*Customer, error) {
	if err := validation.Struct(p); err != nil {
		return nil, err
	}

	c, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}

	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}

	if p.Email != nil {
		c.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}

	if p.Phone != nil {
		c.Phone = chile.FormatMobile(*p.Phone)
	}

	if err := s.repo.UpdateCustomer(ctx, c); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}

	return c, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

// GetByRUT accepts the RUT with or without dots.
func (s *Service) GetByRUT(ctx context.Context, rut string) (*Customer, error) {
	return s.repo.GetCustomerByRUT(ctx, chile.FormatRUT(rut))
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Customer, error) {
	return s.repo.ListCustomers(ctx, filter)
}
