package rate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/inventory"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=rate
type Repository interface {
	CreateRate(ctx context.Context, r *GlobalRate) error
	GetRate(ctx context.Context, id uuid.UUID) (*GlobalRate, error)
	GetRateByName(ctx context.Context, name string) (*GlobalRate, error)
	ListRates(ctx context.Context) ([]*GlobalRate, error)
	UpdateRateValue(ctx context.Context, id uuid.UUID, value int64) error
}

type Service struct {
	repo  Repository
	names Names
}

func NewService(repo Repository, names Names) *Service {
	return &Service{repo: repo, names: names}
}

type CreateParams struct {
	Name  string
	Value int64
}

func (s *Service) bounds(name string) (int64, int64) {
	if strings.EqualFold(name, s.names.ReplacementValue) {
		return inventory.MinValue, inventory.MaxValue
	}

	return MinDailyRate, MaxDailyRate
}

func (s *Service) validate(name string, value int64) error {
	lo, hi := s.bounds(name)
	if value < lo || value > hi {
		return apperr.Validation("daily_rate_value", fmt.Sprintf("must be between %d and %d", lo, hi))
	}

	return nil
}

func (s *Service) Create(ctx context.Context, p CreateParams) (*GlobalRate, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, apperr.Validation("rate_name", "is required")
	}

	if err := s.validate(name, p.Value); err != nil {
		return nil, err
	}

	r := &GlobalRate{Name: name, DailyRateValue: p.Value}
	if err := s.repo.CreateRate(ctx, r); err != nil {
		return nil, fmt.Errorf("create rate: %w", err)
	}

	return r, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, value int64) (*GlobalRate, error) {
	r, err := s.repo.GetRate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get rate: %w", err)
	}

	if err := s.validate(r.Name, value); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRateValue(ctx, id, value); err != nil {
		return nil, fmt.Errorf("update rate: %w", err)
	}

	r.DailyRateValue = value

	return r, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*GlobalRate, error) {
	return s.repo.GetRate(ctx, id)
}

func (s *Service) GetByName(ctx context.Context, name string) (*GlobalRate, error) {
	return s.repo.GetRateByName(ctx, name)
}

func (s *Service) List(ctx context.Context) ([]*GlobalRate, error) {
	return s.repo.ListRates(ctx)
}
