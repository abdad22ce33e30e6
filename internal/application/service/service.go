package service

import (
	"context"
	"fmt"
	"time"

	"github.com/quorumflow-api/internal/domain"
	"github.com/quorumflow-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldName        = "name"
	fieldDate        = "date"
	fieldLocation    = "location"
	fieldDescription = "description"
	fieldUpdatedAt   = "updated_at"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateServiceRequest) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
	Get(ctx context.Context, serviceID string) (*domain.Service, error)
	Update(ctx context.Context, serviceID string, req domain.UpdateServiceRequest) (*domain.Service, error)
	Delete(ctx context.Context, serviceID string) error
}

type serviceStore interface {
	Put(ctx context.Context, s *domain.Service) error
	Get(ctx context.Context, serviceID string) (*domain.Service, error)
	List(ctx context.Context) ([]domain.Service, error)
	Update(ctx context.Context, serviceID string, updates map[string]interface{}) error
	Delete(ctx context.Context, serviceID string) error
}

type svc struct {
	repo serviceStore
}

type ServiceDeps struct {
	ServiceRepo serviceStore
}

func NewService(deps ServiceDeps) Service {
	return &svc{repo: deps.ServiceRepo}
}

func (s *svc) Create(ctx context.Context, req domain.CreateServiceRequest) (*domain.Service, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &domain.Service{
		ServiceID:   id.New(),
		Name:        req.Name,
		Date:        date,
		Location:    req.Location,
		Description: req.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *svc) List(ctx context.Context) ([]domain.Service, error) {
	return s.repo.List(ctx)
}

func (s *svc) Get(ctx context.Context, serviceID string) (*domain.Service, error) {
	return s.repo.Get(ctx, serviceID)
}

func (s *svc) Update(ctx context.Context, serviceID string, req domain.UpdateServiceRequest) (*domain.Service, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates[fieldName] = *req.Name
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		updates[fieldDate] = date
	}
	if req.Location != nil {
		updates[fieldLocation] = *req.Location
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, serviceID)
	}
	updates[fieldUpdatedAt] = time.Now().UTC()
	if err := s.repo.Update(ctx, serviceID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, serviceID)
}

func (s *svc) Delete(ctx context.Context, serviceID string) error {
	return s.repo.Delete(ctx, serviceID)
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
	}
	return t, nil
}
