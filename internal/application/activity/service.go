package activity

import (
	"context"
	"fmt"
	"time"

	"github.com/quorumflow-api/internal/domain"
	"github.com/quorumflow-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldTitle          = "title"
	fieldDate           = "date"
	fieldTime           = "time"
	fieldDescription    = "description"
	fieldLocation       = "location"
	fieldContext        = "context"
	fieldLearning       = "learning"
	fieldAdditionalText = "additional_text"
	fieldImageURLs      = "image_urls"
	fieldUpdatedAt      = "updated_at"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateActivityRequest) (*domain.Activity, error)
	List(ctx context.Context) ([]domain.Activity, error)
	Get(ctx context.Context, activityID string) (*domain.Activity, error)
	Update(ctx context.Context, activityID string, req domain.UpdateActivityRequest) (*domain.Activity, error)
	Delete(ctx context.Context, activityID string) error
}

type activityStore interface {
	Put(ctx context.Context, a *domain.Activity) error
	Get(ctx context.Context, activityID string) (*domain.Activity, error)
	ListByDateDesc(ctx context.Context) ([]domain.Activity, error)
	Update(ctx context.Context, activityID string, updates map[string]interface{}) error
	Delete(ctx context.Context, activityID string) error
}

type service struct {
	repo activityStore
}

type ServiceDeps struct {
	ActivityRepo activityStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.ActivityRepo}
}

func (s *service) Create(ctx context.Context, req domain.CreateActivityRequest) (*domain.Activity, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	a := &domain.Activity{
		ActivityID:     id.New(),
		Title:          req.Title,
		Date:           date,
		Time:           req.Time,
		Description:    req.Description,
		Location:       req.Location,
		Context:        req.Context,
		Learning:       req.Learning,
		AdditionalText: req.AdditionalText,
		ImageURLs:      req.ImageURLs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Put(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *service) List(ctx context.Context) ([]domain.Activity, error) {
	return s.repo.ListByDateDesc(ctx)
}

func (s *service) Get(ctx context.Context, activityID string) (*domain.Activity, error) {
	return s.repo.Get(ctx, activityID)
}

func (s *service) Update(ctx context.Context, activityID string, req domain.UpdateActivityRequest) (*domain.Activity, error) {
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates[fieldTitle] = *req.Title
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		updates[fieldDate] = date
	}
	if req.Time != nil {
		updates[fieldTime] = *req.Time
	}
	if req.Description != nil {
		updates[fieldDescription] = *req.Description
	}
	if req.Location != nil {
		updates[fieldLocation] = *req.Location
	}
	if req.Context != nil {
		updates[fieldContext] = *req.Context
	}
	if req.Learning != nil {
		updates[fieldLearning] = *req.Learning
	}
	if req.AdditionalText != nil {
		updates[fieldAdditionalText] = *req.AdditionalText
	}
	if req.ImageURLs != nil {
		updates[fieldImageURLs] = *req.ImageURLs
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, activityID)
	}
	updates[fieldUpdatedAt] = time.Now().UTC()
	if err := s.repo.Update(ctx, activityID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, activityID)
}

func (s *service) Delete(ctx context.Context, activityID string) error {
	return s.repo.Delete(ctx, activityID)
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
	}
	return t, nil
}
