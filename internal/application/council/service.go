package council

import (
	"context"
	"fmt"
	"time"

	"github.com/quorumflow-api/internal/domain"
	"github.com/quorumflow-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldDate      = "date"
	fieldTopic     = "topic"
	fieldNotes     = "notes"
	fieldResolved  = "resolved"
	fieldUpdatedAt = "updated_at"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateCouncilNoteRequest) (*domain.CouncilNote, error)
	List(ctx context.Context) ([]domain.CouncilNote, error)
	Get(ctx context.Context, noteID string) (*domain.CouncilNote, error)
	Update(ctx context.Context, noteID string, req domain.UpdateCouncilNoteRequest) (*domain.CouncilNote, error)
	Delete(ctx context.Context, noteID string) error
}

type noteStore interface {
	Put(ctx context.Context, n *domain.CouncilNote) error
	Get(ctx context.Context, noteID string) (*domain.CouncilNote, error)
	List(ctx context.Context) ([]domain.CouncilNote, error)
	Update(ctx context.Context, noteID string, updates map[string]interface{}) error
	Delete(ctx context.Context, noteID string) error
}

type service struct {
	repo noteStore
}

type ServiceDeps struct {
	CouncilNoteRepo noteStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.CouncilNoteRepo}
}

func (s *service) Create(ctx context.Context, req domain.CreateCouncilNoteRequest) (*domain.CouncilNote, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	n := &domain.CouncilNote{
		NoteID:    id.New(),
		Date:      date,
		Topic:     req.Topic,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Put(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *service) List(ctx context.Context) ([]domain.CouncilNote, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, noteID string) (*domain.CouncilNote, error) {
	return s.repo.Get(ctx, noteID)
}

func (s *service) Update(ctx context.Context, noteID string, req domain.UpdateCouncilNoteRequest) (*domain.CouncilNote, error) {
	updates := map[string]interface{}{}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		updates[fieldDate] = date
	}
	if req.Topic != nil {
		updates[fieldTopic] = *req.Topic
	}
	if req.Notes != nil {
		updates[fieldNotes] = *req.Notes
	}
	if req.Resolved != nil {
		updates[fieldResolved] = *req.Resolved
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, noteID)
	}
	updates[fieldUpdatedAt] = time.Now().UTC()
	if err := s.repo.Update(ctx, noteID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, noteID)
}

func (s *service) Delete(ctx context.Context, noteID string) error {
	return s.repo.Delete(ctx, noteID)
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("date must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
	}
	return t, nil
}
