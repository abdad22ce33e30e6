package member

import (
	"context"
	"fmt"
	"time"

	"github.com/quorumflow-api/internal/domain"
	"github.com/quorumflow-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldFullName    = "full_name"
	fieldPhone       = "phone"
	fieldEmail       = "email"
	fieldAddress     = "address"
	fieldBirthday    = "birthday"
	fieldPriesthood  = "priesthood"
	fieldMovedInAt   = "moved_in_at"
	fieldActive      = "active"
	fieldObservation = "observation"
	fieldUpdatedAt   = "updated_at"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateMemberRequest) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	Get(ctx context.Context, memberID string) (*domain.Member, error)
	Update(ctx context.Context, memberID string, req domain.UpdateMemberRequest) (*domain.Member, error)
	Delete(ctx context.Context, memberID string) error
}

type memberStore interface {
	Put(ctx context.Context, m *domain.Member) error
	Get(ctx context.Context, memberID string) (*domain.Member, error)
	List(ctx context.Context) ([]domain.Member, error)
	Update(ctx context.Context, memberID string, updates map[string]interface{}) error
	Delete(ctx context.Context, memberID string) error
}

type service struct {
	repo memberStore
}

type ServiceDeps struct {
	MemberRepo memberStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.MemberRepo}
}

func (s *service) Create(ctx context.Context, req domain.CreateMemberRequest) (*domain.Member, error) {
	birthday, err := parseOptionalDate(req.Birthday, "birthday")
	if err != nil {
		return nil, err
	}
	movedInAt, err := parseOptionalDate(req.MovedInAt, "moved_in_at")
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	m := &domain.Member{
		MemberID:    id.New(),
		FullName:    req.FullName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Birthday:    birthday,
		Priesthood:  req.Priesthood,
		MovedInAt:   movedInAt,
		Active:      true,
		Observation: req.Observation,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Put(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) List(ctx context.Context) ([]domain.Member, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, memberID string) (*domain.Member, error) {
	return s.repo.Get(ctx, memberID)
}

func (s *service) Update(ctx context.Context, memberID string, req domain.UpdateMemberRequest) (*domain.Member, error) {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates[fieldFullName] = *req.FullName
	}
	if req.Phone != nil {
		updates[fieldPhone] = *req.Phone
	}
	if req.Email != nil {
		updates[fieldEmail] = *req.Email
	}
	if req.Address != nil {
		updates[fieldAddress] = *req.Address
	}
	if req.Birthday != nil {
		t, err := parseOptionalDate(*req.Birthday, "birthday")
		if err != nil {
			return nil, err
		}
		updates[fieldBirthday] = t
	}
	if req.Priesthood != nil {
		updates[fieldPriesthood] = *req.Priesthood
	}
	if req.MovedInAt != nil {
		t, err := parseOptionalDate(*req.MovedInAt, "moved_in_at")
		if err != nil {
			return nil, err
		}
		updates[fieldMovedInAt] = t
	}
	if req.Active != nil {
		updates[fieldActive] = *req.Active
	}
	if req.Observation != nil {
		updates[fieldObservation] = *req.Observation
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, memberID)
	}
	updates[fieldUpdatedAt] = time.Now().UTC()
	if err := s.repo.Update(ctx, memberID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, memberID)
}

func (s *service) Delete(ctx context.Context, memberID string) error {
	return s.repo.Delete(ctx, memberID)
}

func parseOptionalDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, fmt.Errorf("%s must be in YYYY-MM-DD format: %w", field, domain.ErrBadRequest)
	}
	return &t, nil
}
