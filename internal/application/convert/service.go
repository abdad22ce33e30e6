package convert

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/quorumflow-api/internal/domain"
	"github.com/quorumflow-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldFullName    = "full_name"
	fieldBaptismDate = "baptism_date"
	fieldPhotoURLs   = "photo_urls"
	fieldNotes       = "notes"
	fieldUpdatedAt   = "updated_at"
)

type Service interface {
	Create(ctx context.Context, req domain.CreateConvertRequest) (*domain.Convert, error)
	List(ctx context.Context) ([]domain.Convert, error)
	Get(ctx context.Context, convertID string) (*domain.Convert, error)
	Update(ctx context.Context, convertID string, req domain.UpdateConvertRequest) (*domain.Convert, error)
	Delete(ctx context.Context, convertID string) error

	CreateFutureMember(ctx context.Context, req domain.CreateFutureMemberRequest) (*domain.FutureMember, error)
	ListFutureMembers(ctx context.Context) ([]domain.FutureMember, error)
	GetFutureMember(ctx context.Context, futureMemberID string) (*domain.FutureMember, error)
	UpdateFutureMember(ctx context.Context, futureMemberID string, req domain.UpdateFutureMemberRequest) (*domain.FutureMember, error)
	DeleteFutureMember(ctx context.Context, futureMemberID string) error

	// ListBaptisms merges manual converts with future members whose scheduled
	// baptism date has passed, newest first. A zero year returns every record.
	ListBaptisms(ctx context.Context, year int) ([]domain.Baptism, error)
}

type convertStore interface {
	Put(ctx context.Context, c *domain.Convert) error
	Get(ctx context.Context, convertID string) (*domain.Convert, error)
	List(ctx context.Context) ([]domain.Convert, error)
	Update(ctx context.Context, convertID string, updates map[string]interface{}) error
	Delete(ctx context.Context, convertID string) error
}

type futureMemberStore interface {
	Put(ctx context.Context, fm *domain.FutureMember) error
	Get(ctx context.Context, futureMemberID string) (*domain.FutureMember, error)
	List(ctx context.Context) ([]domain.FutureMember, error)
	Update(ctx context.Context, futureMemberID string, updates map[string]interface{}) error
	Delete(ctx context.Context, futureMemberID string) error
}

type service struct {
	converts      convertStore
	futureMembers futureMemberStore
	now           func() time.Time
}

type ServiceDeps struct {
	ConvertRepo      convertStore
	FutureMemberRepo futureMemberStore
}

func NewService(deps ServiceDeps) Service {
	return &service{
		converts:      deps.ConvertRepo,
		futureMembers: deps.FutureMemberRepo,
		now:           time.Now,
	}
}

func (s *service) Create(ctx context.Context, req domain.CreateConvertRequest) (*domain.Convert, error) {
	date, err := parseDate(req.BaptismDate)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &domain.Convert{
		ConvertID:   id.New(),
		FullName:    req.FullName,
		BaptismDate: date,
		PhotoURLs:   req.PhotoURLs,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.converts.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context) ([]domain.Convert, error) {
	return s.converts.List(ctx)
}

func (s *service) Get(ctx context.Context, convertID string) (*domain.Convert, error) {
	return s.converts.Get(ctx, convertID)
}

func (s *service) Update(ctx context.Context, convertID string, req domain.UpdateConvertRequest) (*domain.Convert, error) {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates[fieldFullName] = *req.FullName
	}
	if req.BaptismDate != nil {
		date, err := parseDate(*req.BaptismDate)
		if err != nil {
			return nil, err
		}
		updates[fieldBaptismDate] = date
	}
	if req.PhotoURLs != nil {
		updates[fieldPhotoURLs] = *req.PhotoURLs
	}
	if req.Notes != nil {
		updates[fieldNotes] = *req.Notes
	}
	if len(updates) == 0 {
		return s.converts.Get(ctx, convertID)
	}
	updates[fieldUpdatedAt] = time.Now().UTC()
	if err := s.converts.Update(ctx, convertID, updates); err != nil {
		return nil, err
	}
	return s.converts.Get(ctx, convertID)
}

func (s *service) Delete(ctx context.Context, convertID string) error {
	return s.converts.Delete(ctx, convertID)
}

func (s *service) CreateFutureMember(ctx context.Context, req domain.CreateFutureMemberRequest) (*domain.FutureMember, error) {
	date, err := parseDate(req.BaptismDate)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	fm := &domain.FutureMember{
		FutureMemberID: id.New(),
		FullName:       req.FullName,
		BaptismDate:    date,
		PhotoURLs:      req.PhotoURLs,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.futureMembers.Put(ctx, fm); err != nil {
		return nil, err
	}
	return fm, nil
}

func (s *service) ListFutureMembers(ctx context.Context) ([]domain.FutureMember, error) {
	return s.futureMembers.List(ctx)
}

func (s *service) GetFutureMember(ctx context.Context, futureMemberID string) (*domain.FutureMember, error) {
	return s.futureMembers.Get(ctx, futureMemberID)
}

func (s *service) UpdateFutureMember(ctx context.Context, futureMemberID string, req domain.UpdateFutureMemberRequest) (*domain.FutureMember, error) {
	updates := map[string]interface{}{}
	if req.FullName != nil {
		updates[fieldFullName] = *req.FullName
	}
	if req.BaptismDate != nil {
		date, err := parseDate(*req.BaptismDate)
		if err != nil {
			return nil, err
		}
		updates[fieldBaptismDate] = date
	}
	if req.PhotoURLs != nil {
		updates[fieldPhotoURLs] = *req.PhotoURLs
	}
	if len(updates) == 0 {
		return s.futureMembers.Get(ctx, futureMemberID)
	}
	updates[fieldUpdatedAt] = time.Now().UTC()
	if err := s.futureMembers.Update(ctx, futureMemberID, updates); err != nil {
		return nil, err
	}
	return s.futureMembers.Get(ctx, futureMemberID)
}

func (s *service) DeleteFutureMember(ctx context.Context, futureMemberID string) error {
	return s.futureMembers.Delete(ctx, futureMemberID)
}

func (s *service) ListBaptisms(ctx context.Context, year int) ([]domain.Baptism, error) {
	converts, err := s.converts.List(ctx)
	if err != nil {
		return nil, err
	}
	futureMembers, err := s.futureMembers.List(ctx)
	if err != nil {
		return nil, err
	}

	baptisms := make([]domain.Baptism, 0, len(converts)+len(futureMembers))
	for _, fm := range futureMembers {
		if fm.BaptismDate.After(s.now()) {
			continue
		}
		b := domain.BaptismFromFutureMember(fm)
		if year == 0 || b.Date.Year() == year {
			baptisms = append(baptisms, b)
		}
	}
	for _, c := range converts {
		b := domain.BaptismFromConvert(c)
		if year == 0 || b.Date.Year() == year {
			baptisms = append(baptisms, b)
		}
	}
	sort.SliceStable(baptisms, func(i, j int) bool { return baptisms[i].Date.After(baptisms[j].Date) })
	return baptisms, nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("baptism_date must be in YYYY-MM-DD format: %w", domain.ErrBadRequest)
	}
	return t, nil
}
