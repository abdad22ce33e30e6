package ministering

import (
	"context"
	"time"

	"github.com/quorumflow-api/internal/domain"
	"github.com/quorumflow-api/internal/pkg/id"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldCompanions = "companions"
	fieldFamilies   = "families"
	fieldUpdatedAt  = "updated_at"
)

// UrgentFamily pairs a family in urgent need with the companionship assigned
// to it, so alerts can name who should act.
type UrgentFamily struct {
	Family          domain.MinisteredFamily `json:"family"`
	CompanionshipID string                  `json:"companionship_id"`
	Companions      []string                `json:"companions"`
}

type Service interface {
	Create(ctx context.Context, req domain.CreateCompanionshipRequest) (*domain.Companionship, error)
	List(ctx context.Context) ([]domain.Companionship, error)
	Get(ctx context.Context, companionshipID string) (*domain.Companionship, error)
	Update(ctx context.Context, companionshipID string, req domain.UpdateCompanionshipRequest) (*domain.Companionship, error)
	Delete(ctx context.Context, companionshipID string) error
	ListUrgent(ctx context.Context) ([]UrgentFamily, error)
}

type companionshipStore interface {
	Put(ctx context.Context, c *domain.Companionship) error
	Get(ctx context.Context, companionshipID string) (*domain.Companionship, error)
	List(ctx context.Context) ([]domain.Companionship, error)
	Update(ctx context.Context, companionshipID string, updates map[string]interface{}) error
	Delete(ctx context.Context, companionshipID string) error
}

type service struct {
	repo companionshipStore
}

type ServiceDeps struct {
	CompanionshipRepo companionshipStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.CompanionshipRepo}
}

func (s *service) Create(ctx context.Context, req domain.CreateCompanionshipRequest) (*domain.Companionship, error) {
	now := time.Now().UTC()
	c := &domain.Companionship{
		CompanionshipID: id.New(),
		Companions:      req.Companions,
		Families:        toFamilies(req.Families),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.repo.Put(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context) ([]domain.Companionship, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, companionshipID string) (*domain.Companionship, error) {
	return s.repo.Get(ctx, companionshipID)
}

func (s *service) Update(ctx context.Context, companionshipID string, req domain.UpdateCompanionshipRequest) (*domain.Companionship, error) {
	updates := map[string]interface{}{}
	if req.Companions != nil {
		updates[fieldCompanions] = *req.Companions
	}
	if req.Families != nil {
		updates[fieldFamilies] = toFamilies(*req.Families)
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, companionshipID)
	}
	updates[fieldUpdatedAt] = time.Now().UTC()
	if err := s.repo.Update(ctx, companionshipID, updates); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, companionshipID)
}

func (s *service) Delete(ctx context.Context, companionshipID string) error {
	return s.repo.Delete(ctx, companionshipID)
}

// ListUrgent flattens every companionship's families down to those flagged as
// urgent. The reminder job alerts on the same view each run until the flag is
// cleared.
func (s *service) ListUrgent(ctx context.Context) ([]UrgentFamily, error) {
	companionships, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	var urgent []UrgentFamily
	for _, c := range companionships {
		for _, f := range c.Families {
			if !f.UrgentNeed {
				continue
			}
			urgent = append(urgent, UrgentFamily{
				Family:          f,
				CompanionshipID: c.CompanionshipID,
				Companions:      c.Companions,
			})
		}
	}
	return urgent, nil
}

func toFamilies(inputs []domain.FamilyInput) []domain.MinisteredFamily {
	families := make([]domain.MinisteredFamily, len(inputs))
	for i, in := range inputs {
		families[i] = domain.MinisteredFamily{
			Name:         in.Name,
			UrgentNeed:   in.UrgentNeed,
			Visited:      in.Visited,
			Observations: in.Observations,
		}
	}
	return families
}
