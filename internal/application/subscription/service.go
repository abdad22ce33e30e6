package subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/quorumflow-api/internal/domain"
	"github.com/quorumflow-api/internal/pkg/id"
)

type Service interface {
	// Register stores a browser push subscription for a user. Re-registering
	// an endpoint the user already has returns the existing record.
	Register(ctx context.Context, userID string, req domain.RegisterSubscriptionRequest) (*domain.PushSubscription, error)
	ListByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error)
	Delete(ctx context.Context, userID, subscriptionID string) error
}

type subscriptionStore interface {
	Put(ctx context.Context, s *domain.PushSubscription) error
	Get(ctx context.Context, subscriptionID string) (*domain.PushSubscription, error)
	ListByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error)
	Delete(ctx context.Context, subscriptionID string) error
}

type service struct {
	repo subscriptionStore
}

type ServiceDeps struct {
	SubscriptionRepo subscriptionStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.SubscriptionRepo}
}

func (s *service) Register(ctx context.Context, userID string, req domain.RegisterSubscriptionRequest) (*domain.PushSubscription, error) {
	existing, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if existing[i].Endpoint == req.Endpoint {
			return &existing[i], nil
		}
	}
	sub := &domain.PushSubscription{
		SubscriptionID: id.New(),
		UserID:         userID,
		Endpoint:       req.Endpoint,
		P256dh:         req.P256dh,
		Auth:           req.Auth,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.Put(ctx, sub); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *service) ListByUser(ctx context.Context, userID string) ([]domain.PushSubscription, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) Delete(ctx context.Context, userID, subscriptionID string) error {
	sub, err := s.repo.Get(ctx, subscriptionID)
	if err != nil {
		return err
	}
	if sub.UserID != userID {
		return fmt.Errorf("subscription %s does not belong to user: %w", subscriptionID, domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, subscriptionID)
}
