package notification

import (
	"context"
	"fmt"

	"github.com/quorumflow-api/internal/domain"
)

type Service interface {
	ListUnread(ctx context.Context, userID string) ([]domain.AppNotification, error)
	// MarkAsRead flips the read flag. Users may only touch their own
	// notifications.
	MarkAsRead(ctx context.Context, userID, notificationID string) (*domain.AppNotification, error)
}

type notificationStore interface {
	Get(ctx context.Context, notificationID string) (*domain.AppNotification, error)
	ListUnread(ctx context.Context, userID string) ([]domain.AppNotification, error)
	MarkAsRead(ctx context.Context, notificationID string) (*domain.AppNotification, error)
}

type service struct {
	repo notificationStore
}

type ServiceDeps struct {
	NotificationRepo notificationStore
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.NotificationRepo}
}

func (s *service) ListUnread(ctx context.Context, userID string) ([]domain.AppNotification, error) {
	return s.repo.ListUnread(ctx, userID)
}

func (s *service) MarkAsRead(ctx context.Context, userID, notificationID string) (*domain.AppNotification, error) {
	n, err := s.repo.Get(ctx, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, fmt.Errorf("notification %s does not belong to user: %w", notificationID, domain.ErrForbidden)
	}
	return s.repo.MarkAsRead(ctx, notificationID)
}
