package webpush

import (
	"context"
	"fmt"
	"log"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/quorumflow-api/internal/config"
	"github.com/quorumflow-api/internal/domain"
)

// Sender delivers a payload to a single browser push subscription.
// Delivery is best-effort: when VAPID keys are not configured the injected
// implementation is a no-op, so callers never branch on configuration.
type Sender interface {
	Send(ctx context.Context, sub domain.PushSubscription, payload []byte) error
}

// NewSender returns the real sender, or a no-op when the VAPID key pair is
// missing from configuration.
func NewSender(cfg *config.Config) Sender {
	if cfg.VAPIDPublicKey == "" || cfg.VAPIDPrivateKey == "" {
		log.Println("WARN: VAPID keys not configured, web push disabled")
		return noopSender{}
	}
	return &sender{
		publicKey:  cfg.VAPIDPublicKey,
		privateKey: cfg.VAPIDPrivateKey,
		subscriber: cfg.VAPIDSubscriber,
	}
}

type sender struct {
	publicKey  string
	privateKey string
	subscriber string
}

func (s *sender) Send(ctx context.Context, sub domain.PushSubscription, payload []byte) error {
	resp, err := webpush.SendNotificationWithContext(ctx, payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.subscriber,
		VAPIDPublicKey:  s.publicKey,
		VAPIDPrivateKey: s.privateKey,
		TTL:             60 * 60 * 24,
	})
	if err != nil {
		return fmt.Errorf("webpush send: %w", err)
	}
	defer resp.Body.Close()

	// An expired or unsubscribed endpoint is flagged here but deliberately not
	// deleted; cleanup remains a manual operation.
	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		log.Printf("push subscription %s expired (status %d), should be removed", sub.SubscriptionID, resp.StatusCode)
		return nil
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("webpush send: unexpected status %d", resp.StatusCode)
	}
	return nil
}

type noopSender struct{}

func (noopSender) Send(context.Context, domain.PushSubscription, []byte) error { return nil }
