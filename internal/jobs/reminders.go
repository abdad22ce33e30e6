package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quorumflow-api/internal/application/ministering"
	"github.com/quorumflow-api/internal/domain"
	"github.com/quorumflow-api/internal/pkg/id"
)

// maxConcurrentDeliveries bounds the push fan-out so a large subscription list
// cannot exhaust sockets.
const maxConcurrentDeliveries = 8

type serviceLister interface {
	List(ctx context.Context) ([]domain.Service, error)
}

type urgentLister interface {
	ListUrgent(ctx context.Context) ([]ministering.UrgentFamily, error)
}

type memberLister interface {
	List(ctx context.Context) ([]domain.Member, error)
}

type userLister interface {
	List(ctx context.Context) ([]domain.User, error)
}

type notificationStore interface {
	Put(ctx context.Context, n *domain.AppNotification) error
}

type subscriptionLister interface {
	ListAll(ctx context.Context) ([]domain.PushSubscription, error)
}

type pushSender interface {
	Send(ctx context.Context, sub domain.PushSubscription, payload []byte) error
}

type smsSender interface {
	SendSMS(ctx context.Context, to, message string) error
}

type mailer interface {
	SendEmail(to, subject, body string) error
}

// ReminderJob computes the day's reminders and fans them out: one in-app
// notification per user plus a web push per registered subscription. Urgent
// ministering needs additionally go out over SMS and email when those
// channels are configured.
type ReminderJob struct {
	services      serviceLister
	ministering   urgentLister
	members       memberLister
	users         userLister
	notifications notificationStore
	subscriptions subscriptionLister
	push          pushSender
	sms           smsSender
	mail          mailer
	alertPhone    string
	alertEmail    string
	logger        *slog.Logger
	now           func() time.Time
}

type ReminderJobDeps struct {
	Services      serviceLister
	Ministering   urgentLister
	Members       memberLister
	Users         userLister
	Notifications notificationStore
	Subscriptions subscriptionLister
	Push          pushSender
	SMS           smsSender
	Mail          mailer
	AlertPhone    string
	AlertEmail    string
	Logger        *slog.Logger
}

func NewReminderJob(deps ReminderJobDeps) *ReminderJob {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ReminderJob{
		services:      deps.Services,
		ministering:   deps.Ministering,
		members:       deps.Members,
		users:         deps.Users,
		notifications: deps.Notifications,
		subscriptions: deps.Subscriptions,
		push:          deps.Push,
		sms:           deps.SMS,
		mail:          deps.Mail,
		alertPhone:    deps.AlertPhone,
		alertEmail:    deps.AlertEmail,
		logger:        logger,
		now:           time.Now,
	}
}

// Run executes one reminder pass. Collection errors abort the run; delivery
// errors are logged per target and never stop the remaining fan-out.
func (j *ReminderJob) Run(ctx context.Context) error {
	payloads, urgent, err := j.collect(ctx)
	if err != nil {
		return err
	}
	if len(payloads) == 0 {
		j.logger.Info("reminder run produced no notifications")
		return nil
	}

	if err := j.fanOut(ctx, payloads); err != nil {
		return err
	}
	j.alertUrgent(ctx, urgent)
	return nil
}

// collect builds the payload list for today. The urgent slice is returned
// separately so the SMS and email channels only carry those.
func (j *ReminderJob) collect(ctx context.Context) ([]domain.NotificationPayload, []domain.NotificationPayload, error) {
	today := dateOnly(j.now())
	var payloads []domain.NotificationPayload

	services, err := j.services.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list services: %w", err)
	}
	for _, s := range services {
		switch daysBetween(today, dateOnly(s.Date)) {
		case 7:
			payloads = append(payloads, domain.NotificationPayload{
				Title: "Servicio la próxima semana",
				Body:  fmt.Sprintf("%s – %s", s.Name, s.Date.Format("02/01/2006")),
			})
		case 1:
			payloads = append(payloads, domain.NotificationPayload{
				Title: "Servicio mañana",
				Body:  fmt.Sprintf("%s – %s", s.Name, s.Date.Format("02/01/2006")),
			})
		}
	}

	// Urgent needs re-alert on every run until the flag is cleared.
	urgentFamilies, err := j.ministering.ListUrgent(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list urgent families: %w", err)
	}
	var urgent []domain.NotificationPayload
	for _, u := range urgentFamilies {
		urgent = append(urgent, domain.NotificationPayload{
			Title: "Familia con necesidad urgente",
			Body:  fmt.Sprintf("La familia %s necesita atención urgente", u.Family.Name),
		})
	}
	payloads = append(payloads, urgent...)

	members, err := j.members.List(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list members: %w", err)
	}
	for _, m := range members {
		if m.Birthday == nil || !m.Active {
			continue
		}
		switch {
		case sameMonthDay(today.AddDate(0, 0, 14), *m.Birthday):
			payloads = append(payloads, domain.NotificationPayload{
				Title: "Cumpleaños en dos semanas",
				Body:  fmt.Sprintf("%s cumple años el %s", m.FullName, m.Birthday.Format("02/01")),
			})
		case sameMonthDay(today, *m.Birthday):
			payloads = append(payloads, domain.NotificationPayload{
				Title: "¡Feliz cumpleaños!",
				Body:  fmt.Sprintf("Hoy es el cumpleaños de %s", m.FullName),
			})
		}
	}

	return payloads, urgent, nil
}

// fanOut persists an in-app notification per (payload, user) and pushes the
// payload to every registered subscription. The two deliveries are
// independent: a failed push never rolls back the stored notification.
func (j *ReminderJob) fanOut(ctx context.Context, payloads []domain.NotificationPayload) error {
	users, err := j.users.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	subs, err := j.subscriptions.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list subscriptions: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDeliveries)

	for _, p := range payloads {
		for _, u := range users {
			if u.Enable != 1 || u.DeletedAt != nil {
				continue
			}
			p, u := p, u
			g.Go(func() error {
				now := time.Now().UTC()
				n := &domain.AppNotification{
					NotificationID: id.New(),
					UserID:         u.UserID,
					Title:          p.Title,
					Body:           p.Body,
					CreatedAt:      now,
					UpdatedAt:      now,
				}
				if err := j.notifications.Put(gctx, n); err != nil {
					j.logger.Error("store notification", "user_id", u.UserID, "error", err)
				}
				return nil
			})
		}

		body, err := json.Marshal(p)
		if err != nil {
			j.logger.Error("marshal push payload", "error", err)
			continue
		}
		for _, sub := range subs {
			sub := sub
			g.Go(func() error {
				if err := j.push.Send(gctx, sub, body); err != nil {
					j.logger.Error("push delivery", "subscription_id", sub.SubscriptionID, "error", err)
				}
				return nil
			})
		}
	}

	return g.Wait()
}

func (j *ReminderJob) alertUrgent(ctx context.Context, urgent []domain.NotificationPayload) {
	if len(urgent) == 0 {
		return
	}
	if j.sms != nil && j.alertPhone != "" {
		for _, p := range urgent {
			if err := j.sms.SendSMS(ctx, j.alertPhone, p.Body); err != nil {
				j.logger.Error("urgent SMS", "error", err)
			}
		}
	}
	if j.mail != nil && j.alertEmail != "" {
		body := ""
		for _, p := range urgent {
			body += p.Body + "\n"
		}
		if err := j.mail.SendEmail(j.alertEmail, "Familias con necesidad urgente", body); err != nil {
			j.logger.Error("urgent email", "error", err)
		}
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

func sameMonthDay(t, birthday time.Time) bool {
	return t.Month() == birthday.Month() && t.Day() == birthday.Day()
}
