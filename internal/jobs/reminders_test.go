package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quorumflow-api/internal/application/ministering"
	"github.com/quorumflow-api/internal/domain"
)

type stubServices struct{ services []domain.Service }

func (s *stubServices) List(context.Context) ([]domain.Service, error) { return s.services, nil }

type stubMinistering struct{ urgent []ministering.UrgentFamily }

func (s *stubMinistering) ListUrgent(context.Context) ([]ministering.UrgentFamily, error) {
	return s.urgent, nil
}

type stubMembers struct{ members []domain.Member }

func (s *stubMembers) List(context.Context) ([]domain.Member, error) { return s.members, nil }

type stubUsers struct{ users []domain.User }

func (s *stubUsers) List(context.Context) ([]domain.User, error) { return s.users, nil }

type recordingNotifications struct {
	mu     sync.Mutex
	stored []domain.AppNotification
	err    error
}

func (r *recordingNotifications) Put(_ context.Context, n *domain.AppNotification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.stored = append(r.stored, *n)
	return nil
}

type stubSubscriptions struct{ subs []domain.PushSubscription }

func (s *stubSubscriptions) ListAll(context.Context) ([]domain.PushSubscription, error) {
	return s.subs, nil
}

type recordingPush struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (r *recordingPush) Send(_ context.Context, sub domain.PushSubscription, _ []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sub.SubscriptionID)
	return nil
}

func fixedDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 11, 0, 0, 0, time.UTC)
}

func newTestJob(deps ReminderJobDeps, now time.Time) *ReminderJob {
	j := NewReminderJob(deps)
	j.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	j.now = func() time.Time { return now }
	return j
}

func baseDeps(notifications *recordingNotifications, push *recordingPush) ReminderJobDeps {
	return ReminderJobDeps{
		Services:      &stubServices{},
		Ministering:   &stubMinistering{},
		Members:       &stubMembers{},
		Users:         &stubUsers{users: []domain.User{{UserID: "u1", Enable: 1}}},
		Notifications: notifications,
		Subscriptions: &stubSubscriptions{subs: []domain.PushSubscription{{SubscriptionID: "sub1"}}},
		Push:          push,
	}
}

func TestRun_ServiceReminders(t *testing.T) {
	now := fixedDay(2026, time.March, 10)
	notifications := &recordingNotifications{}
	push := &recordingPush{}

	deps := baseDeps(notifications, push)
	deps.Services = &stubServices{services: []domain.Service{
		{ServiceID: "s1", Name: "Pintar la capilla", Date: fixedDay(2026, time.March, 17)},
		{ServiceID: "s2", Name: "Mudanza", Date: fixedDay(2026, time.March, 11)},
		{ServiceID: "s3", Name: "Lejano", Date: fixedDay(2026, time.April, 20)},
	}}

	require.NoError(t, newTestJob(deps, now).Run(context.Background()))

	require.Len(t, notifications.stored, 2)
	titles := []string{notifications.stored[0].Title, notifications.stored[1].Title}
	assert.Contains(t, titles, "Servicio la próxima semana")
	assert.Contains(t, titles, "Servicio mañana")
	assert.Len(t, push.sent, 2)
}

func TestRun_UrgentFamiliesAlertEveryRun(t *testing.T) {
	now := fixedDay(2026, time.March, 10)
	deps := baseDeps(&recordingNotifications{}, &recordingPush{})
	deps.Ministering = &stubMinistering{urgent: []ministering.UrgentFamily{
		{Family: domain.MinisteredFamily{Name: "García", UrgentNeed: true}},
	}}

	for run := 0; run < 2; run++ {
		notifications := &recordingNotifications{}
		deps.Notifications = notifications
		require.NoError(t, newTestJob(deps, now).Run(context.Background()))
		require.Len(t, notifications.stored, 1)
		assert.Equal(t, "Familia con necesidad urgente", notifications.stored[0].Title)
	}
}

func TestRun_BirthdayReminders(t *testing.T) {
	now := fixedDay(2026, time.March, 10)
	birthdayToday := time.Date(1990, time.March, 10, 0, 0, 0, 0, time.UTC)
	birthdayIn14 := time.Date(1985, time.March, 24, 0, 0, 0, 0, time.UTC)
	birthdayOff := time.Date(1970, time.July, 2, 0, 0, 0, 0, time.UTC)

	notifications := &recordingNotifications{}
	deps := baseDeps(notifications, &recordingPush{})
	deps.Members = &stubMembers{members: []domain.Member{
		{MemberID: "m1", FullName: "Hoy", Birthday: &birthdayToday, Active: true},
		{MemberID: "m2", FullName: "Pronto", Birthday: &birthdayIn14, Active: true},
		{MemberID: "m3", FullName: "Otro", Birthday: &birthdayOff, Active: true},
		{MemberID: "m4", FullName: "Inactivo", Birthday: &birthdayToday, Active: false},
	}}

	require.NoError(t, newTestJob(deps, now).Run(context.Background()))

	require.Len(t, notifications.stored, 2)
	titles := []string{notifications.stored[0].Title, notifications.stored[1].Title}
	assert.Contains(t, titles, "¡Feliz cumpleaños!")
	assert.Contains(t, titles, "Cumpleaños en dos semanas")
}

func TestRun_PushFailureDoesNotBlockStoredNotifications(t *testing.T) {
	now := fixedDay(2026, time.March, 10)
	notifications := &recordingNotifications{}
	push := &recordingPush{err: errors.New("endpoint unreachable")}

	deps := baseDeps(notifications, push)
	deps.Services = &stubServices{services: []domain.Service{
		{ServiceID: "s1", Name: "Mudanza", Date: fixedDay(2026, time.March, 11)},
	}}

	require.NoError(t, newTestJob(deps, now).Run(context.Background()))
	assert.Len(t, notifications.stored, 1)
}

func TestRun_SkipsDisabledUsers(t *testing.T) {
	now := fixedDay(2026, time.March, 10)
	notifications := &recordingNotifications{}

	deps := baseDeps(notifications, &recordingPush{})
	deps.Users = &stubUsers{users: []domain.User{
		{UserID: "u1", Enable: 1},
		{UserID: "u2", Enable: 0},
	}}
	deps.Services = &stubServices{services: []domain.Service{
		{ServiceID: "s1", Name: "Mudanza", Date: fixedDay(2026, time.March, 11)},
	}}

	require.NoError(t, newTestJob(deps, now).Run(context.Background()))

	require.Len(t, notifications.stored, 1)
	assert.Equal(t, "u1", notifications.stored[0].UserID)
}

func TestRun_NoRemindersNoDeliveries(t *testing.T) {
	now := fixedDay(2026, time.March, 10)
	notifications := &recordingNotifications{}
	push := &recordingPush{}

	require.NoError(t, newTestJob(baseDeps(notifications, push), now).Run(context.Background()))

	assert.Empty(t, notifications.stored)
	assert.Empty(t, push.sent)
}
