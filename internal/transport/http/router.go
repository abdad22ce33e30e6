package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"

	"github.com/quorumflow-api/internal/application/activity"
	"github.com/quorumflow-api/internal/application/convert"
	"github.com/quorumflow-api/internal/application/council"
	fileapp "github.com/quorumflow-api/internal/application/file"
	"github.com/quorumflow-api/internal/application/member"
	"github.com/quorumflow-api/internal/application/ministering"
	"github.com/quorumflow-api/internal/application/notification"
	reportapp "github.com/quorumflow-api/internal/application/report"
	serviceapp "github.com/quorumflow-api/internal/application/service"
	"github.com/quorumflow-api/internal/application/session"
	"github.com/quorumflow-api/internal/application/subscription"
	"github.com/quorumflow-api/internal/application/user"
	"github.com/quorumflow-api/internal/config"
	"github.com/quorumflow-api/internal/domain"
	"github.com/quorumflow-api/internal/report/images"
	"github.com/quorumflow-api/internal/transport/http/handler"
	appmiddleware "github.com/quorumflow-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	var authMw func(http.Handler) http.Handler
	if deps.JWTProvider != nil {
		authMw = appmiddleware.Auth(deps.JWTProvider)
	} else {
		authMw = func(next http.Handler) http.Handler { return next }
	}

	// 5 requests/second, burst of 10, applied to the login endpoint.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	sessionSvc := session.NewService(session.ServiceDeps{
		SessionRepo:     deps.SessionRepo,
		UserRepo:        deps.UserRepo,
		JWTProvider:     deps.JWTProvider,
		RefreshTokenDur: cfg.RefreshTokenDur,
	})
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo:    deps.UserRepo,
		SessionRepo: deps.SessionRepo,
	})
	memberSvc := member.NewService(member.ServiceDeps{MemberRepo: deps.MemberRepo})
	activitySvc := activity.NewService(activity.ServiceDeps{ActivityRepo: deps.ActivityRepo})
	convertSvc := convert.NewService(convert.ServiceDeps{
		ConvertRepo:      deps.ConvertRepo,
		FutureMemberRepo: deps.FutureMemberRepo,
	})
	ministeringSvc := ministering.NewService(ministering.ServiceDeps{CompanionshipRepo: deps.CompanionRepo})
	serviceSvc := serviceapp.NewService(serviceapp.ServiceDeps{ServiceRepo: deps.ServiceRepo})
	councilSvc := council.NewService(council.ServiceDeps{CouncilNoteRepo: deps.CouncilRepo})
	notifSvc := notification.NewService(notification.ServiceDeps{NotificationRepo: deps.NotificationRepo})
	subscriptionSvc := subscription.NewService(subscription.ServiceDeps{SubscriptionRepo: deps.SubscriptionRepo})
	fileSvc := fileapp.NewService(fileapp.ServiceDeps{
		ObjectStore: deps.S3Store,
		FileRepo:    deps.FileRepo,
	})
	reportSvc := reportapp.NewService(reportapp.ServiceDeps{
		Activities:    deps.ActivityRepo,
		Converts:      deps.ConvertRepo,
		FutureMembers: deps.FutureMemberRepo,
		Answers:       deps.ReportRepo,
		Templates:     deps.S3Store,
		Resolver:      images.NewFetcher(),
		TemplateKey:   cfg.ReportTemplateKey,
	})

	healthH := handler.NewHealthHandler()
	sessionH := handler.NewSessionHandler(sessionSvc)
	userH := handler.NewUserHandler(userSvc)
	memberH := handler.NewMemberHandler(memberSvc)
	activityH := handler.NewActivityHandler(activitySvc)
	convertH := handler.NewConvertHandler(convertSvc)
	ministeringH := handler.NewMinisteringHandler(ministeringSvc)
	serviceH := handler.NewServiceHandler(serviceSvc)
	councilH := handler.NewCouncilHandler(councilSvc)
	reportH := handler.NewReportHandler(reportSvc)
	notifH := handler.NewNotificationHandler(notifSvc)
	subscriptionH := handler.NewSubscriptionHandler(subscriptionSvc)
	fileH := handler.NewFileHandler(fileSvc)

	r.Route("/v1", func(r chi.Router) {
		// Public routes
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/sessions/login", sessionH.Login)
		r.Post("/sessions/refresh", sessionH.Refresh)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Post("/sessions/logout", sessionH.Logout)
			r.Get("/users/{id}", userH.Get)
			r.Put("/users/{id}", userH.Update)
			r.Post("/users/change-password", userH.ChangePassword)

			r.Get("/members", memberH.List)
			r.Post("/members", memberH.Create)
			r.Get("/members/{id}", memberH.Get)
			r.Put("/members/{id}", memberH.Update)
			r.Delete("/members/{id}", memberH.Delete)

			r.Get("/activities", activityH.List)
			r.Post("/activities", activityH.Create)
			r.Get("/activities/{id}", activityH.Get)
			r.Put("/activities/{id}", activityH.Update)
			r.Delete("/activities/{id}", activityH.Delete)

			r.Get("/converts", convertH.List)
			r.Post("/converts", convertH.Create)
			r.Get("/converts/{id}", convertH.Get)
			r.Put("/converts/{id}", convertH.Update)
			r.Delete("/converts/{id}", convertH.Delete)

			r.Get("/future-members", convertH.ListFutureMembers)
			r.Post("/future-members", convertH.CreateFutureMember)
			r.Get("/future-members/{id}", convertH.GetFutureMember)
			r.Put("/future-members/{id}", convertH.UpdateFutureMember)
			r.Delete("/future-members/{id}", convertH.DeleteFutureMember)

			r.Get("/baptisms", convertH.ListBaptisms)

			r.Get("/ministering", ministeringH.List)
			r.Post("/ministering", ministeringH.Create)
			r.Get("/ministering/urgent", ministeringH.ListUrgent)
			r.Get("/ministering/{id}", ministeringH.Get)
			r.Put("/ministering/{id}", ministeringH.Update)
			r.Delete("/ministering/{id}", ministeringH.Delete)

			r.Get("/services", serviceH.List)
			r.Post("/services", serviceH.Create)
			r.Get("/services/{id}", serviceH.Get)
			r.Put("/services/{id}", serviceH.Update)
			r.Delete("/services/{id}", serviceH.Delete)

			r.Get("/council-notes", councilH.List)
			r.Post("/council-notes", councilH.Create)
			r.Get("/council-notes/{id}", councilH.Get)
			r.Put("/council-notes/{id}", councilH.Update)
			r.Delete("/council-notes/{id}", councilH.Delete)

			r.Get("/reports/answers/{year}", reportH.GetAnswers)
			r.Put("/reports/answers/{year}", reportH.PutAnswers)
			r.Post("/reports/annual", reportH.GenerateAnnual)

			r.Get("/notifications", notifH.ListUnread)
			r.Put("/notifications/{id}", notifH.MarkAsRead)

			r.Get("/subscriptions", subscriptionH.List)
			r.Post("/subscriptions", subscriptionH.Register)
			r.Delete("/subscriptions/{id}", subscriptionH.Delete)

			r.Post("/files/s3", fileH.Upload)
			r.Post("/files/s3/base64", fileH.UploadBase64)
			r.Get("/files/s3/base64/{id}", fileH.GetBase64)
			r.Get("/files/s3/{id}", fileH.Download)
			r.Delete("/files/s3/{id}", fileH.Delete)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireRole(domain.RoleAdmin))

				r.Get("/users", userH.List)
				r.Post("/users", userH.Register)
				r.Delete("/users/{id}", userH.Delete)
			})
		})
	})

	return r
}
