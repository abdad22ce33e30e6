package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/quorumflow-api/internal/application/ministering"
	"github.com/quorumflow-api/internal/config"
	"github.com/quorumflow-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/quorumflow-api/internal/infrastructure/jwt"
	s3infra "github.com/quorumflow-api/internal/infrastructure/s3"
	"github.com/quorumflow-api/internal/infrastructure/smtp"
	"github.com/quorumflow-api/internal/infrastructure/sns"
	"github.com/quorumflow-api/internal/infrastructure/webpush"
	"github.com/quorumflow-api/internal/jobs"
	transporthttp "github.com/quorumflow-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// S3 store.
	s3Client := s3infra.NewClient(cfg)
	s3Store := s3infra.NewStore(s3Client, cfg.S3BucketName)

	deps := &transporthttp.Deps{
		UserRepo:         dynamo.NewUserRepo(dynamoClient, cfg.DynamoTables.Users),
		SessionRepo:      dynamo.NewSessionRepo(dynamoClient, cfg.DynamoTables.Sessions),
		MemberRepo:       dynamo.NewMemberRepo(dynamoClient, cfg.DynamoTables.Members),
		ActivityRepo:     dynamo.NewActivityRepo(dynamoClient, cfg.DynamoTables.Activities),
		ConvertRepo:      dynamo.NewConvertRepo(dynamoClient, cfg.DynamoTables.Converts),
		FutureMemberRepo: dynamo.NewFutureMemberRepo(dynamoClient, cfg.DynamoTables.FutureMembers),
		CompanionRepo:    dynamo.NewCompanionshipRepo(dynamoClient, cfg.DynamoTables.Companionships),
		ServiceRepo:      dynamo.NewServiceRepo(dynamoClient, cfg.DynamoTables.Services),
		CouncilRepo:      dynamo.NewCouncilNoteRepo(dynamoClient, cfg.DynamoTables.CouncilNotes),
		ReportRepo:       dynamo.NewReportAnswersRepo(dynamoClient, cfg.DynamoTables.ReportAnswers),
		NotificationRepo: dynamo.NewNotificationRepo(dynamoClient, cfg.DynamoTables.Notifications),
		SubscriptionRepo: dynamo.NewSubscriptionRepo(dynamoClient, cfg.DynamoTables.PushSubscriptions),
		FileRepo:         dynamo.NewFileRepo(dynamoClient, cfg.DynamoTables.Files),
		S3Store:          s3Store,
		JWTProvider:      jwtProvider,
	}

	router := transporthttp.NewRouter(cfg, deps)

	// SNS SMS sender (optional — graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	reminderJob := jobs.NewReminderJob(jobs.ReminderJobDeps{
		Services: deps.ServiceRepo,
		Ministering: ministering.NewService(ministering.ServiceDeps{
			CompanionshipRepo: deps.CompanionRepo,
		}),
		Members:       deps.MemberRepo,
		Users:         deps.UserRepo,
		Notifications: deps.NotificationRepo,
		Subscriptions: deps.SubscriptionRepo,
		Push:          webpush.NewSender(cfg),
		SMS:           smsSender,
		Mail:          smtp.NewMailer(cfg),
		AlertPhone:    cfg.AlertPhone,
		AlertEmail:    cfg.AlertEmail,
		Logger:        slog.Default(),
	})

	scheduler, err := jobs.NewScheduler(cfg.ReminderCronSpec, reminderJob, slog.Default())
	if err != nil {
		log.Fatalf("invalid reminder schedule %q: %v", cfg.ReminderCronSpec, err)
	}
	scheduler.Start()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	scheduler.Stop()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
