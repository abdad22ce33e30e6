package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string
	DynamoTables   DynamoTables
	S3BucketName   string

	// ReportTemplateKey is the fixed object path of the annual report DOCX
	// template. The named placeholders it must contain are a contract
	// maintained out-of-band with the template file itself.
	ReportTemplateKey string

	JWTPrivateKeyPath string
	JWTPublicKeyPath  string
	JWTExpiry         time.Duration
	RefreshTokenDur   time.Duration

	// VAPID key pair for web push. When either key is empty, push delivery is
	// a silent no-op rather than an error.
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubscriber string

	// ReminderCronSpec is the daily schedule of the notification job.
	ReminderCronSpec string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPUsername string
	SMTPPassword string
	// AlertEmail receives the urgent-need email digest. Empty disables it.
	AlertEmail string

	SNSRegion string
	// AlertPhone receives urgent-need SMS alerts. Empty disables them.
	AlertPhone string

	AllowedOrigins []string // CORS allowed origins
}

// DynamoTables holds the DynamoDB table name for each entity.
type DynamoTables struct {
	Users             string
	Sessions          string
	Members           string
	Activities        string
	Converts          string
	FutureMembers     string
	Companionships    string
	Services          string
	CouncilNotes      string
	ReportAnswers     string
	Notifications     string
	PushSubscriptions string
	Files             string
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort: getEnv("APP_PORT", "3000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),
		DynamoTables: DynamoTables{
			Users:             getEnv("DYNAMO_TABLE_USERS", "users"),
			Sessions:          getEnv("DYNAMO_TABLE_SESSIONS", "sessions"),
			Members:           getEnv("DYNAMO_TABLE_MEMBERS", "members"),
			Activities:        getEnv("DYNAMO_TABLE_ACTIVITIES", "activities"),
			Converts:          getEnv("DYNAMO_TABLE_CONVERTS", "converts"),
			FutureMembers:     getEnv("DYNAMO_TABLE_FUTURE_MEMBERS", "future_members"),
			Companionships:    getEnv("DYNAMO_TABLE_COMPANIONSHIPS", "companionships"),
			Services:          getEnv("DYNAMO_TABLE_SERVICES", "services"),
			CouncilNotes:      getEnv("DYNAMO_TABLE_COUNCIL_NOTES", "council_notes"),
			ReportAnswers:     getEnv("DYNAMO_TABLE_REPORT_ANSWERS", "report_answers"),
			Notifications:     getEnv("DYNAMO_TABLE_NOTIFICATIONS", "notifications"),
			PushSubscriptions: getEnv("DYNAMO_TABLE_PUSH_SUBSCRIPTIONS", "push_subscriptions"),
			Files:             getEnv("DYNAMO_TABLE_FILES", "files"),
		},
		S3BucketName:      getEnv("S3_BUCKET_NAME", "quorumflow-files"),
		ReportTemplateKey: getEnv("REPORT_TEMPLATE_KEY", "templates/annual_report.docx"),

		JWTPrivateKeyPath: getEnv("JWT_PRIVATE_KEY_PATH", "./private_key.pem"),
		JWTPublicKeyPath:  getEnv("JWT_PUBLIC_KEY_PATH", "./public_key.pem"),
		JWTExpiry:         time.Duration(getEnvInt("JWT_EXPIRY_DAYS", 7)) * 24 * time.Hour,
		RefreshTokenDur:   time.Duration(getEnvInt("REFRESH_TOKEN_EXPIRY_DAYS", 30)) * 24 * time.Hour,

		VAPIDPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
		VAPIDPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
		VAPIDSubscriber: getEnv("VAPID_SUBSCRIBER", "admin@quorumflow.app"),

		ReminderCronSpec: getEnv("REMINDER_CRON_SPEC", "0 11 * * *"),

		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		SMTPFrom:     getEnv("SMTP_FROM", "noreply@quorumflow.app"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		AlertEmail:   getEnv("ALERT_EMAIL", ""),

		SNSRegion:  getEnv("SNS_REGION", "us-east-1"),
		AlertPhone: getEnv("ALERT_PHONE", ""),

		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
