package domain

import "time"

// NotificationPayload is the transient (title, body) pair produced by the
// reminder job. It is never persisted as its own entity; it is materialised as
// one AppNotification per user and delivered ephemerally over web push.
type NotificationPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// AppNotification is the in-app mirror of a delivered notification.
type AppNotification struct {
	NotificationID string    `json:"id" dynamodbav:"notification_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	Title          string    `json:"title" dynamodbav:"title"`
	Body           string    `json:"body" dynamodbav:"body"`
	Read           int       `json:"read" dynamodbav:"read"` // 0 = unread, 1 = read
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}
