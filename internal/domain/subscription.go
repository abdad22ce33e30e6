package domain

import "time"

// PushSubscription pairs a user with a serialized browser push subscription
// (endpoint plus encryption keys).
type PushSubscription struct {
	SubscriptionID string    `json:"id" dynamodbav:"subscription_id"`
	UserID         string    `json:"user_id" dynamodbav:"user_id"`
	Endpoint       string    `json:"endpoint" dynamodbav:"endpoint"`
	P256dh         string    `json:"p256dh" dynamodbav:"p256dh"`
	Auth           string    `json:"auth" dynamodbav:"auth"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
}

type RegisterSubscriptionRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	P256dh   string `json:"p256dh" validate:"required"`
	Auth     string `json:"auth" validate:"required"`
}
