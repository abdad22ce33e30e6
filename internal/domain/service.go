package domain

import "time"

// Service is a dated quorum service project. Its date drives the 7-day and
// 1-day reminder notifications.
type Service struct {
	ServiceID   string    `json:"id" dynamodbav:"service_id"`
	Name        string    `json:"name" dynamodbav:"name"`
	Date        time.Time `json:"date" dynamodbav:"date"`
	Location    string    `json:"location" dynamodbav:"location"`
	Description string    `json:"description" dynamodbav:"description"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateServiceRequest struct {
	Name        string `json:"name" validate:"required"`
	Date        string `json:"date" validate:"required"` // expected format: YYYY-MM-DD
	Location    string `json:"location"`
	Description string `json:"description"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"name"`
	Date        *string `json:"date"` // expected format: YYYY-MM-DD
	Location    *string `json:"location"`
	Description *string `json:"description"`
}
