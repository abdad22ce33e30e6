package domain

import "time"

// Activity is a quorum activity. The optional narrative fields (Context,
// Learning, AdditionalText) are appended to the description when the annual
// report is rendered.
type Activity struct {
	ActivityID     string    `json:"id" dynamodbav:"activity_id"`
	Title          string    `json:"title" dynamodbav:"title"`
	Date           time.Time `json:"date" dynamodbav:"date"`
	Time           string    `json:"time" dynamodbav:"time"` // free-form, e.g. "19:30"
	Description    string    `json:"description" dynamodbav:"description"`
	Location       string    `json:"location" dynamodbav:"location"`
	Context        string    `json:"context" dynamodbav:"context"`
	Learning       string    `json:"learning" dynamodbav:"learning"`
	AdditionalText string    `json:"additional_text" dynamodbav:"additional_text"`
	ImageURLs      []string  `json:"image_urls" dynamodbav:"image_urls"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateActivityRequest struct {
	Title          string   `json:"title" validate:"required"`
	Date           string   `json:"date" validate:"required"` // expected format: YYYY-MM-DD
	Time           string   `json:"time"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	Context        string   `json:"context"`
	Learning       string   `json:"learning"`
	AdditionalText string   `json:"additional_text"`
	ImageURLs      []string `json:"image_urls" validate:"omitempty,dive,url"`
}

type UpdateActivityRequest struct {
	Title          *string   `json:"title"`
	Date           *string   `json:"date"` // expected format: YYYY-MM-DD
	Time           *string   `json:"time"`
	Description    *string   `json:"description"`
	Location       *string   `json:"location"`
	Context        *string   `json:"context"`
	Learning       *string   `json:"learning"`
	AdditionalText *string   `json:"additional_text"`
	ImageURLs      *[]string `json:"image_urls" validate:"omitempty,dive,url"`
}
