package domain

import "time"

// CouncilNote is an agenda item raised in a quorum council meeting.
type CouncilNote struct {
	NoteID    string    `json:"id" dynamodbav:"note_id"`
	Date      time.Time `json:"date" dynamodbav:"date"`
	Topic     string    `json:"topic" dynamodbav:"topic"`
	Notes     string    `json:"notes" dynamodbav:"notes"`
	Resolved  bool      `json:"resolved" dynamodbav:"resolved"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

type CreateCouncilNoteRequest struct {
	Date  string `json:"date" validate:"required"` // expected format: YYYY-MM-DD
	Topic string `json:"topic" validate:"required"`
	Notes string `json:"notes"`
}

type UpdateCouncilNoteRequest struct {
	Date     *string `json:"date"` // expected format: YYYY-MM-DD
	Topic    *string `json:"topic"`
	Notes    *string `json:"notes"`
	Resolved *bool   `json:"resolved"`
}
