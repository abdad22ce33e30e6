package domain

import "time"

// Member is a quorum roster entry. Birthday drives the birthday reminder job;
// only month and day are significant for that purpose.
type Member struct {
	MemberID    string     `json:"id" dynamodbav:"member_id"`
	FullName    string     `json:"full_name" dynamodbav:"full_name"`
	Phone       *string    `json:"phone" dynamodbav:"phone"`
	Email       *string    `json:"email" dynamodbav:"email"`
	Address     *string    `json:"address" dynamodbav:"address"`
	Birthday    *time.Time `json:"birthday" dynamodbav:"birthday"`
	Priesthood  string     `json:"priesthood" dynamodbav:"priesthood"`
	MovedInAt   *time.Time `json:"moved_in_at" dynamodbav:"moved_in_at"`
	Active      bool       `json:"active" dynamodbav:"active"`
	Observation string     `json:"observation" dynamodbav:"observation"`
	CreatedAt   time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type CreateMemberRequest struct {
	FullName    string  `json:"full_name" validate:"required"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Address     *string `json:"address"`
	Birthday    string  `json:"birthday"` // expected format: YYYY-MM-DD
	Priesthood  string  `json:"priesthood"`
	MovedInAt   string  `json:"moved_in_at"` // expected format: YYYY-MM-DD
	Observation string  `json:"observation"`
}

type UpdateMemberRequest struct {
	FullName    *string `json:"full_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Address     *string `json:"address"`
	Birthday    *string `json:"birthday"` // expected format: YYYY-MM-DD
	Priesthood  *string `json:"priesthood"`
	MovedInAt   *string `json:"moved_in_at"`
	Active      *bool   `json:"active"`
	Observation *string `json:"observation"`
}
