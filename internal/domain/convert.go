package domain

import "time"

// Baptism source tags. Labels are Spanish because they appear verbatim in the
// rendered annual report.
const (
	BaptismSourceManual    = "Manual"
	BaptismSourceAutomatic = "Automático"
)

// Convert is a manually recorded baptism.
type Convert struct {
	ConvertID   string    `json:"id" dynamodbav:"convert_id"`
	FullName    string    `json:"full_name" dynamodbav:"full_name"`
	BaptismDate time.Time `json:"baptism_date" dynamodbav:"baptism_date"`
	PhotoURLs   []string  `json:"photo_urls" dynamodbav:"photo_urls"`
	Notes       string    `json:"notes" dynamodbav:"notes"`
	CreatedAt   time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time `json:"updated" dynamodbav:"updated_at"`
}

// FutureMember is a pre-registered investigator with a scheduled baptism date.
// Once that date has passed the record is also surfaced as an automatic
// baptism, tagged BaptismSourceAutomatic.
type FutureMember struct {
	FutureMemberID string    `json:"id" dynamodbav:"future_member_id"`
	FullName       string    `json:"full_name" dynamodbav:"full_name"`
	BaptismDate    time.Time `json:"baptism_date" dynamodbav:"baptism_date"`
	PhotoURLs      []string  `json:"photo_urls" dynamodbav:"photo_urls"`
	CreatedAt      time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt      time.Time `json:"updated" dynamodbav:"updated_at"`
}

// Baptism is the read-time projection of the two source collections into one
// logical shape. It is never persisted.
type Baptism struct {
	Name      string    `json:"name"`
	Date      time.Time `json:"date"`
	Source    string    `json:"source"` // BaptismSourceManual | BaptismSourceAutomatic
	PhotoURLs []string  `json:"photo_urls"`
}

// BaptismFromConvert projects a manual baptism record into the common shape.
func BaptismFromConvert(c Convert) Baptism {
	return Baptism{
		Name:      c.FullName,
		Date:      c.BaptismDate,
		Source:    BaptismSourceManual,
		PhotoURLs: c.PhotoURLs,
	}
}

// BaptismFromFutureMember projects a future member whose baptism date has
// passed into the common shape.
func BaptismFromFutureMember(fm FutureMember) Baptism {
	return Baptism{
		Name:      fm.FullName,
		Date:      fm.BaptismDate,
		Source:    BaptismSourceAutomatic,
		PhotoURLs: fm.PhotoURLs,
	}
}

type CreateConvertRequest struct {
	FullName    string   `json:"full_name" validate:"required"`
	BaptismDate string   `json:"baptism_date" validate:"required"` // expected format: YYYY-MM-DD
	PhotoURLs   []string `json:"photo_urls" validate:"omitempty,dive,url"`
	Notes       string   `json:"notes"`
}

type UpdateConvertRequest struct {
	FullName    *string   `json:"full_name"`
	BaptismDate *string   `json:"baptism_date"` // expected format: YYYY-MM-DD
	PhotoURLs   *[]string `json:"photo_urls" validate:"omitempty,dive,url"`
	Notes       *string   `json:"notes"`
}

type CreateFutureMemberRequest struct {
	FullName    string   `json:"full_name" validate:"required"`
	BaptismDate string   `json:"baptism_date" validate:"required"` // expected format: YYYY-MM-DD
	PhotoURLs   []string `json:"photo_urls" validate:"omitempty,dive,url"`
}

type UpdateFutureMemberRequest struct {
	FullName    *string   `json:"full_name"`
	BaptismDate *string   `json:"baptism_date"` // expected format: YYYY-MM-DD
	PhotoURLs   *[]string `json:"photo_urls" validate:"omitempty,dive,url"`
}
