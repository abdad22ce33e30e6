package domain

import "time"

// MinisteredFamily is a family assigned to a companionship. UrgentNeed keeps
// generating a daily alert for as long as it stays set.
type MinisteredFamily struct {
	Name         string `json:"name" dynamodbav:"name"`
	UrgentNeed   bool   `json:"urgent_need" dynamodbav:"urgent_need"`
	Visited      bool   `json:"visited" dynamodbav:"visited"`
	Observations string `json:"observations" dynamodbav:"observations"`
}

// Companionship is a ministering companionship and its assigned families.
type Companionship struct {
	CompanionshipID string             `json:"id" dynamodbav:"companionship_id"`
	Companions      []string           `json:"companions" dynamodbav:"companions"`
	Families        []MinisteredFamily `json:"families" dynamodbav:"families"`
	CreatedAt       time.Time          `json:"created" dynamodbav:"created_at"`
	UpdatedAt       time.Time          `json:"updated" dynamodbav:"updated_at"`
}

type FamilyInput struct {
	Name         string `json:"name" validate:"required"`
	UrgentNeed   bool   `json:"urgent_need"`
	Visited      bool   `json:"visited"`
	Observations string `json:"observations"`
}

type CreateCompanionshipRequest struct {
	Companions []string      `json:"companions" validate:"required,min=1,dive,required"`
	Families   []FamilyInput `json:"families" validate:"dive"`
}

type UpdateCompanionshipRequest struct {
	Companions *[]string      `json:"companions" validate:"omitempty,min=1,dive,required"`
	Families   *[]FamilyInput `json:"families" validate:"omitempty,dive"`
}
