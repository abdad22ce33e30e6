package http

import (
	"github.com/quorumflow-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/quorumflow-api/internal/infrastructure/jwt"
	s3infra "github.com/quorumflow-api/internal/infrastructure/s3"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	UserRepo         *dynamo.UserRepo
	SessionRepo      *dynamo.SessionRepo
	MemberRepo       *dynamo.MemberRepo
	ActivityRepo     *dynamo.ActivityRepo
	ConvertRepo      *dynamo.ConvertRepo
	FutureMemberRepo *dynamo.FutureMemberRepo
	CompanionRepo    *dynamo.CompanionshipRepo
	ServiceRepo      *dynamo.ServiceRepo
	CouncilRepo      *dynamo.CouncilNoteRepo
	ReportRepo       *dynamo.ReportAnswersRepo
	NotificationRepo *dynamo.NotificationRepo
	SubscriptionRepo *dynamo.SubscriptionRepo
	FileRepo         *dynamo.FileRepo
	S3Store          *s3infra.Store
	JWTProvider      *jwtinfra.Provider
}
