package model

import (
	"time"

	"github.com/inverness4444/stresssense/pkg/domain/types"
)

// Answer is a single scale-rated answer within a survey response.
// Value is nil when the respondent skipped the question. The scale
// bounds are carried per answer because questions may use different
// rating scales within one survey.
type Answer struct {
	QuestionID string
	Value      *float64
	ScaleMin   float64
	ScaleMax   float64
}

// SurveyResponse is one submitted set of answers for a scope.
// Responses are owned by the upstream survey subsystem and are
// immutable once created; this engine only reads them.
type SurveyResponse struct {
	ID          string
	OrgID       types.OrgID
	TeamID      types.TeamID // empty when the responder has no team assignment
	Answers     []Answer
	SubmittedAt time.Time
}

// Invite records that one eligible respondent was invited for a scope.
// Invite counts form the participation denominator.
type Invite struct {
	ID        string
	OrgID     types.OrgID
	TeamID    types.TeamID
	InvitedAt time.Time
}
