package interfaces

import (
	"context"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
)

// ResponseRepository reads survey responses written by the upstream
// survey subsystem. The engine never mutates responses.
type ResponseRepository interface {
	Put(ctx context.Context, response *model.SurveyResponse) error
	// ListByScope returns responses submitted within the half-open
	// window for the scope. Organization scopes include responses from
	// every team; team scopes are restricted to that team.
	ListByScope(ctx context.Context, scope types.Scope, window model.Window) ([]*model.SurveyResponse, error)
}

// InviteRepository counts eligible respondents per scope and window,
// the denominator of the participation rate.
type InviteRepository interface {
	Put(ctx context.Context, invite *model.Invite) error
	CountByScope(ctx context.Context, scope types.Scope, window model.Window) (int, error)
}
