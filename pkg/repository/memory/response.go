package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
)

type responseRepository struct {
	mu        sync.RWMutex
	responses map[string]*model.SurveyResponse
}

func newResponseRepository() *responseRepository {
	return &responseRepository{
		responses: make(map[string]*model.SurveyResponse),
	}
}

func copyResponse(r *model.SurveyResponse) *model.SurveyResponse {
	copied := *r
	copied.Answers = make([]model.Answer, len(r.Answers))
	for i, answer := range r.Answers {
		copied.Answers[i] = answer
		if answer.Value != nil {
			v := *answer.Value
			copied.Answers[i].Value = &v
		}
	}
	return &copied
}

// scopeMatches reports whether a record for (orgID, teamID) belongs to
// the scope: organization scopes cover every team, team scopes only
// their own.
func scopeMatches(scope types.Scope, orgID types.OrgID, teamID types.TeamID) bool {
	if orgID != scope.OrgID {
		return false
	}
	if scope.Type() == types.ScopeTypeTeam {
		return teamID == scope.TeamID
	}
	return true
}

func (r *responseRepository) Put(ctx context.Context, response *model.SurveyResponse) error {
	if response.SubmittedAt.IsZero() {
		return goerr.New("response submission time is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyResponse(response)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	r.responses[stored.ID] = stored
	return nil
}

func (r *responseRepository) ListByScope(ctx context.Context, scope types.Scope, window model.Window) ([]*model.SurveyResponse, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*model.SurveyResponse
	for _, response := range r.responses {
		if !scopeMatches(scope, response.OrgID, response.TeamID) {
			continue
		}
		if !window.Contains(response.SubmittedAt) {
			continue
		}
		matched = append(matched, copyResponse(response))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].SubmittedAt.Equal(matched[j].SubmittedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].SubmittedAt.Before(matched[j].SubmittedAt)
	})

	return matched, nil
}
