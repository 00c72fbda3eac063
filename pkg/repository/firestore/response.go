package firestore

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
)

type answerDoc struct {
	QuestionID string   `firestore:"question_id"`
	Value      *float64 `firestore:"value"`
	ScaleMin   float64  `firestore:"scale_min"`
	ScaleMax   float64  `firestore:"scale_max"`
}

type responseDoc struct {
	ID          string      `firestore:"id"`
	OrgID       string      `firestore:"org_id"`
	TeamID      string      `firestore:"team_id"`
	Answers     []answerDoc `firestore:"answers"`
	SubmittedAt time.Time   `firestore:"submitted_at"`
}

func toResponseDoc(r *model.SurveyResponse) *responseDoc {
	answers := make([]answerDoc, len(r.Answers))
	for i, a := range r.Answers {
		answers[i] = answerDoc{
			QuestionID: a.QuestionID,
			Value:      a.Value,
			ScaleMin:   a.ScaleMin,
			ScaleMax:   a.ScaleMax,
		}
	}
	return &responseDoc{
		ID:          r.ID,
		OrgID:       r.OrgID.String(),
		TeamID:      r.TeamID.String(),
		Answers:     answers,
		SubmittedAt: r.SubmittedAt,
	}
}

func (d *responseDoc) toModel() *model.SurveyResponse {
	answers := make([]model.Answer, len(d.Answers))
	for i, a := range d.Answers {
		answers[i] = model.Answer{
			QuestionID: a.QuestionID,
			Value:      a.Value,
			ScaleMin:   a.ScaleMin,
			ScaleMax:   a.ScaleMax,
		}
	}
	return &model.SurveyResponse{
		ID:          d.ID,
		OrgID:       types.OrgID(d.OrgID),
		TeamID:      types.TeamID(d.TeamID),
		Answers:     answers,
		SubmittedAt: d.SubmittedAt,
	}
}

type responseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newResponseRepository(client *firestore.Client) *responseRepository {
	return &responseRepository{client: client}
}

func (r *responseRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_responses"
	}
	return "responses"
}

func (r *responseRepository) Put(ctx context.Context, response *model.SurveyResponse) error {
	if response.SubmittedAt.IsZero() {
		return goerr.New("response submission time is required")
	}

	stored := toResponseDoc(response)
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	_, err := r.client.Collection(r.collection()).Doc(stored.ID).Set(ctx, stored)
	if err != nil {
		return goerr.Wrap(err, "failed to store response", goerr.V("id", stored.ID))
	}
	return nil
}

// ListByScope queries on org and window; the team restriction is
// applied client-side to keep the composite index requirement down to
// (org_id, submitted_at).
func (r *responseRepository) ListByScope(ctx context.Context, scope types.Scope, window model.Window) ([]*model.SurveyResponse, error) {
	query := r.client.Collection(r.collection()).
		Where("org_id", "==", scope.OrgID.String()).
		Where("submitted_at", ">=", window.Start).
		Where("submitted_at", "<", window.End)

	iter := query.Documents(ctx)
	defer iter.Stop()

	var responses []*model.SurveyResponse
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate responses",
				goerr.V("org_id", scope.OrgID), goerr.V("scope_id", scope.ID()))
		}

		var respDoc responseDoc
		if err := doc.DataTo(&respDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode response")
		}

		response := respDoc.toModel()
		if scope.Type() == types.ScopeTypeTeam && response.TeamID != scope.TeamID {
			continue
		}
		responses = append(responses, response)
	}

	sort.Slice(responses, func(i, j int) bool {
		if responses[i].SubmittedAt.Equal(responses[j].SubmittedAt) {
			return responses[i].ID < responses[j].ID
		}
		return responses[i].SubmittedAt.Before(responses[j].SubmittedAt)
	})

	return responses, nil
}
