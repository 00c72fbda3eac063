package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
)

type eventDoc struct {
	ID                  string    `firestore:"id"`
	OrgID               string    `firestore:"org_id"`
	ScopeType           string    `firestore:"scope_type"`
	ScopeID             string    `firestore:"scope_id"`
	Metric              string    `firestore:"metric"`
	WindowStart         time.Time `firestore:"window_start"`
	WindowEnd           time.Time `firestore:"window_end"`
	BaselineWindowStart time.Time `firestore:"baseline_window_start"`
	BaselineWindowEnd   time.Time `firestore:"baseline_window_end"`
	ChangeDirection     string    `firestore:"change_direction"`
	ChangeMagnitude     float64   `firestore:"change_magnitude"`
	Severity            string    `firestore:"severity"`
	CurrentValue        float64   `firestore:"current_value"`
	BaselineValue       float64   `firestore:"baseline_value"`
	AbsoluteChange      float64   `firestore:"absolute_change"`
	CreatedAt           time.Time `firestore:"created_at"`
}

func toEventDoc(e *model.AnomalyEvent) *eventDoc {
	return &eventDoc{
		ID:                  e.ID,
		OrgID:               e.OrgID.String(),
		ScopeType:           e.ScopeType.String(),
		ScopeID:             e.ScopeID,
		Metric:              e.Metric.String(),
		WindowStart:         e.WindowStart,
		WindowEnd:           e.WindowEnd,
		BaselineWindowStart: e.BaselineWindowStart,
		BaselineWindowEnd:   e.BaselineWindowEnd,
		ChangeDirection:     e.ChangeDirection.String(),
		ChangeMagnitude:     e.ChangeMagnitude,
		Severity:            e.Severity.String(),
		CurrentValue:        e.Details.CurrentValue,
		BaselineValue:       e.Details.BaselineValue,
		AbsoluteChange:      e.Details.AbsoluteChange,
		CreatedAt:           e.CreatedAt,
	}
}

func (d *eventDoc) toModel() *model.AnomalyEvent {
	return &model.AnomalyEvent{
		ID:                  d.ID,
		OrgID:               types.OrgID(d.OrgID),
		ScopeType:           types.ScopeType(d.ScopeType),
		ScopeID:             d.ScopeID,
		Metric:              types.AnomalyMetric(d.Metric),
		WindowStart:         d.WindowStart,
		WindowEnd:           d.WindowEnd,
		BaselineWindowStart: d.BaselineWindowStart,
		BaselineWindowEnd:   d.BaselineWindowEnd,
		ChangeDirection:     types.ChangeDirection(d.ChangeDirection),
		ChangeMagnitude:     d.ChangeMagnitude,
		Severity:            types.AnomalySeverity(d.Severity),
		Details: model.AnomalyDetails{
			CurrentValue:   d.CurrentValue,
			BaselineValue:  d.BaselineValue,
			AbsoluteChange: d.AbsoluteChange,
		},
		CreatedAt: d.CreatedAt,
	}
}

type eventRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEventRepository(client *firestore.Client) *eventRepository {
	return &eventRepository{client: client}
}

func (r *eventRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_anomaly_events"
	}
	return "anomaly_events"
}

func (r *eventRepository) Put(ctx context.Context, event *model.AnomalyEvent) (*model.AnomalyEvent, error) {
	created := *event
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	_, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, toEventDoc(&created))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store anomaly event",
			goerr.V("org_id", created.OrgID), goerr.V("scope_id", created.ScopeID))
	}
	return &created, nil
}

func (r *eventRepository) ListByOrg(ctx context.Context, orgID types.OrgID) ([]*model.AnomalyEvent, error) {
	iter := r.client.Collection(r.collection()).
		Where("org_id", "==", orgID.String()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var events []*model.AnomalyEvent
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate anomaly events", goerr.V("org_id", orgID))
		}

		var evDoc eventDoc
		if err := doc.DataTo(&evDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode anomaly event")
		}
		events = append(events, evDoc.toModel())
	}

	return events, nil
}
