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

type driverDoc struct {
	Key          string  `firestore:"key"`
	Label        string  `firestore:"label"`
	Contribution float64 `firestore:"contribution"`
}

type snapshotDoc struct {
	ID             string      `firestore:"id"`
	OrgID          string      `firestore:"org_id"`
	ScopeType      string      `firestore:"scope_type"`
	ScopeID        string      `firestore:"scope_id"`
	WindowStart    time.Time   `firestore:"window_start"`
	WindowEnd      time.Time   `firestore:"window_end"`
	RiskScore      int         `firestore:"risk_score"`
	StressLevel    string      `firestore:"stress_level"`
	Confidence     float64     `firestore:"confidence"`
	Drivers        []driverDoc `firestore:"drivers"`
	Participation  float64     `firestore:"participation"`
	AvgStressIndex float64     `firestore:"avg_stress_index"`
	CreatedAt      time.Time   `firestore:"created_at"`
}

func toSnapshotDoc(s *model.RiskSnapshot) *snapshotDoc {
	drivers := make([]driverDoc, len(s.Drivers))
	for i, d := range s.Drivers {
		drivers[i] = driverDoc{Key: d.Key, Label: d.Label, Contribution: d.Contribution}
	}
	return &snapshotDoc{
		ID:             s.ID,
		OrgID:          s.OrgID.String(),
		ScopeType:      s.ScopeType.String(),
		ScopeID:        s.ScopeID,
		WindowStart:    s.WindowStart,
		WindowEnd:      s.WindowEnd,
		RiskScore:      s.RiskScore,
		StressLevel:    s.StressLevel.String(),
		Confidence:     s.Confidence,
		Drivers:        drivers,
		Participation:  s.Participation,
		AvgStressIndex: s.AvgStressIndex,
		CreatedAt:      s.CreatedAt,
	}
}

func (d *snapshotDoc) toModel() *model.RiskSnapshot {
	drivers := make([]model.Driver, len(d.Drivers))
	for i, drv := range d.Drivers {
		drivers[i] = model.Driver{Key: drv.Key, Label: drv.Label, Contribution: drv.Contribution}
	}
	return &model.RiskSnapshot{
		ID:             d.ID,
		OrgID:          types.OrgID(d.OrgID),
		ScopeType:      types.ScopeType(d.ScopeType),
		ScopeID:        d.ScopeID,
		WindowStart:    d.WindowStart,
		WindowEnd:      d.WindowEnd,
		RiskScore:      d.RiskScore,
		StressLevel:    types.StressLevel(d.StressLevel),
		Confidence:     d.Confidence,
		Drivers:        drivers,
		Participation:  d.Participation,
		AvgStressIndex: d.AvgStressIndex,
		CreatedAt:      d.CreatedAt,
	}
}

type snapshotRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newSnapshotRepository(client *firestore.Client) *snapshotRepository {
	return &snapshotRepository{client: client}
}

func (r *snapshotRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risk_snapshots"
	}
	return "risk_snapshots"
}

func (r *snapshotRepository) Put(ctx context.Context, snapshot *model.RiskSnapshot) (*model.RiskSnapshot, error) {
	created := *snapshot
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	_, err := r.client.Collection(r.collection()).Doc(created.ID).Set(ctx, toSnapshotDoc(&created))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to store snapshot",
			goerr.V("org_id", created.OrgID), goerr.V("scope_id", created.ScopeID))
	}
	return &created, nil
}

func (r *snapshotRepository) ListByOrg(ctx context.Context, orgID types.OrgID) ([]*model.RiskSnapshot, error) {
	iter := r.client.Collection(r.collection()).
		Where("org_id", "==", orgID.String()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var snapshots []*model.RiskSnapshot
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate snapshots", goerr.V("org_id", orgID))
		}

		var snapDoc snapshotDoc
		if err := doc.DataTo(&snapDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode snapshot")
		}
		snapshots = append(snapshots, snapDoc.toModel())
	}

	return snapshots, nil
}

func (r *snapshotRepository) Latest(ctx context.Context, scope types.Scope) (*model.RiskSnapshot, error) {
	iter := r.client.Collection(r.collection()).
		Where("org_id", "==", scope.OrgID.String()).
		Where("scope_type", "==", scope.Type().String()).
		Where("scope_id", "==", scope.ID()).
		OrderBy("created_at", firestore.Desc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err == iterator.Done {
		return nil, goerr.Wrap(ErrNotFound, "snapshot not found",
			goerr.V("org_id", scope.OrgID), goerr.V("scope_id", scope.ID()))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to query latest snapshot",
			goerr.V("org_id", scope.OrgID), goerr.V("scope_id", scope.ID()))
	}

	var snapDoc snapshotDoc
	if err := doc.DataTo(&snapDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode snapshot")
	}

	return snapDoc.toModel(), nil
}
