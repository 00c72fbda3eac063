package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
)

type organizationDoc struct {
	ID             string    `firestore:"id"`
	Name           string    `firestore:"name"`
	StressScaleMin float64   `firestore:"stress_scale_min"`
	StressScaleMax float64   `firestore:"stress_scale_max"`
	MinSampleSize  int       `firestore:"min_sample_size"`
	Teams          []string  `firestore:"teams"`
	CreatedAt      time.Time `firestore:"created_at"`
	UpdatedAt      time.Time `firestore:"updated_at"`
}

func toOrganizationDoc(o *model.Organization) *organizationDoc {
	teams := make([]string, len(o.Teams))
	for i, teamID := range o.Teams {
		teams[i] = teamID.String()
	}
	return &organizationDoc{
		ID:             o.ID.String(),
		Name:           o.Name,
		StressScaleMin: o.StressScaleMin,
		StressScaleMax: o.StressScaleMax,
		MinSampleSize:  o.MinSampleSize,
		Teams:          teams,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}

func (d *organizationDoc) toModel() *model.Organization {
	teams := make([]types.TeamID, len(d.Teams))
	for i, teamID := range d.Teams {
		teams[i] = types.TeamID(teamID)
	}
	return &model.Organization{
		ID:             types.OrgID(d.ID),
		Name:           d.Name,
		StressScaleMin: d.StressScaleMin,
		StressScaleMax: d.StressScaleMax,
		MinSampleSize:  d.MinSampleSize,
		Teams:          teams,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

type organizationRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newOrganizationRepository(client *firestore.Client) *organizationRepository {
	return &organizationRepository{client: client}
}

func (r *organizationRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_organizations"
	}
	return "organizations"
}

func (r *organizationRepository) Get(ctx context.Context, id types.OrgID) (*model.Organization, error) {
	doc, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "organization not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get organization", goerr.V("id", id))
	}

	var orgDoc organizationDoc
	if err := doc.DataTo(&orgDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode organization", goerr.V("id", id))
	}

	return orgDoc.toModel(), nil
}

func (r *organizationRepository) Put(ctx context.Context, org *model.Organization) error {
	if err := org.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store organization")
	}

	stored := *org
	now := time.Now().UTC()
	if existing, err := r.Get(ctx, org.ID); err == nil {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	_, err := r.client.Collection(r.collection()).Doc(org.ID.String()).Set(ctx, toOrganizationDoc(&stored))
	if err != nil {
		return goerr.Wrap(err, "failed to store organization", goerr.V("id", org.ID))
	}
	return nil
}

func (r *organizationRepository) List(ctx context.Context) ([]*model.Organization, error) {
	iter := r.client.Collection(r.collection()).OrderBy("id", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	var orgs []*model.Organization
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate organizations")
		}

		var orgDoc organizationDoc
		if err := doc.DataTo(&orgDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode organization")
		}
		orgs = append(orgs, orgDoc.toModel())
	}

	return orgs, nil
}
