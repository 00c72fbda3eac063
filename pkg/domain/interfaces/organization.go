package interfaces

import (
	"context"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
)

// OrganizationRepository manages organization configuration records
type OrganizationRepository interface {
	// Get returns the organization, or a NotFound error when the ID is unknown
	Get(ctx context.Context, id types.OrgID) (*model.Organization, error)
	Put(ctx context.Context, org *model.Organization) error
	List(ctx context.Context) ([]*model.Organization, error)
}
