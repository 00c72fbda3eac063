package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
)

type organizationRepository struct {
	mu   sync.RWMutex
	orgs map[types.OrgID]*model.Organization
}

func newOrganizationRepository() *organizationRepository {
	return &organizationRepository{
		orgs: make(map[types.OrgID]*model.Organization),
	}
}

func copyOrganization(o *model.Organization) *model.Organization {
	copied := *o
	copied.Teams = make([]types.TeamID, len(o.Teams))
	copy(copied.Teams, o.Teams)
	return &copied
}

func (r *organizationRepository) Get(ctx context.Context, id types.OrgID) (*model.Organization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	org, exists := r.orgs[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "organization not found", goerr.V("id", id))
	}

	// Return a copy to prevent external modification
	return copyOrganization(org), nil
}

func (r *organizationRepository) Put(ctx context.Context, org *model.Organization) error {
	if err := org.Validate(); err != nil {
		return goerr.Wrap(err, "failed to store organization")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := copyOrganization(org)
	now := time.Now().UTC()
	if existing, exists := r.orgs[org.ID]; exists {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}
	stored.UpdatedAt = now

	r.orgs[org.ID] = stored
	return nil
}

func (r *organizationRepository) List(ctx context.Context) ([]*model.Organization, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orgs := make([]*model.Organization, 0, len(r.orgs))
	for _, org := range r.orgs {
		orgs = append(orgs, copyOrganization(org))
	}
	sort.Slice(orgs, func(i, j int) bool {
		return orgs[i].ID < orgs[j].ID
	})

	return orgs, nil
}
