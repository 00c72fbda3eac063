package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
)

type inviteRepository struct {
	mu      sync.RWMutex
	invites map[string]*model.Invite
}

func newInviteRepository() *inviteRepository {
	return &inviteRepository{
		invites: make(map[string]*model.Invite),
	}
}

func (r *inviteRepository) Put(ctx context.Context, invite *model.Invite) error {
	if invite.InvitedAt.IsZero() {
		return goerr.New("invite time is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *invite
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	r.invites[stored.ID] = &stored
	return nil
}

func (r *inviteRepository) CountByScope(ctx context.Context, scope types.Scope, window model.Window) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, invite := range r.invites {
		if !scopeMatches(scope, invite.OrgID, invite.TeamID) {
			continue
		}
		if !window.Contains(invite.InvitedAt) {
			continue
		}
		count++
	}

	return count, nil
}
