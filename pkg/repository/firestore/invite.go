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

type inviteDoc struct {
	ID        string    `firestore:"id"`
	OrgID     string    `firestore:"org_id"`
	TeamID    string    `firestore:"team_id"`
	InvitedAt time.Time `firestore:"invited_at"`
}

type inviteRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newInviteRepository(client *firestore.Client) *inviteRepository {
	return &inviteRepository{client: client}
}

func (r *inviteRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_invites"
	}
	return "invites"
}

func (r *inviteRepository) Put(ctx context.Context, invite *model.Invite) error {
	if invite.InvitedAt.IsZero() {
		return goerr.New("invite time is required")
	}

	stored := &inviteDoc{
		ID:        invite.ID,
		OrgID:     invite.OrgID.String(),
		TeamID:    invite.TeamID.String(),
		InvitedAt: invite.InvitedAt,
	}
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	_, err := r.client.Collection(r.collection()).Doc(stored.ID).Set(ctx, stored)
	if err != nil {
		return goerr.Wrap(err, "failed to store invite", goerr.V("id", stored.ID))
	}
	return nil
}

func (r *inviteRepository) CountByScope(ctx context.Context, scope types.Scope, window model.Window) (int, error) {
	query := r.client.Collection(r.collection()).
		Where("org_id", "==", scope.OrgID.String()).
		Where("invited_at", ">=", window.Start).
		Where("invited_at", "<", window.End)

	iter := query.Documents(ctx)
	defer iter.Stop()

	count := 0
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to iterate invites",
				goerr.V("org_id", scope.OrgID), goerr.V("scope_id", scope.ID()))
		}

		var invDoc inviteDoc
		if err := doc.DataTo(&invDoc); err != nil {
			return 0, goerr.Wrap(err, "failed to decode invite")
		}
		if scope.Type() == types.ScopeTypeTeam && types.TeamID(invDoc.TeamID) != scope.TeamID {
			continue
		}
		count++
	}

	return count, nil
}
