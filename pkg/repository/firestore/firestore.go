// Package firestore provides the Firestore repository backend. Region
// routing happens above this package: callers construct one client per
// organization region and hand the engine an already-resolved handle.
package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/inverness4444/stresssense/pkg/domain/interfaces"
)

// ErrNotFound is the backend's not-found sentinel
var ErrNotFound = interfaces.ErrNotFound

type Firestore struct {
	client       *firestore.Client
	organization *organizationRepository
	response     *responseRepository
	invite       *inviteRepository
	snapshot     *snapshotRepository
	event        *eventRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces every collection, used to share one
// database between environments.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.organization.collectionPrefix = prefix
		f.response.collectionPrefix = prefix
		f.invite.collectionPrefix = prefix
		f.snapshot.collectionPrefix = prefix
		f.event.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:       client,
		organization: newOrganizationRepository(client),
		response:     newResponseRepository(client),
		invite:       newInviteRepository(client),
		snapshot:     newSnapshotRepository(client),
		event:        newEventRepository(client),
	}
	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Organization() interfaces.OrganizationRepository {
	return f.organization
}

func (f *Firestore) Response() interfaces.ResponseRepository {
	return f.response
}

func (f *Firestore) Invite() interfaces.InviteRepository {
	return f.invite
}

func (f *Firestore) Snapshot() interfaces.SnapshotRepository {
	return f.snapshot
}

func (f *Firestore) Event() interfaces.EventRepository {
	return f.event
}

func (f *Firestore) Close() error {
	return f.client.Close()
}
