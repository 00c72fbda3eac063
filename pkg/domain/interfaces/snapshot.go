package interfaces

import (
	"context"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
)

// SnapshotRepository persists risk snapshots. Snapshots are
// append-only: Put always inserts, never updates.
type SnapshotRepository interface {
	Put(ctx context.Context, snapshot *model.RiskSnapshot) (*model.RiskSnapshot, error)
	ListByOrg(ctx context.Context, orgID types.OrgID) ([]*model.RiskSnapshot, error)
	// Latest returns the most recently created snapshot for the scope,
	// or a NotFound error when none has been computed yet.
	Latest(ctx context.Context, scope types.Scope) (*model.RiskSnapshot, error)
}

// EventRepository persists anomaly events, append-only.
type EventRepository interface {
	Put(ctx context.Context, event *model.AnomalyEvent) (*model.AnomalyEvent, error)
	ListByOrg(ctx context.Context, orgID types.OrgID) ([]*model.AnomalyEvent, error)
}
