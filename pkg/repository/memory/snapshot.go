package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
)

type snapshotRepository struct {
	mu        sync.RWMutex
	snapshots map[string]*model.RiskSnapshot
}

func newSnapshotRepository() *snapshotRepository {
	return &snapshotRepository{
		snapshots: make(map[string]*model.RiskSnapshot),
	}
}

func copySnapshot(s *model.RiskSnapshot) *model.RiskSnapshot {
	copied := *s
	copied.Drivers = make([]model.Driver, len(s.Drivers))
	copy(copied.Drivers, s.Drivers)
	return &copied
}

// Put always inserts: snapshots are append-only facts and a second
// computation for the same scope and window produces a second record.
func (r *snapshotRepository) Put(ctx context.Context, snapshot *model.RiskSnapshot) (*model.RiskSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copySnapshot(snapshot)
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	r.snapshots[created.ID] = created
	return copySnapshot(created), nil
}

func (r *snapshotRepository) ListByOrg(ctx context.Context, orgID types.OrgID) ([]*model.RiskSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*model.RiskSnapshot
	for _, snapshot := range r.snapshots {
		if snapshot.OrgID != orgID {
			continue
		}
		matched = append(matched, copySnapshot(snapshot))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}

func (r *snapshotRepository) Latest(ctx context.Context, scope types.Scope) (*model.RiskSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.RiskSnapshot
	for _, snapshot := range r.snapshots {
		if snapshot.OrgID != scope.OrgID || snapshot.ScopeType != scope.Type() || snapshot.ScopeID != scope.ID() {
			continue
		}
		if latest == nil || snapshot.CreatedAt.After(latest.CreatedAt) {
			latest = snapshot
		}
	}
	if latest == nil {
		return nil, goerr.Wrap(ErrNotFound, "snapshot not found",
			goerr.V("org_id", scope.OrgID), goerr.V("scope_id", scope.ID()))
	}

	return copySnapshot(latest), nil
}
