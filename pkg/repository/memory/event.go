package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
)

type eventRepository struct {
	mu     sync.RWMutex
	events map[string]*model.AnomalyEvent
}

func newEventRepository() *eventRepository {
	return &eventRepository{
		events: make(map[string]*model.AnomalyEvent),
	}
}

func copyEvent(e *model.AnomalyEvent) *model.AnomalyEvent {
	copied := *e
	return &copied
}

func (r *eventRepository) Put(ctx context.Context, event *model.AnomalyEvent) (*model.AnomalyEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := copyEvent(event)
	created.ID = uuid.NewString()
	created.CreatedAt = time.Now().UTC()

	r.events[created.ID] = created
	return copyEvent(created), nil
}

func (r *eventRepository) ListByOrg(ctx context.Context, orgID types.OrgID) ([]*model.AnomalyEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*model.AnomalyEvent
	for _, event := range r.events {
		if event.OrgID != orgID {
			continue
		}
		matched = append(matched, copyEvent(event))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID < matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	return matched, nil
}
