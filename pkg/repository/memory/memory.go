// Package memory provides an in-memory repository backend used for
// development and as the test fixture for the scoring engine.
package memory

import (
	"github.com/inverness4444/stresssense/pkg/domain/interfaces"
)

// ErrNotFound is the backend's not-found sentinel
var ErrNotFound = interfaces.ErrNotFound

type Memory struct {
	organization *organizationRepository
	response     *responseRepository
	invite       *inviteRepository
	snapshot     *snapshotRepository
	event        *eventRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		organization: newOrganizationRepository(),
		response:     newResponseRepository(),
		invite:       newInviteRepository(),
		snapshot:     newSnapshotRepository(),
		event:        newEventRepository(),
	}
}

func (m *Memory) Organization() interfaces.OrganizationRepository {
	return m.organization
}

func (m *Memory) Response() interfaces.ResponseRepository {
	return m.response
}

func (m *Memory) Invite() interfaces.InviteRepository {
	return m.invite
}

func (m *Memory) Snapshot() interfaces.SnapshotRepository {
	return m.snapshot
}

func (m *Memory) Event() interfaces.EventRepository {
	return m.event
}

func (m *Memory) Close() error {
	return nil
}
