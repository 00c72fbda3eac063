package interfaces

import "io"

// Repository defines the interface for data persistence. Region
// routing happens above this interface: the engine always receives
// an already-resolved repository for the organization it works on.
type Repository interface {
	Organization() OrganizationRepository
	Response() ResponseRepository
	Invite() InviteRepository
	Snapshot() SnapshotRepository
	Event() EventRepository

	io.Closer
}
