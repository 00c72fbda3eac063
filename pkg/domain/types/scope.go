package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

var idPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// OrgID represents a unique identifier for an organization
type OrgID string

// Validate checks if the OrgID is valid
func (o OrgID) Validate() error {
	if o == "" {
		return goerr.New("organization ID cannot be empty")
	}
	if !idPattern.MatchString(string(o)) {
		return goerr.New("organization ID must be lowercase alphanumeric with hyphens", goerr.V("id", o))
	}
	return nil
}

// String returns the string representation of OrgID
func (o OrgID) String() string {
	return string(o)
}

// TeamID represents a unique identifier for a team within an organization
type TeamID string

// Validate checks if the TeamID is valid
func (t TeamID) Validate() error {
	if t == "" {
		return goerr.New("team ID cannot be empty")
	}
	if !idPattern.MatchString(string(t)) {
		return goerr.New("team ID must be lowercase alphanumeric with hyphens", goerr.V("id", t))
	}
	return nil
}

// String returns the string representation of TeamID
func (t TeamID) String() string {
	return string(t)
}

// ScopeType identifies whether a computation targets a whole organization
// or a single team within it.
type ScopeType string

const (
	ScopeTypeOrganization ScopeType = "organization"
	ScopeTypeTeam         ScopeType = "team"
)

// IsValid checks if the scope type is valid
func (s ScopeType) IsValid() bool {
	switch s {
	case ScopeTypeOrganization, ScopeTypeTeam:
		return true
	default:
		return false
	}
}

// String returns the string representation of the scope type
func (s ScopeType) String() string {
	return string(s)
}

// Scope selects the unit a snapshot or anomaly computation runs over.
// TeamID is empty for organization-wide scopes.
type Scope struct {
	OrgID  OrgID
	TeamID TeamID
}

// NewOrgScope returns a scope covering the whole organization
func NewOrgScope(orgID OrgID) Scope {
	return Scope{OrgID: orgID}
}

// NewTeamScope returns a scope covering a single team
func NewTeamScope(orgID OrgID, teamID TeamID) Scope {
	return Scope{OrgID: orgID, TeamID: teamID}
}

// Type returns the scope type derived from the presence of a team ID
func (s Scope) Type() ScopeType {
	if s.TeamID != "" {
		return ScopeTypeTeam
	}
	return ScopeTypeOrganization
}

// ID returns the identifier of the scoped unit: the team ID for team
// scopes, otherwise the organization ID.
func (s Scope) ID() string {
	if s.TeamID != "" {
		return s.TeamID.String()
	}
	return s.OrgID.String()
}

// Validate checks if the scope is valid
func (s Scope) Validate() error {
	if err := s.OrgID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid scope")
	}
	if s.TeamID != "" {
		if err := s.TeamID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid scope")
		}
	}
	return nil
}
