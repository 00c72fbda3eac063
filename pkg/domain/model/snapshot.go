package model

import (
	"time"

	"github.com/inverness4444/stresssense/pkg/domain/types"
)

// MaxDrivers limits how many explanatory drivers a snapshot carries.
const MaxDrivers = 3

// Driver is a fixed-weight explanatory factor attached to a risk
// snapshot. It is rule-triggered, not a learned attribution.
type Driver struct {
	Key          string
	Label        string
	Contribution float64
}

// RiskSnapshot is the per-scope scoring result for one window.
// Snapshots are append-only facts: a recomputation produces a new
// snapshot rather than updating an old one.
type RiskSnapshot struct {
	ID             string
	OrgID          types.OrgID
	ScopeType      types.ScopeType
	ScopeID        string
	WindowStart    time.Time
	WindowEnd      time.Time
	RiskScore      int // always clamped to [0, 100]
	StressLevel    types.StressLevel
	Confidence     float64 // [0, 1], sample-size adequacy
	Drivers        []Driver
	Participation  float64
	AvgStressIndex float64
	CreatedAt      time.Time
}

// Scope reconstructs the scope this snapshot was computed for
func (s *RiskSnapshot) Scope() types.Scope {
	if s.ScopeType == types.ScopeTypeTeam {
		return types.NewTeamScope(s.OrgID, types.TeamID(s.ScopeID))
	}
	return types.NewOrgScope(s.OrgID)
}

// Window returns the evaluation window of this snapshot
func (s *RiskSnapshot) Window() Window {
	return Window{Start: s.WindowStart, End: s.WindowEnd}
}
