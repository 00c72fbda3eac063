package model

import (
	"time"

	"github.com/inverness4444/stresssense/pkg/domain/types"
)

// AnomalyDetails carries the raw values behind an anomaly event so
// consumers can render the comparison without re-querying responses.
type AnomalyDetails struct {
	CurrentValue   float64
	BaselineValue  float64
	AbsoluteChange float64
}

// AnomalyEvent records a significant movement of one metric for a
// scope against its immediately preceding baseline window. Events
// are append-only; no event is written when no threshold is crossed.
type AnomalyEvent struct {
	ID                  string
	OrgID               types.OrgID
	ScopeType           types.ScopeType
	ScopeID             string
	Metric              types.AnomalyMetric
	WindowStart         time.Time
	WindowEnd           time.Time
	BaselineWindowStart time.Time
	BaselineWindowEnd   time.Time
	ChangeDirection     types.ChangeDirection
	ChangeMagnitude     float64 // relative change against the baseline
	Severity            types.AnomalySeverity
	Details             AnomalyDetails
	CreatedAt           time.Time
}

// Scope reconstructs the scope this event was detected for
func (e *AnomalyEvent) Scope() types.Scope {
	if e.ScopeType == types.ScopeTypeTeam {
		return types.NewTeamScope(e.OrgID, types.TeamID(e.ScopeID))
	}
	return types.NewOrgScope(e.OrgID)
}
