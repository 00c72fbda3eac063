package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/inverness4444/stresssense/pkg/domain/types"
)

// Organization is the per-organization configuration the engine reads:
// the rating scale its surveys use and the minimum sample size that
// consumers apply when suppressing low-sample breakdowns. The engine
// itself does not enforce the suppression.
type Organization struct {
	ID             types.OrgID
	Name           string
	StressScaleMin float64
	StressScaleMax float64
	MinSampleSize  int
	Teams          []types.TeamID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Validate checks the organization configuration
func (o *Organization) Validate() error {
	if err := o.ID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid organization")
	}
	if o.StressScaleMin >= o.StressScaleMax {
		return goerr.New("stress scale min must be below max",
			goerr.V("min", o.StressScaleMin), goerr.V("max", o.StressScaleMax))
	}
	if o.MinSampleSize < 0 {
		return goerr.New("minimum sample size cannot be negative",
			goerr.V("min_sample_size", o.MinSampleSize))
	}
	for _, teamID := range o.Teams {
		if err := teamID.Validate(); err != nil {
			return goerr.Wrap(err, "invalid organization team")
		}
	}
	return nil
}

// Scopes returns the organization-wide scope followed by one scope
// per configured team, the unit set a batch run fans out over.
func (o *Organization) Scopes() []types.Scope {
	scopes := make([]types.Scope, 0, len(o.Teams)+1)
	scopes = append(scopes, types.NewOrgScope(o.ID))
	for _, teamID := range o.Teams {
		scopes = append(scopes, types.NewTeamScope(o.ID, teamID))
	}
	return scopes
}
