package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/inverness4444/stresssense/pkg/domain/interfaces"
	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
	"github.com/inverness4444/stresssense/pkg/service/metrics"
	"github.com/inverness4444/stresssense/pkg/service/scoring"
)

// ScoreUseCase orchestrates one risk-snapshot computation: load the
// organization's scale configuration, aggregate the current and
// baseline windows, run the composite scorer and persist the result.
type ScoreUseCase struct {
	repo    interfaces.Repository
	policy  *scoring.Policy
	metrics *metrics.Metrics
}

func NewScoreUseCase(repo interfaces.Repository, policy *scoring.Policy, m *metrics.Metrics) *ScoreUseCase {
	return &ScoreUseCase{
		repo:    repo,
		policy:  policy,
		metrics: m,
	}
}

// ComputeSnapshot scores one (scope, window) pair and persists the
// resulting snapshot. Zero responses are not an error: they produce a
// valid low-score, zero-confidence snapshot. An unknown organization
// fails with ErrOrganizationNotFound.
func (uc *ScoreUseCase) ComputeSnapshot(ctx context.Context, scope types.Scope, window model.Window) (*model.RiskSnapshot, error) {
	started := time.Now()

	if err := scope.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidScope, err.Error(), goerr.V(OrgIDKey, scope.OrgID))
	}
	if err := window.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidWindow, err.Error(), goerr.V(OrgIDKey, scope.OrgID))
	}

	org, err := uc.repo.Organization().Get(ctx, scope.OrgID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrOrganizationNotFound, "cannot compute snapshot", goerr.V(OrgIDKey, scope.OrgID))
		}
		return nil, goerr.Wrap(err, "failed to load organization", goerr.V(OrgIDKey, scope.OrgID))
	}

	current, responseCount, err := uc.aggregateWindow(ctx, scope, window, org)
	if err != nil {
		return nil, err
	}

	baseline, _, err := uc.aggregateWindow(ctx, scope, window.Prev(), org)
	if err != nil {
		return nil, err
	}

	assessment := scoring.Score(scoring.ScoreInput{
		Current:             current,
		BaselineStressIndex: baseline.StressIndex,
		ResponseCount:       responseCount,
	}, uc.policy)

	snapshot := &model.RiskSnapshot{
		OrgID:          scope.OrgID,
		ScopeType:      scope.Type(),
		ScopeID:        scope.ID(),
		WindowStart:    window.Start,
		WindowEnd:      window.End,
		RiskScore:      assessment.RiskScore,
		StressLevel:    assessment.StressLevel,
		Confidence:     assessment.Confidence,
		Drivers:        assessment.Drivers,
		Participation:  current.Participation,
		AvgStressIndex: current.StressIndex,
	}

	created, err := uc.repo.Snapshot().Put(ctx, snapshot)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to persist snapshot",
			goerr.V(OrgIDKey, scope.OrgID), goerr.V(ScopeIDKey, scope.ID()))
	}

	if uc.metrics != nil {
		uc.metrics.SnapshotComputed(time.Since(started))
	}

	return created, nil
}

// ListSnapshots returns the organization's snapshots, newest first
func (uc *ScoreUseCase) ListSnapshots(ctx context.Context, orgID types.OrgID) ([]*model.RiskSnapshot, error) {
	if _, err := uc.repo.Organization().Get(ctx, orgID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrOrganizationNotFound, "cannot list snapshots", goerr.V(OrgIDKey, orgID))
		}
		return nil, goerr.Wrap(err, "failed to load organization", goerr.V(OrgIDKey, orgID))
	}

	snapshots, err := uc.repo.Snapshot().ListByOrg(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list snapshots", goerr.V(OrgIDKey, orgID))
	}
	return snapshots, nil
}

// aggregateWindow reduces one window to StressMetrics and the raw
// response count for the confidence calculation.
func (uc *ScoreUseCase) aggregateWindow(ctx context.Context, scope types.Scope, window model.Window, org *model.Organization) (model.StressMetrics, int, error) {
	responses, err := uc.repo.Response().ListByScope(ctx, scope, window)
	if err != nil {
		return model.StressMetrics{}, 0, goerr.Wrap(err, "failed to list responses",
			goerr.V(OrgIDKey, scope.OrgID), goerr.V(ScopeIDKey, scope.ID()))
	}

	invites, err := uc.repo.Invite().CountByScope(ctx, scope, window)
	if err != nil {
		return model.StressMetrics{}, 0, goerr.Wrap(err, "failed to count invites",
			goerr.V(OrgIDKey, scope.OrgID), goerr.V(ScopeIDKey, scope.ID()))
	}

	aggregated := scoring.Aggregate(responses, invites, org.StressScaleMin, org.StressScaleMax)
	return aggregated, len(responses), nil
}
