package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"

	"github.com/inverness4444/stresssense/pkg/domain/interfaces"
	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
	"github.com/inverness4444/stresssense/pkg/service/metrics"
	"github.com/inverness4444/stresssense/pkg/service/scoring"
)

// AnomalyUseCase compares one metric between a window and its
// preceding baseline window and persists an event when the deviation
// crosses the policy thresholds.
type AnomalyUseCase struct {
	repo    interfaces.Repository
	policy  *scoring.Policy
	metrics *metrics.Metrics
}

func NewAnomalyUseCase(repo interfaces.Repository, policy *scoring.Policy, m *metrics.Metrics) *AnomalyUseCase {
	return &AnomalyUseCase{
		repo:    repo,
		policy:  policy,
		metrics: m,
	}
}

// Detect runs one (scope, metric, window) anomaly check. It returns
// (nil, nil) when no threshold is crossed: the absence of an event is
// a valid outcome, not an error.
func (uc *AnomalyUseCase) Detect(ctx context.Context, scope types.Scope, metric types.AnomalyMetric, window model.Window) (*model.AnomalyEvent, error) {
	if err := scope.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidScope, err.Error(), goerr.V(OrgIDKey, scope.OrgID))
	}
	if err := window.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidWindow, err.Error(), goerr.V(OrgIDKey, scope.OrgID))
	}
	if !metric.IsValid() {
		return nil, goerr.New("invalid anomaly metric", goerr.V("metric", metric))
	}

	org, err := uc.repo.Organization().Get(ctx, scope.OrgID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrOrganizationNotFound, "cannot detect anomalies", goerr.V(OrgIDKey, scope.OrgID))
		}
		return nil, goerr.Wrap(err, "failed to load organization", goerr.V(OrgIDKey, scope.OrgID))
	}

	baselineWindow := window.Prev()

	current, err := uc.aggregateWindow(ctx, scope, window, org)
	if err != nil {
		return nil, err
	}
	baseline, err := uc.aggregateWindow(ctx, scope, baselineWindow, org)
	if err != nil {
		return nil, err
	}

	anomaly := scoring.Detect(metric,
		scoring.MetricValue(metric, current),
		scoring.MetricValue(metric, baseline),
		uc.policy)
	if anomaly == nil {
		return nil, nil
	}

	event := &model.AnomalyEvent{
		OrgID:               scope.OrgID,
		ScopeType:           scope.Type(),
		ScopeID:             scope.ID(),
		Metric:              anomaly.Metric,
		WindowStart:         window.Start,
		WindowEnd:           window.End,
		BaselineWindowStart: baselineWindow.Start,
		BaselineWindowEnd:   baselineWindow.End,
		ChangeDirection:     anomaly.Direction,
		ChangeMagnitude:     anomaly.Relative,
		Severity:            anomaly.Severity,
		Details:             anomaly.Details,
	}

	created, err := uc.repo.Event().Put(ctx, event)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to persist anomaly event",
			goerr.V(OrgIDKey, scope.OrgID), goerr.V(ScopeIDKey, scope.ID()))
	}

	if uc.metrics != nil {
		uc.metrics.AnomalyEmitted(created.Metric.String(), created.Severity.String())
	}

	return created, nil
}

// ListEvents returns the organization's anomaly events, newest first
func (uc *AnomalyUseCase) ListEvents(ctx context.Context, orgID types.OrgID) ([]*model.AnomalyEvent, error) {
	if _, err := uc.repo.Organization().Get(ctx, orgID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrOrganizationNotFound, "cannot list anomaly events", goerr.V(OrgIDKey, orgID))
		}
		return nil, goerr.Wrap(err, "failed to load organization", goerr.V(OrgIDKey, orgID))
	}

	events, err := uc.repo.Event().ListByOrg(ctx, orgID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list anomaly events", goerr.V(OrgIDKey, orgID))
	}
	return events, nil
}

func (uc *AnomalyUseCase) aggregateWindow(ctx context.Context, scope types.Scope, window model.Window, org *model.Organization) (model.StressMetrics, error) {
	responses, err := uc.repo.Response().ListByScope(ctx, scope, window)
	if err != nil {
		return model.StressMetrics{}, goerr.Wrap(err, "failed to list responses",
			goerr.V(OrgIDKey, scope.OrgID), goerr.V(ScopeIDKey, scope.ID()))
	}

	invites, err := uc.repo.Invite().CountByScope(ctx, scope, window)
	if err != nil {
		return model.StressMetrics{}, goerr.Wrap(err, "failed to count invites",
			goerr.V(OrgIDKey, scope.OrgID), goerr.V(ScopeIDKey, scope.ID()))
	}

	return scoring.Aggregate(responses, invites, org.StressScaleMin, org.StressScaleMax), nil
}
