package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/sync/errgroup"

	"github.com/inverness4444/stresssense/pkg/domain/interfaces"
	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
	"github.com/inverness4444/stresssense/pkg/service/metrics"
	"github.com/inverness4444/stresssense/pkg/utils/logging"
)

// defaultConcurrency bounds how many scopes are computed in parallel.
// Scope computations share no state, so the bound only protects the
// backing store from query bursts.
const defaultConcurrency = 4

// BatchUseCase fans a scoring run out over an organization scope plus
// every team scope, computing a snapshot and both anomaly checks for
// each. A failing scope is logged and skipped; siblings proceed and
// already-persisted results stay valid.
type BatchUseCase struct {
	repo        interfaces.Repository
	score       *ScoreUseCase
	anomaly     *AnomalyUseCase
	metrics     *metrics.Metrics
	concurrency int
}

func NewBatchUseCase(repo interfaces.Repository, score *ScoreUseCase, anomaly *AnomalyUseCase, m *metrics.Metrics) *BatchUseCase {
	return &BatchUseCase{
		repo:        repo,
		score:       score,
		anomaly:     anomaly,
		metrics:     m,
		concurrency: defaultConcurrency,
	}
}

// RunResult summarizes one batch run. FailedScopes lists scopes that
// were skipped after an error; their absence from Snapshots does not
// invalidate the rest of the run.
type RunResult struct {
	Snapshots    []*model.RiskSnapshot
	Events       []*model.AnomalyEvent
	FailedScopes []types.Scope
}

// Run computes snapshots and anomaly events for every scope of the
// organization over the given window. Only a missing organization or
// an invalid window fails the run as a whole.
func (uc *BatchUseCase) Run(ctx context.Context, orgID types.OrgID, window model.Window) (*RunResult, error) {
	if err := window.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidWindow, err.Error(), goerr.V(OrgIDKey, orgID))
	}

	org, err := uc.repo.Organization().Get(ctx, orgID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrOrganizationNotFound, "cannot run batch scoring", goerr.V(OrgIDKey, orgID))
		}
		return nil, goerr.Wrap(err, "failed to load organization", goerr.V(OrgIDKey, orgID))
	}

	var mu sync.Mutex
	result := &RunResult{}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(uc.concurrency)

	for _, scope := range org.Scopes() {
		eg.Go(func() error {
			snapshot, events, err := uc.runScope(egCtx, scope, window)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				// Failure isolation: record and move on, never abort siblings
				logging.From(egCtx).Error("scope computation failed, skipping",
					"org_id", scope.OrgID.String(),
					"scope_id", scope.ID(),
					"error", err.Error(),
				)
				if uc.metrics != nil {
					uc.metrics.ScopeFailed()
				}
				result.FailedScopes = append(result.FailedScopes, scope)
				return nil
			}
			result.Snapshots = append(result.Snapshots, snapshot)
			result.Events = append(result.Events, events...)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, goerr.Wrap(err, "batch scoring run failed", goerr.V(OrgIDKey, orgID))
	}

	logging.From(ctx).Info("batch scoring run finished",
		"org_id", orgID.String(),
		"snapshots", len(result.Snapshots),
		"events", len(result.Events),
		"failed_scopes", len(result.FailedScopes),
	)

	return result, nil
}

// runScope computes the snapshot and both anomaly checks for one scope
func (uc *BatchUseCase) runScope(ctx context.Context, scope types.Scope, window model.Window) (*model.RiskSnapshot, []*model.AnomalyEvent, error) {
	snapshot, err := uc.score.ComputeSnapshot(ctx, scope, window)
	if err != nil {
		return nil, nil, err
	}

	var events []*model.AnomalyEvent
	for _, metric := range types.AllAnomalyMetrics() {
		event, err := uc.anomaly.Detect(ctx, scope, metric, window)
		if err != nil {
			return nil, nil, err
		}
		if event != nil {
			events = append(events, event)
		}
	}

	return snapshot, events, nil
}
