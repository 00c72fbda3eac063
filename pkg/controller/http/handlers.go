package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"

	"github.com/inverness4444/stresssense/pkg/domain/model"
	"github.com/inverness4444/stresssense/pkg/domain/types"
	"github.com/inverness4444/stresssense/pkg/usecase"
	"github.com/inverness4444/stresssense/pkg/utils/async"
	"github.com/inverness4444/stresssense/pkg/utils/errutil"
)

type runRequest struct {
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
}

type runResponse struct {
	Snapshots    []*model.RiskSnapshot `json:"snapshots"`
	Events       []*model.AnomalyEvent `json:"events"`
	FailedScopes []string              `json:"failed_scopes"`
}

// runHandler triggers a batch scoring run for the organization. The
// run executes in the background unless ?sync=true is given: the
// external scheduler only needs to know the trigger was accepted.
func (s *Server) runHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := types.OrgID(chi.URLParam(r, "orgID"))

	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "invalid run request body"), http.StatusBadRequest)
		return
	}
	window := model.NewWindow(req.WindowStart, req.WindowEnd)
	if err := window.Validate(); err != nil {
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
		return
	}

	if r.URL.Query().Get("sync") != "true" {
		async.Dispatch(ctx, func(ctx context.Context) error {
			_, err := s.uc.Batch.Run(ctx, orgID, window)
			return err
		})
		w.WriteHeader(http.StatusAccepted)
		return
	}

	result, err := s.uc.Batch.Run(ctx, orgID, window)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusFor(err))
		return
	}

	writeJSON(ctx, w, http.StatusOK, toRunResponse(result))
}

func (s *Server) snapshotsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := types.OrgID(chi.URLParam(r, "orgID"))

	snapshots, err := s.uc.Score.ListSnapshots(ctx, orgID)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusFor(err))
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"snapshots": snapshots})
}

func (s *Server) eventsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := types.OrgID(chi.URLParam(r, "orgID"))

	events, err := s.uc.Anomaly.ListEvents(ctx, orgID)
	if err != nil {
		errutil.HandleHTTP(ctx, w, err, statusFor(err))
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{"events": events})
}

func toRunResponse(result *usecase.RunResult) *runResponse {
	failed := make([]string, len(result.FailedScopes))
	for i, scope := range result.FailedScopes {
		failed[i] = scope.ID()
	}
	return &runResponse{
		Snapshots:    result.Snapshots,
		Events:       result.Events,
		FailedScopes: failed,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, usecase.ErrOrganizationNotFound):
		return http.StatusNotFound
	case errors.Is(err, usecase.ErrInvalidWindow), errors.Is(err, usecase.ErrInvalidScope):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		_ = errutil.Handle(ctx, err, "failed to encode response body")
	}
}
