package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/courtvision/internal/usecase"
)

type syncJobRequest struct {
	Team       string `json:"team" validate:"omitempty,max=100"`
	RunID      string `json:"run_id" validate:"omitempty,max=64"`
	MaxWorkers int    `json:"max_workers" validate:"omitempty,gt=0,lte=30"`
	Queue      *bool  `json:"queue"`
}

func (h *Handler) RunUpdateGameLogsJob(w http.ResponseWriter, r *http.Request) {
	h.runSyncJob(w, r, usecase.SyncJobUpdateGameLogs, "httpapi.Handler.RunUpdateGameLogsJob")
}

func (h *Handler) RunBackfillStatsJob(w http.ResponseWriter, r *http.Request) {
	h.runSyncJob(w, r, usecase.SyncJobBackfillStats, "httpapi.Handler.RunBackfillStatsJob")
}

func (h *Handler) runSyncJob(w http.ResponseWriter, r *http.Request, job usecase.SyncJob, spanName string) {
	ctx, span := startSpan(r.Context(), spanName)
	defer span.End()

	req, err := h.decodeSyncJobRequest(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	// A single-team delivery always runs inline; that is how queued jobs land.
	queue := h.syncQueue && req.Team == ""
	if req.Queue != nil {
		queue = *req.Queue && req.Team == ""
	}

	result, err := h.sync.Run(ctx, usecase.SyncInput{
		Job:        job,
		Team:       req.Team,
		MaxWorkers: req.MaxWorkers,
		Queue:      queue,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "sync job failed", "job", job, "team", req.Team, "parent_run_id", req.RunID, "error", err)
		writeError(ctx, w, err)
		return
	}
	if req.RunID != "" {
		h.logger.InfoContext(ctx, "queued sync job delivered", "job", job, "team", req.Team, "parent_run_id", req.RunID, "run_id", result.RunID)
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

// decodeSyncJobRequest merges the optional JSON body with query overrides.
func (h *Handler) decodeSyncJobRequest(r *http.Request) (syncJobRequest, error) {
	var req syncJobRequest
	if err := decodeJSON(r, &req, true); err != nil {
		return syncJobRequest{}, err
	}

	query := r.URL.Query()
	if team := strings.TrimSpace(query.Get("team")); team != "" {
		req.Team = team
	}
	if raw := strings.TrimSpace(query.Get("queue")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err == nil {
			req.Queue = &v
		}
	}
	req.Team = strings.TrimSpace(req.Team)

	if err := h.validateRequest(r.Context(), req); err != nil {
		return syncJobRequest{}, err
	}
	return req, nil
}
