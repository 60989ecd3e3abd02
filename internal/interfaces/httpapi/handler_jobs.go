package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"

	"github.com/mrrfc/mrr-fantasy/internal/usecase"
)

func (h *Handler) RunRecomputePointsJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRecomputePointsJob")
	defer span.End()

	if h.recomputeService == nil {
		writeError(ctx, w, fmt.Errorf("%w: recompute service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	// The queue posts an empty body; an explicit payload can cap the workers.
	var req recomputePointsRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.recomputeService.RecomputePoints(ctx, usecase.RecomputeInput{
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "recompute points job failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "recompute points job finished",
		"player_count", result.PlayerCount,
		"performance_count", result.PerformanceCount,
		"changed_count", result.ChangedCount,
		"duration_ms", result.DurationMs,
	)

	writeSuccess(ctx, w, http.StatusOK, recomputeResultDTO{
		PlayerCount:      result.PlayerCount,
		PerformanceCount: result.PerformanceCount,
		WorkerCount:      result.WorkerCount,
		ChangedCount:     result.ChangedCount,
		DurationMs:       result.DurationMs,
	})
}
