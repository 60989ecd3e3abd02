package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/mrrfc/mrr-fantasy/internal/usecase"
)

func (h *Handler) RecordPerformances(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordPerformances")
	defer span.End()

	var req recordPerformancesRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]performanceDTO, 0, len(req.Performances))
	for _, line := range req.Performances {
		perf, err := h.scoringService.RecordWeekly(ctx, usecase.RecordPerformanceInput{
			PlayerID:    strings.TrimSpace(line.PlayerID),
			Week:        line.Week,
			Goals:       line.Goals,
			Assists:     line.Assists,
			CleanSheets: line.CleanSheets,
			Saves:       line.Saves,
			Tackles:     line.Tackles,
		})
		if err != nil {
			h.logger.WarnContext(ctx, "record performance failed",
				"player_id", line.PlayerID, "week", line.Week, "error", err)
			writeError(ctx, w, err)
			return
		}
		items = append(items, performanceToDTO(perf))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetWeekPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetWeekPoints")
	defer span.End()

	rawWeek := strings.TrimSpace(r.PathValue("week"))
	week, err := strconv.Atoi(rawWeek)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: week must be a number, got %q", usecase.ErrInvalidInput, rawWeek))
		return
	}

	performances, err := h.scoringService.ListWeek(ctx, week)
	if err != nil {
		h.logger.WarnContext(ctx, "list week points failed", "week", week, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]performanceDTO, 0, len(performances))
	for _, perf := range performances {
		items = append(items, performanceToDTO(perf))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayerPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerPoints")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	performances, err := h.scoringService.ListPlayerHistory(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list player points failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]performanceDTO, 0, len(performances))
	for _, perf := range performances {
		items = append(items, performanceToDTO(perf))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
