package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/mrrfc/mrr-fantasy/internal/domain/player"
	"github.com/mrrfc/mrr-fantasy/internal/domain/roster"
	"github.com/mrrfc/mrr-fantasy/internal/usecase"
)

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	var req createTeamRequest
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

	team, err := h.rosterService.CreateTeam(ctx, principal, usecase.CreateTeamInput{
		Name:      req.Name,
		Selection: selectionFromRequest(req.Starters, req.BenchPlayerIDs, req.CaptainID),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(ctx, team))
}

func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	team, err := h.rosterService.GetMyTeam(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get my team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, team))
}

func (h *Handler) SetTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetTeamPlayers")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized))
		return
	}

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	var req setTeamPlayersRequest
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

	team, err := h.rosterService.SetPlayers(ctx, principal, teamID,
		selectionFromRequest(req.Starters, req.BenchPlayerIDs, req.CaptainID))
	if err != nil {
		h.logger.WarnContext(ctx, "set team players failed", "team_id", teamID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(ctx, team))
}

func (h *Handler) GetTeamPoints(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamPoints")
	defer span.End()

	teamID := strings.TrimSpace(r.PathValue("teamID"))
	points, err := h.rosterService.GetTeamPoints(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team points failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamPointsToDTO(points))
}

func selectionFromRequest(starters []starterAssignmentRequest, benchIDs []string, captainID string) roster.Selection {
	assignments := make([]roster.StarterAssignment, 0, len(starters))
	for _, s := range starters {
		assignments = append(assignments, roster.StarterAssignment{
			PlayerID: strings.TrimSpace(s.PlayerID),
			Position: player.Position(strings.ToUpper(strings.TrimSpace(s.Position))),
		})
	}

	bench := make([]string, 0, len(benchIDs))
	for _, id := range benchIDs {
		bench = append(bench, strings.TrimSpace(id))
	}

	return roster.Selection{
		Starters:       assignments,
		BenchPlayerIDs: bench,
		CaptainID:      strings.TrimSpace(captainID),
	}
}
