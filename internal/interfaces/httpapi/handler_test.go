package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/mrrfc/mrr-fantasy/internal/domain/roster"
	"github.com/mrrfc/mrr-fantasy/internal/domain/user"
	"github.com/mrrfc/mrr-fantasy/internal/infrastructure/repository/memory"
	"github.com/mrrfc/mrr-fantasy/internal/platform/id"
	"github.com/mrrfc/mrr-fantasy/internal/platform/logging"
	"github.com/mrrfc/mrr-fantasy/internal/usecase"
)

const testInternalJobToken = "job-secret"

type mapVerifier struct {
	principals map[string]user.Principal
}

func (v *mapVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	principal, ok := v.principals[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func newTestRouter() http.Handler {
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	rosterRepo := memory.NewRosterRepository()
	scoringRepo := memory.NewScoringRepository(playerRepo)
	leagueRepo := memory.NewLeagueRepository()
	idGen := id.NewRandomGenerator()
	logger := logging.NewNop()

	handler := NewHandler(
		usecase.NewPlayerService(playerRepo, logger),
		usecase.NewRosterService(rosterRepo, playerRepo, idGen, logger),
		usecase.NewScoringService(scoringRepo, playerRepo, idGen, logger),
		usecase.NewLeagueService(leagueRepo, rosterRepo, playerRepo, idGen, logger),
		usecase.NewRecomputeService(scoringRepo, playerRepo, logger),
		logger,
	)

	verifier := &mapVerifier{principals: map[string]user.Principal{
		"token-1": {UserID: "user-1", FullName: "Jane Manager", Email: "jane@example.com"},
		"token-2": {UserID: "user-2", FullName: "Arjun Thapa", Email: "arjun@example.com"},
	}}

	return NewRouter(handler, verifier, logger, []string{"*"}, testInternalJobToken)
}

func doJSON(t *testing.T, router http.Handler, method, path, token, body string) (int, map[string]any) {
	t.Helper()

	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
			t.Fatalf("unmarshal response for %s %s: %v", method, path, err)
		}
	}

	return rec.Code, envelope
}

const createTeamBody = `{
	"name": "Thunder XI",
	"starters": [
		{"player_id": "mrr-gk-03", "position": "GK"},
		{"player_id": "mrr-def-01", "position": "DEF"},
		{"player_id": "mrr-def-03", "position": "DEF"},
		{"player_id": "mrr-mid-01", "position": "MID"},
		{"player_id": "mrr-mid-05", "position": "MID"},
		{"player_id": "mrr-fwd-04", "position": "FWD"}
	],
	"bench_player_ids": ["mrr-gk-01", "mrr-def-06", "mrr-fwd-12"],
	"captain_id": "mrr-fwd-04"
}`

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter()

	code, envelope := doJSON(t, router, http.MethodGet, "/healthz", "", "")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	data, _ := envelope["data"].(map[string]any)
	if got, _ := data["status"].(string); got != "ok" {
		t.Fatalf("expected status ok, got %v", data["status"])
	}
}

func TestRouter_ListPlayersWithPositionFilter(t *testing.T) {
	router := newTestRouter()

	code, envelope := doJSON(t, router, http.MethodGet, "/v1/players?position=GK", "", "")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}

	items, ok := envelope["data"].([]any)
	if !ok || len(items) == 0 {
		t.Fatalf("expected goalkeeper list, got %v", envelope["data"])
	}
	for _, raw := range items {
		item, _ := raw.(map[string]any)
		position, _ := item["position"].(string)
		secondary, _ := item["secondary_position"].(string)
		if position != "GK" && secondary != "GK" {
			t.Fatalf("player %v not eligible as goalkeeper", item["id"])
		}
	}
}

func TestRouter_TeamLifecycle(t *testing.T) {
	router := newTestRouter()

	code, envelope := doJSON(t, router, http.MethodPost, "/v1/teams", "token-1", createTeamBody)
	if code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%v)", code, envelope)
	}
	created, _ := envelope["data"].(map[string]any)
	teamID, _ := created["id"].(string)
	if teamID == "" {
		t.Fatalf("expected created team id, got %v", envelope["data"])
	}
	if got, _ := created["captain_id"].(string); got != "mrr-fwd-04" {
		t.Fatalf("expected captain mrr-fwd-04, got %v", created["captain_id"])
	}

	code, envelope = doJSON(t, router, http.MethodGet, "/v1/teams/my", "token-1", "")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	mine, _ := envelope["data"].(map[string]any)
	if got, _ := mine["id"].(string); got != teamID {
		t.Fatalf("expected my team %s, got %v", teamID, mine["id"])
	}

	performances := `{"performances":[{"player_id":"mrr-fwd-04","week":1,"goals":2,"assists":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/v1/internal/performances", strings.NewReader(performances))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Job-Token", testInternalJobToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 recording performances, got %d (%s)", rec.Code, rec.Body.String())
	}

	code, envelope = doJSON(t, router, http.MethodGet, "/v1/teams/"+teamID+"/points", "token-1", "")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	points, _ := envelope["data"].(map[string]any)
	if got, _ := points["total_points"].(float64); got != 25 {
		t.Fatalf("expected 25 total points, got %v", points["total_points"])
	}
}

func TestRouter_SecondTeamConflicts(t *testing.T) {
	router := newTestRouter()

	code, _ := doJSON(t, router, http.MethodPost, "/v1/teams", "token-1", createTeamBody)
	if code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", code)
	}

	code, envelope := doJSON(t, router, http.MethodPost, "/v1/teams", "token-1", createTeamBody)
	if code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d (%v)", code, envelope)
	}
}

func TestRouter_OversizedStarterListReportsRosterSize(t *testing.T) {
	router := newTestRouter()

	body := `{
	"name": "Thunder XI",
	"starters": [
		{"player_id": "mrr-gk-03", "position": "GK"},
		{"player_id": "mrr-def-01", "position": "DEF"},
		{"player_id": "mrr-def-03", "position": "DEF"},
		{"player_id": "mrr-mid-01", "position": "MID"},
		{"player_id": "mrr-mid-05", "position": "MID"},
		{"player_id": "mrr-fwd-04", "position": "FWD"},
		{"player_id": "mrr-fwd-01", "position": "FWD"}
	],
	"bench_player_ids": ["mrr-gk-01", "mrr-def-06", "mrr-fwd-12"],
	"captain_id": "mrr-fwd-04"
}`

	code, envelope := doJSON(t, router, http.MethodPost, "/v1/teams", "token-1", body)
	if code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d (%v)", code, envelope)
	}

	errObj, _ := envelope["error"].(map[string]any)
	message, _ := errObj["message"].(string)
	if !strings.Contains(message, roster.ErrRosterSize.Error()) {
		t.Fatalf("expected roster size reason in message, got %q", message)
	}
	items, _ := errObj["errors"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one error item, got %v", errObj)
	}
	first, _ := items[0].(map[string]any)
	if first["reason"] != "invalidRoster" {
		t.Fatalf("expected invalidRoster reason, got %v", first["reason"])
	}
}

func TestRouter_LeagueFlow(t *testing.T) {
	router := newTestRouter()

	code, envelope := doJSON(t, router, http.MethodPost, "/v1/leagues", "token-1", `{"name":"Office League"}`)
	if code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d (%v)", code, envelope)
	}
	created, _ := envelope["data"].(map[string]any)
	leagueID, _ := created["id"].(string)
	inviteCode, _ := created["invite_code"].(string)
	if len(inviteCode) != 8 {
		t.Fatalf("expected 8-char invite code, got %q", inviteCode)
	}

	code, envelope = doJSON(t, router, http.MethodPost, "/v1/leagues/join", "token-2",
		fmt.Sprintf(`{"invite_code":%q}`, inviteCode))
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%v)", code, envelope)
	}

	code, envelope = doJSON(t, router, http.MethodGet, "/v1/leagues/"+leagueID, "", "")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	detail, _ := envelope["data"].(map[string]any)
	if got, _ := detail["member_count"].(float64); got != 2 {
		t.Fatalf("expected 2 members, got %v", detail["member_count"])
	}

	code, envelope = doJSON(t, router, http.MethodGet, "/v1/leagues/"+leagueID+"/leaderboard", "", "")
	if code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", code)
	}
	standings, _ := envelope["data"].([]any)
	if len(standings) != 2 {
		t.Fatalf("expected 2 standings, got %d", len(standings))
	}
}

func TestRouter_InternalRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/recompute-points", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}
