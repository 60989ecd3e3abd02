package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/points/week/{week}", handler.GetWeekPoints)
	mux.HandleFunc("GET /v1/points/player/{playerID}", handler.GetPlayerPoints)
	mux.HandleFunc("GET /v1/leagues/{leagueID}", handler.GetLeague)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/leaderboard", handler.GetLeaderboard)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/teams", RequireAuth(verifier, http.HandlerFunc(handler.CreateTeam)))
	mux.Handle("GET /v1/teams/my", RequireAuth(verifier, http.HandlerFunc(handler.GetMyTeam)))
	mux.Handle("PUT /v1/teams/{teamID}/players", RequireAuth(verifier, http.HandlerFunc(handler.SetTeamPlayers)))
	mux.Handle("GET /v1/teams/{teamID}/points", RequireAuth(verifier, http.HandlerFunc(handler.GetTeamPoints)))
	mux.Handle("POST /v1/leagues", RequireAuth(verifier, http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("POST /v1/leagues/join", RequireAuth(verifier, http.HandlerFunc(handler.JoinLeague)))
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/performances", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RecordPerformances)))
	mux.Handle("POST /v1/internal/jobs/recompute-points", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecomputePointsJob)))
}
