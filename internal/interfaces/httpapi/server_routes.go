package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/pyramid/can-challenge", handler.CanChallenge)
	mux.HandleFunc("POST /v1/scores/validate", handler.ValidateScores)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.Standings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/teams/{teamID}/targets", handler.ChallengeTargets)
	mux.HandleFunc("GET /v1/clubs/{clubID}/events", handler.ClubEvents)
}

func registerPlayerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/seasons/{seasonID}/teams", RequirePlayerOrAdmin(http.HandlerFunc(handler.Enroll)))
	mux.Handle("PUT /v1/seasons/{seasonID}/teams/{teamID}/opt-out", RequirePlayerOrAdmin(http.HandlerFunc(handler.SetOptOut)))
	mux.Handle("POST /v1/seasons/{seasonID}/challenges", RequirePlayer(http.HandlerFunc(handler.Challenge)))
	mux.Handle("POST /v1/matches/{matchID}/date", RequirePlayer(http.HandlerFunc(handler.SetMatchDate)))
	mux.Handle("POST /v1/matches/{matchID}/result", RequirePlayer(http.HandlerFunc(handler.SubmitResult)))
	mux.Handle("POST /v1/matches/{matchID}/dispute", RequirePlayer(http.HandlerFunc(handler.DisputeResult)))
	mux.Handle("POST /v1/matches/{matchID}/withdraw", RequirePlayer(http.HandlerFunc(handler.Withdraw)))
	// admins confirm disputed results and forfeit on behalf of a team
	mux.Handle("POST /v1/matches/{matchID}/confirm", RequirePlayerOrAdmin(http.HandlerFunc(handler.ConfirmResult)))
	mux.Handle("POST /v1/matches/{matchID}/forfeit", RequirePlayerOrAdmin(http.HandlerFunc(handler.Forfeit)))
	mux.Handle("POST /v1/players/me/unavailability", RequirePlayer(http.HandlerFunc(handler.MarkUnavailable)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/seasons", RequireAdmin(http.HandlerFunc(handler.CreateSeason)))
	mux.Handle("POST /v1/seasons/{seasonID}/start", RequireAdmin(http.HandlerFunc(handler.StartSeason)))
	mux.Handle("POST /v1/seasons/{seasonID}/end", RequireAdmin(http.HandlerFunc(handler.EndSeason)))
}
